package metrics

import (
	"time"

	"github.com/adverxo/prebid-bidder/errortypes"
	"github.com/adverxo/prebid-bidder/openrtb_ext"
	"github.com/adverxo/prebid-bidder/usersync"
)

// Labels defines the labels that can be attached to the request metrics.
type Labels struct {
	Endpoint      Endpoint
	RequestStatus RequestStatus
}

// Endpoint is the sandbox endpoint which served a request.
type Endpoint string

const (
	EndpointRequests  Endpoint = "requests"
	EndpointBids      Endpoint = "bids"
	EndpointUserSyncs Endpoint = "usersyncs"
)

func EndpointTypes() []Endpoint {
	return []Endpoint{
		EndpointRequests,
		EndpointBids,
		EndpointUserSyncs,
	}
}

// RequestStatus is the outcome of a sandbox request.
type RequestStatus string

const (
	RequestStatusOK       RequestStatus = "ok"
	RequestStatusBadInput RequestStatus = "badinput"
	RequestStatusErr      RequestStatus = "err"
)

func RequestStatuses() []RequestStatus {
	return []RequestStatus{
		RequestStatusOK,
		RequestStatusBadInput,
		RequestStatusErr,
	}
}

// AdapterError classifies the errors returned next to adapter results.
type AdapterError string

const (
	AdapterErrorBadInput          AdapterError = "badinput"
	AdapterErrorBadServerResponse AdapterError = "badserverresponse"
	AdapterErrorFailedToMarshal   AdapterError = "failedtomarshal"
	AdapterErrorInvalidConsent    AdapterError = "invalidconsent"
	AdapterErrorWarning           AdapterError = "warning"
	AdapterErrorUnknown           AdapterError = "unknown_error"
)

func AdapterErrors() []AdapterError {
	return []AdapterError{
		AdapterErrorBadInput,
		AdapterErrorBadServerResponse,
		AdapterErrorFailedToMarshal,
		AdapterErrorInvalidConsent,
		AdapterErrorWarning,
		AdapterErrorUnknown,
	}
}

// AdapterErrorOf maps an adapter error to its metric label.
func AdapterErrorOf(err error) AdapterError {
	switch errortypes.ReadCode(err) {
	case errortypes.BadInputErrorCode:
		return AdapterErrorBadInput
	case errortypes.BadServerResponseErrorCode:
		return AdapterErrorBadServerResponse
	case errortypes.FailedToMarshalErrorCode:
		return AdapterErrorFailedToMarshal
	case errortypes.InvalidPrivacyConsentWarningCode:
		return AdapterErrorInvalidConsent
	}
	if errortypes.IsWarning(err) {
		return AdapterErrorWarning
	}
	return AdapterErrorUnknown
}

// MetricsEngine is a generic interface to record metrics into the desired backend
// The first three metrics function fire off once per incoming request, so total metrics
// will equal the total number of incoming requests. The remaining ones fire off per
// adapter result, as a request may produce several bids, errors or user syncs.
type MetricsEngine interface {
	RecordConnectionAccept(success bool)
	RecordConnectionClose(success bool)
	RecordRequest(labels Labels)
	RecordRequestTime(labels Labels, length time.Duration)
	RecordInvalidBidRequests(count int)
	RecordOutboundRequests(count int)
	RecordBid(bidType openrtb_ext.BidType)
	RecordAdapterError(adapterError AdapterError)
	RecordUserSync(syncType usersync.SyncType)
}

// RecordAdapterErrors records every error returned by an adapter operation.
func RecordAdapterErrors(engine MetricsEngine, errs []error) {
	for _, err := range errs {
		engine.RecordAdapterError(AdapterErrorOf(err))
	}
}
