// Package sandbox exposes the adapter operations over HTTP so a host can exercise the
// adapter end to end. The endpoints never call the exchange: they build, interpret and
// extract from the payloads they are given.
package sandbox

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/adverxo/prebid-bidder/adapters"
	"github.com/adverxo/prebid-bidder/errortypes"
	"github.com/adverxo/prebid-bidder/metrics"
	"github.com/adverxo/prebid-bidder/util/jsonutil"
	"github.com/golang/glog"
)

type endpointDeps struct {
	bidder         adapters.Bidder
	metricsEngine  metrics.MetricsEngine
	maxRequestSize int64
}

func newEndpointDeps(bidder adapters.Bidder, metricsEngine metrics.MetricsEngine, maxRequestSize int64) (*endpointDeps, error) {
	if bidder == nil || metricsEngine == nil {
		return nil, errors.New("sandbox endpoints require a bidder and a metrics engine")
	}
	return &endpointDeps{
		bidder:         bidder,
		metricsEngine:  metricsEngine,
		maxRequestSize: maxRequestSize,
	}, nil
}

// readBody decodes the JSON request body into out.
func (deps *endpointDeps) readBody(r *http.Request, out interface{}) error {
	reader := io.Reader(r.Body)
	if deps.maxRequestSize > 0 {
		reader = io.LimitReader(r.Body, deps.maxRequestSize+1)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read the request body: %v", err)
	}
	if deps.maxRequestSize > 0 && int64(len(body)) > deps.maxRequestSize {
		return fmt.Errorf("request size exceeded max size of %d bytes", deps.maxRequestSize)
	}
	if len(body) == 0 {
		return errors.New("request body is empty")
	}

	return jsonutil.UnmarshalValid(body, out)
}

// finish writes the response and records the request metrics for the endpoint. Fatal adapter
// errors still answer 200 but label the request as failed.
func (deps *endpointDeps) finish(w http.ResponseWriter, endpoint metrics.Endpoint, start time.Time, response interface{}, adapterErrs []error, parseErr error) {
	labels := metrics.Labels{
		Endpoint:      endpoint,
		RequestStatus: metrics.RequestStatusOK,
	}
	if errortypes.ContainsFatalError(adapterErrs) {
		labels.RequestStatus = metrics.RequestStatusErr
	}
	defer func() {
		deps.metricsEngine.RecordRequest(labels)
		deps.metricsEngine.RecordRequestTime(labels, time.Since(start))
	}()

	if parseErr != nil {
		labels.RequestStatus = metrics.RequestStatusBadInput
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Invalid request format: %s\n", parseErr.Error())
		return
	}

	responseBytes, err := jsonutil.Marshal(response)
	if err != nil {
		labels.RequestStatus = metrics.RequestStatusErr
		glog.Errorf("Failed to marshal the %s response: %v", endpoint, err)
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, "Failed to marshal the response: %v", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(responseBytes)
}

// adapterError is the wire form of an error returned by an adapter operation.
type adapterError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

func (deps *endpointDeps) adapterErrors(errs []error) []adapterError {
	if len(errs) == 0 {
		return nil
	}

	metrics.RecordAdapterErrors(deps.metricsEngine, errs)

	out := make([]adapterError, 0, len(errs))
	for _, err := range errs {
		out = append(out, adapterError{
			Code:     errortypes.ReadCode(err),
			Message:  err.Error(),
			Severity: errortypes.SeverityOf(err).String(),
		})
	}
	return out
}
