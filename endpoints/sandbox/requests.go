package sandbox

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/adverxo/prebid-bidder/adapters"
	"github.com/adverxo/prebid-bidder/metrics"
	"github.com/julienschmidt/httprouter"
)

// NewRequestsEndpoint serves POST /adverxo/requests. The valid bid requests of the payload
// are built into the exchange calls the host should make.
func NewRequestsEndpoint(bidder adapters.Bidder, metricsEngine metrics.MetricsEngine, maxRequestSize int64) (httprouter.Handle, error) {
	deps, err := newEndpointDeps(bidder, metricsEngine, maxRequestSize)
	if err != nil {
		return nil, err
	}
	return deps.Requests, nil
}

type requestsRequest struct {
	BidRequests   []*adapters.BidRequest  `json:"bidRequests"`
	BidderRequest *adapters.BidderRequest `json:"bidderRequest,omitempty"`
}

type requestsResponse struct {
	Requests    []httpCall     `json:"requests"`
	InvalidBids []string       `json:"invalidBids,omitempty"`
	Errors      []adapterError `json:"errors,omitempty"`
}

// httpCall is the wire form of adapters.RequestData. It round trips through /adverxo/bids.
type httpCall struct {
	Method  string                 `json:"method"`
	URL     string                 `json:"url"`
	Headers http.Header            `json:"headers,omitempty"`
	Body    json.RawMessage        `json:"body,omitempty"`
	ImpIDs  []string               `json:"impIds,omitempty"`
	Bids    []*adapters.BidRequest `json:"bids,omitempty"`
}

func newHTTPCall(request *adapters.RequestData) httpCall {
	return httpCall{
		Method:  request.Method,
		URL:     request.Uri,
		Headers: request.Headers,
		Body:    request.Body,
		ImpIDs:  request.ImpIDs,
		Bids:    request.Bids,
	}
}

func (c *httpCall) requestData() *adapters.RequestData {
	return &adapters.RequestData{
		Method:  c.Method,
		Uri:     c.URL,
		Headers: c.Headers,
		Body:    c.Body,
		ImpIDs:  c.ImpIDs,
		Bids:    c.Bids,
	}
}

func (deps *endpointDeps) Requests(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	start := time.Now()

	var payload requestsRequest
	if err := deps.readBody(r, &payload); err != nil {
		deps.finish(w, metrics.EndpointRequests, start, nil, nil, err)
		return
	}

	response := requestsResponse{Requests: []httpCall{}}

	validBids := make([]*adapters.BidRequest, 0, len(payload.BidRequests))
	for _, bidRequest := range payload.BidRequests {
		if deps.bidder.IsBidRequestValid(bidRequest) {
			validBids = append(validBids, bidRequest)
		} else if bidRequest != nil {
			response.InvalidBids = append(response.InvalidBids, bidRequest.BidID)
		}
	}
	deps.metricsEngine.RecordInvalidBidRequests(len(payload.BidRequests) - len(validBids))

	var errs []error
	if len(validBids) > 0 {
		var requests []*adapters.RequestData
		requests, errs = deps.bidder.BuildRequests(validBids, payload.BidderRequest)
		for _, request := range requests {
			response.Requests = append(response.Requests, newHTTPCall(request))
		}
		deps.metricsEngine.RecordOutboundRequests(len(requests))
		response.Errors = deps.adapterErrors(errs)
	}

	deps.finish(w, metrics.EndpointRequests, start, response, errs, nil)
}
