package sandbox

import (
	"errors"
	"net/http"
	"time"

	"github.com/adverxo/prebid-bidder/adapters"
	"github.com/adverxo/prebid-bidder/metrics"
	"github.com/julienschmidt/httprouter"
)

// NewBidsEndpoint serves POST /adverxo/bids. The exchange response is interpreted against
// the call it answers, as returned by /adverxo/requests.
func NewBidsEndpoint(bidder adapters.Bidder, metricsEngine metrics.MetricsEngine, maxRequestSize int64) (httprouter.Handle, error) {
	deps, err := newEndpointDeps(bidder, metricsEngine, maxRequestSize)
	if err != nil {
		return nil, err
	}
	return deps.Bids, nil
}

type bidsRequest struct {
	Request  *httpCall     `json:"request"`
	Response *httpResponse `json:"response"`
}

// httpResponse is the wire form of adapters.ResponseData. The body is kept as text since
// the exchange may answer with something other than JSON.
type httpResponse struct {
	StatusCode int         `json:"statusCode"`
	Headers    http.Header `json:"headers,omitempty"`
	Body       string      `json:"body,omitempty"`
}

func (r *httpResponse) responseData() *adapters.ResponseData {
	return &adapters.ResponseData{
		StatusCode: r.StatusCode,
		Headers:    r.Headers,
		Body:       []byte(r.Body),
	}
}

type bidsResponse struct {
	Bids   []*adapters.Bid `json:"bids"`
	Errors []adapterError  `json:"errors,omitempty"`
}

func (deps *endpointDeps) Bids(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	start := time.Now()

	var payload bidsRequest
	if err := deps.readBody(r, &payload); err != nil {
		deps.finish(w, metrics.EndpointBids, start, nil, nil, err)
		return
	}
	if payload.Request == nil || payload.Response == nil {
		deps.finish(w, metrics.EndpointBids, start, nil, nil, errors.New("request and response are required"))
		return
	}

	bids, errs := deps.bidder.InterpretResponse(payload.Response.responseData(), payload.Request.requestData())

	response := bidsResponse{Bids: []*adapters.Bid{}}
	for _, bid := range bids {
		if bid == nil {
			continue
		}
		deps.metricsEngine.RecordBid(bid.MediaType)
		response.Bids = append(response.Bids, bid)
	}
	response.Errors = deps.adapterErrors(errs)

	deps.finish(w, metrics.EndpointBids, start, response, errs, nil)
}
