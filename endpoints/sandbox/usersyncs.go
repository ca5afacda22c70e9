package sandbox

import (
	"net/http"
	"time"

	"github.com/adverxo/prebid-bidder/adapters"
	"github.com/adverxo/prebid-bidder/metrics"
	"github.com/julienschmidt/httprouter"
)

// NewUserSyncsEndpoint serves POST /adverxo/usersyncs with the sync pixels requested by the
// exchange responses of an auction.
func NewUserSyncsEndpoint(bidder adapters.Bidder, metricsEngine metrics.MetricsEngine, maxRequestSize int64) (httprouter.Handle, error) {
	deps, err := newEndpointDeps(bidder, metricsEngine, maxRequestSize)
	if err != nil {
		return nil, err
	}
	return deps.UserSyncs, nil
}

type userSyncsRequest struct {
	SyncOptions adapters.SyncOptions `json:"syncOptions"`
	Responses   []*httpResponse      `json:"responses"`
}

type userSyncsResponse struct {
	UserSyncs []adapters.UserSync `json:"userSyncs"`
}

func (deps *endpointDeps) UserSyncs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	start := time.Now()

	var payload userSyncsRequest
	if err := deps.readBody(r, &payload); err != nil {
		deps.finish(w, metrics.EndpointUserSyncs, start, nil, nil, err)
		return
	}

	responses := make([]*adapters.ResponseData, 0, len(payload.Responses))
	for _, response := range payload.Responses {
		if response != nil {
			responses = append(responses, response.responseData())
		}
	}

	syncs := deps.bidder.GetUserSyncs(payload.SyncOptions, responses)
	for _, sync := range syncs {
		deps.metricsEngine.RecordUserSync(sync.Type)
	}
	if syncs == nil {
		syncs = []adapters.UserSync{}
	}

	deps.finish(w, metrics.EndpointUserSyncs, start, userSyncsResponse{UserSyncs: syncs}, nil, nil)
}
