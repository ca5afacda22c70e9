package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/adverxo/prebid-bidder/adapters"
	"github.com/adverxo/prebid-bidder/adapters/adverxo"
	"github.com/adverxo/prebid-bidder/config"
	"github.com/adverxo/prebid-bidder/endpoints"
	"github.com/adverxo/prebid-bidder/endpoints/sandbox"
	metricsConf "github.com/adverxo/prebid-bidder/metrics/config"
	"github.com/adverxo/prebid-bidder/openrtb_ext"
	"github.com/golang/glog"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// NewJsonDirectoryServer is used to serve .json files from a directory as a single blob. For example,
// given a directory containing the files "a.json" and "b.json", this returns a Handle which serves JSON like:
//
//	{
//	  "a": { ... content from the file a.json ... },
//	  "b": { ... content from the file b.json ... }
//	}
//
// This function stores the file contents in memory, and should not be used on large directories.
// If the root directory, or any of the files in it, cannot be read, then the program will exit.
func NewJsonDirectoryServer(schemaDirectory string, validator openrtb_ext.BidderParamValidator) httprouter.Handle {
	// Slurp the files into memory first, since they're small and it minimizes request latency.
	files, err := os.ReadDir(schemaDirectory)
	if err != nil {
		glog.Fatalf("Failed to read directory %s: %v", schemaDirectory, err)
	}

	data := make(map[string]json.RawMessage, len(files))
	for _, file := range files {
		bidder := strings.TrimSuffix(file.Name(), ".json")
		bidderName, isValid := openrtb_ext.NormalizeBidderName(bidder)
		if !isValid {
			glog.Fatalf("Schema exists for an unknown bidder: %s", bidder)
		}
		data[bidder] = json.RawMessage(validator.Schema(bidderName))
	}

	response, err := json.Marshal(data)
	if err != nil {
		glog.Fatalf("Failed to marshal bidder param JSON-schema: %v", err)
	}

	return func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.Header().Add("Content-Type", "application/json")
		w.Write(response)
	}
}

type NoCache struct {
	Handler http.Handler
}

func (m NoCache) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Add("Pragma", "no-cache")
	w.Header().Add("Expires", "0")
	m.Handler.ServeHTTP(w, r)
}

type Router struct {
	*httprouter.Router
	MetricsEngine   *metricsConf.DetailedMetricsEngine
	ParamsValidator openrtb_ext.BidderParamValidator
	BidderInfo      config.BidderInfo
	Bidder          adapters.Bidder
}

// New builds the adapter from the configuration and routes the sandbox endpoints to it.
func New(cfg *config.Configuration) (r *Router, err error) {
	r = &Router{
		Router: httprouter.New(),
	}

	r.MetricsEngine = metricsConf.NewMetricsEngine(cfg)

	r.ParamsValidator, err = openrtb_ext.NewBidderParamsValidator(cfg.BidderParamsSchemaDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create the bidder params validator: %v", err)
	}

	adapterCfg, ok := cfg.Adapters[string(openrtb_ext.BidderAdverxo)]
	if !ok || adapterCfg.Disabled {
		return nil, fmt.Errorf("the %s adapter is not configured or disabled", openrtb_ext.BidderAdverxo)
	}

	r.BidderInfo, err = config.LoadBidderInfoFromDisk(cfg.BidderInfoDir, openrtb_ext.BidderAdverxo)
	if err != nil {
		return nil, fmt.Errorf("failed to load the %s bidder info: %v", openrtb_ext.BidderAdverxo, err)
	}
	adapterCfg.Features = r.BidderInfo.Features(adapterCfg.Features)

	r.Bidder, err = adverxo.Builder(openrtb_ext.BidderAdverxo, adapterCfg, config.Server{
		ExternalUrl: cfg.ExternalURL,
		Publisher:   cfg.Publisher,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build the %s adapter: %v", openrtb_ext.BidderAdverxo, err)
	}

	requestsEndpoint, err := sandbox.NewRequestsEndpoint(r.Bidder, r.MetricsEngine, cfg.MaxRequestSize)
	if err != nil {
		return nil, err
	}
	bidsEndpoint, err := sandbox.NewBidsEndpoint(r.Bidder, r.MetricsEngine, cfg.MaxRequestSize)
	if err != nil {
		return nil, err
	}
	userSyncsEndpoint, err := sandbox.NewUserSyncsEndpoint(r.Bidder, r.MetricsEngine, cfg.MaxRequestSize)
	if err != nil {
		return nil, err
	}

	r.POST("/adverxo/requests", requestsEndpoint)
	r.POST("/adverxo/bids", bidsEndpoint)
	r.POST("/adverxo/usersyncs", userSyncsEndpoint)
	r.GET("/bidders/params", NewJsonDirectoryServer(cfg.BidderParamsSchemaDir, r.ParamsValidator))
	r.GET("/info/bidders", endpoints.NewBiddersEndpoint(openrtb_ext.CoreBidderNames()))
	r.GET("/info/bidders/:bidderName", endpoints.NewBidderDetailsEndpoint(map[openrtb_ext.BidderName]config.BidderInfo{
		openrtb_ext.BidderAdverxo: r.BidderInfo,
	}))
	r.HandlerFunc(http.MethodGet, "/status", endpoints.NewStatusEndpoint(cfg.StatusResponse))

	return r, nil
}

// Admin returns the handler of the admin port.
func Admin(revision, version string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/version", endpoints.NewVersionEndpoint(version, revision))
	return mux
}

// SupportCORS wraps handler with the CORS rules of the sandbox endpoints. Requests from any
// origin are allowed, credentials included.
// See:
// - https://developer.mozilla.org/en-US/docs/Web/HTTP/CORS/Errors/CORSNotSupportingCredentials
// - https://portswigger.net/blog/exploiting-cors-misconfigurations-for-bitcoins-and-bounties
func SupportCORS(handler http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowCredentials: true,
		AllowOriginFunc: func(string) bool {
			return true
		},
		AllowedHeaders: []string{"Origin", "X-Requested-With", "Content-Type", "Accept"}})
	return c.Handler(handler)
}
