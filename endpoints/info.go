package endpoints

import (
	"net/http"

	"github.com/adverxo/prebid-bidder/config"
	"github.com/adverxo/prebid-bidder/openrtb_ext"
	"github.com/adverxo/prebid-bidder/util/jsonutil"
	"github.com/golang/glog"
	"github.com/julienschmidt/httprouter"
)

// NewBiddersEndpoint implements /info/bidders
func NewBiddersEndpoint(bidders []openrtb_ext.BidderName) httprouter.Handle {
	response, err := jsonutil.Marshal(bidders)
	if err != nil {
		glog.Fatalf("error creating /info/bidders endpoint response: %v", err)
	}

	return func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write(response); err != nil {
			glog.Errorf("error writing response to /info/bidders: %v", err)
		}
	}
}

// NewBidderDetailsEndpoint implements /info/bidders/:bidderName. Unknown bidders answer 404.
func NewBidderDetailsEndpoint(infos map[openrtb_ext.BidderName]config.BidderInfo) httprouter.Handle {
	responses := make(map[string][]byte, len(infos))
	for bidder, info := range infos {
		response, err := jsonutil.Marshal(info)
		if err != nil {
			glog.Fatalf("error creating /info/bidders/%s endpoint response: %v", bidder, err)
		}
		responses[bidder.String()] = response
	}

	return func(w http.ResponseWriter, _ *http.Request, ps httprouter.Params) {
		forBidder := ps.ByName("bidderName")
		response, ok := responses[forBidder]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write(response); err != nil {
			glog.Errorf("error writing response to /info/bidders/%s: %v", forBidder, err)
		}
	}
}
