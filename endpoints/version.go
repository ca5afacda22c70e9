package endpoints

import (
	"net/http"

	"github.com/adverxo/prebid-bidder/openrtb_ext"
	"github.com/adverxo/prebid-bidder/util/jsonutil"
	"github.com/golang/glog"
)

const versionNotSet = "not-set"

type versionResponse struct {
	Bidder   openrtb_ext.BidderName `json:"bidder"`
	Revision string                 `json:"revision"`
	Version  string                 `json:"version"`
}

// NewVersionEndpoint reports the bidder served by this binary together with the git tag and
// commit it was built from. Missing build values are reported as "not-set".
func NewVersionEndpoint(version, revision string) http.HandlerFunc {
	body, err := jsonutil.Marshal(versionResponse{
		Bidder:   openrtb_ext.BidderAdverxo,
		Revision: orNotSet(revision),
		Version:  orNotSet(version),
	})
	if err != nil {
		glog.Fatalf("error creating /version endpoint response: %v", err)
	}

	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}
}

func orNotSet(value string) string {
	if value == "" {
		return versionNotSet
	}
	return value
}
