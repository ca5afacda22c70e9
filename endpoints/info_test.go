package endpoints

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adverxo/prebid-bidder/config"
	"github.com/adverxo/prebid-bidder/openrtb_ext"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestBiddersEndpoint(t *testing.T) {
	handle := NewBiddersEndpoint([]openrtb_ext.BidderName{openrtb_ext.BidderAdverxo})
	w := httptest.NewRecorder()

	handle(w, httptest.NewRequest(http.MethodGet, "/info/bidders", nil), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `["adverxo"]`, w.Body.String())
}

func TestBidderDetailsEndpoint(t *testing.T) {
	handle := NewBidderDetailsEndpoint(map[openrtb_ext.BidderName]config.BidderInfo{
		openrtb_ext.BidderAdverxo: {
			Maintainer:  &config.MaintainerInfo{Email: "dev@example.com"},
			GVLVendorID: 7,
			Capabilities: &config.CapabilitiesInfo{
				Site: &config.PlatformInfo{MediaTypes: []openrtb_ext.BidType{openrtb_ext.BidTypeBanner, openrtb_ext.BidTypeVideo}},
			},
		},
	})

	testCases := []struct {
		description  string
		bidder       string
		expectedCode int
		expectedBody string
	}{
		{
			description:  "Known bidder",
			bidder:       "adverxo",
			expectedCode: http.StatusOK,
			expectedBody: `{"maintainer":{"email":"dev@example.com"},"capabilities":{"site":{"mediaTypes":["banner","video"]}},"gvlVendorID":7}`,
		},
		{
			description:  "Unknown bidder",
			bidder:       "appnexus",
			expectedCode: http.StatusNotFound,
		},
	}

	for _, test := range testCases {
		t.Run(test.description, func(t *testing.T) {
			w := httptest.NewRecorder()
			handle(w, httptest.NewRequest(http.MethodGet, "/info/bidders/"+test.bidder, nil), httprouter.Params{{Key: "bidderName", Value: test.bidder}})

			assert.Equal(t, test.expectedCode, w.Code)
			if test.expectedBody != "" {
				assert.JSONEq(t, test.expectedBody, w.Body.String())
			}
		})
	}
}
