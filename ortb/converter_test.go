package ortb

import (
	"encoding/json"
	"testing"

	"github.com/adverxo/prebid-bidder/adapters"
	"github.com/adverxo/prebid-bidder/config"
	"github.com/adverxo/prebid-bidder/errortypes"
	"github.com/adverxo/prebid-bidder/openrtb_ext"
	"github.com/gofrs/uuid"
	"github.com/prebid/openrtb/v20/openrtb2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allFeatures = config.Features{Native: true, Video: true}

func newTestConverter(features config.Features, hooks Hooks) *Converter {
	return NewConverter(Context{Currency: "USD", TTL: 60, NetRevenue: true, Features: features}, hooks)
}

func decodeBidRequest(t *testing.T, raw string) *adapters.BidRequest {
	t.Helper()
	var bidRequest adapters.BidRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &bidRequest))
	return &bidRequest
}

func TestToORTBBanner(t *testing.T) {
	converter := newTestConverter(allFeatures, Hooks{})
	bidRequest := decodeBidRequest(t, `{"bidId":"bid-banner","mediaTypes":{"banner":{"sizes":[[300,250],[728,90]],"pos":1}}}`)

	request, errs := converter.ToORTB([]*adapters.BidRequest{bidRequest}, &adapters.BidderRequest{
		BidderRequestID: "req-1",
		Timeout:         1000,
	})

	require.Empty(t, errs)
	body, err := json.Marshal(request)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "req-1",
		"imp": [{"id": "bid-banner", "banner": {"format": [{"w": 300, "h": 250}, {"w": 728, "h": 90}], "pos": 1}}],
		"tmax": 1000,
		"cur": ["USD"]
	}`, string(body))
}

func TestToORTBVideo(t *testing.T) {
	converter := newTestConverter(allFeatures, Hooks{})
	bidRequest := decodeBidRequest(t, `{"bidId":"bid-video","mediaTypes":{"video":{
		"context": "instream",
		"playerSize": [400, 300],
		"mimes": ["video/mp4"],
		"minduration": 5,
		"maxduration": 10,
		"startdelay": 0,
		"skip": 1,
		"minbitrate": 200,
		"protocols": [1, 2, 4]
	}}}`)

	request, errs := converter.ToORTB([]*adapters.BidRequest{bidRequest}, &adapters.BidderRequest{BidderRequestID: "req-1"})

	require.Empty(t, errs)
	require.Len(t, request.Imp, 1)
	body, err := json.Marshal(request.Imp[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "bid-video",
		"video": {
			"mimes": ["video/mp4"],
			"w": 400,
			"h": 300,
			"minduration": 5,
			"maxduration": 10,
			"startdelay": 0,
			"skip": 1,
			"minbitrate": 200,
			"protocols": [1, 2, 4]
		}
	}`, string(body))
}

func TestToORTBVideoKeepsExplicitSize(t *testing.T) {
	converter := newTestConverter(allFeatures, Hooks{})
	bidRequest := decodeBidRequest(t, `{"bidId":"b","mediaTypes":{"video":{"playerSize":[[640,480]],"w":320,"h":240,"mimes":["video/mp4"]}}}`)

	request, errs := converter.ToORTB([]*adapters.BidRequest{bidRequest}, nil)

	require.Empty(t, errs)
	assert.Equal(t, int64(320), *request.Imp[0].Video.W)
	assert.Equal(t, int64(240), *request.Imp[0].Video.H)
}

func TestToORTBNative(t *testing.T) {
	converter := newTestConverter(allFeatures, Hooks{})
	bidRequest := decodeBidRequest(t, `{"bidId":"bid-native","mediaTypes":{"native":{"ortb":{"assets":[
		{"id":1,"required":1,"img":{"type":3,"w":150,"h":50}},
		{"id":2,"required":1,"title":{"len":80}},
		{"id":3,"required":0,"data":{"type":1}}
	]}}}}`)

	request, errs := converter.ToORTB([]*adapters.BidRequest{bidRequest}, &adapters.BidderRequest{BidderRequestID: "req-1"})

	require.Empty(t, errs)
	native := request.Imp[0].Native
	require.NotNil(t, native)
	assert.Equal(t, "1.2", native.Ver)
	assert.JSONEq(t, `{"ver":"1.2","assets":[
		{"id":1,"required":1,"img":{"type":3,"w":150,"h":50}},
		{"id":2,"required":1,"title":{"len":80}},
		{"id":3,"required":0,"data":{"type":1}}
	]}`, native.Request)
}

func TestToORTBNativeKeepsVersion(t *testing.T) {
	converter := newTestConverter(allFeatures, Hooks{})
	bidRequest := decodeBidRequest(t, `{"bidId":"b","mediaTypes":{"native":{"ortb":{"ver":"1.1","assets":[]}}}}`)

	request, errs := converter.ToORTB([]*adapters.BidRequest{bidRequest}, nil)

	require.Empty(t, errs)
	assert.Equal(t, "1.1", request.Imp[0].Native.Ver)
	assert.JSONEq(t, `{"ver":"1.1","assets":[]}`, request.Imp[0].Native.Request)
}

func TestToORTBDisabledFeatures(t *testing.T) {
	converter := newTestConverter(config.Features{}, Hooks{})
	bidRequests := []*adapters.BidRequest{
		decodeBidRequest(t, `{"bidId":"only-video","mediaTypes":{"video":{"mimes":["video/mp4"]}}}`),
		decodeBidRequest(t, `{"bidId":"mixed","mediaTypes":{"banner":{"sizes":[300,250]},"native":{"ortb":{"assets":[]}}}}`),
	}

	request, errs := converter.ToORTB(bidRequests, &adapters.BidderRequest{BidderRequestID: "req-1"})

	require.Len(t, errs, 1)
	assert.EqualError(t, errs[0], "Bid request only-video has no supported media type")
	require.Len(t, request.Imp, 1)
	assert.Equal(t, "mixed", request.Imp[0].ID)
	assert.NotNil(t, request.Imp[0].Banner)
	assert.Nil(t, request.Imp[0].Native)
}

func TestToORTBInvalidBidRequests(t *testing.T) {
	converter := newTestConverter(allFeatures, Hooks{})
	bidRequests := []*adapters.BidRequest{
		decodeBidRequest(t, `{"bidId":"","mediaTypes":{"banner":{"sizes":[300,250]}}}`),
		decodeBidRequest(t, `{"bidId":"no-sizes","mediaTypes":{"banner":{"sizes":[]}}}`),
		decodeBidRequest(t, `{"bidId":"bad-native","mediaTypes":{"native":{}}}`),
		decodeBidRequest(t, `{"bidId":"bad-video","mediaTypes":{"video":{"mimes":"video/mp4"}}}`),
	}

	request, errs := converter.ToORTB(bidRequests, nil)

	assert.Nil(t, request)
	require.Len(t, errs, 5)
	for _, err := range errs {
		assert.Equal(t, errortypes.BadInputErrorCode, errortypes.ReadCode(err))
	}
	assert.EqualError(t, errs[0], "Bid request is missing the bidId")
	assert.Contains(t, errs[1].Error(), "imp no-sizes banner has no sizes")
	assert.EqualError(t, errs[2], "Invalid native media type of bid request bad-native: missing ortb native request")
	assert.Contains(t, errs[3].Error(), "Invalid video media type of bid request bad-video")
	assert.EqualError(t, errs[4], "No valid impressions in the bid requests")
}

func TestToORTBFirstPartyData(t *testing.T) {
	converter := newTestConverter(allFeatures, Hooks{})
	bidRequest := decodeBidRequest(t, `{"bidId":"b","mediaTypes":{"banner":{"sizes":[300,250]}},"ortb2Imp":{"tagid":"slot-1","ext":{"gpid":"/1/slot"}}}`)

	request, errs := converter.ToORTB([]*adapters.BidRequest{bidRequest}, &adapters.BidderRequest{
		BidderRequestID: "req-1",
		Ortb2:           json.RawMessage(`{"site":{"page":"https://example.com"},"device":{"ua":"agent"},"cur":["EUR"]}`),
	})

	require.Empty(t, errs)
	assert.Equal(t, "https://example.com", request.Site.Page)
	assert.Equal(t, "agent", request.Device.UA)
	assert.Equal(t, []string{"EUR"}, request.Cur)
	assert.Equal(t, "slot-1", request.Imp[0].TagID)
	assert.JSONEq(t, `{"gpid":"/1/slot"}`, string(request.Imp[0].Ext))
}

func TestToORTBInvalidFirstPartyData(t *testing.T) {
	converter := newTestConverter(allFeatures, Hooks{})
	bidRequest := decodeBidRequest(t, `{"bidId":"b","mediaTypes":{"banner":{"sizes":[300,250]}}}`)

	request, errs := converter.ToORTB([]*adapters.BidRequest{bidRequest}, &adapters.BidderRequest{
		Ortb2: json.RawMessage(`{"site":"not an object"}`),
	})

	assert.Nil(t, request)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Invalid first party data")
}

func TestToORTBGeneratesRequestID(t *testing.T) {
	converter := newTestConverter(allFeatures, Hooks{})
	bidRequest := decodeBidRequest(t, `{"bidId":"b","mediaTypes":{"banner":{"sizes":[300,250]}}}`)

	request, errs := converter.ToORTB([]*adapters.BidRequest{bidRequest}, &adapters.BidderRequest{})

	require.Empty(t, errs)
	_, err := uuid.FromString(request.ID)
	assert.NoError(t, err)
}

func TestToORTBHooks(t *testing.T) {
	var calls []string
	converter := newTestConverter(allFeatures, Hooks{
		Imp: func(build ImpBuilder, bidRequest *adapters.BidRequest) (*openrtb2.Imp, error) {
			calls = append(calls, "imp:"+bidRequest.BidID)
			imp, err := build(bidRequest)
			if err != nil {
				return nil, err
			}
			imp.BidFloor = 1.5
			return imp, nil
		},
		Request: func(build RequestBuilder, imps []openrtb2.Imp, bidderRequest *adapters.BidderRequest) (*openrtb2.BidRequest, error) {
			calls = append(calls, "request")
			request, err := build(imps, bidderRequest)
			if err != nil {
				return nil, err
			}
			request.Device = &openrtb2.Device{IP: "caller"}
			return request, nil
		},
	})
	bidRequests := []*adapters.BidRequest{
		decodeBidRequest(t, `{"bidId":"a","mediaTypes":{"banner":{"sizes":[300,250]}}}`),
		decodeBidRequest(t, `{"bidId":"b","mediaTypes":{"banner":{"sizes":[300,250]}}}`),
	}

	request, errs := converter.ToORTB(bidRequests, &adapters.BidderRequest{BidderRequestID: "req-1"})

	require.Empty(t, errs)
	assert.Equal(t, []string{"imp:a", "imp:b", "request"}, calls)
	assert.Equal(t, "caller", request.Device.IP)
	assert.Equal(t, 1.5, request.Imp[0].BidFloor)
	assert.Equal(t, 1.5, request.Imp[1].BidFloor)
}

func TestFromORTB(t *testing.T) {
	converter := newTestConverter(allFeatures, Hooks{})
	request := &openrtb2.BidRequest{
		ID: "req-1",
		Imp: []openrtb2.Imp{
			{ID: "bid-banner", Banner: &openrtb2.Banner{}},
			{ID: "bid-video", Video: &openrtb2.Video{}},
			{ID: "bid-native", Native: &openrtb2.Native{}},
			{ID: "bid-multi", Banner: &openrtb2.Banner{}, Video: &openrtb2.Video{}},
		},
	}
	bidRequests := []*adapters.BidRequest{
		{BidID: "bid-banner", AdUnitCode: "div-banner"},
		{BidID: "bid-video", AdUnitCode: "div-video"},
	}
	var response openrtb2.BidResponse
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "resp-1",
		"seatbid": [{
			"seat": "adverxo",
			"bid": [
				{"id": "1", "impid": "bid-banner", "price": 2, "adm": "<div>ad</div>", "crid": "c1", "w": 300, "h": 250, "adomain": ["test.com"], "cat": ["IAB1", "IAB2", "IAB3"], "dealid": "deal-1"},
				{"id": "2", "impid": "bid-video", "price": 3, "adm": "<VAST/>", "nurl": "https://win.example.com", "crid": "c2", "exp": 300},
				{"id": "3", "impid": "bid-native", "price": 1, "mtype": 4, "adm": "{\"assets\":[]}", "crid": "c3"},
				{"id": "4", "impid": "unknown", "price": 1},
				{"id": "5", "impid": "bid-multi", "price": 1},
				{"id": "6", "impid": "bid-multi", "price": 1, "mtype": 2, "crid": "c6"},
				{"id": "7", "impid": "bid-banner", "price": 1, "mtype": 3}
			]
		}]
	}`), &response))

	bids, errs := converter.FromORTB(&response, request, bidRequests)

	require.Len(t, errs, 3)
	assert.EqualError(t, errs[0], `Bid "4" is for unknown imp "unknown"`)
	assert.EqualError(t, errs[1], `Unable to determine the media type of bid "5" for imp "bid-multi"`)
	assert.EqualError(t, errs[2], `Unsupported media type audio for bid "7"`)

	require.Len(t, bids, 4)

	assert.Equal(t, &adapters.Bid{
		RequestID:  "bid-banner",
		CPM:        2,
		Currency:   "USD",
		Width:      300,
		Height:     250,
		CreativeID: "c1",
		DealID:     "deal-1",
		NetRevenue: true,
		TTL:        60,
		MediaType:  openrtb_ext.BidTypeBanner,
		Meta: adapters.BidMeta{
			AdvertiserDomains: []string{"test.com"},
			PrimaryCatID:      "IAB1",
			SecondaryCatIDs:   []string{"IAB2", "IAB3"},
		},
		AdUnitCode: "div-banner",
		Ad:         "<div>ad</div>",
	}, bids[0])

	assert.Equal(t, openrtb_ext.BidTypeVideo, bids[1].MediaType)
	assert.Equal(t, int64(300), bids[1].TTL)
	assert.Equal(t, "<VAST/>", bids[1].VastXML)
	assert.Equal(t, "https://win.example.com", bids[1].VastURL)
	assert.Equal(t, "div-video", bids[1].AdUnitCode)

	assert.Equal(t, openrtb_ext.BidTypeNative, bids[2].MediaType)
	require.NotNil(t, bids[2].Native)
	assert.JSONEq(t, `{"assets":[]}`, string(bids[2].Native.Ortb))
	assert.Empty(t, bids[2].AdUnitCode)

	assert.Equal(t, openrtb_ext.BidTypeVideo, bids[3].MediaType)
	assert.Equal(t, "c6", bids[3].CreativeID)
}

func TestFromORTBCurrency(t *testing.T) {
	converter := newTestConverter(allFeatures, Hooks{})
	request := &openrtb2.BidRequest{Imp: []openrtb2.Imp{{ID: "a", Banner: &openrtb2.Banner{}}}}
	response := &openrtb2.BidResponse{
		Cur:     "EUR",
		SeatBid: []openrtb2.SeatBid{{Bid: []openrtb2.Bid{{ID: "1", ImpID: "a", Price: 1, NURL: "https://ad.example.com"}}}},
	}

	bids, errs := converter.FromORTB(response, request, nil)

	require.Empty(t, errs)
	require.Len(t, bids, 1)
	assert.Equal(t, "EUR", bids[0].Currency)
	assert.Equal(t, "https://ad.example.com", bids[0].AdURL)
	assert.Empty(t, bids[0].Ad)
}

func TestFromORTBInvalidNative(t *testing.T) {
	converter := newTestConverter(allFeatures, Hooks{})
	request := &openrtb2.BidRequest{Imp: []openrtb2.Imp{{ID: "a", Native: &openrtb2.Native{}}}}
	response := &openrtb2.BidResponse{
		SeatBid: []openrtb2.SeatBid{{Bid: []openrtb2.Bid{{ID: "1", ImpID: "a", AdM: "not json"}}}},
	}

	bids, errs := converter.FromORTB(response, request, nil)

	assert.Empty(t, bids)
	require.Len(t, errs, 1)
	assert.Equal(t, errortypes.BadServerResponseErrorCode, errortypes.ReadCode(errs[0]))
}

func TestFromORTBDisabledNative(t *testing.T) {
	converter := newTestConverter(config.Features{Video: true}, Hooks{})
	request := &openrtb2.BidRequest{Imp: []openrtb2.Imp{{ID: "a", Native: &openrtb2.Native{}}}}
	response := &openrtb2.BidResponse{
		SeatBid: []openrtb2.SeatBid{{Bid: []openrtb2.Bid{{ID: "1", ImpID: "a", MType: openrtb2.MarkupNative, AdM: "{}"}}}},
	}

	bids, errs := converter.FromORTB(response, request, nil)

	assert.Empty(t, bids)
	require.Len(t, errs, 1)
	assert.EqualError(t, errs[0], `Unsupported media type native for bid "1"`)
}

func TestFromORTBNilArguments(t *testing.T) {
	converter := newTestConverter(allFeatures, Hooks{})

	bids, errs := converter.FromORTB(nil, &openrtb2.BidRequest{}, nil)
	assert.Nil(t, bids)
	assert.Nil(t, errs)

	bids, errs = converter.FromORTB(&openrtb2.BidResponse{}, nil, nil)
	assert.Nil(t, bids)
	assert.Nil(t, errs)
}

func TestFromORTBBidResponseHook(t *testing.T) {
	converter := newTestConverter(allFeatures, Hooks{
		BidResponse: func(build BidResponseBuilder, bid *openrtb2.Bid, bidCtx *BidContext) (*adapters.Bid, error) {
			bid.AdM = "<div>" + bid.AdM + "</div>"
			result, err := build(bid, bidCtx)
			if err != nil {
				return nil, err
			}
			result.DealID = "from-hook"
			return result, nil
		},
	})
	request := &openrtb2.BidRequest{Imp: []openrtb2.Imp{{ID: "a", Banner: &openrtb2.Banner{}}}}
	response := &openrtb2.BidResponse{
		SeatBid: []openrtb2.SeatBid{{Bid: []openrtb2.Bid{{ID: "1", ImpID: "a", AdM: "ad"}}}},
	}

	bids, errs := converter.FromORTB(response, request, nil)

	require.Empty(t, errs)
	require.Len(t, bids, 1)
	assert.Equal(t, "<div>ad</div>", bids[0].Ad)
	assert.Equal(t, "from-hook", bids[0].DealID)
}
