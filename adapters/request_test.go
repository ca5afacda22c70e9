package adapters

import (
	"encoding/json"
	"testing"

	"github.com/adverxo/prebid-bidder/floors"
	"github.com/adverxo/prebid-bidder/privacy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizesUnmarshal(t *testing.T) {
	testCases := []struct {
		description   string
		json          string
		expected      Sizes
		expectedError bool
	}{
		{description: "List", json: `[[300,250],[728,90]]`, expected: Sizes{{300, 250}, {728, 90}}},
		{description: "Single pair", json: `[640, 480]`, expected: Sizes{{640, 480}}},
		{description: "Nested single pair", json: `[ [640, 480] ]`, expected: Sizes{{640, 480}}},
		{description: "Empty", json: `[]`, expected: Sizes{}},
		{description: "Null", json: `null`, expected: nil},
		{description: "Bad pair", json: `[[300]]`, expectedError: true},
		{description: "Not a size", json: `"300x250"`, expectedError: true},
	}

	for _, test := range testCases {
		t.Run(test.description, func(t *testing.T) {
			var sizes Sizes
			err := json.Unmarshal([]byte(test.json), &sizes)

			if test.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expected, sizes)
		})
	}
}

func TestVideoMediaTypeKeepsOrtbFields(t *testing.T) {
	raw := `{"context":"outstream","playerSize":[400,300],"mimes":["video/mp4"],"protocols":[2,3]}`

	var video VideoMediaType
	require.NoError(t, json.Unmarshal([]byte(raw), &video))

	assert.Equal(t, VideoContextOutstream, video.Context)
	assert.Equal(t, Sizes{{400, 300}}, video.PlayerSize)
	assert.JSONEq(t, raw, string(video.Ortb))

	body, err := json.Marshal(video)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(body))

	body, err = json.Marshal(VideoMediaType{Context: VideoContextInstream})
	require.NoError(t, err)
	assert.JSONEq(t, `{"context":"instream"}`, string(body))
}

func TestBidderRequestUnmarshal(t *testing.T) {
	raw := `{
		"bidderCode": "adverxo",
		"bidderRequestId": "req-1",
		"timeout": 1500,
		"gdprConsent": {"gdprApplies": true, "consentString": "X"},
		"uspConsent": "1YNN",
		"publisherConfig": {"coppa": true, "userSync": {"syncEnabled": false}},
		"bids": [{"bidId": "b1", "mediaTypes": {"banner": {"sizes": [[300, 250]]}}, "params": {"adUnitId": 1}, "floors": {"currency": "USD", "default": 2}}]
	}`

	var bidderRequest BidderRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &bidderRequest))

	assert.Equal(t, "adverxo", bidderRequest.BidderCode)
	assert.Equal(t, int64(1500), bidderRequest.Timeout)
	assert.Equal(t, &privacy.GDPRConsent{GDPRApplies: true, ConsentString: "X"}, bidderRequest.GDPR)
	assert.Equal(t, "1YNN", bidderRequest.USP)
	require.NotNil(t, bidderRequest.Publisher)
	assert.True(t, bidderRequest.Publisher.Coppa)
	assert.False(t, bidderRequest.Publisher.UserSync.SyncEnabled)

	require.Len(t, bidderRequest.Bids, 1)
	bid := bidderRequest.Bids[0]
	assert.Equal(t, Sizes{{300, 250}}, bid.MediaTypes.Banner.Sizes)
	assert.JSONEq(t, `{"adUnitId": 1}`, string(bid.Params))

	floor, ok := floors.Resolve(bid.FloorQuerier(), "USD")
	assert.True(t, ok)
	assert.Equal(t, 2.0, floor)
}

func TestFloorQuerierPrefersHostCapability(t *testing.T) {
	host := floors.QuerierFunc(func(floors.Query) (*floors.Price, error) {
		return &floors.Price{Floor: 5, Currency: "USD"}, nil
	})
	bid := &BidRequest{Floors: host, FloorRules: &floors.Rules{Currency: "USD", Default: 1}}

	floor, ok := floors.Resolve(bid.FloorQuerier(), "USD")
	assert.True(t, ok)
	assert.Equal(t, 5.0, floor)

	assert.Nil(t, (&BidRequest{}).FloorQuerier())
}

func TestRequestDataBidRequest(t *testing.T) {
	first := &BidRequest{BidID: "a"}
	second := &BidRequest{BidID: "b"}
	request := &RequestData{Bids: []*BidRequest{first, nil, second}}

	assert.Equal(t, second, request.BidRequest("b"))
	assert.Nil(t, request.BidRequest("c"))
}
