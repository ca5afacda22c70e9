package adapters

import (
	"encoding/json"
	"net/http"

	"github.com/adverxo/prebid-bidder/config"
	"github.com/adverxo/prebid-bidder/floors"
	"github.com/adverxo/prebid-bidder/privacy"
	"github.com/adverxo/prebid-bidder/renderer"
)

// BidRequest is the request for bids on one ad unit, addressed to a single bidder.
type BidRequest struct {
	BidID           string          `json:"bidId"`
	Bidder          string          `json:"bidder,omitempty"`
	AdUnitCode      string          `json:"adUnitCode,omitempty"`
	TransactionID   string          `json:"transactionId,omitempty"`
	MediaTypes      MediaTypes      `json:"mediaTypes"`
	Params          json.RawMessage `json:"params,omitempty"`
	BidderRequestID string          `json:"bidderRequestId,omitempty"`
	AuctionID       string          `json:"auctionId,omitempty"`
	// Ortb2Imp is imp level first party data merged into the generated imp.
	Ortb2Imp json.RawMessage `json:"ortb2Imp,omitempty"`

	// Renderer is the outstream renderer configured on the ad unit by the publisher.
	Renderer *renderer.AdUnitRenderer `json:"renderer,omitempty"`

	// Floors is the floor capability of the host price floors module.
	Floors floors.Querier `json:"-"`
	// FloorRules is a static floor table for hosts without a floors module.
	FloorRules *floors.Rules `json:"floors,omitempty"`
}

// FloorQuerier returns the floor capability of the bid request, if it has one.
func (r *BidRequest) FloorQuerier() floors.Querier {
	if r.Floors != nil {
		return r.Floors
	}
	if r.FloorRules != nil {
		return *r.FloorRules
	}
	return nil
}

type MediaTypes struct {
	Banner *BannerMediaType `json:"banner,omitempty"`
	Video  *VideoMediaType  `json:"video,omitempty"`
	Native *NativeMediaType `json:"native,omitempty"`
}

type BannerMediaType struct {
	Sizes Sizes `json:"sizes"`
	Pos   *int  `json:"pos,omitempty"`
}

// VideoMediaType keeps the whole mediaTypes.video object in Ortb so its OpenRTB video
// fields can be copied onto the imp.
type VideoMediaType struct {
	Context    string `json:"context,omitempty"`
	PlayerSize Sizes  `json:"playerSize,omitempty"`

	Ortb json.RawMessage `json:"-"`
}

const (
	VideoContextInstream  = "instream"
	VideoContextOutstream = "outstream"
)

func (v *VideoMediaType) UnmarshalJSON(data []byte) error {
	type videoFields VideoMediaType
	var fields videoFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*v = VideoMediaType(fields)
	v.Ortb = append(json.RawMessage(nil), data...)
	return nil
}

func (v VideoMediaType) MarshalJSON() ([]byte, error) {
	if len(v.Ortb) > 0 {
		return v.Ortb, nil
	}
	type videoFields VideoMediaType
	return json.Marshal(videoFields(v))
}

// NativeMediaType carries the OpenRTB native request as configured on the ad unit.
type NativeMediaType struct {
	Ortb json.RawMessage `json:"ortb,omitempty"`
}

// BidderRequest groups the bid requests of one auction for a single bidder together with
// the auction level context.
type BidderRequest struct {
	BidderCode      string        `json:"bidderCode"`
	BidderRequestID string        `json:"bidderRequestId,omitempty"`
	AuctionID       string        `json:"auctionId,omitempty"`
	Bids            []*BidRequest `json:"bids,omitempty"`
	// Timeout is the auction timeout in milliseconds.
	Timeout int64 `json:"timeout,omitempty"`

	privacy.Signals

	// Ortb2 is the global first party data used as the base of the OpenRTB request.
	Ortb2 json.RawMessage `json:"ortb2,omitempty"`

	// Publisher replaces the host default publisher configuration for this auction.
	Publisher *config.Publisher `json:"publisherConfig,omitempty"`
}

// RequestData packages together the fields needed to make an HTTP Request.
type RequestData struct {
	Method  string
	Uri     string
	Body    []byte
	Headers http.Header
	ImpIDs  []string
	// Bids are the bid requests the call was built from, used to correlate the response.
	Bids []*BidRequest
}

// BidRequest returns the bid request with the given bid id, or nil.
func (r *RequestData) BidRequest(bidID string) *BidRequest {
	for _, bid := range r.Bids {
		if bid != nil && bid.BidID == bidID {
			return bid
		}
	}
	return nil
}

// ResponseData packages together information from the server's http.Response.
type ResponseData struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}
