package adapters

import (
	"encoding/json"

	"github.com/adverxo/prebid-bidder/openrtb_ext"
	"github.com/adverxo/prebid-bidder/renderer"
	"github.com/adverxo/prebid-bidder/usersync"
)

// Bid is a bid in the shape the auction host consumes.
type Bid struct {
	RequestID  string              `json:"requestId"`
	CPM        float64             `json:"cpm"`
	Currency   string              `json:"currency"`
	Width      int64               `json:"width,omitempty"`
	Height     int64               `json:"height,omitempty"`
	CreativeID string              `json:"creativeId,omitempty"`
	DealID     string              `json:"dealId,omitempty"`
	NetRevenue bool                `json:"netRevenue"`
	TTL        int64               `json:"ttl"`
	MediaType  openrtb_ext.BidType `json:"mediaType"`
	Meta       BidMeta             `json:"meta"`
	AdUnitCode string              `json:"adUnitCode,omitempty"`

	Ad     string     `json:"ad,omitempty"`
	AdURL  string     `json:"adUrl,omitempty"`
	BURL   string     `json:"burl,omitempty"`
	Native *NativeBid `json:"native,omitempty"`

	VastXML  string             `json:"vastXml,omitempty"`
	VastURL  string             `json:"vastUrl,omitempty"`
	Renderer *renderer.Renderer `json:"renderer,omitempty"`
}

type BidMeta struct {
	AdvertiserDomains []string `json:"advertiserDomains,omitempty"`
	PrimaryCatID      string   `json:"primaryCatId,omitempty"`
	SecondaryCatIDs   []string `json:"secondaryCatIds,omitempty"`
}

// NativeBid holds the OpenRTB native response: the assets and link objects.
type NativeBid struct {
	Ortb json.RawMessage `json:"ortb"`
}

// SyncOptions are the user sync mechanisms the host permits.
type SyncOptions struct {
	IFrameEnabled bool `json:"iframeEnabled"`
	PixelEnabled  bool `json:"pixelEnabled"`
}

// UserSync is a sync pixel the host should drop after the auction.
type UserSync struct {
	Type usersync.SyncType `json:"type"`
	URL  string            `json:"url"`
}
