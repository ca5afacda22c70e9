package adapters

import (
	"github.com/adverxo/prebid-bidder/config"
	"github.com/adverxo/prebid-bidder/openrtb_ext"
)

// Bidder is the contract a bid adapter offers the auction host. The host validates every
// bid request, asks for the HTTP calls to make, performs them, and hands each response
// back for interpretation. Once the auction is over it asks for the user syncs to drop.
//
// None of the methods perform network I/O. Errors are returned next to the results and
// describe why some bids, requests or syncs were left out; they never abort the auction.
type Bidder interface {
	// IsBidRequestValid reports whether the bid request carries usable bidder params.
	// Invalid bid requests are expected and are not errors.
	IsBidRequestValid(bidRequest *BidRequest) bool

	// BuildRequests describes the HTTP calls which should be made to fetch bids for the
	// valid bid requests.
	BuildRequests(bidRequests []*BidRequest, bidderRequest *BidderRequest) ([]*RequestData, []error)

	// InterpretResponse unpacks the response of one call built by BuildRequests into bids.
	InterpretResponse(response *ResponseData, request *RequestData) ([]*Bid, []error)

	// GetUserSyncs returns the sync pixels requested by the exchange in its responses.
	GetUserSyncs(syncOptions SyncOptions, responses []*ResponseData) []UserSync
}

// Builder is the function signature of an adapter constructor.
type Builder func(openrtb_ext.BidderName, config.Adapter, config.Server) (Bidder, error)
