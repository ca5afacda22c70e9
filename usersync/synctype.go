package usersync

// SyncType specifies the mechanism used to perform a user sync.
type SyncType string

const (
	// SyncTypeUnknown specifies the user sync type is invalid or not specified.
	SyncTypeUnknown SyncType = ""

	// SyncTypeIFrame specifies the user sync is to be performed within an HTML iframe
	// and to expect the server to return a valid HTML page with an embedded script.
	SyncTypeIFrame SyncType = "iframe"

	// SyncTypeImage specifies the user sync is to be performed with an image pixel.
	SyncTypeImage SyncType = "image"
)

// SyncMethod is the numeric sync mechanism understood by the exchange, both in the
// outbound request extension and in the sync instructions of its response.
type SyncMethod int

const (
	SyncMethodNone   SyncMethod = 0
	SyncMethodIFrame SyncMethod = 1
	SyncMethodImage  SyncMethod = 2
)

// SyncType maps the numeric method to its sync type. Unknown methods map to SyncTypeUnknown.
func (m SyncMethod) SyncType() SyncType {
	switch m {
	case SyncMethodIFrame:
		return SyncTypeIFrame
	case SyncMethodImage:
		return SyncTypeImage
	default:
		return SyncTypeUnknown
	}
}

// SyncTypeFilter determines which sync types, if any, the bidder is permitted to use.
type SyncTypeFilter struct {
	All    BidderFilter
	IFrame BidderFilter
	Image  BidderFilter
}

// NewSyncTypeFilter builds the filter from the publisher filter settings.
func NewSyncTypeFilter(settings FilterSettings) SyncTypeFilter {
	return SyncTypeFilter{
		All:    NewBidderFilterFromRule(settings.All),
		IFrame: NewBidderFilterFromRule(settings.IFrame),
		Image:  NewBidderFilterFromRule(settings.Image),
	}
}

// ForBidder returns a slice of sync types the bidder is permitted to use.
func (t SyncTypeFilter) ForBidder(bidder string) []SyncType {
	var syncTypes []SyncType

	if t.All.Allowed(bidder) || t.IFrame.Allowed(bidder) {
		syncTypes = append(syncTypes, SyncTypeIFrame)
	}

	if t.Image.Allowed(bidder) {
		syncTypes = append(syncTypes, SyncTypeImage)
	}

	return syncTypes
}
