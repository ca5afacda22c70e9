package usersync

import "github.com/adverxo/prebid-bidder/config"

// FilterSettings is the publisher's per sync type filter configuration.
type FilterSettings = config.FilterSettings

// SelectSyncMethod picks the single sync method the bidder may ask the exchange for.
// An iframe sync, allowed by either the "all" or the "iframe" rule, wins over an image sync.
func SelectSyncMethod(cfg config.UserSync, bidder string) SyncMethod {
	if !cfg.SyncEnabled {
		return SyncMethodNone
	}

	syncTypes := NewSyncTypeFilter(cfg.FilterSettings).ForBidder(bidder)
	if len(syncTypes) == 0 {
		return SyncMethodNone
	}

	switch syncTypes[0] {
	case SyncTypeIFrame:
		return SyncMethodIFrame
	case SyncTypeImage:
		return SyncMethodImage
	}
	return SyncMethodNone
}
