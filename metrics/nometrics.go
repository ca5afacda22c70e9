package metrics

import (
	"time"

	"github.com/adverxo/prebid-bidder/openrtb_ext"
	"github.com/adverxo/prebid-bidder/usersync"
)

// NilMetricsEngine implements the MetricsEngine interface where no metrics are desired.
type NilMetricsEngine struct{}

// RecordConnectionAccept as a noop
func (me *NilMetricsEngine) RecordConnectionAccept(success bool) {
}

// RecordConnectionClose as a noop
func (me *NilMetricsEngine) RecordConnectionClose(success bool) {
}

// RecordRequest as a noop
func (me *NilMetricsEngine) RecordRequest(labels Labels) {
}

// RecordRequestTime as a noop
func (me *NilMetricsEngine) RecordRequestTime(labels Labels, length time.Duration) {
}

// RecordInvalidBidRequests as a noop
func (me *NilMetricsEngine) RecordInvalidBidRequests(count int) {
}

// RecordOutboundRequests as a noop
func (me *NilMetricsEngine) RecordOutboundRequests(count int) {
}

// RecordBid as a noop
func (me *NilMetricsEngine) RecordBid(bidType openrtb_ext.BidType) {
}

// RecordAdapterError as a noop
func (me *NilMetricsEngine) RecordAdapterError(adapterError AdapterError) {
}

// RecordUserSync as a noop
func (me *NilMetricsEngine) RecordUserSync(syncType usersync.SyncType) {
}
