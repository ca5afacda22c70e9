package metrics

import (
	"time"

	"github.com/adverxo/prebid-bidder/openrtb_ext"
	"github.com/adverxo/prebid-bidder/usersync"
	"github.com/stretchr/testify/mock"
)

// MetricsEngineMock is mock for the MetricsEngine interface
type MetricsEngineMock struct {
	mock.Mock
}

// RecordConnectionAccept mock
func (me *MetricsEngineMock) RecordConnectionAccept(success bool) {
	me.Called(success)
}

// RecordConnectionClose mock
func (me *MetricsEngineMock) RecordConnectionClose(success bool) {
	me.Called(success)
}

// RecordRequest mock
func (me *MetricsEngineMock) RecordRequest(labels Labels) {
	me.Called(labels)
}

// RecordRequestTime mock
func (me *MetricsEngineMock) RecordRequestTime(labels Labels, length time.Duration) {
	me.Called(labels, length)
}

// RecordInvalidBidRequests mock
func (me *MetricsEngineMock) RecordInvalidBidRequests(count int) {
	me.Called(count)
}

// RecordOutboundRequests mock
func (me *MetricsEngineMock) RecordOutboundRequests(count int) {
	me.Called(count)
}

// RecordBid mock
func (me *MetricsEngineMock) RecordBid(bidType openrtb_ext.BidType) {
	me.Called(bidType)
}

// RecordAdapterError mock
func (me *MetricsEngineMock) RecordAdapterError(adapterError AdapterError) {
	me.Called(adapterError)
}

// RecordUserSync mock
func (me *MetricsEngineMock) RecordUserSync(syncType usersync.SyncType) {
	me.Called(syncType)
}
