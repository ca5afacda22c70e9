package ortb

import (
	"fmt"

	"github.com/adverxo/prebid-bidder/adapters"
	"github.com/adverxo/prebid-bidder/config"
	"github.com/adverxo/prebid-bidder/errortypes"
	"github.com/adverxo/prebid-bidder/util/jsonutil"
	"github.com/gofrs/uuid"
	"github.com/prebid/openrtb/v20/openrtb2"
)

// Context holds the bidder level defaults applied while converting.
type Context struct {
	// Currency is used for the request and for responses which carry no currency.
	Currency string
	// TTL is the bid time to live in seconds when the exchange sets no bid.exp.
	TTL        int64
	NetRevenue bool
	Features   config.Features
}

// RequestBuilder assembles the OpenRTB request around the converted imps.
type RequestBuilder func(imps []openrtb2.Imp, bidderRequest *adapters.BidderRequest) (*openrtb2.BidRequest, error)

// ImpBuilder converts one bid request into an imp.
type ImpBuilder func(bidRequest *adapters.BidRequest) (*openrtb2.Imp, error)

// BidResponseBuilder converts one OpenRTB bid into a host bid.
type BidResponseBuilder func(bid *openrtb2.Bid, bidCtx *BidContext) (*adapters.Bid, error)

// BidContext is what the bid response builder knows about a bid.
type BidContext struct {
	Imp        *openrtb2.Imp
	BidRequest *adapters.BidRequest
	Currency   string
}

// Hooks customise the conversion. Each hook receives the default builder and decides
// whether and how to call it. A nil hook uses the default builder as is.
type Hooks struct {
	Request     func(build RequestBuilder, imps []openrtb2.Imp, bidderRequest *adapters.BidderRequest) (*openrtb2.BidRequest, error)
	Imp         func(build ImpBuilder, bidRequest *adapters.BidRequest) (*openrtb2.Imp, error)
	BidResponse func(build BidResponseBuilder, bid *openrtb2.Bid, bidCtx *BidContext) (*adapters.Bid, error)
}

// Converter translates between host bid requests and OpenRTB.
type Converter struct {
	ctx   Context
	hooks Hooks
}

func NewConverter(ctx Context, hooks Hooks) *Converter {
	return &Converter{ctx: ctx, hooks: hooks}
}

// ToORTB builds one OpenRTB request holding an imp for every bid request. Bid requests which
// cannot be converted are left out and reported; the request fails only when no imp is left.
func (c *Converter) ToORTB(bidRequests []*adapters.BidRequest, bidderRequest *adapters.BidderRequest) (*openrtb2.BidRequest, []error) {
	var errs []error

	imps := make([]openrtb2.Imp, 0, len(bidRequests))
	for _, bidRequest := range bidRequests {
		imp, err := c.buildImp(bidRequest)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if imp != nil {
			imps = append(imps, *imp)
		}
	}

	if len(imps) == 0 {
		return nil, append(errs, &errortypes.BadInput{Message: "No valid impressions in the bid requests"})
	}

	if bidderRequest == nil {
		bidderRequest = &adapters.BidderRequest{}
	}

	var request *openrtb2.BidRequest
	var err error
	if c.hooks.Request != nil {
		request, err = c.hooks.Request(c.defaultRequest, imps, bidderRequest)
	} else {
		request, err = c.defaultRequest(imps, bidderRequest)
	}
	if err != nil {
		return nil, append(errs, err)
	}
	return request, errs
}

func (c *Converter) buildImp(bidRequest *adapters.BidRequest) (*openrtb2.Imp, error) {
	if c.hooks.Imp != nil {
		return c.hooks.Imp(c.defaultImp, bidRequest)
	}
	return c.defaultImp(bidRequest)
}

// defaultRequest starts from the first party data and fills the auction level fields.
func (c *Converter) defaultRequest(imps []openrtb2.Imp, bidderRequest *adapters.BidderRequest) (*openrtb2.BidRequest, error) {
	request := &openrtb2.BidRequest{}
	if len(bidderRequest.Ortb2) > 0 {
		if err := jsonutil.Unmarshal(bidderRequest.Ortb2, request); err != nil {
			return nil, &errortypes.BadInput{
				Message: fmt.Sprintf("Invalid first party data: %s", err.Error()),
			}
		}
	}

	request.ID = bidderRequest.BidderRequestID
	if request.ID == "" {
		id, err := uuid.NewV4()
		if err != nil {
			return nil, fmt.Errorf("unable to generate request id: %v", err)
		}
		request.ID = id.String()
	}

	request.Imp = imps
	if bidderRequest.Timeout > 0 {
		request.TMax = bidderRequest.Timeout
	}
	if len(request.Cur) == 0 && c.ctx.Currency != "" {
		request.Cur = []string{c.ctx.Currency}
	}
	return request, nil
}

// FromORTB converts the bids of a response to the given request. Bids for unknown imps, or
// whose media type cannot be told, are left out and reported.
func (c *Converter) FromORTB(response *openrtb2.BidResponse, request *openrtb2.BidRequest, bidRequests []*adapters.BidRequest) ([]*adapters.Bid, []error) {
	if response == nil || request == nil {
		return nil, nil
	}

	imps := make(map[string]*openrtb2.Imp, len(request.Imp))
	for i := range request.Imp {
		imps[request.Imp[i].ID] = &request.Imp[i]
	}
	requestsByID := make(map[string]*adapters.BidRequest, len(bidRequests))
	for _, bidRequest := range bidRequests {
		if bidRequest != nil {
			requestsByID[bidRequest.BidID] = bidRequest
		}
	}

	currency := response.Cur
	if currency == "" {
		currency = c.ctx.Currency
	}

	var errs []error
	var bids []*adapters.Bid
	for i := range response.SeatBid {
		seatBid := &response.SeatBid[i]
		for j := range seatBid.Bid {
			bid := seatBid.Bid[j]
			imp, ok := imps[bid.ImpID]
			if !ok {
				errs = append(errs, &errortypes.BadServerResponse{
					Message: fmt.Sprintf("Bid %q is for unknown imp %q", bid.ID, bid.ImpID),
				})
				continue
			}

			bidCtx := &BidContext{
				Imp:        imp,
				BidRequest: requestsByID[bid.ImpID],
				Currency:   currency,
			}

			var result *adapters.Bid
			var err error
			if c.hooks.BidResponse != nil {
				result, err = c.hooks.BidResponse(c.defaultBidResponse, &bid, bidCtx)
			} else {
				result, err = c.defaultBidResponse(&bid, bidCtx)
			}
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if result != nil {
				bids = append(bids, result)
			}
		}
	}
	return bids, errs
}
