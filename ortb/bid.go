package ortb

import (
	"encoding/json"
	"fmt"

	"github.com/adverxo/prebid-bidder/adapters"
	"github.com/adverxo/prebid-bidder/errortypes"
	"github.com/adverxo/prebid-bidder/openrtb_ext"
	"github.com/prebid/openrtb/v20/openrtb2"
)

func (c *Converter) defaultBidResponse(bid *openrtb2.Bid, bidCtx *BidContext) (*adapters.Bid, error) {
	mediaType, err := c.MediaType(bid, bidCtx.Imp)
	if err != nil {
		return nil, err
	}

	ttl := bid.Exp
	if ttl <= 0 {
		ttl = c.ctx.TTL
	}

	result := &adapters.Bid{
		RequestID:  bid.ImpID,
		CPM:        bid.Price,
		Currency:   bidCtx.Currency,
		Width:      bid.W,
		Height:     bid.H,
		CreativeID: bid.CrID,
		DealID:     bid.DealID,
		NetRevenue: c.ctx.NetRevenue,
		TTL:        ttl,
		MediaType:  mediaType,
		BURL:       bid.BURL,
		Meta: adapters.BidMeta{
			AdvertiserDomains: bid.ADomain,
		},
	}
	if len(bid.Cat) > 0 {
		result.Meta.PrimaryCatID = bid.Cat[0]
		if len(bid.Cat) > 1 {
			result.Meta.SecondaryCatIDs = bid.Cat[1:]
		}
	}
	if bidCtx.BidRequest != nil {
		result.AdUnitCode = bidCtx.BidRequest.AdUnitCode
	}

	switch mediaType {
	case openrtb_ext.BidTypeBanner:
		if bid.AdM != "" {
			result.Ad = bid.AdM
		} else {
			result.AdURL = bid.NURL
		}
	case openrtb_ext.BidTypeVideo:
		result.VastXML = bid.AdM
		result.VastURL = bid.NURL
	case openrtb_ext.BidTypeNative:
		if !json.Valid([]byte(bid.AdM)) {
			return nil, &errortypes.BadServerResponse{
				Message: fmt.Sprintf("Native markup of bid %q is not valid JSON", bid.ID),
			}
		}
		result.Native = &adapters.NativeBid{Ortb: json.RawMessage(bid.AdM)}
	}

	return result, nil
}

// MediaType tells the media type of a bid from its mtype or, failing that, from the single
// media type of its imp. Media types switched off in the features are rejected.
func (c *Converter) MediaType(bid *openrtb2.Bid, imp *openrtb2.Imp) (openrtb_ext.BidType, error) {
	mediaType, ok := openrtb_ext.BidTypeFromMarkupType(bid.MType)
	if !ok && bid.MType != 0 {
		return "", &errortypes.BadServerResponse{
			Message: fmt.Sprintf("Unsupported mtype %d for bid %q", bid.MType, bid.ID),
		}
	}
	if !ok {
		mediaType, ok = singleMediaType(imp)
	}
	if !ok {
		return "", &errortypes.BadServerResponse{
			Message: fmt.Sprintf("Unable to determine the media type of bid %q for imp %q", bid.ID, bid.ImpID),
		}
	}

	if !c.supports(mediaType) {
		return "", &errortypes.BadServerResponse{
			Message: fmt.Sprintf("Unsupported media type %s for bid %q", mediaType, bid.ID),
		}
	}
	return mediaType, nil
}

func (c *Converter) supports(mediaType openrtb_ext.BidType) bool {
	switch mediaType {
	case openrtb_ext.BidTypeBanner:
		return true
	case openrtb_ext.BidTypeVideo:
		return c.ctx.Features.Video
	case openrtb_ext.BidTypeNative:
		return c.ctx.Features.Native
	default:
		return false
	}
}

func singleMediaType(imp *openrtb2.Imp) (openrtb_ext.BidType, bool) {
	if imp == nil {
		return "", false
	}

	var found []openrtb_ext.BidType
	if imp.Banner != nil {
		found = append(found, openrtb_ext.BidTypeBanner)
	}
	if imp.Video != nil {
		found = append(found, openrtb_ext.BidTypeVideo)
	}
	if imp.Audio != nil {
		found = append(found, openrtb_ext.BidTypeAudio)
	}
	if imp.Native != nil {
		found = append(found, openrtb_ext.BidTypeNative)
	}

	if len(found) != 1 {
		return "", false
	}
	return found[0], true
}
