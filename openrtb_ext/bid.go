package openrtb_ext

import (
	"github.com/prebid/openrtb/v20/openrtb2"
)

// BidType describes the media type of an interpreted bid.
type BidType string

const (
	BidTypeBanner BidType = "banner"
	BidTypeVideo  BidType = "video"
	BidTypeAudio  BidType = "audio"
	BidTypeNative BidType = "native"
)

func BidTypes() []BidType {
	return []BidType{
		BidTypeBanner,
		BidTypeVideo,
		BidTypeAudio,
		BidTypeNative,
	}
}

// BidTypeFromMarkupType maps an OpenRTB 2.6 bid.mtype onto a BidType. The second
// return value is false for unset or unknown markup types.
func BidTypeFromMarkupType(mtype openrtb2.MarkupType) (BidType, bool) {
	switch mtype {
	case openrtb2.MarkupBanner:
		return BidTypeBanner, true
	case openrtb2.MarkupVideo:
		return BidTypeVideo, true
	case openrtb2.MarkupAudio:
		return BidTypeAudio, true
	case openrtb2.MarkupNative:
		return BidTypeNative, true
	default:
		return "", false
	}
}

// GetImpIDs returns the ids of the given impressions in order.
func GetImpIDs(imps []openrtb2.Imp) []string {
	impIDs := make([]string, len(imps))
	for i := range imps {
		impIDs[i] = imps[i].ID
	}
	return impIDs
}
