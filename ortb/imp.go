package ortb

import (
	"encoding/json"
	"fmt"

	"github.com/adverxo/prebid-bidder/adapters"
	"github.com/adverxo/prebid-bidder/errortypes"
	"github.com/adverxo/prebid-bidder/util/jsonutil"
	"github.com/adverxo/prebid-bidder/util/ptrutil"
	"github.com/buger/jsonparser"
	"github.com/prebid/openrtb/v20/adcom1"
	"github.com/prebid/openrtb/v20/openrtb2"
)

// DefaultNativeVersion is the native request version assumed when the ad unit sets none.
const DefaultNativeVersion = "1.2"

// defaultImp converts the media types of a bid request. Media types switched off in the
// features are ignored; a bid request left with none is rejected.
func (c *Converter) defaultImp(bidRequest *adapters.BidRequest) (*openrtb2.Imp, error) {
	if bidRequest == nil || bidRequest.BidID == "" {
		return nil, &errortypes.BadInput{Message: "Bid request is missing the bidId"}
	}

	imp := &openrtb2.Imp{}
	if len(bidRequest.Ortb2Imp) > 0 {
		if err := jsonutil.Unmarshal(bidRequest.Ortb2Imp, imp); err != nil {
			return nil, &errortypes.BadInput{
				Message: fmt.Sprintf("Invalid ortb2Imp of bid request %s: %s", bidRequest.BidID, err.Error()),
			}
		}
	}
	imp.ID = bidRequest.BidID

	mediaTypes := bidRequest.MediaTypes
	if mediaTypes.Banner != nil {
		imp.Banner = fillBanner(imp.Banner, mediaTypes.Banner)
		if err := validateBanner(imp.Banner, imp.ID, imp.Instl == 1); err != nil {
			return nil, &errortypes.BadInput{Message: err.Error()}
		}
	}

	if c.ctx.Features.Video && mediaTypes.Video != nil {
		video, err := buildVideo(mediaTypes.Video)
		if err != nil {
			return nil, &errortypes.BadInput{
				Message: fmt.Sprintf("Invalid video media type of bid request %s: %s", bidRequest.BidID, err.Error()),
			}
		}
		if err := validateVideo(video, imp.ID); err != nil {
			return nil, &errortypes.BadInput{Message: err.Error()}
		}
		imp.Video = video
	}

	if c.ctx.Features.Native && mediaTypes.Native != nil {
		native, err := buildNative(mediaTypes.Native)
		if err != nil {
			return nil, &errortypes.BadInput{
				Message: fmt.Sprintf("Invalid native media type of bid request %s: %s", bidRequest.BidID, err.Error()),
			}
		}
		imp.Native = native
	}

	if imp.Banner == nil && imp.Video == nil && imp.Native == nil {
		return nil, &errortypes.BadInput{
			Message: fmt.Sprintf("Bid request %s has no supported media type", bidRequest.BidID),
		}
	}

	return imp, nil
}

func fillBanner(banner *openrtb2.Banner, mediaType *adapters.BannerMediaType) *openrtb2.Banner {
	if banner == nil {
		banner = &openrtb2.Banner{}
	}
	if len(banner.Format) == 0 && len(mediaType.Sizes) > 0 {
		banner.Format = make([]openrtb2.Format, 0, len(mediaType.Sizes))
		for _, size := range mediaType.Sizes {
			banner.Format = append(banner.Format, openrtb2.Format{W: size.W, H: size.H})
		}
	}
	if banner.Pos == nil && mediaType.Pos != nil {
		banner.Pos = ptrutil.ToPtr(adcom1.PlacementPosition(*mediaType.Pos))
	}
	return banner
}

// buildVideo copies the OpenRTB fields of mediaTypes.video. The player size fills w and h
// when the ad unit does not set them.
func buildVideo(mediaType *adapters.VideoMediaType) (*openrtb2.Video, error) {
	video := &openrtb2.Video{}
	if len(mediaType.Ortb) > 0 {
		if err := jsonutil.Unmarshal(mediaType.Ortb, video); err != nil {
			return nil, err
		}
	}

	if video.W == nil && video.H == nil && len(mediaType.PlayerSize) > 0 {
		video.W = ptrutil.ToPtr(mediaType.PlayerSize[0].W)
		video.H = ptrutil.ToPtr(mediaType.PlayerSize[0].H)
	}
	return video, nil
}

func buildNative(mediaType *adapters.NativeMediaType) (*openrtb2.Native, error) {
	if len(mediaType.Ortb) == 0 {
		return nil, fmt.Errorf("missing ortb native request")
	}
	if !json.Valid(mediaType.Ortb) {
		return nil, fmt.Errorf("ortb native request is not valid JSON")
	}

	request := append([]byte(nil), mediaType.Ortb...)
	version, err := jsonparser.GetString(request, "ver")
	if err != nil || version == "" {
		version = DefaultNativeVersion
		request, err = jsonparser.Set(request, []byte(`"`+version+`"`), "ver")
		if err != nil {
			return nil, err
		}
	}

	return &openrtb2.Native{
		Request: string(request),
		Ver:     version,
	}, nil
}
