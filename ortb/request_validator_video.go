package ortb

import (
	"fmt"

	"github.com/prebid/openrtb/v20/openrtb2"
)

func validateVideo(video *openrtb2.Video, impID string) error {
	if video == nil {
		return nil
	}

	// The following fields were previously uints in the OpenRTB library we use, but have
	// since been changed to ints. We decided to maintain the non-negative check.
	if video.W != nil && *video.W < 0 {
		return fmt.Errorf("imp %s video.w must be a positive number", impID)
	}
	if video.H != nil && *video.H < 0 {
		return fmt.Errorf("imp %s video.h must be a positive number", impID)
	}
	if video.MinBitRate < 0 {
		return fmt.Errorf("imp %s video.minbitrate must be a positive number", impID)
	}
	if video.MaxBitRate < 0 {
		return fmt.Errorf("imp %s video.maxbitrate must be a positive number", impID)
	}
	if video.MinDuration > 0 && video.MaxDuration > 0 && video.MinDuration > video.MaxDuration {
		return fmt.Errorf("imp %s video.minduration must not exceed video.maxduration", impID)
	}

	return nil
}
