package ortb

import (
	"fmt"

	"github.com/prebid/openrtb/v20/openrtb2"
)

func validateBanner(banner *openrtb2.Banner, impID string, isInterstitial bool) error {
	if banner == nil {
		return nil
	}

	// The following fields were previously uints in the OpenRTB library we use, but have
	// since been changed to ints. We decided to maintain the non-negative check.
	if banner.W != nil && *banner.W < 0 {
		return fmt.Errorf("imp %s banner.w must be a positive number", impID)
	}
	if banner.H != nil && *banner.H < 0 {
		return fmt.Errorf("imp %s banner.h must be a positive number", impID)
	}

	hasRootSize := banner.H != nil && banner.W != nil && *banner.H > 0 && *banner.W > 0
	if !hasRootSize && len(banner.Format) == 0 && !isInterstitial {
		return fmt.Errorf("imp %s banner has no sizes. Define \"sizes\" on the banner media type.", impID)
	}

	for i, format := range banner.Format {
		if err := validateFormat(&format, impID, i); err != nil {
			return err
		}
	}

	return nil
}

func validateFormat(format *openrtb2.Format, impID string, formatIndex int) error {
	if format == nil {
		return nil
	}
	usesHW := format.W != 0 || format.H != 0
	usesRatios := format.WMin != 0 || format.WRatio != 0 || format.HRatio != 0

	if format.W < 0 {
		return fmt.Errorf("imp %s banner.format[%d].w must be a positive number", impID, formatIndex)
	}
	if format.H < 0 {
		return fmt.Errorf("imp %s banner.format[%d].h must be a positive number", impID, formatIndex)
	}

	if usesHW && usesRatios {
		return fmt.Errorf("imp %s banner.format[%d] should define *either* {w, h} *or* {wmin, wratio, hratio}, but not both.", impID, formatIndex)
	}
	if !usesHW && !usesRatios {
		return fmt.Errorf("imp %s banner.format[%d] should define *either* {w, h} (for static size requirements) *or* {wmin, wratio, hratio} (for flexible sizes) to be non-zero.", impID, formatIndex)
	}
	if usesHW && (format.W == 0 || format.H == 0) {
		return fmt.Errorf("imp %s banner.format[%d] must define non-zero \"h\" and \"w\" properties.", impID, formatIndex)
	}
	if usesRatios && (format.WMin == 0 || format.WRatio == 0 || format.HRatio == 0) {
		return fmt.Errorf("imp %s banner.format[%d] must define non-zero \"wmin\", \"wratio\", and \"hratio\" properties.", impID, formatIndex)
	}
	return nil
}
