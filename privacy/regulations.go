package privacy

import (
	"fmt"
	"strconv"

	"github.com/adverxo/prebid-bidder/errortypes"
	"github.com/adverxo/prebid-bidder/openrtb_ext"
	"github.com/adverxo/prebid-bidder/privacy/gdpr"
	"github.com/adverxo/prebid-bidder/privacy/gpp"
	"github.com/adverxo/prebid-bidder/util/jsonutil"
	"github.com/adverxo/prebid-bidder/util/ptrutil"
	"github.com/buger/jsonparser"
	"github.com/prebid/openrtb/v20/openrtb2"
)

// BuildRegulations maps the consent signals onto an OpenRTB regs object. Signal values are
// forwarded verbatim; consent strings which fail to parse only produce warnings.
// The coppa flag comes from the publisher configuration, not from the signals.
func BuildRegulations(signals Signals, coppa bool) (*openrtb2.Regs, []error) {
	var errs []error
	var regsExt openrtb_ext.ExtRegs

	if signals.GDPR != nil {
		regsExt.GDPR = ptrutil.ToPtr(gdprFlag(signals.GDPR.GDPRApplies))
		regsExt.GDPRConsent = ptrutil.ToPtr(signals.GDPR.ConsentString)
		if err := gdpr.ValidateConsent(signals.GDPR.ConsentString); err != nil {
			errs = append(errs, &errortypes.Warning{
				Message:     err.Error(),
				WarningCode: errortypes.InvalidPrivacyConsentWarningCode,
			})
		}
	}

	if signals.GPP != nil {
		regsExt.GPP = signals.GPP.GPPString
		regsExt.GPPSID = signals.GPP.ApplicableSections
		if signals.GPP.GPPString != "" {
			container, err := gpp.Parse(signals.GPP.GPPString)
			if err != nil {
				errs = append(errs, &errortypes.Warning{
					Message:     fmt.Sprintf("malformed gpp string %s: %s", signals.GPP.GPPString, err.Error()),
					WarningCode: errortypes.InvalidPrivacyConsentWarningCode,
				})
			} else if regsExt.GPPSID == nil {
				regsExt.GPPSID = gpp.SectionIDs(container)
			}
		}
	}

	regsExt.USPrivacy = signals.USP

	ext, err := jsonutil.Marshal(regsExt)
	if err != nil {
		return nil, append(errs, &errortypes.FailedToMarshal{Message: err.Error()})
	}

	regs := &openrtb2.Regs{Ext: ext}
	if coppa {
		regs.COPPA = 1
	}
	return regs, errs
}

// WriteCOPPA writes regs.coppa into a marshalled OpenRTB request. openrtb2.Regs omits a zero
// coppa, and an absent flag reads as unknown rather than as not subject to COPPA.
func WriteCOPPA(requestBody []byte, regs *openrtb2.Regs) ([]byte, error) {
	if regs == nil {
		return requestBody, nil
	}
	return jsonparser.Set(requestBody, []byte(strconv.Itoa(int(regs.COPPA))), "regs", "coppa")
}

func gdprFlag(applies bool) int8 {
	if applies {
		return 1
	}
	return 0
}
