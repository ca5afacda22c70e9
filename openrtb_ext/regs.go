package openrtb_ext

// ExtRegs defines the contract for bidrequest.regs.ext. Keys are omitted when the
// corresponding consent signal was not supplied.
type ExtRegs struct {
	GDPR *int8 `json:"gdpr,omitempty"`
	// GDPRConsent is set whenever the GDPR signal is, so an empty consent string still
	// reaches the exchange.
	GDPRConsent *string `json:"gdpr_consent,omitempty"`
	GPP         string  `json:"gpp,omitempty"`
	GPPSID      []int8  `json:"gpp_sid,omitempty"`
	USPrivacy   string  `json:"us_privacy,omitempty"`
}
