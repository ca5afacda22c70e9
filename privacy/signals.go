package privacy

// Signals are the consent signals the host attaches to a bidder request. A nil
// consent, or an empty USP string, means the signal was not supplied.
type Signals struct {
	GDPR *GDPRConsent `json:"gdprConsent,omitempty"`
	USP  string       `json:"uspConsent,omitempty"`
	GPP  *GPPConsent  `json:"gppConsent,omitempty"`
}

type GDPRConsent struct {
	GDPRApplies   bool   `json:"gdprApplies"`
	ConsentString string `json:"consentString"`
}

type GPPConsent struct {
	GPPString          string `json:"gppString"`
	ApplicableSections []int8 `json:"applicableSections,omitempty"`
}
