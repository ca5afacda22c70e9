package openrtb_ext

// ExtRequestAdverxo holds the vendor keys written into bidrequest.ext.
// AvxUserSync is serialized as null when no sync method is allowed.
type ExtRequestAdverxo struct {
	AvxUserSync   *int `json:"avx_usersync"`
	AvxAddVastURL int  `json:"avx_add_vast_url"`
}

// ExtBidResponseAdverxo is the vendor extension of bidresponse.ext.
type ExtBidResponseAdverxo struct {
	AvxUserSync []AdverxoSyncInstruction `json:"avx_usersync,omitempty"`
}

// AdverxoSyncInstruction asks the page to drop a sync pixel. Type uses the codes of
// usersync.SyncMethod.
type AdverxoSyncInstruction struct {
	Type int    `json:"type"`
	URL  string `json:"url"`
}

// ExtBidAdverxo is the vendor extension of bidresponse.seatbid[i].bid[j].ext.
type ExtBidAdverxo struct {
	AvxVastURL          string `json:"avx_vast_url,omitempty"`
	AvxVideoRendererURL string `json:"avx_video_renderer_url,omitempty"`
}
