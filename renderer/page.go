package renderer

import "fmt"

// OutstreamAd is the payload of the third party outstream player.
type OutstreamAd struct {
	TargetID   string     `json:"targetId"`
	AdResponse AdResponse `json:"adResponse"`
}

type AdResponse struct {
	Content string `json:"content"`
}

// OutstreamPlayer is the rendering entry point a renderer script exposes on the page.
type OutstreamPlayer interface {
	RenderAd(ad OutstreamAd) error
}

// Page gives access to the globals of the page the ad renders on.
type Page interface {
	Lookup(global string) (OutstreamPlayer, bool)
}

// Globals is a Page backed by a map of global names.
type Globals map[string]OutstreamPlayer

func (g Globals) Lookup(global string) (OutstreamPlayer, bool) {
	player, ok := g[global]
	return player, ok && player != nil
}

// MissingGlobalError reports a renderer entry point absent from the page.
type MissingGlobalError struct {
	Global string
}

func (e *MissingGlobalError) Error() string {
	return fmt.Sprintf("renderer: global %s is not defined on the page", e.Global)
}
