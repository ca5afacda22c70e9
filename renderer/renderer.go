package renderer

import (
	"errors"
)

// ErrRenderOverridden is returned by SetRender when the ad unit configured its own
// renderer, which then owns rendering.
var ErrRenderOverridden = errors.New("renderer: render function is owned by the ad unit renderer")

// ErrNoRender is returned by Render when no render function was installed.
var ErrNoRender = errors.New("renderer: no render function set")

// Config describes the renderer to install for a bid.
type Config struct {
	ID         string
	URL        string
	AdUnitCode string
	Loaded     bool
	// AdUnit is the renderer configured on the ad unit by the publisher, if any.
	AdUnit *AdUnitRenderer
}

// AdUnitRenderer is a publisher supplied renderer. Unless it is a backup, it takes
// precedence over the renderer of any bid.
type AdUnitRenderer struct {
	URL        string `json:"url"`
	BackupOnly bool   `json:"backupOnly,omitempty"`
}

// Ad is what a render function receives.
type Ad struct {
	BidID      string
	AdUnitCode string
	VastXML    string
}

// RenderFunc renders the ad on the page.
type RenderFunc func(ad Ad, page Page) error

// Renderer is the outstream rendering handle attached to a video bid. Commands pushed
// before the renderer script is loaded are queued and run in order once it is.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	AdUnitCode string `json:"adUnitCode"`
	Loaded     bool   `json:"loaded"`

	adUnit *AdUnitRenderer
	render RenderFunc
	cmd    []func()
}

// Install creates the renderer for a bid.
func Install(cfg Config) *Renderer {
	return &Renderer{
		ID:         cfg.ID,
		URL:        cfg.URL,
		AdUnitCode: cfg.AdUnitCode,
		Loaded:     cfg.Loaded,
		adUnit:     cfg.AdUnit,
	}
}

// SetRender installs the render function.
func (r *Renderer) SetRender(fn RenderFunc) error {
	if r.adUnit != nil && !r.adUnit.BackupOnly {
		return ErrRenderOverridden
	}
	r.render = fn
	return nil
}

// Render hands the ad to the installed render function.
func (r *Renderer) Render(ad Ad, page Page) error {
	if r.render == nil {
		return ErrNoRender
	}
	return r.render(ad, page)
}

// Push runs cmd now if the renderer script is loaded, otherwise queues it.
func (r *Renderer) Push(cmd func()) {
	if r.Loaded {
		cmd()
		return
	}
	r.cmd = append(r.cmd, cmd)
}

// SetLoaded marks the renderer script as loaded and drains the queued commands.
func (r *Renderer) SetLoaded() {
	r.Loaded = true
	queued := r.cmd
	r.cmd = nil
	for _, cmd := range queued {
		cmd()
	}
}

// Pending returns the number of queued commands.
func (r *Renderer) Pending() int {
	return len(r.cmd)
}
