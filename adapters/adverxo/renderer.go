package adverxo

import (
	"github.com/adverxo/prebid-bidder/adapters"
	"github.com/adverxo/prebid-bidder/logger"
	"github.com/adverxo/prebid-bidder/renderer"
)

// outstreamPlayerGlobal is the entry point the Adverxo renderer script defines on the page.
const outstreamPlayerGlobal = "adxVideoRenderer"

func newOutstreamRenderer(bid *adapters.Bid, rendererURL string, adUnitRenderer *renderer.AdUnitRenderer) *renderer.Renderer {
	outstream := renderer.Install(renderer.Config{
		ID:         bid.RequestID,
		URL:        rendererURL,
		AdUnitCode: bid.AdUnitCode,
		Loaded:     false,
		AdUnit:     adUnitRenderer,
	})

	if err := outstream.SetRender(renderOutstream(outstream)); err != nil {
		logger.Warnf("Prebid Error calling setRender on renderer: %v", err)
	}
	return outstream
}

func renderOutstream(outstream *renderer.Renderer) renderer.RenderFunc {
	return func(ad renderer.Ad, page renderer.Page) error {
		outstream.Push(func() {
			player, ok := page.Lookup(outstreamPlayerGlobal)
			if !ok {
				logger.Errorf("Adverxo Bid Adapter: %v", &renderer.MissingGlobalError{Global: outstreamPlayerGlobal})
				return
			}

			err := player.RenderAd(renderer.OutstreamAd{
				TargetID:   ad.AdUnitCode,
				AdResponse: renderer.AdResponse{Content: ad.VastXML},
			})
			if err != nil {
				logger.Errorf("Adverxo Bid Adapter: unable to render outstream ad %s: %v", ad.BidID, err)
			}
		})
		return nil
	}
}
