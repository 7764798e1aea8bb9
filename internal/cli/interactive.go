package cli

import (
	"context"
	"fmt"

	"github.com/tickersocial/tickersocial/config"
	"github.com/tickersocial/tickersocial/internal/research"
	"github.com/tickersocial/tickersocial/internal/social"
)

// runInteractiveMode prompts for a ticker and platform, then runs the
// research with default filter settings.
func runInteractiveMode(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ticker, err := PromptForTicker()
	if err != nil {
		return fmt.Errorf("ticker prompt: %w", err)
	}

	platform, err := PromptForPlatform()
	if err != nil {
		return fmt.Errorf("platform prompt: %w", err)
	}

	return runResearch(cfg, ticker, platform, true, func(ctx context.Context, svc *research.Service) (*social.Report, error) {
		switch platform {
		case "twitter":
			return svc.MicroblogPosts(ctx, research.MicroblogTarget(ticker))
		case "tiktok":
			return svc.ShortVideos(ctx, research.ShortVideoTarget(ticker, ""), true)
		case "youtube":
			return svc.VideoSearch(ctx, research.ShortVideoTarget(ticker, ticker+" stock"))
		default:
			return svc.ForumPosts(ctx, research.ForumTarget(ticker))
		}
	})
}
