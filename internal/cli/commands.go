package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tickersocial/tickersocial/config"
	"github.com/tickersocial/tickersocial/internal/display"
	"github.com/tickersocial/tickersocial/internal/research"
	"github.com/tickersocial/tickersocial/internal/social"
	"github.com/tickersocial/tickersocial/internal/summary"
	"github.com/tickersocial/tickersocial/pkg/sociavault"
	"github.com/tickersocial/tickersocial/pkg/utils"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "tickersocial",
		Short: "tickersocial - Stock Sentiment Research Across Social Platforms",
		Long: `tickersocial collects and analyzes stock discussions from investment subreddits,
financial news accounts and video platforms. It filters by ticker mention, recency
and engagement, ranks the survivors and classifies their sentiment.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("failed to create directories: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractiveMode(cfg)
		},
	}

	rootCmd.AddCommand(newRedditCmd(cfg))
	rootCmd.AddCommand(newTwitterCmd(cfg))
	rootCmd.AddCommand(newTikTokCmd(cfg))
	rootCmd.AddCommand(newYouTubeCmd(cfg))
	rootCmd.AddCommand(newCommentsCmd(cfg))
	rootCmd.AddCommand(newSummaryCmd(cfg))
	rootCmd.AddCommand(newCreditsCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")

	return rootCmd
}

// newRedditCmd creates the reddit research command
func newRedditCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reddit [TICKER]",
		Short: "Fetch ticker discussions from investment subreddits",
		Long: `Fetch posts mentioning a stock ticker from r/stocks, r/ValueInvesting and
r/options, filtered by recency and engagement.
Example: tickersocial reddit TSLA --days 7 --min-score 100`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticker := normalizeTicker(args[0])
			target := research.ForumTarget(ticker)

			days, _ := cmd.Flags().GetInt("days")
			target.Window = time.Duration(days) * 24 * time.Hour
			target.Floor.MinUpvotes, _ = cmd.Flags().GetInt("min-score")
			target.Floor.MinComments, _ = cmd.Flags().GetInt("min-comments")
			target.MaxResults, _ = cmd.Flags().GetInt("max-results")
			if subs, _ := cmd.Flags().GetStringSlice("subreddits"); len(subs) > 0 {
				target.Sources = subs
			}

			noSave, _ := cmd.Flags().GetBool("no-save")
			return runResearch(cfg, ticker, "reddit", !noSave, func(ctx context.Context, svc *research.Service) (*social.Report, error) {
				return svc.ForumPosts(ctx, target)
			})
		},
	}

	cmd.Flags().Int("days", 14, "Number of days to look back")
	cmd.Flags().Int("min-score", research.DefaultMinScore, "Minimum post score (upvotes)")
	cmd.Flags().Int("min-comments", research.DefaultMinComments, "Minimum number of comments")
	cmd.Flags().Int("max-results", research.DefaultMaxResults, "Maximum posts to return")
	cmd.Flags().StringSlice("subreddits", nil, "Subreddits to query (default: stocks,ValueInvesting,options)")
	cmd.Flags().Bool("no-save", false, "Do not save results to file")

	return cmd
}

// newTwitterCmd creates the twitter research command
func newTwitterCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "twitter [TICKER]",
		Short: "Scan financial news accounts for ticker mentions",
		Long: `Scan a curated list of financial news and analyst accounts for tweets
mentioning a stock ticker, filtered by recency and engagement.
Example: tickersocial twitter NVDA --days 3 --min-likes 100`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticker := normalizeTicker(args[0])
			target := research.MicroblogTarget(ticker)

			days, _ := cmd.Flags().GetInt("days")
			target.Window = time.Duration(days) * 24 * time.Hour
			target.Floor.MinLikes, _ = cmd.Flags().GetInt("min-likes")
			target.Floor.MinReshares, _ = cmd.Flags().GetInt("min-retweets")
			target.MaxResults, _ = cmd.Flags().GetInt("max-results")
			if accounts, _ := cmd.Flags().GetStringSlice("accounts"); len(accounts) > 0 {
				target.Sources = accounts
			}

			noSave, _ := cmd.Flags().GetBool("no-save")
			return runResearch(cfg, ticker, "twitter", !noSave, func(ctx context.Context, svc *research.Service) (*social.Report, error) {
				return svc.MicroblogPosts(ctx, target)
			})
		},
	}

	cmd.Flags().Int("days", 7, "Number of days to look back")
	cmd.Flags().Int("min-likes", research.DefaultMinLikes, "Minimum tweet likes")
	cmd.Flags().Int("min-retweets", research.DefaultMinReshares, "Minimum retweets")
	cmd.Flags().Int("max-results", research.DefaultMaxResults, "Maximum tweets to return")
	cmd.Flags().StringSlice("accounts", nil, "Account handles to scan (default: curated financial accounts)")
	cmd.Flags().Bool("no-save", false, "Do not save results to file")

	return cmd
}

// newTikTokCmd creates the tiktok research command
func newTikTokCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tiktok [TICKER]",
		Short: "Search short videos about a ticker",
		Long: `Search for short videos about a stock ticker, optionally enriching each hit
with its transcript so spoken analysis counts toward sentiment.
Example: tickersocial tiktok TSLA --max-videos 50`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticker := normalizeTicker(args[0])
			query, _ := cmd.Flags().GetString("query")
			target := research.ShortVideoTarget(ticker, query)

			days, _ := cmd.Flags().GetInt("days")
			target.Window = time.Duration(days) * 24 * time.Hour
			target.MaxResults, _ = cmd.Flags().GetInt("max-videos")
			noDetails, _ := cmd.Flags().GetBool("no-details")

			noSave, _ := cmd.Flags().GetBool("no-save")
			return runResearch(cfg, ticker, "tiktok", !noSave, func(ctx context.Context, svc *research.Service) (*social.Report, error) {
				return svc.ShortVideos(ctx, target, !noDetails)
			})
		},
	}

	cmd.Flags().String("query", "", "Custom search query (default: \"#TICKER stock\")")
	cmd.Flags().Int("days", 30, "Number of days to look back")
	cmd.Flags().Int("max-videos", research.DefaultMaxVideos, "Maximum videos to fetch")
	cmd.Flags().Bool("no-details", false, "Skip fetching video details and transcripts")
	cmd.Flags().Bool("no-save", false, "Do not save results to file")

	return cmd
}

// newYouTubeCmd creates the youtube research command
func newYouTubeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "youtube [TICKER]",
		Short: "Search video analysis about a ticker",
		Long: `Search for video analysis about a stock ticker. Like and comment counts ride
along in the search results, so each run costs a single search.
Example: tickersocial youtube AAPL --query "Apple earnings"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticker := normalizeTicker(args[0])
			query, _ := cmd.Flags().GetString("query")
			if query == "" {
				query = ticker + " stock"
			}
			target := research.ShortVideoTarget(ticker, query)

			days, _ := cmd.Flags().GetInt("days")
			target.Window = time.Duration(days) * 24 * time.Hour
			target.MaxResults, _ = cmd.Flags().GetInt("max-videos")

			noSave, _ := cmd.Flags().GetBool("no-save")
			return runResearch(cfg, ticker, "youtube", !noSave, func(ctx context.Context, svc *research.Service) (*social.Report, error) {
				return svc.VideoSearch(ctx, target)
			})
		},
	}

	cmd.Flags().String("query", "", "Custom search query (default: \"TICKER stock\")")
	cmd.Flags().Int("days", 30, "Number of days to look back")
	cmd.Flags().Int("max-videos", research.DefaultMaxVideos, "Maximum videos to fetch")
	cmd.Flags().Bool("no-save", false, "Do not save results to file")

	return cmd
}

// newCommentsCmd creates the post comments command
func newCommentsCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments [POST_URL]",
		Short: "Fetch and tag the top comments of a post",
		Long: `Fetch the top comments of a forum post, rank them by score and tag each one
by conversational role (question, agreement, data_driven, ...).
Example: tickersocial comments https://www.reddit.com/r/stocks/comments/abc123/title/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			postURL := args[0]
			amount, _ := cmd.Flags().GetInt("amount")

			if err := cfg.Validate(); err != nil {
				return err
			}
			svc := research.NewService(cfg)
			started := time.Now()

			report, err := svc.PostComments(context.Background(), postURL, amount, social.QueryTarget{})
			if err != nil {
				return fmt.Errorf("fetching comments failed: %w", err)
			}

			display.NewReportDisplay(research.ExtractPostID(postURL)).Show(report)

			if noSave, _ := cmd.Flags().GetBool("no-save"); !noSave {
				path := utils.ReportPath(cfg.DataDir, "comments", research.ExtractPostID(postURL), time.Now())
				if err := utils.SaveJSON(path, report); err != nil {
					return err
				}
			}
			display.ShowRunFooter(started)
			return nil
		},
	}

	cmd.Flags().Int("amount", 25, "Number of comments to fetch")
	cmd.Flags().Bool("no-save", false, "Do not save results to file")

	return cmd
}

// newSummaryCmd creates the daily summary command
func newSummaryCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary [DIR]",
		Short: "Generate a markdown digest from saved reports",
		Long: `Load every saved report JSON in a directory and render the top items across
all of them as a markdown digest (daily_summary.md).
Example: tickersocial summary data/stocks/TSLA`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			maxItems, _ := cmd.Flags().GetInt("max-items")

			reports, err := summary.LoadReports(dir)
			if err != nil {
				return fmt.Errorf("loading reports: %w", err)
			}
			if len(reports) == 0 {
				return fmt.Errorf("no report files found in %s", dir)
			}

			content := summary.Generate(reports, maxItems, time.Now())
			return summary.Write(dir, content)
		},
	}

	cmd.Flags().Int("max-items", summary.DefaultMaxItems, "Maximum items in the digest")

	return cmd
}

// newCreditsCmd creates the credits command
func newCreditsCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "credits",
		Short: "Check remaining API credits",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			svc := research.NewService(cfg)
			credits, err := svc.Credits(context.Background())
			if err != nil {
				return fmt.Errorf("credit check failed: %w", err)
			}
			display.ShowCredits(credits.Credits)
			return nil
		},
	}
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("tickersocial v1.0.0")
			fmt.Println("Stock Sentiment Research Across Social Platforms")
		},
	}
}

// runResearch executes one platform run: validate, fetch, display, save.
func runResearch(cfg *config.Config, ticker, platform string, save bool, run func(context.Context, *research.Service) (*social.Report, error)) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	svc := research.NewService(cfg)
	started := time.Now()
	ctx := context.Background()

	// The credits probe costs nothing, so a bad key or exhausted quota
	// surfaces here before any scrape spends a request. Transient probe
	// failures do not block the run.
	credits, err := svc.Credits(ctx)
	if err != nil {
		var apiErr *sociavault.APIError
		if errors.As(err, &apiErr) && apiErr.Fatal() {
			return fmt.Errorf("credit check failed: %w", err)
		}
	} else {
		display.ShowCredits(credits.Credits)
	}

	report, err := run(ctx, svc)
	if err != nil {
		return fmt.Errorf("research failed: %w", err)
	}

	display.NewReportDisplay(ticker).Show(report)

	if save {
		path := utils.ReportPath(cfg.DataDir, ticker, platform, time.Now())
		if err := utils.SaveJSON(path, report); err != nil {
			return err
		}
	}

	display.ShowRunFooter(started)
	return nil
}

func normalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
