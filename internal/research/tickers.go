// Package research orchestrates per-platform research runs: it drives the
// SociaVault client across a set of sources, normalizes the payloads and runs
// the shared filter, rank and classify stages to produce a report.
package research

import (
	"time"

	"github.com/tickersocial/tickersocial/internal/social"
)

// Default filter parameters. Microblog content moves faster than forum
// discussion, so its lookback window is shorter.
const (
	DefaultForumWindow     = 14 * 24 * time.Hour
	DefaultMicroblogWindow = 7 * 24 * time.Hour
	DefaultVideoWindow     = 30 * 24 * time.Hour

	DefaultMinScore    = 50
	DefaultMinComments = 10
	DefaultMinLikes    = 10
	DefaultMinReshares = 5
	DefaultMaxResults  = 50
	DefaultMaxVideos   = 20
)

// TargetSubreddits are the investment communities queried on a ticker run.
var TargetSubreddits = []string{"stocks", "ValueInvesting", "options"}

// FinancialAccounts are the news and analyst handles checked for ticker
// mentions. The provider has no microblog search endpoint, so coverage comes
// from scanning curated timelines instead.
var FinancialAccounts = []string{
	"CNBC",
	"Bloomberg",
	"Reuters",
	"WSJ",
	"FT",
	"MarketWatch",
	"stocktalkweekly",
	"unusual_whales",
}

// TickerAccounts maps tickers to company and executive handles worth scanning
// in addition to the general financial accounts.
var TickerAccounts = map[string][]string{
	"TSLA":  {"elonmusk", "Tesla"},
	"AAPL":  {"tim_cook", "Apple"},
	"NVDA":  {"nvidia", "nvidiaai"},
	"MSFT":  {"Microsoft", "satyanadella"},
	"AMZN":  {"amazon", "JeffBezos"},
	"META":  {"Meta", "finkd"},
	"GOOGL": {"Google", "sundarpichai"},
	"AMD":   {"AMD", "LisaSu"},
	"PLTR":  {"PalantirTech"},
}

// TickerAliases maps tickers to company names so topic matching catches posts
// that name the company without the symbol.
var TickerAliases = map[string]string{
	"TSLA":  "Tesla",
	"AAPL":  "Apple",
	"NVDA":  "NVIDIA",
	"MSFT":  "Microsoft",
	"AMZN":  "Amazon",
	"GOOGL": "Google",
	"META":  "Meta",
	"AMD":   "AMD",
	"PLTR":  "Palantir",
	"GME":   "GameStop",
	"SPY":   "S&P 500",
	"QQQ":   "NASDAQ",
	"VOO":   "Vanguard S&P 500",
}

// CompanyName returns the company name for a ticker, or "" when unmapped.
func CompanyName(ticker string) string {
	return TickerAliases[ticker]
}

func aliasesFor(ticker string) []string {
	if name := TickerAliases[ticker]; name != "" {
		return []string{name}
	}
	return nil
}

// AccountsFor returns the microblog handles scanned for a ticker: the general
// financial accounts plus any company-specific ones.
func AccountsFor(ticker string) []string {
	accounts := make([]string, 0, len(FinancialAccounts)+2)
	accounts = append(accounts, FinancialAccounts...)
	accounts = append(accounts, TickerAccounts[ticker]...)
	return accounts
}

// ForumTarget builds the default subreddit query for a ticker.
func ForumTarget(ticker string) social.QueryTarget {
	return social.QueryTarget{
		Topic:   ticker,
		Aliases: aliasesFor(ticker),
		Window:  DefaultForumWindow,
		Sources: TargetSubreddits,
		Floor: social.EngagementFloor{
			MinUpvotes:  DefaultMinScore,
			MinComments: DefaultMinComments,
		},
		MaxResults: DefaultMaxResults,
	}
}

// MicroblogTarget builds the default account-scan query for a ticker.
func MicroblogTarget(ticker string) social.QueryTarget {
	return social.QueryTarget{
		Topic:   ticker,
		Aliases: aliasesFor(ticker),
		Window:  DefaultMicroblogWindow,
		Sources: AccountsFor(ticker),
		Floor: social.EngagementFloor{
			MinLikes:    DefaultMinLikes,
			MinReshares: DefaultMinReshares,
		},
		MaxResults: DefaultMaxResults,
	}
}

// ShortVideoTarget builds the default keyword-search query for a ticker. The
// search itself is ticker-scoped, so no local topic filter is applied.
func ShortVideoTarget(ticker, query string) social.QueryTarget {
	if query == "" {
		query = "#" + ticker + " stock"
	}
	return social.QueryTarget{
		Query:      query,
		Window:     DefaultVideoWindow,
		Sources:    []string{query},
		MaxResults: DefaultMaxVideos,
	}
}
