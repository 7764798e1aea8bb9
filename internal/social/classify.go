package social

import (
	"regexp"
	"strings"
)

// Category is a sentiment polarity label.
type Category string

const (
	CategoryBullish Category = "bullish"
	CategoryBearish Category = "bearish"
	CategoryNeutral Category = "neutral"
)

// sentimentKeywords is the single keyword table shared by every sentiment
// classification; keep both classifiers on it so the taxonomy stays
// consistent.
var sentimentKeywords = map[Category][]string{
	CategoryBullish: {
		"buy", "bull", "bullish", "long", "growth", "profit", "gain",
		"opportunity", "breakout", "rally", "surge", "moon", "rocket",
		"upgrade", "beat", "outperform", "strong", "positive",
	},
	CategoryBearish: {
		"sell", "bear", "bearish", "short", "decline", "loss", "crash",
		"risk", "warning", "downgrade", "miss", "weak", "negative",
		"overvalued", "bubble", "correction", "downturn",
	},
}

// Keyword hits are whole-word matches so that "bullish" does not also count
// as "bull".
var sentimentPatterns = func() map[Category][]*regexp.Regexp {
	patterns := make(map[Category][]*regexp.Regexp, len(sentimentKeywords))
	for cat, words := range sentimentKeywords {
		for _, w := range words {
			patterns[cat] = append(patterns[cat], regexp.MustCompile(`\b`+regexp.QuoteMeta(w)+`\b`))
		}
	}
	return patterns
}()

// Classification is the derived sentiment of one item.
type Classification struct {
	Category       Category `json:"category"`
	Confidence     float64  `json:"confidence"`
	BullishSignals int      `json:"bullish_signals"`
	BearishSignals int      `json:"bearish_signals"`
}

// ClassifySentiment tags text as bullish, bearish or neutral by counting
// keyword hits. Confidence is the dominant share of all hits, or 0.5 when no
// keyword matched at all.
func ClassifySentiment(text string) Classification {
	lower := strings.ToLower(text)

	count := func(cat Category) int {
		n := 0
		for _, p := range sentimentPatterns[cat] {
			if p.MatchString(lower) {
				n++
			}
		}
		return n
	}

	bullish := count(CategoryBullish)
	bearish := count(CategoryBearish)
	total := bullish + bearish

	cls := Classification{BullishSignals: bullish, BearishSignals: bearish}
	switch {
	case bullish > bearish:
		cls.Category = CategoryBullish
		cls.Confidence = float64(bullish) / float64(total)
	case bearish > bullish:
		cls.Category = CategoryBearish
		cls.Confidence = float64(bearish) / float64(total)
	default:
		cls.Category = CategoryNeutral
		if total == 0 {
			cls.Confidence = 0.5
		} else {
			cls.Confidence = float64(bullish) / float64(total)
		}
	}
	return cls
}

// ClassifyItems returns a copy of items with sentiment attached. Input items
// are never mutated.
func ClassifyItems(items []ContentItem) []ContentItem {
	out := make([]ContentItem, len(items))
	for i, it := range items {
		cls := ClassifySentiment(it.Text)
		it.Classification = &cls
		out[i] = it
	}
	return out
}

// CommentTag is a non-exclusive discussion-pattern label for comment-style
// content. Unlike sentiment, an item may carry several tags at once.
type CommentTag string

const (
	TagQuestion           CommentTag = "question"
	TagAgreement          CommentTag = "agreement"
	TagDisagreement       CommentTag = "disagreement"
	TagDataDriven         CommentTag = "data_driven"
	TagPersonalExperience CommentTag = "personal_experience"
	TagHumor              CommentTag = "humor"
	TagShortPithy         CommentTag = "short_pithy"
)

var commentTagTerms = map[CommentTag][]string{
	TagAgreement:          {"agree", "exactly", "this", "correct", "yes"},
	TagDisagreement:       {"disagree", "wrong", "incorrect", "no", "but", "however", "actually"},
	TagDataDriven:         {"data", "research", "study", "statistics", "%"},
	TagPersonalExperience: {" i ", "i'm", "i've", " my ", "me "},
	TagHumor:              {"lol", "lmao", "haha", "😂", "🤣"},
}

// TagComment buckets comment text into discussion-pattern tags via
// independent substring tests.
func TagComment(text string) []CommentTag {
	lower := strings.ToLower(text)

	var tags []CommentTag
	if strings.Contains(lower, "?") {
		tags = append(tags, TagQuestion)
	}
	for _, tag := range []CommentTag{TagAgreement, TagDisagreement, TagDataDriven, TagPersonalExperience, TagHumor} {
		for _, term := range commentTagTerms[tag] {
			if strings.Contains(lower, term) {
				tags = append(tags, tag)
				break
			}
		}
	}
	if len(strings.Fields(lower)) <= 10 {
		tags = append(tags, TagShortPithy)
	}
	return tags
}

// TagItems returns a copy of items with comment tags attached.
func TagItems(items []ContentItem) []ContentItem {
	out := make([]ContentItem, len(items))
	for i, it := range items {
		it.Tags = TagComment(it.Text)
		out[i] = it
	}
	return out
}
