package gosocial

import (
	"strings"
	"unicode/utf8"
)

// Tier is the emphasis bucket of a hashtag.
type Tier int

const (
	TierPlain Tier = iota
	TierOptimal
	TierTrending
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierTrending:
		return "trending"
	case TierOptimal:
		return "optimal"
	default:
		return "plain"
	}
}

// Indicator returns the display mark for the tier.
func (t Tier) Indicator() string {
	switch t {
	case TierTrending:
		return "🔥"
	case TierOptimal:
		return "⭐"
	default:
		return ""
	}
}

// Optimal length window, not counting the leading '#'.
const (
	optimalMinLen = 4
	optimalMaxLen = 8
)

// trendingTags holds known-trending tags, lowercase and without '#'.
var trendingTags = map[string]bool{
	"viral": true, "trending": true, "fyp": true, "explore": true,
	"love": true, "instagood": true, "photooftheday": true, "fashion": true,
	"beautiful": true, "happy": true, "cute": true, "tbt": true,
	"like4like": true, "followme": true, "picoftheday": true, "follow": true,
	"me": true, "selfie": true, "summer": true, "art": true,
	"instadaily": true, "friends": true, "repost": true, "nature": true,
	"girl": true, "fun": true, "style": true, "smile": true,
	"food": true, "instalike": true, "family": true, "travel": true,
	"fitness": true, "motivation": true,
}

// IsTrending reports whether hashtag is in the known-trending set.
func IsTrending(hashtag string) bool {
	return trendingTags[strings.ToLower(strings.TrimPrefix(hashtag, "#"))]
}

// Classify places hashtag into a tier. Membership in the trending set is
// checked before the length window.
func Classify(hashtag string) Tier {
	if IsTrending(hashtag) {
		return TierTrending
	}
	n := utf8.RuneCountInString(strings.TrimPrefix(hashtag, "#"))
	if n >= optimalMinLen && n <= optimalMaxLen {
		return TierOptimal
	}
	return TierPlain
}

// ClassifyAll classifies each tag, preserving order.
func ClassifyAll(hashtags []string) []Tier {
	tiers := make([]Tier, len(hashtags))
	for i, h := range hashtags {
		tiers[i] = Classify(h)
	}
	return tiers
}
