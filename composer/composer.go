// Package composer builds social content without a language model and
// cleans raw model output.
package composer

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/ZaguanLabs/gosocial"
)

const (
	// IdeaCount is the number of post ideas in a composed result.
	IdeaCount = 5
	// MaxHashtags caps the composed hashtag list.
	MaxHashtags = 15
)

var captionTemplates = []string{
	"📸 Capturing the essence of %s!",
	"✨ %s never gets old!",
	"🔥 This %s moment is everything!",
	"💫 Living for these %s vibes!",
	"🌟 %s at its finest!",
}

var ideaStarters = []string{
	"5 tips for better %s",
	"How to improve your %s skills",
	"The secret to amazing %s",
	"Why %s is important",
	"Common %s mistakes to avoid",
	"Best %s techniques for beginners",
}

var fallbackIdeas = []string{
	"Behind the scenes of %s",
	"My %s journey so far",
	"What I learned about %s today",
	"%s inspiration from around the world",
	"Quick %s tips for busy people",
}

var popularTags = []string{
	"#instagood", "#photooftheday", "#follow", "#like4like",
	"#instadaily", "#picoftheday", "#followme", "#tagsforlikes",
	"#beautiful", "#happy", "#fun", "#smile", "#love",
}

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Composer fills GenerationResults from fixed templates.
type Composer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Composer.
type Option func(*Composer)

// WithRand sets the randomness source.
func WithRand(r *rand.Rand) Option {
	return func(c *Composer) {
		if r != nil {
			c.rng = r
		}
	}
}

// New creates a Composer seeded from the clock.
func New(opts ...Option) *Composer {
	seed := uint64(time.Now().UnixNano())
	c := &Composer{rng: rand.New(rand.NewPCG(seed, seed>>1))}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose builds a complete result for theme.
func (c *Composer) Compose(theme string) gosocial.GenerationResult {
	return gosocial.GenerationResult{
		Caption:   c.Caption(theme),
		PostIdeas: c.PostIdeas(theme),
		Hashtags:  c.Hashtags(theme),
	}
}

// Caption picks one caption template.
func (c *Composer) Caption(theme string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fmt.Sprintf(captionTemplates[c.rng.IntN(len(captionTemplates))], theme)
}

// PostIdeas samples IdeaCount distinct starters, padding from the
// fallback ideas if there are not enough.
func (c *Composer) PostIdeas(theme string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	ideas := make([]string, 0, IdeaCount)
	for _, i := range c.rng.Perm(len(ideaStarters)) {
		if len(ideas) == IdeaCount {
			break
		}
		ideas = append(ideas, fmt.Sprintf(ideaStarters[i], theme)+"!")
	}
	for len(ideas) < IdeaCount {
		ideas = append(ideas, fmt.Sprintf(fallbackIdeas[c.rng.IntN(len(fallbackIdeas))], theme))
	}
	return ideas
}

// Hashtags derives tags from the theme words, adds the popular tags,
// shuffles and caps the list at MaxHashtags.
func (c *Composer) Hashtags(theme string) []string {
	seen := make(map[string]bool)
	var tags []string
	add := func(tag string) {
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	for _, word := range wordPattern.FindAllString(strings.ToLower(theme), -1) {
		if utf8.RuneCountInString(word) > 2 {
			add("#" + word)
			add("#" + word + "life")
			add("#" + word + "tips")
		}
	}
	for _, tag := range popularTags {
		add(tag)
	}

	c.mu.Lock()
	c.rng.Shuffle(len(tags), func(i, j int) { tags[i], tags[j] = tags[j], tags[i] })
	c.mu.Unlock()

	if len(tags) > MaxHashtags {
		tags = tags[:MaxHashtags]
	}
	return tags
}
