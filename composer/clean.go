package composer

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// skippedTags never contribute text.
var skippedTags = map[string]bool{
	"script": true,
	"style":  true,
	"head":   true,
}

var (
	unwantedChars  = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?'":;()\-–—“”‘’]`)
	sentenceBreak  = regexp.MustCompile(`[.!?]\s+`)
	minSentenceLen = 10
	maxWords       = 15
)

// CleanGeneratedText turns raw model output into one tidy sentence. It
// strips markup, removes an echoed prompt and stray symbols, then keeps the
// first sentence if it is longer than 10 bytes, or else the first 15 words.
func CleanGeneratedText(text, prompt string) string {
	text = plainText(text)

	if prompt != "" && strings.Contains(text, prompt) {
		text = strings.TrimSpace(strings.ReplaceAll(text, prompt, ""))
	}

	text = strings.TrimSpace(unwantedChars.ReplaceAllString(text, ""))

	sentences := sentenceBreak.Split(text, -1)
	if first := strings.TrimSpace(sentences[0]); len(first) > minSentenceLen {
		return ensurePunctuation(first)
	}

	words := strings.Fields(text)
	if len(words) >= 5 {
		if len(words) > maxWords {
			words = words[:maxWords]
		}
		return ensurePunctuation(strings.Join(words, " "))
	}

	return text
}

func ensurePunctuation(s string) string {
	if strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?") {
		return s
	}
	return s + "."
}

// plainText returns the text content of s, or s itself if it has no markup.
func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedTags[strings.ToLower(n.Data)] {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return b.String()
}
