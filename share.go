package gosocial

import (
	"fmt"
	"net/url"
	"strings"
)

const linkedInShareEndpoint = "https://www.linkedin.com/sharing/share-offsite/"

// SharePlatform is a sharing target.
type SharePlatform string

const (
	ShareInstagram SharePlatform = "instagram"
	ShareLinkedIn  SharePlatform = "linkedin"
	ShareNative    SharePlatform = "native"
	ShareClipboard SharePlatform = "clipboard"
)

// Share describes what to hand to a sharing target. Delivery is best-effort
// and belongs to the caller.
type Share struct {
	Platform SharePlatform
	Title    string
	Text     string
	URL      string // deep link or page URL, if any
	Notice   string // message to show after copying, if any
}

// ShareText joins caption, ideas and hashtags into one shareable block.
func ShareText(r *GenerationResult) (string, error) {
	if r == nil {
		return "", ErrNoResult
	}
	return r.Caption + "\n\n" + strings.Join(r.PostIdeas, "\n\n") + "\n\n" + strings.Join(r.Hashtags, " "), nil
}

// LinkedInShareURL builds the professional-network deep link for r.
func LinkedInShareURL(pageURL string, r *GenerationResult) (string, error) {
	text, err := ShareText(r)
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("url", pageURL)
	q.Set("summary", text)
	return linkedInShareEndpoint + "?" + q.Encode(), nil
}

// PrepareShare builds the share payload for platform.
func PrepareShare(platform SharePlatform, r *GenerationResult, lang Language, pageURL string) (Share, error) {
	text, err := ShareText(r)
	if err != nil {
		return Share{}, err
	}

	m := MessagesFor(lang)
	s := Share{Platform: platform, Title: m.ShareTitle, Text: text}

	switch platform {
	case ShareInstagram:
		s.Notice = m.CopiedForInstagram
	case ShareLinkedIn:
		link, err := LinkedInShareURL(pageURL, r)
		if err != nil {
			return Share{}, err
		}
		s.URL = link
	case ShareNative:
		s.URL = pageURL
	case ShareClipboard:
	default:
		return Share{}, &ValidationError{Field: "platform", Message: fmt.Sprintf("unsupported platform %q", platform)}
	}
	return s, nil
}
