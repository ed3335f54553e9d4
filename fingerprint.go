package gosocial

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// Fingerprint hashes the content of r: caption, post ideas and hashtags.
// Metadata such as model_used and processing_time is ignored, so two
// results with the same content share a fingerprint.
func Fingerprint(r *GenerationResult) string {
	if r == nil {
		return HashText("")
	}

	var b strings.Builder
	b.WriteString(strings.TrimSpace(r.Caption))
	b.WriteByte(0)
	for _, idea := range r.PostIdeas {
		b.WriteString(strings.TrimSpace(idea))
		b.WriteByte(0)
	}
	b.WriteByte(0)
	b.WriteString(strings.Join(r.Hashtags, " "))
	return HashText(b.String())
}
