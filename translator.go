package gosocial

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// diacritics is the character class that marks a theme as Italian.
// Only lower-case vowels count.
const diacritics = "àèéìíîòóùú"

// defaultPairs maps Italian keywords to English.
var defaultPairs = map[string]string{
	"palestra":    "gym",
	"fitness":     "fitness",
	"allenamento": "workout",
	"cibo":        "food",
	"cucina":      "cooking",
	"ricetta":     "recipe",
	"viaggio":     "travel",
	"vacanza":     "vacation",
	"mare":        "sea",
	"montagna":    "mountain",
	"città":       "city",
	"natura":      "nature",
	"moda":        "fashion",
	"stile":       "style",
	"bellezza":    "beauty",
	"tecnologia":  "technology",
	"business":    "business",
	"lavoro":      "work",
}

// Dictionary is a bilingual keyword table with its inverse.
// Keys are stored case-folded.
type Dictionary struct {
	forward map[string]string // IT -> EN
	inverse map[string]string // EN -> IT
}

// NewDictionary builds a dictionary from Italian→English pairs.
// When two Italian words share a translation, the alphabetically first wins the inverse.
func NewDictionary(pairs map[string]string) *Dictionary {
	fold := cases.Fold()
	d := &Dictionary{
		forward: make(map[string]string, len(pairs)),
		inverse: make(map[string]string, len(pairs)),
	}

	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, it := range keys {
		en := pairs[it]
		d.forward[fold.String(it)] = en
		enKey := fold.String(en)
		if _, exists := d.inverse[enKey]; !exists {
			d.inverse[enKey] = it
		}
	}
	return d
}

// DefaultDictionary returns the built-in keyword dictionary.
func DefaultDictionary() *Dictionary {
	return NewDictionary(defaultPairs)
}

// Len returns the number of pairs.
func (d *Dictionary) Len() int {
	return len(d.forward)
}

// Lookup translates a single word toward target. The match is case-insensitive.
func (d *Dictionary) Lookup(word string, target Language) (string, bool) {
	key := cases.Fold().String(word)
	var v string
	var ok bool
	switch target {
	case LangEN:
		v, ok = d.forward[key]
	case LangIT:
		v, ok = d.inverse[key]
	}
	return v, ok
}

// Translation is the outcome of a lexical translation plus the static
// strings of the target language.
type Translation struct {
	Text           string
	BasePrompt     string
	ErrorText      string
	EmptyInputText string
}

// LexicalTranslator rewrites themes word by word between Italian and English.
type LexicalTranslator struct {
	dict *Dictionary
}

// LexicalOption configures a LexicalTranslator.
type LexicalOption func(*LexicalTranslator)

// WithDictionary replaces the built-in dictionary.
func WithDictionary(d *Dictionary) LexicalOption {
	return func(t *LexicalTranslator) {
		if d != nil {
			t.dict = d
		}
	}
}

// NewLexicalTranslator creates a translator using the default dictionary.
func NewLexicalTranslator(opts ...LexicalOption) *LexicalTranslator {
	t := &LexicalTranslator{dict: DefaultDictionary()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate maps text toward target.
//
// Text containing diacritics is treated as Italian and only translated when
// the target is English; text without them is treated as English and only
// translated when the target is Italian. Anything else passes through.
func (t *LexicalTranslator) Translate(text string, target Language) Translation {
	m := MessagesFor(target)
	out := Translation{
		Text:           text,
		BasePrompt:     m.BasePrompt,
		ErrorText:      m.ErrorText,
		EmptyInputText: m.EmptyInputText,
	}

	italian := HasDiacritics(text)
	switch {
	case target == LangEN && italian:
		out.Text = replaceWords(text, t.dict.forward)
	case target == LangIT && !italian:
		out.Text = replaceWords(text, t.dict.inverse)
	}
	return out
}

var defaultTranslator = NewLexicalTranslator()

// Translate uses the default translator.
func Translate(text string, target Language) Translation {
	return defaultTranslator.Translate(text, target)
}

// HasDiacritics reports whether text contains an Italian accented vowel.
func HasDiacritics(text string) bool {
	return strings.ContainsAny(text, diacritics)
}

// replaceWords substitutes whole words found in table, leaving every
// non-word byte in place.
func replaceWords(text string, table map[string]string) string {
	if text == "" || len(table) == 0 {
		return text
	}

	fold := cases.Fold()
	var b strings.Builder
	b.Grow(len(text))

	start := -1
	flush := func(end int) {
		word := text[start:end]
		if repl, ok := table[fold.String(word)]; ok {
			b.WriteString(repl)
		} else {
			b.WriteString(word)
		}
		start = -1
	}

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
		} else {
			if start >= 0 {
				flush(i)
			}
			b.WriteString(text[i : i+size])
		}
		i += size
	}
	if start >= 0 {
		flush(len(text))
	}

	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}
