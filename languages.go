package gosocial

import "strings"

// languageNames maps languages to the names used in model prompts.
var languageNames = map[Language]string{
	LangIT: "Italian",
	LangEN: "English",
}

// languageLocales maps languages to their default locale.
var languageLocales = map[Language]string{
	LangIT: "it_IT",
	LangEN: "en_US",
}

// Name returns the English name of the language, or the code if unknown.
func (l Language) Name() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return string(l)
}

// Locale returns the default locale, e.g. "it_IT".
func (l Language) Locale() string {
	return languageLocales[l]
}

// LanguageForCode resolves a wire code or locale ("it", "en_GB", "it-IT")
// to a supported language.
func LanguageForCode(code string) (Language, error) {
	base := strings.Split(NormalizeLocale(strings.TrimSpace(code)), "_")[0]
	return ParseLanguage(base)
}

// NormalizeLocale converts a locale to underscore form ("en-GB" → "en_GB").
func NormalizeLocale(code string) string {
	return strings.ReplaceAll(code, "-", "_")
}
