package gosocial

// Messages holds the static user-facing strings of one language.
type Messages struct {
	BasePrompt         string
	ErrorText          string
	EmptyInputText     string
	NoPreviousTheme    string
	FeedbackThanks     string
	ShareTitle         string
	CopiedForInstagram string
}

var messages = map[Language]Messages{
	LangIT: {
		BasePrompt:         "Genera contenuti social per il tema:",
		ErrorText:          "Si è verificato un errore durante la generazione del contenuto. Riprova più tardi.",
		EmptyInputText:     "Inserisci un tema o parola chiave",
		NoPreviousTheme:    "Nessun tema precedente da rigenerare",
		FeedbackThanks:     "Grazie per il feedback!",
		ShareTitle:         "Contenuto Social Generato",
		CopiedForInstagram: "Contenuto copiato! Aprire Instagram e incollare.",
	},
	LangEN: {
		BasePrompt:         "Generate social content for the theme:",
		ErrorText:          "An error occurred while generating content. Please try again later.",
		EmptyInputText:     "Please enter a theme or keyword",
		NoPreviousTheme:    "No previous theme to regenerate",
		FeedbackThanks:     "Thank you for your feedback!",
		ShareTitle:         "Generated Social Content",
		CopiedForInstagram: "Content copied! Open Instagram and paste.",
	},
}

var suggestions = map[Language][]string{
	LangIT: {"fitness", "cucina", "viaggio", "moda", "tecnologia", "business", "natura", "arte", "musica", "sport"},
	LangEN: {"fitness", "cooking", "travel", "fashion", "technology", "business", "nature", "art", "music", "sports"},
}

// MessagesFor returns the strings for lang. Unknown languages get English.
func MessagesFor(lang Language) Messages {
	if m, ok := messages[lang]; ok {
		return m
	}
	return messages[LangEN]
}

// Suggestions returns theme suggestions for lang.
func Suggestions(lang Language) []string {
	s, ok := suggestions[lang]
	if !ok {
		s = suggestions[LangEN]
	}
	return append([]string(nil), s...)
}
