package composer

import "testing"

func TestCleanGeneratedText(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		prompt string
		want   string
	}{
		{
			name: "first sentence",
			text: "Sunset over the bay is magic. More words follow here.",
			want: "Sunset over the bay is magic.",
		},
		{
			name: "adds period",
			text: "Sunset over the bay is magic",
			want: "Sunset over the bay is magic.",
		},
		{
			name: "splits on exclamation",
			text: "What a beautiful morning! Let's go.",
			want: "What a beautiful morning.",
		},
		{
			name:   "removes prompt",
			text:   "Write a caption about: Fresh pasta made by hand today",
			prompt: "Write a caption about:",
			want:   "Fresh pasta made by hand today.",
		},
		{
			name: "strips symbols",
			text: "Coffee ☕ time #morning @home",
			want: "Coffee  time morning home.",
		},
		{
			name: "short text",
			text: "  Hi there  ",
			want: "Hi there",
		},
		{
			name: "strips markup",
			text: "<p>Fresh bread every <b>single</b> morning</p><script>x()</script>",
			want: "Fresh bread every single morning.",
		},
		{
			name: "accented letters",
			text: "Perché il caffè è così buono",
			want: "Perché il caffè è così buono.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanGeneratedText(tt.text, tt.prompt)
			if got != tt.want {
				t.Errorf("CleanGeneratedText(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestCleanGeneratedText_WordFallback(t *testing.T) {
	// First sentence is too short, so the first 15 words are used.
	text := "Go. one two three four five six seven eight nine ten eleven twelve thirteen fourteen fifteen sixteen"
	got := CleanGeneratedText(text, "")
	want := "Go. one two three four five six seven eight nine ten eleven twelve thirteen fourteen."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
