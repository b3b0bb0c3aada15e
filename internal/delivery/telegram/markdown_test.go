package telegram

import "testing"

func TestMarkdownV2(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Hello world", "Hello world"},
		{"escapes punctuation", "Subjects (S) agree.", "Subjects \\(S\\) agree\\."},
		{"strong", "Agree in **number**.", "Agree in *number*\\."},
		{"emphasis", "an *additive* phrase", "an _additive_ phrase"},
		{"paragraphs", "First.\n\n• Second", "First\\.\n\n• Second"},
		{"soft break", "one\ntwo", "one\ntwo"},
		{"code", "use `is` here", "use `is` here"},
		{"list", "- a\n- b", "• a\n• b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := markdownV2(tt.in); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestEscapeCode(t *testing.T) {
	if got := escapeCode("a`b\\c"); got != "a\\`b\\\\c" {
		t.Errorf("unexpected escape %q", got)
	}
}
