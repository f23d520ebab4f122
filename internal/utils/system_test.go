package utils

import (
	"testing"
)

func TestGetUsername(t *testing.T) {
	name, err := GetUsername()
	if err != nil {
		t.Skipf("no current user available: %v", err)
	}
	if name == "" {
		t.Fatal("Expected non-empty username")
	}
}

func TestPlural(t *testing.T) {
	tests := []struct {
		n        int
		word     string
		expected string
	}{
		{0, "item", "0 items"},
		{1, "item", "1 item"},
		{2, "drawer", "2 drawers"},
		{3, "match", "3 matches"},
		{1, "match", "1 match"},
		{2, "box", "2 boxes"},
	}

	for _, tc := range tests {
		if got := Plural(tc.n, tc.word); got != tc.expected {
			t.Errorf("Plural(%d, %q) = %q, expected %q", tc.n, tc.word, got, tc.expected)
		}
	}
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		line     string
		expected []string
	}{
		{"", nil},
		{"   ", nil},
		{"add Top pen 3", []string{"add", "Top", "pen", "3"}},
		{`add "Tool box" 'allen key' 12`, []string{"add", "Tool box", "allen key", "12"}},
		{`show ""`, []string{"show", ""}},
		{`search pen\ cap`, []string{"search", "pen cap"}},
		{`create "it's"`, []string{"create", "it's"}},
		{"  list\t ", []string{"list"}},
	}

	for _, tc := range tests {
		got, err := SplitWords(tc.line)
		if err != nil {
			t.Errorf("SplitWords(%q) failed: %v", tc.line, err)
			continue
		}
		if len(got) != len(tc.expected) {
			t.Errorf("SplitWords(%q) = %q, expected %q", tc.line, got, tc.expected)
			continue
		}
		for i := range got {
			if got[i] != tc.expected[i] {
				t.Errorf("SplitWords(%q) = %q, expected %q", tc.line, got, tc.expected)
				break
			}
		}
	}
}

func TestSplitWords_Unterminated(t *testing.T) {
	for _, line := range []string{`show "Top`, `show 'Top`, `show Top\`} {
		if _, err := SplitWords(line); err != ErrUnterminatedQuote {
			t.Errorf("SplitWords(%q) error = %v, expected ErrUnterminatedQuote", line, err)
		}
	}
}
