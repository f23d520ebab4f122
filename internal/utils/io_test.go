package utils

import (
	"bufio"
	"strings"
	"testing"
)

func TestReadPasswordLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"UnixNewline", "pw1\n", "pw1"},
		{"WindowsNewline", "pw1\r\n", "pw1"},
		{"NoNewline", "pw1", "pw1"},
		{"OnlyFirstLine", "pw1\nsomething else\n", "pw1"},
		{"KeepsSpaces", "  spaced pw \n", "  spaced pw "},
		{"Empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ReadPasswordLine(strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("ReadPasswordLine failed: %v", err)
			}
			if got != tc.expected {
				t.Errorf("ReadPasswordLine(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestReadPasswordLine_SharedReader(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("pw1\nlist\nexit\n"))

	pw, err := ReadPasswordLine(r)
	if err != nil || pw != "pw1" {
		t.Fatalf("ReadPasswordLine() = %q, %v", pw, err)
	}

	rest, err := ReadPasswordLine(r)
	if err != nil || rest != "list" {
		t.Errorf("Expected the next line to remain readable, got %q, %v", rest, err)
	}
}
