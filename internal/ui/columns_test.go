package ui

import (
	"os"
	"testing"
)

func TestColumns(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	plain := Formatter{prefix: "", suffix: ""}
	cols := []Column{{Format: plain}, {Format: plain, AlignLeft: true}}
	rows := [][]string{
		{"3", "pen"},
		{"250", "resistor"},
	}

	got := Columns("  ", cols, rows)
	want := "    3  pen\n" +
		"  250  resistor\n"
	if got != want {
		t.Errorf("Columns() = %q, want %q", got, want)
	}
}

func TestColumnsPadsLeftAlignedMiddleColumn(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	plain := Formatter{}
	cols := []Column{{Format: plain, AlignLeft: true}, {Format: plain, AlignLeft: true}}
	rows := [][]string{
		{"Top", "2 items"},
		{"Bottom", "1 item"},
	}

	got := Columns("", cols, rows)
	want := "Top     2 items\n" +
		"Bottom  1 item\n"
	if got != want {
		t.Errorf("Columns() = %q, want %q", got, want)
	}
}

func TestColumnsEmpty(t *testing.T) {
	if got := Columns("", []Column{{Format: Formatter{}}}, nil); got != "" {
		t.Errorf("Columns() with no rows = %q, want empty", got)
	}
}
