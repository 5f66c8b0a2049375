package ui

import (
	"strings"
	"testing"
)

func TestColors(t *testing.T) {
	c := NewColors(true)

	tests := []struct {
		name string
		fn   func(string) string
		code string
	}{
		{"red", c.Red, ColorRed},
		{"green", c.Green, ColorGreen},
		{"yellow", c.Yellow, ColorYellow},
		{"blue", c.Blue, ColorBlue},
		{"gray", c.Gray, ColorGray},
		{"bold", c.Bold, ColorBold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn("test")
			if got != tt.code+"test"+ColorReset {
				t.Errorf("got %q", got)
			}
		})
	}
}

func TestColorsDisabled(t *testing.T) {
	c := NewColors(false)

	for _, got := range []string{c.Red("test"), c.Green("test"), c.Bold("test")} {
		if got != "test" {
			t.Errorf("Expected plain text with colors disabled, got %q", got)
		}
	}
	if c.Enabled() {
		t.Error("Enabled() = true, want false")
	}
}

func TestStatusSymbol(t *testing.T) {
	c := NewColors(false)

	tests := map[string]string{
		StatusWritten:   "✓",
		StatusOK:        "✓",
		StatusFail:      "✗",
		StatusWarn:      "⚠",
		StatusDryRun:    "⋯",
		StatusUnchanged: "=",
		"UNKNOWN":       " ",
	}

	for status, want := range tests {
		t.Run(status, func(t *testing.T) {
			if got := c.StatusSymbol(status); got != want {
				t.Errorf("StatusSymbol(%s) = %q, want %q", status, got, want)
			}
		})
	}
}

func TestStatusColor(t *testing.T) {
	c := NewColors(true)

	tests := []struct {
		status string
		code   string
	}{
		{StatusWritten, ColorGreen},
		{StatusFail, ColorRed},
		{StatusWarn, ColorYellow},
		{StatusDryRun, ColorBlue},
		{StatusUnchanged, ColorGray},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got := c.StatusColor(tt.status, "x")
			if !strings.HasPrefix(got, tt.code) {
				t.Errorf("StatusColor(%s) = %q, want prefix %q", tt.status, got, tt.code)
			}
		})
	}

	if got := c.StatusColor("UNKNOWN", "x"); got != "x" {
		t.Errorf("StatusColor(UNKNOWN) = %q, want plain", got)
	}
}
