package model

import (
	"strings"
	"testing"
)

func TestStyleString(t *testing.T) {
	tests := []struct {
		style Style
		want  string
		ident string
	}{
		{StyleOutlined, "outlined", "Outlined"},
		{StyleRounded, "rounded", "Rounded"},
		{StyleSharp, "sharp", "Sharp"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.style.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if got := tt.style.Ident(); got != tt.ident {
				t.Errorf("Ident() = %q, want %q", got, tt.ident)
			}
		})
	}

	if got := Style(7).String(); got != "Style(7)" {
		t.Errorf("unknown style String() = %q", got)
	}
}

func TestParseStyle(t *testing.T) {
	for _, s := range Styles {
		got, err := ParseStyle(s.String())
		if err != nil {
			t.Fatalf("ParseStyle(%q) error = %v", s.String(), err)
		}
		if got != s {
			t.Errorf("ParseStyle(%q) = %v, want %v", s.String(), got, s)
		}
	}

	for _, tag := range []string{"", "Outlined", "ROUNDED", "bold"} {
		if _, err := ParseStyle(tag); err == nil {
			t.Errorf("ParseStyle(%q) expected error", tag)
		}
	}
}

func TestNewIconRequestDefaults(t *testing.T) {
	got := NewIconRequest("home")
	want := IconRequest{Name: "home", Style: StyleOutlined, Filled: false}
	if got != want {
		t.Errorf("NewIconRequest() = %+v, want %+v", got, want)
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		req  IconRequest
		want string
	}{
		{IconRequest{Name: "home"}, "outlined.svg"},
		{IconRequest{Name: "home", Filled: true}, "filled-outlined.svg"},
		{IconRequest{Name: "settings", Style: StyleRounded, Filled: true}, "filled-rounded.svg"},
		{IconRequest{Name: "x", Style: StyleSharp}, "sharp.svg"},
	}

	for _, tt := range tests {
		if got := tt.req.FileName(); got != tt.want {
			t.Errorf("%v FileName() = %q, want %q", tt.req, got, tt.want)
		}
	}
}

func TestValidateName(t *testing.T) {
	valid := []string{"home", "arrow-back", "arrow_back", "3d", "café"}
	for _, name := range valid {
		if err := ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q) unexpected error: %v", name, err)
		}
	}

	invalid := map[string]string{
		"":      "empty",
		" home": "whitespace",
		".":     "not allowed",
		"..":    "not allowed",
		"a/b":   "path separator",
		`a\b`:   "path separator",
	}
	for name, want := range invalid {
		err := ValidateName(name)
		if err == nil {
			t.Errorf("ValidateName(%q) expected error", name)
			continue
		}
		if !strings.Contains(err.Error(), want) {
			t.Errorf("ValidateName(%q) error = %q, want it to contain %q", name, err, want)
		}
	}
}
