// Package model holds the types shared by the iconembed generation pipeline.
package model

import (
	"fmt"
	"strings"
)

// Style is the visual style of an icon variant
type Style int

// Style constants. The zero value is the manifest default.
const (
	StyleOutlined Style = iota
	StyleRounded
	StyleSharp
)

// Styles lists every style in declaration order
var Styles = []Style{StyleOutlined, StyleRounded, StyleSharp}

// String returns the lowercase manifest tag of the style
func (s Style) String() string {
	switch s {
	case StyleOutlined:
		return "outlined"
	case StyleRounded:
		return "rounded"
	case StyleSharp:
		return "sharp"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// Ident returns the name of the generated IconStyle constant for s
func (s Style) Ident() string {
	switch s {
	case StyleRounded:
		return "Rounded"
	case StyleSharp:
		return "Sharp"
	default:
		return "Outlined"
	}
}

// ParseStyle parses a manifest style tag. Tags are case-sensitive.
func ParseStyle(tag string) (Style, error) {
	for _, s := range Styles {
		if s.String() == tag {
			return s, nil
		}
	}
	valid := make([]string, 0, len(Styles))
	for _, s := range Styles {
		valid = append(valid, s.String())
	}
	return StyleOutlined, fmt.Errorf("unknown style %q (valid: %s)", tag, strings.Join(valid, ", "))
}

// IconRequest is one icon variant declared in the manifest
type IconRequest struct {
	Name   string
	Style  Style
	Filled bool
}

// NewIconRequest returns a request for name with the default style and filled flag
func NewIconRequest(name string) IconRequest {
	return IconRequest{Name: name, Style: StyleOutlined}
}

// FileName returns the asset file name for the variant, e.g. "filled-rounded.svg"
func (r IconRequest) FileName() string {
	prefix := ""
	if r.Filled {
		prefix = "filled-"
	}
	return prefix + r.Style.String() + ".svg"
}

// String renders the request the way error messages quote it
func (r IconRequest) String() string {
	return fmt.Sprintf("%s (style=%s, filled=%t)", r.Name, r.Style, r.Filled)
}

// ValidateName reports whether name can be used as an icon name.
// Names become a directory component, so separators and dot names are refused.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("icon name must not be empty")
	case strings.TrimSpace(name) != name:
		return fmt.Errorf("icon name %q has leading or trailing whitespace", name)
	case name == "." || name == "..":
		return fmt.Errorf("icon name %q is not allowed", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("icon name %q must not contain a path separator", name)
	}
	return nil
}

// ResolvedAsset is a request paired with the existing file backing it
type ResolvedAsset struct {
	IconRequest
	// Absolute, cleaned path to the asset
	Path string
}
