package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/acarl005/stripansi"
)

// Summary describes a finished generate run
type Summary struct {
	Output      string
	Manifest    string
	Icons       int
	Variants    int
	Fingerprint string
	Written     bool
	DryRun      bool
}

// Status returns the outcome shown for the run
func (s Summary) Status() string {
	switch {
	case s.DryRun:
		return StatusDryRun
	case s.Written:
		return StatusWritten
	default:
		return StatusUnchanged
	}
}

// Validation describes a finished validate run
type Validation struct {
	Manifest string
	Icons    int
	Variants int
	Orphans  []string
}

// Renderer prints user-facing results
type Renderer struct {
	out    io.Writer
	colors *Colors
}

// NewRenderer creates a renderer writing to out
func NewRenderer(out io.Writer, enableColors bool) *Renderer {
	return &Renderer{out: out, colors: NewColors(enableColors)}
}

// printf writes formatted output, dropping escape codes that leak in through
// values (paths, error text) when colors are off
func (r *Renderer) printf(format string, args ...interface{}) {
	s := fmt.Sprintf(format, args...)
	if !r.colors.Enabled() {
		s = stripansi.Strip(s)
	}
	fmt.Fprint(r.out, s)
}

// RenderSummary renders the result of a generate run
func (r *Renderer) RenderSummary(s Summary) {
	status := s.Status()
	r.printf("%s %s %s\n",
		r.colors.StatusSymbol(status),
		r.colors.StatusColor(status, fmt.Sprintf("%-9s", status)),
		r.colors.Bold(s.Output))

	manifest := s.Manifest
	if manifest == "" {
		manifest = "(empty)"
	}
	r.printf("  %s %s\n", r.colors.Gray("manifest:"), manifest)
	r.printf("  %s %d icons, %d variants\n", r.colors.Gray("embedded:"), s.Icons, s.Variants)
	if s.Fingerprint != "" {
		r.printf("  %s %s\n", r.colors.Gray("xxh3:"), s.Fingerprint)
	}
}

// RenderValidation renders the result of a validate run
func (r *Renderer) RenderValidation(v Validation) {
	status := StatusOK
	if len(v.Orphans) > 0 {
		status = StatusWarn
	}

	r.printf("%s %s %s\n",
		r.colors.StatusSymbol(status),
		r.colors.StatusColor(status, fmt.Sprintf("%-9s", status)),
		r.colors.Bold(v.Manifest))
	r.printf("  %s %d icons, %d variants resolve\n", r.colors.Gray("manifest:"), v.Icons, v.Variants)

	if len(v.Orphans) == 0 {
		return
	}
	r.printf("  %s %d asset(s) not referenced:\n", r.colors.Yellow("unused:"), len(v.Orphans))
	for _, o := range v.Orphans {
		r.printf("    • %s\n", o)
	}
}

// RenderError renders a fatal error
func (r *Renderer) RenderError(err error) {
	msg := strings.TrimSpace(err.Error())
	r.printf("%s %s\n", r.colors.Red("ERROR:"), msg)
}
