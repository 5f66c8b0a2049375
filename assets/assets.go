// Package assets embeds static assets used by the iconembed CLI.
package assets

import _ "embed"

// IconsTemplate is the text/template the emitter renders the generated Go file from
//
//go:embed templates/icons.go.tmpl
var IconsTemplate string
