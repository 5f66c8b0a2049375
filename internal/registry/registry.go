// Package registry groups resolved assets by icon name and assigns the Go
// identifiers the emitter declares for them.
//
// Every generated identifier lives in one package scope, so constants,
// per-icon functions and the fixed declarations of the generated file are
// checked against each other. Any clash, including a variant declared twice,
// is a CollisionError.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/drew/iconembed/internal/model"
)

// Reserved are the identifiers the generated file always declares
var Reserved = []string{
	"IconStyle",
	"Outlined",
	"Rounded",
	"Sharp",
	"Icon",
	"NoSuchIconError",
	"NoSuchVariantError",
}

// ErrNamingCollision matches every CollisionError
var ErrNamingCollision = errors.New("naming collision")

// CollisionError reports two declarations competing for one identifier
type CollisionError struct {
	Ident  string
	First  string
	Second string
}

func (e *CollisionError) Error() string {
	if e.First == e.Second {
		return fmt.Sprintf("duplicate icon variant %s (identifier %s)", e.First, e.Ident)
	}
	return fmt.Sprintf("identifier %s is claimed by both %s and %s", e.Ident, e.First, e.Second)
}

// Is makes every CollisionError match ErrNamingCollision
func (e *CollisionError) Is(target error) bool {
	return target == ErrNamingCollision
}

// Variant is one resolved asset and the variable holding its bytes
type Variant struct {
	model.ResolvedAsset
	Const string
}

// Group holds every variant of one icon
type Group struct {
	Name     string
	Func     string
	Variants []Variant
}

// Registry is the sorted set of groups for one generation run
type Registry struct {
	Groups []Group
}

// Len returns the number of variants across all groups
func (r *Registry) Len() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Variants)
	}
	return n
}

// Assets returns every resolved asset in registry order
func (r *Registry) Assets() []model.ResolvedAsset {
	out := make([]model.ResolvedAsset, 0, r.Len())
	for _, g := range r.Groups {
		for _, v := range g.Variants {
			out = append(out, v.ResolvedAsset)
		}
	}
	return out
}

var upper = cases.Upper(language.Und)

// ConstName derives ICON_<NAME>_<FILLED_><STYLE> for a request
func ConstName(req model.IconRequest) string {
	var b strings.Builder
	b.WriteString("ICON_")
	b.WriteString(identUpper(req.Name))
	b.WriteByte('_')
	if req.Filled {
		b.WriteString("FILLED_")
	}
	b.WriteString(upper.String(req.Style.String()))
	return b.String()
}

// FuncName derives the per-icon dispatch function name, e.g. "arrow-back" -> IconArrowBack
func FuncName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var b strings.Builder
	b.WriteString("Icon")
	for _, p := range parts {
		runes := []rune(p)
		// upper casing may decompose, e.g. ǰ -> J + U+030C
		for _, r := range upper.String(string(runes[0])) {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(r)
			}
		}
		b.WriteString(string(runes[1:]))
	}
	return b.String()
}

func identUpper(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return '_'
	}, upper.String(name))
}

// Build groups assets by name and assigns identifiers. Input order does not
// affect the result: groups are sorted by name and variants by style, then
// unfilled before filled.
func Build(assets []model.ResolvedAsset) (*Registry, error) {
	owners := make(map[string]string, len(Reserved)+2*len(assets))
	for _, id := range Reserved {
		owners[id] = "the generated declaration " + id
	}
	claim := func(ident, owner string) error {
		if first, ok := owners[ident]; ok {
			return &CollisionError{Ident: ident, First: first, Second: owner}
		}
		owners[ident] = owner
		return nil
	}

	groups := make(map[string]*Group)
	for _, a := range assets {
		g, ok := groups[a.Name]
		if !ok {
			g = &Group{Name: a.Name, Func: FuncName(a.Name)}
			if err := claim(g.Func, fmt.Sprintf("the dispatch function of icon %q", a.Name)); err != nil {
				return nil, err
			}
			groups[a.Name] = g
		}

		c := ConstName(a.IconRequest)
		if err := claim(c, a.IconRequest.String()); err != nil {
			return nil, err
		}
		g.Variants = append(g.Variants, Variant{ResolvedAsset: a, Const: c})
	}

	reg := &Registry{Groups: make([]Group, 0, len(groups))}
	for _, g := range groups {
		sort.Slice(g.Variants, func(i, j int) bool {
			a, b := g.Variants[i], g.Variants[j]
			if a.Style != b.Style {
				return a.Style < b.Style
			}
			return !a.Filled && b.Filled
		})
		reg.Groups = append(reg.Groups, *g)
	}
	sort.Slice(reg.Groups, func(i, j int) bool {
		return reg.Groups[i].Name < reg.Groups[j].Name
	})

	return reg, nil
}
