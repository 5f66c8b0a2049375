// Package inspect reads a generated icons file back without compiling it.
//
// It resolves the byte variables and follows the dispatch switches the way the
// compiled code would, so callers can check what Icon(name, style, filled)
// returns for any input. It is test support: only tests and the features
// suite import it.
package inspect

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	// ErrNoSuchIcon mirrors the generated NoSuchIconError panic
	ErrNoSuchIcon = errors.New("no such icon")
	// ErrNoSuchVariant mirrors the generated NoSuchVariantError panic
	ErrNoSuchVariant = errors.New("no such variant")
)

type variantKey struct {
	style  string
	filled bool
}

// File is a parsed generated file
type File struct {
	Package string
	// Literal byte variables by identifier
	Vars map[string][]byte
	// go:embed paths by identifier, slash-separated
	Embeds map[string]string
	// Types declared at package level
	Types []string

	byName  map[string]string
	byStyle map[string]map[variantKey]string
	dir     string
}

// ParseFile parses the generated file at path. Embedded files are resolved
// relative to its directory.
func ParseFile(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(src)
	if err != nil {
		return nil, err
	}
	f.dir = filepath.Dir(path)
	return f, nil
}

// Parse parses generated source
func Parse(src []byte) (*File, error) {
	fset := token.NewFileSet()
	af, err := parser.ParseFile(fset, "icons_gen.go", src, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	f := &File{
		Package: af.Name.Name,
		Vars:    map[string][]byte{},
		Embeds:  map[string]string{},
		byName:  map[string]string{},
		byStyle: map[string]map[variantKey]string{},
	}

	for _, decl := range af.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if err := f.genDecl(d); err != nil {
				return nil, err
			}
		case *ast.FuncDecl:
			if d.Recv != nil || d.Body == nil {
				continue
			}
			if d.Name.Name == "Icon" {
				f.globalDispatch(d)
			} else if strings.HasPrefix(d.Name.Name, "Icon") {
				f.iconDispatch(d)
			}
		}
	}
	return f, nil
}

func (f *File) genDecl(d *ast.GenDecl) error {
	for _, spec := range d.Specs {
		switch s := spec.(type) {
		case *ast.TypeSpec:
			f.Types = append(f.Types, s.Name.Name)
		case *ast.ValueSpec:
			if d.Tok != token.VAR || len(s.Names) != 1 {
				continue
			}
			name := s.Names[0].Name
			if len(s.Values) == 0 {
				if p, ok := embedDirective(d.Doc, s.Doc); ok {
					f.Embeds[name] = p
				}
				continue
			}
			call, ok := s.Values[0].(*ast.CallExpr)
			if !ok || len(call.Args) != 1 {
				continue
			}
			lit, ok := call.Args[0].(*ast.BasicLit)
			if !ok || lit.Kind != token.STRING {
				continue
			}
			v, err := strconv.Unquote(lit.Value)
			if err != nil {
				return fmt.Errorf("unquote %s: %w", name, err)
			}
			f.Vars[name] = []byte(v)
		}
	}
	return nil
}

func embedDirective(groups ...*ast.CommentGroup) (string, bool) {
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			rest, ok := strings.CutPrefix(c.Text, "//go:embed ")
			if !ok {
				continue
			}
			rest = strings.TrimSpace(rest)
			if p, err := strconv.Unquote(rest); err == nil {
				return p, true
			}
			return rest, true
		}
	}
	return "", false
}

func (f *File) globalDispatch(d *ast.FuncDecl) {
	for _, stmt := range d.Body.List {
		sw, ok := stmt.(*ast.SwitchStmt)
		if !ok {
			continue
		}
		for _, c := range sw.Body.List {
			cc := c.(*ast.CaseClause)
			if len(cc.List) != 1 || len(cc.Body) != 1 {
				continue
			}
			lit, ok := cc.List[0].(*ast.BasicLit)
			if !ok {
				continue
			}
			name, err := strconv.Unquote(lit.Value)
			if err != nil {
				continue
			}
			if fn := returnedCall(cc.Body[0]); fn != "" {
				f.byName[name] = fn
			}
		}
	}
}

func returnedCall(stmt ast.Stmt) string {
	ret, ok := stmt.(*ast.ReturnStmt)
	if !ok || len(ret.Results) != 1 {
		return ""
	}
	call, ok := ret.Results[0].(*ast.CallExpr)
	if !ok {
		return ""
	}
	if id, ok := call.Fun.(*ast.Ident); ok {
		return id.Name
	}
	return ""
}

func (f *File) iconDispatch(d *ast.FuncDecl) {
	table := map[variantKey]string{}
	for _, stmt := range d.Body.List {
		sw, ok := stmt.(*ast.SwitchStmt)
		if !ok || sw.Tag != nil {
			continue
		}
		for _, c := range sw.Body.List {
			cc := c.(*ast.CaseClause)
			if len(cc.List) != 1 || len(cc.Body) != 1 {
				continue
			}
			key, ok := caseKey(cc.List[0])
			if !ok {
				continue
			}
			ret, ok := cc.Body[0].(*ast.ReturnStmt)
			if !ok || len(ret.Results) != 1 {
				continue
			}
			if id, ok := ret.Results[0].(*ast.Ident); ok {
				table[key] = id.Name
			}
		}
	}
	f.byStyle[d.Name.Name] = table
}

// caseKey decodes `style == X && filled` or `style == X && !filled`
func caseKey(expr ast.Expr) (variantKey, bool) {
	and, ok := expr.(*ast.BinaryExpr)
	if !ok || and.Op != token.LAND {
		return variantKey{}, false
	}
	eq, ok := and.X.(*ast.BinaryExpr)
	if !ok || eq.Op != token.EQL {
		return variantKey{}, false
	}
	style, ok := eq.Y.(*ast.Ident)
	if !ok {
		return variantKey{}, false
	}
	switch y := and.Y.(type) {
	case *ast.Ident:
		return variantKey{style: style.Name, filled: true}, true
	case *ast.UnaryExpr:
		if y.Op == token.NOT {
			return variantKey{style: style.Name, filled: false}, true
		}
	}
	return variantKey{}, false
}

// Icons returns the names the global dispatch function accepts
func (f *File) Icons() []string {
	names := make([]string, 0, len(f.byName))
	for n := range f.byName {
		names = append(names, n)
	}
	return names
}

// Func returns the per-icon function Icon delegates name to
func (f *File) Func(name string) (string, bool) {
	fn, ok := f.byName[name]
	return fn, ok
}

// Lookup evaluates Icon(name, style, filled). style is the generated
// constant name: Outlined, Rounded or Sharp.
func (f *File) Lookup(name, style string, filled bool) ([]byte, error) {
	fn, ok := f.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchIcon, name)
	}
	ident, ok := f.byStyle[fn][variantKey{style: style, filled: filled}]
	if !ok {
		return nil, fmt.Errorf("%w: %s (style=%s, filled=%t)", ErrNoSuchVariant, name, style, filled)
	}
	if v, ok := f.Vars[ident]; ok {
		return v, nil
	}
	if p, ok := f.Embeds[ident]; ok {
		if f.dir == "" {
			return nil, fmt.Errorf("%s is embedded from %s; use ParseFile to resolve it", ident, p)
		}
		return os.ReadFile(filepath.Join(f.dir, filepath.FromSlash(p)))
	}
	return nil, fmt.Errorf("%s has no value", ident)
}
