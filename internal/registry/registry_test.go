package registry

import (
	"errors"
	"go/token"
	"strings"
	"testing"

	"github.com/drew/iconembed/internal/model"
)

func asset(name string, style model.Style, filled bool) model.ResolvedAsset {
	req := model.IconRequest{Name: name, Style: style, Filled: filled}
	return model.ResolvedAsset{IconRequest: req, Path: "/icons/" + name + "/" + req.FileName()}
}

func TestConstName(t *testing.T) {
	tests := []struct {
		req  model.IconRequest
		want string
	}{
		{model.NewIconRequest("home"), "ICON_HOME_OUTLINED"},
		{model.IconRequest{Name: "settings", Style: model.StyleRounded, Filled: true}, "ICON_SETTINGS_FILLED_ROUNDED"},
		{model.IconRequest{Name: "close", Style: model.StyleSharp}, "ICON_CLOSE_SHARP"},
		{model.NewIconRequest("arrow-back"), "ICON_ARROW_BACK_OUTLINED"},
		{model.NewIconRequest("arrow_back"), "ICON_ARROW_BACK_OUTLINED"},
		{model.NewIconRequest("3d_rotation"), "ICON_3D_ROTATION_OUTLINED"},
		{model.NewIconRequest("café"), "ICON_CAFÉ_OUTLINED"},
	}
	for _, tt := range tests {
		if got := ConstName(tt.req); got != tt.want {
			t.Errorf("ConstName(%v) = %q, want %q", tt.req, got, tt.want)
		}
	}
}

func TestFuncName(t *testing.T) {
	tests := map[string]string{
		"home":         "IconHome",
		"arrow-back":   "IconArrowBack",
		"arrow_back":   "IconArrowBack",
		"account.box":  "IconAccountBox",
		"arrowForward": "IconArrowForward",
		"---":          "Icon",
		"ñandú":        "IconÑandú",
		"ǰ":            "IconJ",
		"ΐ":            "IconΙ",
	}
	for name, want := range tests {
		if got := FuncName(name); got != want {
			t.Errorf("FuncName(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestIdentifiersValidForDecomposingNames(t *testing.T) {
	for _, name := range []string{"ǰ", "ΐ", "ŉ-arrow", "ß"} {
		if fn := FuncName(name); !token.IsIdentifier(fn) {
			t.Errorf("FuncName(%q) = %q is not an identifier", name, fn)
		}
		if c := ConstName(model.NewIconRequest(name)); !token.IsIdentifier(c) {
			t.Errorf("ConstName(%q) = %q is not an identifier", name, c)
		}
	}
}

func TestConstNameDeterministicAndInjective(t *testing.T) {
	names := []string{"home", "settings", "close", "menu"}
	seen := map[string]model.IconRequest{}
	for _, name := range names {
		for _, style := range model.Styles {
			for _, filled := range []bool{false, true} {
				req := model.IconRequest{Name: name, Style: style, Filled: filled}
				c := ConstName(req)
				if again := ConstName(req); again != c {
					t.Fatalf("ConstName not deterministic: %q vs %q", c, again)
				}
				if prev, ok := seen[c]; ok {
					t.Fatalf("ConstName(%v) = %q collides with %v", req, c, prev)
				}
				seen[c] = req
			}
		}
	}
}

func TestBuildGroupsAndSorts(t *testing.T) {
	reg, err := Build([]model.ResolvedAsset{
		asset("settings", model.StyleRounded, true),
		asset("home", model.StyleSharp, false),
		asset("home", model.StyleOutlined, true),
		asset("home", model.StyleOutlined, false),
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(reg.Groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(reg.Groups))
	}
	if reg.Len() != 4 {
		t.Errorf("Len() = %d, want 4", reg.Len())
	}

	home := reg.Groups[0]
	if home.Name != "home" || home.Func != "IconHome" {
		t.Errorf("first group = %s/%s, want home/IconHome", home.Name, home.Func)
	}
	var consts []string
	for _, v := range home.Variants {
		consts = append(consts, v.Const)
	}
	want := "ICON_HOME_OUTLINED,ICON_HOME_FILLED_OUTLINED,ICON_HOME_SHARP"
	if got := strings.Join(consts, ","); got != want {
		t.Errorf("home variants = %s, want %s", got, want)
	}

	if reg.Groups[1].Name != "settings" || reg.Groups[1].Variants[0].Const != "ICON_SETTINGS_FILLED_ROUNDED" {
		t.Errorf("unexpected settings group: %+v", reg.Groups[1])
	}
}

func TestBuildOrderInsensitive(t *testing.T) {
	a := []model.ResolvedAsset{
		asset("b", model.StyleSharp, true),
		asset("a", model.StyleOutlined, false),
		asset("b", model.StyleOutlined, false),
	}
	b := []model.ResolvedAsset{a[2], a[1], a[0]}

	ra, err := Build(a)
	if err != nil {
		t.Fatalf("Build(a) error = %v", err)
	}
	rb, err := Build(b)
	if err != nil {
		t.Fatalf("Build(b) error = %v", err)
	}

	assetsA, assetsB := ra.Assets(), rb.Assets()
	if len(assetsA) != len(assetsB) {
		t.Fatalf("asset counts differ: %d vs %d", len(assetsA), len(assetsB))
	}
	for i := range assetsA {
		if assetsA[i] != assetsB[i] {
			t.Errorf("asset %d differs: %+v vs %+v", i, assetsA[i], assetsB[i])
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	reg, err := Build(nil)
	if err != nil {
		t.Fatalf("Build(nil) error = %v", err)
	}
	if len(reg.Groups) != 0 || reg.Len() != 0 {
		t.Errorf("expected empty registry, got %+v", reg)
	}
}

func TestBuildCollisions(t *testing.T) {
	tests := []struct {
		name    string
		assets  []model.ResolvedAsset
		ident   string
		wantMsg string
	}{
		{
			name: "duplicate variant",
			assets: []model.ResolvedAsset{
				asset("home", model.StyleOutlined, false),
				asset("home", model.StyleOutlined, false),
			},
			ident:   "ICON_HOME_OUTLINED",
			wantMsg: "duplicate icon variant",
		},
		{
			name: "sanitized names collide",
			assets: []model.ResolvedAsset{
				asset("arrow-back", model.StyleOutlined, false),
				asset("arrow_back", model.StyleOutlined, false),
			},
			ident:   "IconArrowBack",
			wantMsg: "claimed by both",
		},
		{
			name: "reserved function name",
			assets: []model.ResolvedAsset{
				asset("style", model.StyleOutlined, false),
			},
			ident:   "IconStyle",
			wantMsg: "the generated declaration IconStyle",
		},
		{
			name: "name without identifier characters",
			assets: []model.ResolvedAsset{
				asset("--", model.StyleOutlined, false),
			},
			ident:   "Icon",
			wantMsg: "claimed by both",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.assets)
			if !errors.Is(err, ErrNamingCollision) {
				t.Fatalf("expected ErrNamingCollision, got %v", err)
			}
			var ce *CollisionError
			if !errors.As(err, &ce) {
				t.Fatalf("expected *CollisionError, got %T", err)
			}
			if ce.Ident != tt.ident {
				t.Errorf("Ident = %q, want %q", ce.Ident, tt.ident)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}
