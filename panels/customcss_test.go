package panels

import (
	"context"
	"testing"

	globalstyles "github.com/goliatone/go-global-styles"
)

func TestCustomCSSView(t *testing.T) {
	cases := []struct {
		name     string
		user     string
		theme    string
		value    string
		original string
	}{
		{name: "empty"},
		{
			name:  "theme only",
			theme: ".theme{}",
			value: "/* Theme Custom CSS start */\n.theme{}\n/* Theme Custom CSS end */",
		},
		{name: "user only", user: ".user{}", value: ".user{}"},
		{name: "user over theme", user: ".user{}", theme: ".theme{}", value: ".user{}", original: ".theme{}"},
		{name: "ignored theme", user: IgnoreThemeCustomCSS, theme: ".theme{}", value: "", original: ".theme{}"},
		{name: "marker inside user css", user: IgnoreThemeCustomCSS + ".user{}", theme: ".theme{}", value: ".user{}", original: ".theme{}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			view := NewCustomCSS(tc.user, tc.theme)
			if got := view.Value(); got != tc.value {
				t.Fatalf("value: expected %q, got %q", tc.value, got)
			}
			if got := view.OriginalThemeCSS(); got != tc.original {
				t.Fatalf("original: expected %q, got %q", tc.original, got)
			}
		})
	}
}

func TestCustomCSSApply(t *testing.T) {
	withTheme := NewCustomCSS("", ".theme{}")
	if got := withTheme.Apply(""); got != IgnoreThemeCustomCSS {
		t.Fatalf("expected ignore marker, got %q", got)
	}
	if got := withTheme.Apply(".user{}"); got != ".user{}" {
		t.Fatalf("expected user css, got %q", got)
	}
	if got := NewCustomCSS(".user{}", "").Apply(""); got != "" {
		t.Fatalf("expected empty css without theme, got %q", got)
	}
}

func TestSaveCustomCSSThroughEditor(t *testing.T) {
	ed, err := globalstyles.NewEditor(globalstyles.Document{
		"styles": map[string]any{
			"css": ".theme{}",
			"blocks": map[string]any{
				"core/group": map[string]any{"css": ".group{}"},
			},
		},
	}, nil)
	if err != nil {
		t.Fatalf("editor: %v", err)
	}

	root, err := LoadCustomCSS(ed, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if root.User != "" || root.Theme != ".theme{}" {
		t.Fatalf("root css must not fall back to the theme value, got %+v", root)
	}

	saved, err := SaveCustomCSS(context.Background(), ed, "", "")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.User != IgnoreThemeCustomCSS || saved.Value() != "" {
		t.Fatalf("expected cleared box to store the marker, got %+v", saved)
	}
	stored, _ := ed.GetStyle(cssPath, "", globalstyles.SourceUser)
	if stored != IgnoreThemeCustomCSS {
		t.Fatalf("expected marker in user tier, got %v", stored)
	}

	group, err := LoadCustomCSS(ed, "core/group")
	if err != nil {
		t.Fatalf("load group: %v", err)
	}
	if group.User != ".group{}" || group.Theme != ".group{}" {
		t.Fatalf("block css falls back to the theme value, got %+v", group)
	}
	if group.OriginalThemeCSS() != ".group{}" {
		t.Fatalf("expected original theme css, got %q", group.OriginalThemeCSS())
	}
}
