package panels

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	globalstyles "github.com/goliatone/go-global-styles"
)

func TestTypographyPath(t *testing.T) {
	cases := []struct {
		name      string
		element   string
		level     string
		variation globalstyles.Path
		want      globalstyles.Path
	}{
		{name: "root", want: nil},
		{name: "text", element: "text", want: nil},
		{name: "heading level", element: "heading", level: "h2", want: globalstyles.Path{"elements", "h2"}},
		{name: "all headings", element: "heading", want: globalstyles.Path{"elements", "heading"}},
		{name: "link", element: "link", want: globalstyles.Path{"elements", "link"}},
		{
			name:      "variation",
			element:   "button",
			variation: globalstyles.Path{"variations", "outline"},
			want:      globalstyles.Path{"variations", "outline", "elements", "button"},
		},
		{
			name:      "variation root",
			variation: globalstyles.Path{"variations", "outline"},
			want:      globalstyles.Path{"variations", "outline"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TypographyPath(tc.element, tc.level, tc.variation)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("path mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTypographyElement(t *testing.T) {
	if got := TypographyElement("heading", "h3"); got != "h3" {
		t.Fatalf("expected h3, got %q", got)
	}
	if got := TypographyElement("link", "h3"); got != "link" {
		t.Fatalf("expected link, got %q", got)
	}
}

func typographyEditor(t *testing.T) *globalstyles.Editor {
	t.Helper()
	ed, err := globalstyles.NewEditor(globalstyles.Document{
		"settings": map[string]any{
			"typography": map[string]any{
				"fontSizes": map[string]any{
					"theme": []any{map[string]any{"slug": "large", "size": "2rem"}},
				},
			},
		},
		"styles": map[string]any{
			"elements": map[string]any{
				"h3": map[string]any{"typography": map[string]any{"lineHeight": "1.2"}},
			},
		},
	}, globalstyles.Document{
		"settings": map[string]any{},
		"styles": map[string]any{
			"elements": map[string]any{
				"h2": map[string]any{"typography": map[string]any{"fontSize": "var:preset|font-size|large"}},
			},
		},
	})
	if err != nil {
		t.Fatalf("editor: %v", err)
	}
	return ed
}

func TestLoadTypographyKeepsPresetReferences(t *testing.T) {
	ed := typographyEditor(t)

	view, err := LoadTypography(ed, "", "heading", "h2", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := map[string]any{"typography": map[string]any{"fontSize": "var:preset|font-size|large"}}
	if diff := cmp.Diff(globalstyles.Path{"elements", "h2"}, view.Path); diff != "" {
		t.Fatalf("path mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(any(want), view.Value); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(any(want), view.Inherited); diff != "" {
		t.Fatalf("inherited mismatch (-want +got):\n%s", diff)
	}
	if _, ok := view.Settings["typography"]; !ok {
		t.Fatalf("expected typography settings in the aggregate, got %v", view.Settings)
	}

	decoded, err := ed.GetStyle(view.Path.Join("typography", "fontSize"), "", globalstyles.SourceAll)
	if err != nil {
		t.Fatalf("decoded read: %v", err)
	}
	if decoded != "2rem" {
		t.Fatalf("expected decoded read to resolve the preset, got %v", decoded)
	}

	h3, err := LoadTypography(ed, "", "heading", "h3", nil)
	if err != nil {
		t.Fatalf("load h3: %v", err)
	}
	if h3.Value != nil {
		t.Fatalf("expected no user value for h3, got %v", h3.Value)
	}
	if diff := cmp.Diff(any(map[string]any{"typography": map[string]any{"lineHeight": "1.2"}}), h3.Inherited); diff != "" {
		t.Fatalf("inherited h3 mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveTypographyStoresRawValues(t *testing.T) {
	ed := typographyEditor(t)
	ctx := context.Background()

	view, err := SaveTypography(ctx, ed, "", "", "", nil, map[string]any{
		"typography": map[string]any{"fontSize": "2rem"},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	got, _ := view.Value.(map[string]any)
	if diff := cmp.Diff(map[string]any{"fontSize": "2rem"}, got["typography"]); diff != "" {
		t.Fatalf("raw save mismatch (-want +got):\n%s", diff)
	}

	path := globalstyles.ParsePath("typography.fontSize")
	if err := ed.SetStyle(ctx, path, "", "2rem"); err != nil {
		t.Fatalf("encoded set: %v", err)
	}
	stored, _ := ed.GetStyle(path, "", globalstyles.SourceUser, globalstyles.RawStyle())
	if stored != "var:preset|font-size|large" {
		t.Fatalf("expected encoded preset reference, got %v", stored)
	}
	if err := ed.SetStyle(ctx, path, "", "2rem", globalstyles.RawStyle()); err != nil {
		t.Fatalf("raw set: %v", err)
	}
	stored, _ = ed.GetStyle(path, "", globalstyles.SourceUser, globalstyles.RawStyle())
	if stored != "2rem" {
		t.Fatalf("expected raw literal, got %v", stored)
	}
}
