package panels

import (
	"context"
	"strings"

	globalstyles "github.com/goliatone/go-global-styles"
)

// IgnoreThemeCustomCSS is stored in place of an empty user value so that
// clearing the box does not bring the theme CSS back.
const IgnoreThemeCustomCSS = "/* IgnoreThemeCustomCSS */"

const (
	themeCSSStart = "/* Theme Custom CSS start */"
	themeCSSEnd   = "/* Theme Custom CSS end */"
)

var cssPath = globalstyles.Path{"css"}

// CustomCSS is the view state of the custom CSS box for one block or the
// root.
type CustomCSS struct {
	User  string
	Theme string
}

// NewCustomCSS builds the view state from the stored user value and the
// theme value.
func NewCustomCSS(user, theme string) CustomCSS {
	return CustomCSS{User: user, Theme: theme}
}

// LoadCustomCSS reads the css style of block from ed. An empty block reads
// the root.
func LoadCustomCSS(ed *globalstyles.Editor, block string) (CustomCSS, error) {
	user, err := ed.GetStyle(cssPath, block, globalstyles.SourceAll)
	if err != nil {
		return CustomCSS{}, err
	}
	theme, err := ed.GetStyle(cssPath, block, globalstyles.SourceBase)
	if err != nil {
		return CustomCSS{}, err
	}
	return NewCustomCSS(asString(user), asString(theme)), nil
}

// ThemeCSS returns the theme CSS wrapped in start/end markers when the user
// has not written any CSS, and "" otherwise.
func (c CustomCSS) ThemeCSS() string {
	if c.User != "" || c.Theme == "" {
		return ""
	}
	return themeCSSStart + "\n" + c.Theme + "\n" + themeCSSEnd
}

// Value is the text shown in the box.
func (c CustomCSS) Value() string {
	if value := strings.Replace(c.User, IgnoreThemeCustomCSS, "", 1); value != "" {
		return value
	}
	return c.ThemeCSS()
}

// Apply returns the value to store for an edit. Clearing the box while the
// theme carries CSS stores the ignore marker.
func (c CustomCSS) Apply(value string) string {
	if c.Theme != "" && value == "" {
		return IgnoreThemeCustomCSS
	}
	return value
}

// OriginalThemeCSS returns the theme CSS when the user CSS replaces it, so
// it can be shown for reference.
func (c CustomCSS) OriginalThemeCSS() string {
	if c.Theme == "" || c.User == "" || c.ThemeCSS() == c.User {
		return ""
	}
	return c.Theme
}

// SaveCustomCSS stores an edit of the custom CSS box of block.
func SaveCustomCSS(ctx context.Context, ed *globalstyles.Editor, block, value string) (CustomCSS, error) {
	current, err := LoadCustomCSS(ed, block)
	if err != nil {
		return CustomCSS{}, err
	}
	stored := current.Apply(value)
	if err := ed.SetStyle(ctx, cssPath, block, stored); err != nil {
		return CustomCSS{}, err
	}
	return NewCustomCSS(stored, current.Theme), nil
}

func asString(value any) string {
	s, _ := value.(string)
	return s
}
