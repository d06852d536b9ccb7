package panels

import (
	"context"

	globalstyles "github.com/goliatone/go-global-styles"
)

// TypographyPath returns the style path edited by the typography panel.
// Headings edit elements.<headingLevel>, plain text edits the root of the
// style and any other element edits elements.<element>. A non-empty
// variation path is prepended.
func TypographyPath(element, headingLevel string, variation globalstyles.Path) globalstyles.Path {
	var prefix globalstyles.Path
	switch element {
	case "", "text":
	case "heading":
		prefix = globalstyles.Path{"elements", TypographyElement(element, headingLevel)}
	default:
		prefix = globalstyles.Path{"elements", element}
	}
	if variation.IsZero() {
		return prefix
	}
	return variation.Join(prefix...)
}

// TypographyElement names the element whose panels the typography screen
// shows. A heading without a level stands for every heading.
func TypographyElement(element, headingLevel string) string {
	if element != "heading" {
		return element
	}
	if headingLevel == "" {
		return "heading"
	}
	return headingLevel
}

// Typography is what the typography screen edits for one target. Values are
// raw: preset references are kept so the controls can show which preset is
// selected.
type Typography struct {
	Path globalstyles.Path
	// Value is the user tier style object at Path.
	Value any
	// Inherited is the style object at Path read through SourceAll, so the
	// base object shows when the user tier holds none.
	Inherited any
	// Settings is the merged settings aggregate for the block.
	Settings map[string]any
}

// LoadTypography reads the typography view of block for element.
func LoadTypography(ed *globalstyles.Editor, block, element, headingLevel string, variation globalstyles.Path) (Typography, error) {
	path := TypographyPath(element, headingLevel, variation)
	value, err := ed.GetStyle(path, block, globalstyles.SourceUser, globalstyles.RawStyle())
	if err != nil {
		return Typography{}, err
	}
	inherited, err := ed.GetStyle(path, block, globalstyles.SourceAll, globalstyles.RawStyle())
	if err != nil {
		return Typography{}, err
	}
	settings, err := ed.Settings(block, globalstyles.SourceAll)
	if err != nil {
		return Typography{}, err
	}
	return Typography{Path: path, Value: value, Inherited: inherited, Settings: settings}, nil
}

// SaveTypography stores value, the full style object edited by the screen,
// without preset encoding and returns the refreshed view.
func SaveTypography(ctx context.Context, ed *globalstyles.Editor, block, element, headingLevel string, variation globalstyles.Path, value map[string]any) (Typography, error) {
	path := TypographyPath(element, headingLevel, variation)
	if err := ed.SetStyle(ctx, path, block, value, globalstyles.RawStyle()); err != nil {
		return Typography{}, err
	}
	return LoadTypography(ed, block, element, headingLevel, variation)
}
