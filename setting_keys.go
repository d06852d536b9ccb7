package globalstyles

// DefaultSettingKeys returns the dotted setting keys gathered when settings
// are read without an explicit path.
func DefaultSettingKeys() []string {
	return []string{
		"appearanceTools",
		"useRootPaddingAwareAlignments",
		"border.color",
		"border.radius",
		"border.style",
		"border.width",
		"shadow.presets",
		"shadow.defaultPresets",
		"color.background",
		"color.button",
		"color.caption",
		"color.custom",
		"color.customDuotone",
		"color.customGradient",
		"color.defaultDuotone",
		"color.defaultGradients",
		"color.defaultPalette",
		"color.duotone",
		"color.gradients",
		"color.heading",
		"color.link",
		"color.palette",
		"color.text",
		"custom",
		"dimensions.minHeight",
		"layout.contentSize",
		"layout.definitions",
		"layout.wideSize",
		"position.fixed",
		"position.sticky",
		"spacing.customSpacingSize",
		"spacing.spacingSizes",
		"spacing.spacingScale",
		"spacing.blockGap",
		"spacing.margin",
		"spacing.padding",
		"spacing.units",
		"typography.fluid",
		"typography.customFontSize",
		"typography.dropCap",
		"typography.fontFamilies",
		"typography.fontSizes",
		"typography.fontStyle",
		"typography.fontWeight",
		"typography.letterSpacing",
		"typography.lineHeight",
		"typography.textColumns",
		"typography.textDecoration",
		"typography.textTransform",
	}
}

// knownSetting reports whether path is an allow-listed key, lies below one,
// or is an ancestor of one.
func knownSetting(keys []Path, path Path) bool {
	for _, key := range keys {
		if path.HasPrefix(key) || key.HasPrefix(path) {
			return true
		}
	}
	return false
}

func parseKeys(keys []string) []Path {
	out := make([]Path, 0, len(keys))
	for _, key := range keys {
		if parsed := ParsePath(key); !parsed.IsZero() {
			out = append(out, parsed)
		}
	}
	return out
}
