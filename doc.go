// Package globalstyles resolves and edits a global styles configuration made
// of settings and styles, optionally scoped per block type, across three
// tiers: base (theme defaults), user (editor overrides) and merged (user over
// base).
//
// Reads select a tier with a Source. Setting lookups scoped to a block fall
// back to the root value in the same tier; style lookups do not. Writes always
// patch the user tier copy-on-write, so a Tiers value observed earlier never
// changes.
//
//	ed, _ := globalstyles.NewEditor(base, nil, globalstyles.WithBlockRegistry(registry))
//	_ = ed.SetStyle(ctx, globalstyles.ParsePath("color.text"), "core/group", "#11a")
//	value, _ := ed.GetStyle(globalstyles.ParsePath("color.text"), "core/group", globalstyles.SourceAll)
package globalstyles
