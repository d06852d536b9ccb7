// Package state defines persistence-facing contracts for loading and saving
// the stored tiers of a global styles document, plus a small resolver that
// turns them into globalstyles.Tiers.
//
// Responsibilities:
//   - Store only loads/saves a single document for a single Ref.
//   - Resolver loads the base and user tiers of one theme and builds Tiers.
//     The merged tier is derived and never persisted.
//   - Resolver.Commit/Mutate write the user tier back with optimistic
//     concurrency on Meta.ETag.
//
// Data flow:
//
//	Store -> Resolver -> globalstyles.NewTiers(base, user) -> Editor
//
// Deterministic keys:
//
//	Ref.Identifier() yields `base/<theme>` for the theme tier and
//	`user/<theme>` or `user/<user_id>/<theme>` for the user tier.
package state
