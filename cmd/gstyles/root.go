package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	globalstyles "github.com/goliatone/go-global-styles"
	"github.com/goliatone/go-global-styles/blocks"
	"github.com/goliatone/go-global-styles/pkg/logging/zerologger"
	"github.com/goliatone/go-global-styles/pkg/state"
	"github.com/goliatone/go-global-styles/themefile"
)

type rootOptions struct {
	theme    string
	user     string
	name     string
	blocks   string
	block    string
	element  string
	source   sourceValue
	logLevel string
}

// session is one resolved theme: the editor plus what Commit needs.
type session struct {
	name     string
	editor   *globalstyles.Editor
	resolver state.Resolver
	meta     state.Meta
	logger   zerolog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "gstyles",
		Short:         "Resolve and edit global styles",
		Long:          "Resolve settings and styles across the base, user and merged tiers of a theme.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.theme, "theme", "theme.json", "base theme file (.json, .jsonc, .yaml, .toml)")
	flags.StringVar(&opts.user, "user", "", "user tier file; writes require it")
	flags.StringVar(&opts.name, "name", "", "theme name (defaults to the theme file name)")
	flags.StringVar(&opts.blocks, "blocks", "", "directory scanned for block.json files")
	flags.StringVar(&opts.block, "block", "", "block name, empty for the root")
	flags.StringVar(&opts.element, "element", "", "element name, such as link or h2")
	flags.Var(&opts.source, "source", "tier to read: all, user or base")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")

	root.AddCommand(
		newSettingCmd(opts),
		newStyleCmd(opts),
		newSetCmd(opts),
		newResetCmd(opts),
		newCanResetCmd(opts),
		newPanelsCmd(opts),
		newDumpCmd(opts),
		newWatchCmd(opts),
	)
	return root
}

func (o *rootOptions) themeName() string {
	if o.name != "" {
		return o.name
	}
	base := filepath.Base(o.theme)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (o *rootOptions) open(cmd *cobra.Command) (*session, error) {
	logger := zerologger.New(zerologger.Config{
		Level:   o.logLevel,
		Output:  cmd.ErrOrStderr(),
		Service: "gstyles",
	})

	editorOpts := []globalstyles.Option{
		globalstyles.WithLogger(zerologger.NewLogger(logger)),
	}
	if o.blocks != "" {
		registry, err := blocks.LoadDir(o.blocks)
		if err != nil {
			return nil, err
		}
		editorOpts = append(editorOpts, globalstyles.WithBlockRegistry(registry))
	}

	name := o.themeName()
	resolver := state.Resolver{Store: themefile.NewStore(o.theme, o.user)}
	ed, meta, err := resolver.Editor(cmd.Context(), name, editorOpts...)
	if err != nil {
		return nil, err
	}
	return &session{
		name:     name,
		editor:   ed,
		resolver: resolver,
		meta:     meta,
		logger:   logger,
	}, nil
}

// commit persists the editor's user tier.
func (s *session) commit(cmd *cobra.Command) error {
	meta, err := s.resolver.Commit(cmd.Context(), s.name, s.editor.Tiers(), s.meta)
	if err != nil {
		return err
	}
	s.meta = meta
	s.logger.Info().
		Str("event", "gstyles.commit").
		Str("theme", s.name).
		Str("etag", meta.ETag).
		Msg("user tier saved")
	return nil
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("gstyles: encode output: %w", err)
	}
	return nil
}

// parseValue reads raw as JSON and falls back to the literal string, so
// both `true` and `#ff0000` work on the command line.
func parseValue(raw string) any {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return raw
	}
	return value
}
