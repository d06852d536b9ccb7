package main

import (
	"github.com/spf13/cobra"

	globalstyles "github.com/goliatone/go-global-styles"
	"github.com/goliatone/go-global-styles/panels"
	"github.com/goliatone/go-global-styles/themefile"
)

func optionalPath(args []string) globalstyles.Path {
	if len(args) == 0 {
		return nil
	}
	return globalstyles.ParsePath(args[0])
}

func newSettingCmd(opts *rootOptions) *cobra.Command {
	var trace bool
	cmd := &cobra.Command{
		Use:   "setting [path]",
		Short: "Resolve a setting, or every setting when no path is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := opts.source.Source()
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			path := optionalPath(args)
			if trace && !path.IsZero() {
				value, tr, err := s.editor.TraceSetting(path, opts.block, source)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), map[string]any{"value": value, "trace": tr})
			}
			value, err := s.editor.GetSetting(path, opts.block, source)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), value)
		},
	}
	cmd.Flags().BoolVar(&trace, "trace", false, "report the candidates consulted")
	return cmd
}

func newStyleCmd(opts *rootOptions) *cobra.Command {
	var customCSS bool
	cmd := &cobra.Command{
		Use:   "style [path]",
		Short: "Resolve a style with preset references decoded",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := opts.source.Source()
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			if customCSS {
				css, err := panels.LoadCustomCSS(s.editor, opts.block)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), map[string]string{
					"value":    css.Value(),
					"original": css.OriginalThemeCSS(),
				})
			}
			path := optionalPath(args)
			if opts.element != "" {
				path = globalstyles.Path{"elements", opts.element}.Join(path...)
			}
			value, err := s.editor.GetStyle(path, opts.block, source)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), value)
		},
	}
	cmd.Flags().BoolVar(&customCSS, "custom-css", false, "show the custom CSS box value and the theme CSS it replaces")
	return cmd
}

func newSetCmd(opts *rootOptions) *cobra.Command {
	var style bool
	cmd := &cobra.Command{
		Use:   "set <path> <value>",
		Short: "Write a setting, or a style with --style, to the user tier",
		Long:  "Values are parsed as JSON when possible and stored as strings otherwise.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			path := globalstyles.ParsePath(args[0])
			value := parseValue(args[1])
			if style {
				err = s.editor.SetStyle(cmd.Context(), path, opts.block, value)
			} else {
				err = s.editor.SetSetting(cmd.Context(), path, opts.block, value)
			}
			if err != nil {
				return err
			}
			return s.commit(cmd)
		},
	}
	cmd.Flags().BoolVar(&style, "style", false, "write under styles instead of settings")
	return cmd
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear every user customisation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			if !s.editor.CanReset() {
				return writeJSON(cmd.OutOrStdout(), map[string]bool{"reset": false})
			}
			if err := s.editor.Reset(cmd.Context()); err != nil {
				return err
			}
			if err := s.commit(cmd); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), map[string]bool{"reset": true})
		},
	}
}

func newCanResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "can-reset",
		Short: "Report whether the user tier holds customisations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), s.editor.CanReset())
		},
	}
}

func newPanelsCmd(opts *rootOptions) *cobra.Command {
	var groups bool
	cmd := &cobra.Command{
		Use:   "panels",
		Short: "List the style panels supported by --block and --element",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			supported := s.editor.SupportedPanels(opts.block, opts.element)
			if !groups {
				return writeJSON(cmd.OutOrStdout(), supported)
			}
			shown, err := panels.NewVisibility().Groups(s.editor, opts.block, opts.element)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"panels": supported,
				"groups": shown,
			})
		},
	}
	cmd.Flags().BoolVar(&groups, "groups", false, "also list the panel groups shown")
	return cmd
}

func newDumpCmd(opts *rootOptions) *cobra.Command {
	var fields bool
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the tier selected by --source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			source := opts.source.Source()
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			tiers := s.editor.Tiers()
			doc := tiers.Merged
			switch source {
			case globalstyles.SourceUser:
				doc = tiers.User
			case globalstyles.SourceBase:
				doc = tiers.Base
			}
			if fields {
				return writeJSON(cmd.OutOrStdout(), globalstyles.Flatten(doc))
			}
			return writeJSON(cmd.OutOrStdout(), doc)
		},
	}
	cmd.Flags().BoolVar(&fields, "fields", false, "list leaf paths and their types instead")
	return cmd
}

func newWatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the merged settings of --block whenever the theme file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			unsubscribe := s.editor.Subscribe(func(globalstyles.Tiers) {
				settings, err := s.editor.Settings(opts.block, globalstyles.SourceAll)
				if err != nil {
					s.logger.Error().Err(err).Str("event", "gstyles.watch_settings").Msg("resolve settings")
					return
				}
				_ = writeJSON(out, settings)
			})
			defer unsubscribe()

			watcher, err := themefile.NewWatcher(opts.theme, s.editor, themefile.WithWatcherLogger(s.logger))
			if err != nil {
				return err
			}
			if err := watcher.Start(cmd.Context()); err != nil {
				return err
			}
			defer watcher.Stop()

			select {
			case <-cmd.Context().Done():
			case <-watcher.Done():
			}
			return nil
		},
	}
}
