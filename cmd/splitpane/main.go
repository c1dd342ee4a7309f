package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/xonecas/splitpane/internal/config"
	"github.com/xonecas/splitpane/internal/journal"
	"github.com/xonecas/splitpane/internal/layout"
	"github.com/xonecas/splitpane/internal/split"
	"github.com/xonecas/splitpane/internal/tui"
)

// journalRetention bounds how long recorded sessions are kept.
const journalRetention = 30 * 24 * time.Hour

// Flags holds the command-line options shared by every subcommand.
type Flags struct {
	Config  string
	Axis    string
	Ratio   float64
	Extent  string
	Theme   string
	Debug   bool
	Journal bool
}

func main() {
	var flags Flags

	rootCmd := &cobra.Command{
		Use:   "splitpane [flags] [file...]",
		Short: "Resizable split panes in the terminal",
		Long: `splitpane shows files or configured panes side by side and lets you
drag the divider between them with the mouse.`,
		Example: `  # Layout from ~/.config/splitpane or the built-in default
  splitpane

  # Two files, left and right
  splitpane main.go main_test.go

  # One file above an empty pane, 70/30
  splitpane --axis vertical --ratio 70 notes.md

  # Record gestures for later replay
  splitpane --journal a.go b.go`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.Config, "config", "c", "", "Path to a TOML or YAML config file")
	pf.StringVar(&flags.Axis, "axis", "horizontal", "Split axis: horizontal or vertical")
	pf.Float64Var(&flags.Ratio, "ratio", split.DefaultRatio, "Initial size of the first pane, in percent")
	pf.StringVar(&flags.Extent, "extent", "", `Height of the split: "N" rows or "N%" of the window`)
	pf.StringVar(&flags.Theme, "theme", "", "Chroma theme for highlighting")
	pf.BoolVarP(&flags.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&flags.Journal, "journal", false, "Record pointer gestures to the journal")

	rootCmd.AddCommand(journalCmd(&flags))

	if err := fang.Execute(context.Background(), rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithCommit("dev"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, flags Flags, args []string) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cfg, flags.Debug)
	if err != nil {
		return err
	}
	defer closeLog()

	root, err := buildLayout(cmd, cfg, flags, args)
	if err != nil {
		return err
	}
	events := split.NewDispatcher()
	tree, err := layout.Mount(root, events)
	if err != nil {
		return err
	}
	defer tree.Close()

	var j *journal.Journal
	var session string
	if flags.Journal || cfg.Journal.Enabled {
		j, err = openJournal(cfg)
		if err != nil {
			return err
		}
		defer j.Close()
		session, err = j.Begin(sessionLabel(args))
		if err != nil {
			return err
		}
		log.Info().Str("session", session).Msg("journal: recording")
	}

	p := tea.NewProgram(
		tui.New(tui.Options{
			Tree:    tree,
			Events:  events,
			Theme:   cfg.UI.ThemeOrDefault(),
			Journal: j,
			Session: session,
		}),
		tea.WithContext(cmd.Context()),
		tea.WithFilter(tui.MouseEventFilter),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running splitpane: %w", err)
	}
	return nil
}

func loadConfig(flags Flags) (*config.Config, error) {
	path := flags.Config
	if path == "" {
		if dir, err := config.DataDir(); err == nil {
			if def := filepath.Join(dir, "config.toml"); fileExists(def) {
				path = def
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if flags.Theme != "" {
		cfg.UI.Theme = flags.Theme
	}
	return cfg, nil
}

// buildLayout picks the file layout when files are given, otherwise the
// config layout with any explicit --axis/--ratio/--extent applied to its root.
func buildLayout(cmd *cobra.Command, cfg *config.Config, flags Flags, files []string) (*layout.Node, error) {
	theme := cfg.UI.ThemeOrDefault()
	axis, err := split.ParseAxis(flags.Axis)
	if err != nil {
		return nil, err
	}
	if !config.ValidRatio(flags.Ratio) {
		return nil, fmt.Errorf("--ratio=%v must be greater than 0 and at most 100", flags.Ratio)
	}
	if len(files) > 0 {
		return layout.FromFiles(files, axis, flags.Ratio, flags.Extent, theme)
	}

	root, err := layout.FromConfig(cfg.Layout, theme)
	if err != nil {
		return nil, err
	}
	if root.Pane != nil {
		return root, nil
	}
	fs := cmd.Flags()
	if fs.Changed("axis") {
		root.Axis = axis
	}
	if fs.Changed("ratio") {
		root.Ratio = flags.Ratio
	}
	if fs.Changed("extent") {
		root.Extent = flags.Extent
	}
	return root, nil
}

// setupLogging points the global zerolog logger at a file; the terminal
// belongs to the TUI.
func setupLogging(cfg *config.Config, debug bool) (func(), error) {
	path := cfg.Log.File
	if path == "" {
		dir, err := config.EnsureDataDir()
		if err != nil {
			return nil, fmt.Errorf("data dir: %w", err)
		}
		path = filepath.Join(dir, "splitpane.log")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	level := zerolog.InfoLevel
	if cfg.Log.Level != "" {
		if l, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
			level = l
		}
	}
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { _ = f.Close() }, nil
}

func openJournal(cfg *config.Config) (*journal.Journal, error) {
	path := cfg.Journal.Path
	if path == "" {
		dir, err := config.EnsureDataDir()
		if err != nil {
			return nil, fmt.Errorf("data dir: %w", err)
		}
		path = filepath.Join(dir, "journal.db")
	}
	return journal.Open(path, journalRetention)
}

func sessionLabel(files []string) string {
	if len(files) == 0 {
		return "(config layout)"
	}
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	return strings.Join(names, " ")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
