package main

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/xonecas/splitpane/internal/journal"
	"github.com/xonecas/splitpane/internal/layout"
	"github.com/xonecas/splitpane/internal/split"
)

func journalCmd(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect and replay recorded gesture sessions",
	}
	cmd.AddCommand(journalListCmd(flags), journalReplayCmd(flags))
	return cmd
}

func journalListCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			j, err := openJournalFor(*flags)
			if err != nil {
				return err
			}
			defer j.Close()

			sessions, err := j.Sessions()
			if err != nil {
				return fmt.Errorf("list sessions: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				_, _ = fmt.Fprintln(out, "no recorded sessions")
				return nil
			}
			t := newTable("ID", "STARTED", "EVENTS", "LABEL")
			for _, s := range sessions {
				t.Row(s.ID, humanize.Time(s.Started), strconv.Itoa(s.Events), s.Label)
			}
			_, _ = fmt.Fprintln(out, t.Render())
			return nil
		},
	}
}

func journalReplayCmd(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <id> [file...]",
		Short: "Replay a session headlessly and print the resulting ratios",
		Long: `Replay feeds a recorded session through a freshly mounted layout. Pass the
same files (or --config) the session was recorded with so divider names match.`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*flags)
			if err != nil {
				return err
			}
			j, err := openJournal(cfg)
			if err != nil {
				return err
			}
			defer j.Close()

			entries, err := j.Events(args[0])
			if err != nil {
				return fmt.Errorf("read session: %w", err)
			}
			if len(entries) == 0 {
				return fmt.Errorf("session %s has no events", args[0])
			}

			root, err := buildLayout(cmd, cfg, *flags, args[1:])
			if err != nil {
				return err
			}
			events := split.NewDispatcher()
			tree, err := layout.Mount(root, events)
			if err != nil {
				return err
			}
			defer tree.Close()

			applied := journal.Replay(entries, events, tree)
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "replayed %d of %d events\n", applied, len(entries))
			t := newTable("SPLIT", "AXIS", "RATIO", "STATE")
			for _, s := range tree.Splits() {
				state := "idle"
				if s.Dragging {
					state = "dragging"
				}
				t.Row(string(s.Element), s.Axis.String(), fmt.Sprintf("%.2f%%", s.Ratio), state)
			}
			_, _ = fmt.Fprintln(out, t.Render())
			return nil
		},
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Faint(true)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...)
}

func openJournalFor(flags Flags) (*journal.Journal, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	return openJournal(cfg)
}
