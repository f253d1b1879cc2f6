package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/focuspro/internal/cli/formatter"
	"github.com/alexanderramin/focuspro/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// outcomeFlag restricts history to one session outcome.
type outcomeFlag struct {
	outcome domain.SessionOutcome
}

var _ pflag.Value = (*outcomeFlag)(nil)

func (f *outcomeFlag) String() string { return string(f.outcome) }

func (f *outcomeFlag) Type() string { return "outcome" }

func (f *outcomeFlag) Set(s string) error {
	switch o := domain.SessionOutcome(strings.ToLower(s)); o {
	case domain.OutcomeFinished, domain.OutcomeIdleSaved, domain.OutcomeExitSaved:
		f.outcome = o
		return nil
	}
	return fmt.Errorf("must be one of %s, %s, %s",
		domain.OutcomeFinished, domain.OutcomeIdleSaved, domain.OutcomeExitSaved)
}

func (f *outcomeFlag) keep(entries []*domain.JournalEntry) []*domain.JournalEntry {
	if f.outcome == "" {
		return entries
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.Outcome == f.outcome {
			kept = append(kept, e)
		}
	}
	return kept
}

func newHistoryCmd(app *App) *cobra.Command {
	var limit int
	var unsynced bool
	var prune time.Duration
	var outcome outcomeFlag

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently finished and auto-saved sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if prune > 0 {
				n, err := app.Journal.Prune(ctx, prune)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed %d journal entries older than %s.\n", n, prune)
				return nil
			}

			var entries []*domain.JournalEntry
			var err error
			if unsynced {
				entries, err = app.Journal.Unsynced(ctx, limit)
			} else {
				entries, err = app.Journal.Recent(ctx, limit)
			}
			if err != nil {
				return err
			}

			fmt.Fprint(out, formatter.FormatHistory(outcome.keep(entries), app.clockOrReal().Now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of sessions to show (0 for all)")
	cmd.Flags().BoolVar(&unsynced, "unsynced", false, "Only show sessions with a failed backend write")
	cmd.Flags().Var(&outcome, "outcome", "Only show sessions with this outcome (finished, idle_saved, exit_saved)")
	cmd.Flags().DurationVar(&prune, "prune", 0, "Delete journal entries older than this duration (e.g. 720h)")

	return cmd
}
