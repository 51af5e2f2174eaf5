package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"podmill/internal/services/kokoro"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and maintain the processing ledger",
	}

	queueCmd.AddCommand(newQueueListCommand(ctx))
	queueCmd.AddCommand(newQueueClearCommand(ctx))
	queueCmd.AddCommand(newQueueHealthCommand(ctx))

	return queueCmd
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List processed and pending prompts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			items, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "Ledger is empty")
				return nil
			}

			rows := make([][]string, 0, len(items))
			for _, item := range items {
				detail := item.ErrorMessage
				if detail == "" && item.FinalFile != "" {
					detail = filepath.Base(item.FinalFile)
				}
				rows = append(rows, []string{
					strconv.FormatInt(item.ID, 10),
					item.EpisodeName,
					string(item.Status),
					strconv.Itoa(item.SegmentCount),
					formatWhen(item.UpdatedAt),
					truncateDetail(detail),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Episode", "Status", "Segments", "Updated", "Detail"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func newQueueClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all ledger entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d ledger entr%s\n", removed, pluralY(removed))
			return nil
		},
	}
}

func newQueueHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show ledger database health and queue counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			health := store.Health(cmd.Context())
			fmt.Fprintf(out, "Database: %s\n", health.DBPath)
			if health.Error != "" {
				fmt.Fprintf(out, "  Error: %s\n", health.Error)
				return fmt.Errorf("ledger unhealthy")
			}
			fmt.Fprintf(out, "  Schema version: %s\n", health.SchemaVersion)
			fmt.Fprintf(out, "  Items: %d\n", health.TotalItems)

			summary, err := store.Summarize(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Counts: %d pending, %d processing, %d completed, %d failed\n",
				summary.Pending, summary.Processing, summary.Completed, summary.Failed)
			fmt.Fprintf(out, "Pending prompts dir: %s\n", cfg.Paths.PendingDir)

			speech := kokoro.NewClient(
				kokoro.WithBaseURL(cfg.TTS.BaseURL),
				kokoro.WithTimeout(3*time.Second),
			)
			if err := speech.Health(cmd.Context()); err != nil {
				fmt.Fprintf(out, "TTS server: unreachable (%s)\n", cfg.TTS.BaseURL)
			} else {
				fmt.Fprintf(out, "TTS server: ok (%s)\n", cfg.TTS.BaseURL)
			}
			return nil
		},
	}
}

func formatWhen(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Local().Format("2006-01-02 15:04")
}

func truncateDetail(detail string) string {
	detail = strings.TrimSpace(detail)
	const max = 60
	if len(detail) <= max {
		return detail
	}
	return detail[:max-3] + "..."
}

func pluralY(n int64) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
