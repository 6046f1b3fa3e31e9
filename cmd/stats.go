package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/shadowbox/internal/stats"
	"github.com/abhisek/shadowbox/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		svc := stats.NewService(s.PracticeRepo())
		report, err := svc.Report(context.Background())
		if err != nil {
			return fmt.Errorf("build report: %w", err)
		}

		if report.Totals.Practices == 0 {
			fmt.Println("No practices recorded yet. Run `shadowbox` to start.")
			return nil
		}

		t := report.Totals
		fmt.Printf("Practices: %d across %d sentences over %d days\n",
			t.Practices, t.Sentences, t.Days)
		fmt.Printf("Accuracy:  %d%% average (%d/%d words)\n",
			t.AvgAccuracy, t.Correct, t.Attempts)
		fmt.Printf("Streak:    %d days (best %d)\n",
			report.Streaks.Current, report.Streaks.Best)

		if len(report.Languages) > 0 {
			fmt.Println()
			fmt.Printf("%-8s  %10s  %9s\n", "Language", "Practices", "Accuracy")
			fmt.Println(strings.Repeat("─", 32))
			for _, l := range report.Languages {
				fmt.Printf("%-8s  %10d  %8d%%\n", l.Language, l.Practices, l.AvgAccuracy)
			}
		}

		if len(report.Recent) > 0 {
			fmt.Println()
			fmt.Println("Recent sessions")
			fmt.Println(strings.Repeat("─", 72))
			for _, p := range report.Recent {
				sentence := p.Sentence
				if len(sentence) > 40 {
					sentence = sentence[:40] + "…"
				}
				fmt.Printf("%-16s  %-6s  %3d%%  %s\n",
					p.Timestamp.Local().Format("Jan 02 15:04"),
					p.Mode, p.Accuracy, sentence)
			}
		}
		return nil
	},
}
