package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/shadowbox/internal/sentences"
	"github.com/abhisek/shadowbox/internal/store"
	"github.com/spf13/cobra"
)

var sentencesCmd = &cobra.Command{
	Use:   "sentences",
	Short: "List the practice library",
	RunE: func(cmd *cobra.Command, args []string) error {
		language, _ := cmd.Flags().GetString("language")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		lib := sentences.NewLibrary(s.SentenceRepo(), nil)
		items, err := lib.List(context.Background(), language)
		if err != nil {
			return fmt.Errorf("list sentences: %w", err)
		}

		if len(items) == 0 {
			fmt.Println("The library is empty. Add a sentence with `shadowbox add`.")
			return nil
		}

		fmt.Printf("%-5s  %-4s  %-10s  %s\n", "ID", "Lang", "Source", "Sentence")
		fmt.Println(strings.Repeat("─", 80))
		for _, item := range items {
			fmt.Printf("%-5d  %-4s  %-10s  %s\n", item.ID, item.Language, item.Source, item.Text)
		}
		return nil
	},
}

var sentencesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a sentence from the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		lib := sentences.NewLibrary(s.SentenceRepo(), nil)
		if err := lib.Delete(context.Background(), id); err != nil {
			return fmt.Errorf("delete sentence: %w", err)
		}

		fmt.Printf("Deleted sentence %d.\n", id)
		return nil
	},
}

func init() {
	sentencesCmd.Flags().StringP("language", "l", "", "Filter by language code (empty = all)")
	sentencesCmd.AddCommand(sentencesDeleteCmd)
}
