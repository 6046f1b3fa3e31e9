package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/shadowbox/internal/sentences"
	"github.com/abhisek/shadowbox/internal/store"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <sentence>",
	Short: "Add a sentence to the practice library",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		language, _ := cmd.Flags().GetString("language")
		text := strings.TrimSpace(strings.Join(args, " "))
		if text == "" {
			return fmt.Errorf("sentence is empty")
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
		id, err := lib.Add(context.Background(), text, language)
		if err != nil {
			return fmt.Errorf("add sentence: %w", err)
		}

		fmt.Printf("Added sentence %d: %s\n", id, text)
		return nil
	},
}

func init() {
	addCmd.Flags().StringP("language", "l", "en", "Sentence language code")
}
