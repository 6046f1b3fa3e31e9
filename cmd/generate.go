package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/shadowbox/internal/pace"
	"github.com/abhisek/shadowbox/internal/sentences"
	"github.com/abhisek/shadowbox/internal/store"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate practice sentences with an LLM",
	RunE: func(cmd *cobra.Command, args []string) error {
		language, _ := cmd.Flags().GetString("language")
		levelName, _ := cmd.Flags().GetString("level")
		topic, _ := cmd.Flags().GetString("topic")
		count, _ := cmd.Flags().GetInt("count")

		level, err := pace.ParseLevel(levelName)
		if err != nil {
			return err
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

		ctx := context.Background()
		provider, err := buildProvider(ctx, s)
		if err != nil {
			return fmt.Errorf("configure LLM provider: %w", err)
		}
		if provider == nil {
			return fmt.Errorf("no LLM provider configured; set GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY")
		}

		gen := sentences.New(provider, sentences.DefaultConfig())
		lib := sentences.NewLibrary(s.SentenceRepo(), gen)

		batch, err := lib.Generate(ctx, sentences.GenerateInput{
			Language: language,
			Level:    level,
			Topic:    topic,
			Count:    count,
		})
		if err != nil {
			return fmt.Errorf("generate sentences: %w", err)
		}

		if len(batch) == 0 {
			fmt.Println("No new sentences survived validation. Try again.")
			return nil
		}

		fmt.Printf("Added %d sentences:\n", len(batch))
		for _, sent := range batch {
			fmt.Printf("  %d. %s\n", sent.ID, sent.Text)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringP("language", "l", "en", "Sentence language code")
	generateCmd.Flags().String("level", "intermediate", "Difficulty level (beginner, intermediate, advanced)")
	generateCmd.Flags().StringP("topic", "t", "", "Optional topic to steer vocabulary")
	generateCmd.Flags().IntP("count", "n", sentences.DefaultCount, "Number of sentences to request")
}
