package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abhisek/shadowbox/internal/app"
	"github.com/abhisek/shadowbox/internal/config"
	"github.com/abhisek/shadowbox/internal/llm"
	"github.com/abhisek/shadowbox/internal/record"
	"github.com/abhisek/shadowbox/internal/selfupdate"
	"github.com/abhisek/shadowbox/internal/sentences"
	"github.com/abhisek/shadowbox/internal/stats"
	"github.com/abhisek/shadowbox/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// LLM generation is optional; the app works without a provider.
	var gen sentences.Generator
	provider, err := buildProvider(ctx, st)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Sentence generation will be unavailable.")
	} else if provider != nil {
		gen = sentences.New(provider, sentences.DefaultConfig())
	}

	lib := sentences.NewLibrary(st.SentenceRepo(), gen)
	if err := lib.Seed(ctx); err != nil {
		return fmt.Errorf("seed library: %w", err)
	}

	opts := app.Options{
		Config:   cfg,
		Store:    st,
		Library:  lib,
		Stats:    stats.NewService(st.PracticeRepo()),
		Recorder: record.NewExec(clipsDir(cfg, dbPath)),
		Checker:  selfupdate.NewChecker(),
		Version:  version,
	}
	return app.Run(opts)
}

// loadConfig reads the YAML config file when present and layers
// SHADOWBOX_* environment overrides on top.
func loadConfig() (*config.Config, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	config.ApplyEnv(cfg)
	return cfg, nil
}

// buildProvider wires the LLM provider: an explicit SHADOWBOX_LLM_PROVIDER
// wins, otherwise standard API key env vars are probed. Returns (nil, nil)
// when no provider is configured at all.
func buildProvider(ctx context.Context, st *store.Store) (llm.Provider, error) {
	if os.Getenv("SHADOWBOX_LLM_PROVIDER") != "" {
		cfg := llm.ConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return llm.NewProvider(ctx, cfg, st.EventRepo())
	}
	cfg, ok := llm.DiscoverConfig()
	if !ok {
		return nil, nil
	}
	return llm.NewProvider(ctx, cfg, st.EventRepo())
}

// clipsDir resolves where recordings land: the configured directory, or a
// recordings/ directory next to the database.
func clipsDir(cfg *config.Config, dbPath string) string {
	if cfg.Recordings.Dir != "" {
		return cfg.Recordings.Dir
	}
	return filepath.Join(filepath.Dir(dbPath), "recordings")
}
