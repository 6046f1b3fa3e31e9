// Package stats derives progress summaries from the practice history.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/shadowbox/internal/store"
)

// RecentLimit caps the history slice included in a report.
const RecentLimit = 10

// Report is everything the stats screen and `shadowbox stats` show.
type Report struct {
	Totals    store.Totals
	Streaks   Streaks
	Languages []store.LanguageStat // most practiced first
	Recent    []store.Practice     // newest first, at most RecentLimit
}

// Service computes reports from the practice store.
type Service struct {
	practices store.PracticeRepo
}

// NewService creates a stats service over the practice repository.
func NewService(practices store.PracticeRepo) *Service {
	return &Service{practices: practices}
}

// Report assembles the full progress report.
func (s *Service) Report(ctx context.Context) (*Report, error) {
	totals, err := s.practices.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("load totals: %w", err)
	}
	days, err := s.practices.Days(ctx)
	if err != nil {
		return nil, fmt.Errorf("load practice days: %w", err)
	}
	langs, err := s.practices.LanguageStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("load language stats: %w", err)
	}
	recent, err := s.practices.History(ctx, RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return &Report{
		Totals:    totals,
		Streaks:   ComputeStreaks(days, time.Now()),
		Languages: langs,
		Recent:    recent,
	}, nil
}

// CurrentStreak returns just the current consecutive-day streak, for
// the home screen header.
func (s *Service) CurrentStreak(ctx context.Context) (int, error) {
	days, err := s.practices.Days(ctx)
	if err != nil {
		return 0, fmt.Errorf("load practice days: %w", err)
	}
	return ComputeStreaks(days, time.Now()).Current, nil
}
