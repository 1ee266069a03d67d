package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AdamBeresnev/fantapes-tv/internal/match"
	"github.com/AdamBeresnev/fantapes-tv/internal/stats"
	"github.com/AdamBeresnev/fantapes-tv/internal/store"
)

var ErrMissingLink = errors.New("video link is required")

type MatchService struct {
	store      *store.MatchStore
	categories *stats.Categories
}

func NewMatchService(store *store.MatchStore, categories *stats.Categories) *MatchService {
	return &MatchService{store: store, categories: categories}
}

type SubmitInput struct {
	VideoLink       string
	CompetitionType string
	Player1         string
	Player2         string
}

func (s *MatchService) ListMatches(ctx context.Context, filter match.Filter) ([]match.Entry, error) {
	entries, err := s.store.ListFiltered(ctx, filter)
	if err != nil {
		return []match.Entry{}, fmt.Errorf("failed to list matches: %w", err)
	}
	return entries, nil
}

func (s *MatchService) SubmitMatch(ctx context.Context, input SubmitInput) error {
	link := strings.TrimSpace(input.VideoLink)
	if link == "" {
		return ErrMissingLink
	}

	entry := match.Entry{
		VideoLink:       link,
		CompetitionType: input.CompetitionType,
		Player1:         input.Player1,
		Player2:         input.Player2,
	}
	if err := s.store.Insert(ctx, &entry); err != nil {
		return fmt.Errorf("failed to add match: %w", err)
	}
	return nil
}

func (s *MatchService) GetStats(ctx context.Context) (stats.Table, error) {
	entries, err := s.store.ListFiltered(ctx, match.Filter{})
	if err != nil {
		return stats.Aggregate(nil, s.categories), fmt.Errorf("failed to fetch competition stats: %w", err)
	}
	return stats.Aggregate(entries, s.categories), nil
}

func (s *MatchService) DeleteByLink(ctx context.Context, link string) (int64, error) {
	removed, err := s.store.DeleteByLink(ctx, link)
	if err != nil {
		return 0, fmt.Errorf("failed to delete match: %w", err)
	}
	return removed, nil
}

// PruneInvalid drops every entry whose link is empty or lacks hostMarker.
func (s *MatchService) PruneInvalid(ctx context.Context, hostMarker string) (int64, error) {
	removed, err := s.store.DeleteInvalid(ctx, hostMarker)
	if err != nil {
		return 0, fmt.Errorf("failed to prune matches: %w", err)
	}
	return removed, nil
}
