package services

import (
	"context"
	"fmt"

	"spendwise/internal/cache"
	"spendwise/internal/core"
)

// OverviewStore is the storage surface the statistics service needs.
type OverviewStore interface {
	ListCards(ctx context.Context) ([]core.BankCard, error)
	ListTransactionsByYear(ctx context.Context, year int) ([]core.Transaction, error)
	ListPoliciesByCard(ctx context.Context, cardID string) ([]core.CashbackPolicy, error)
}

// StatsService builds yearly overviews across all cards.
type StatsService struct {
	store OverviewStore
	cache *cache.LRU[core.YearOverview]
}

func NewStatsService(store OverviewStore, overviewCache *cache.LRU[core.YearOverview]) *StatsService {
	return &StatsService{store: store, cache: overviewCache}
}

func (s *StatsService) OverviewForYear(ctx context.Context, year int) (core.YearOverview, error) {
	cacheKey := fmt.Sprintf("overview:%d", year)
	if s.cache != nil {
		if cached, ok := s.cache.Get(cacheKey); ok {
			return cached, nil
		}
	}

	txs, err := s.store.ListTransactionsByYear(ctx, year)
	if err != nil {
		return core.YearOverview{}, fmt.Errorf("list transactions: %w", err)
	}

	cards, err := s.store.ListCards(ctx)
	if err != nil {
		return core.YearOverview{}, fmt.Errorf("list cards: %w", err)
	}

	policiesByCard := make(map[string][]core.CashbackPolicy, len(cards))
	for _, card := range cards {
		policies, err := s.store.ListPoliciesByCard(ctx, card.ID)
		if err != nil {
			return core.YearOverview{}, fmt.Errorf("list policies for card %s: %w", card.ID, err)
		}
		policiesByCard[card.ID] = policies
	}

	overview := core.OverviewForYear(year, txs, policiesByCard)
	if s.cache != nil {
		s.cache.Set(cacheKey, overview)
	}
	return overview, nil
}

// Invalidate drops all cached overviews after a write.
func (s *StatsService) Invalidate() {
	if s.cache != nil {
		s.cache.DeletePrefix("overview:")
	}
}
