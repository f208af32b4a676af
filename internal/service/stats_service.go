package service

import (
	"context"
	"time"

	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/repository"
)

type StatsRepository interface {
	OrderWindow(ctx context.Context, since time.Time) (int64, float64, error)
	TopSoldVariants(ctx context.Context, limit int) ([]repository.VariantCount, error)
	TopCancelledVariants(ctx context.Context, limit int) ([]repository.VariantCount, error)
	UserCounts(ctx context.Context) (map[entity.UserRole]int64, error)
}

type StatsService struct {
	repo StatsRepository
}

func NewStatsService(repo StatsRepository) *StatsService {
	return &StatsService{repo: repo}
}

// OrderStats aggregates order counts and revenue over trailing windows.
// Cancelled orders are excluded from revenue.
type OrderStats struct {
	Windows      []WindowStats             `json:"windows"`
	TopSold      []repository.VariantCount `json:"top_sold"`
	TopCancelled []repository.VariantCount `json:"top_cancelled"`
}

type WindowStats struct {
	Days    int     `json:"days"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

var statsWindows = []int{7, 15, 30}

const topVariantLimit = 5

func (s *StatsService) OrderStats(ctx context.Context) (*OrderStats, error) {
	now := time.Now()
	stats := &OrderStats{}
	for _, days := range statsWindows {
		count, revenue, err := s.repo.OrderWindow(ctx, now.AddDate(0, 0, -days))
		if err != nil {
			return nil, err
		}
		stats.Windows = append(stats.Windows, WindowStats{Days: days, Orders: count, Revenue: revenue})
	}

	var err error
	stats.TopSold, err = s.repo.TopSoldVariants(ctx, topVariantLimit)
	if err != nil {
		return nil, err
	}
	stats.TopCancelled, err = s.repo.TopCancelledVariants(ctx, topVariantLimit)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *StatsService) UserStats(ctx context.Context) (map[entity.UserRole]int64, error) {
	return s.repo.UserCounts(ctx)
}
