package service

import (
	"context"

	"github.com/MintCofee/tabshare/internal/models"
	"github.com/MintCofee/tabshare/internal/repo"
)

type Stats struct {
	TotalTabs    int64            `json:"totalTabs"`
	TotalSongs   int64            `json:"totalSongs"`
	TotalUsers   int64            `json:"totalUsers"`
	TotalViews   int64            `json:"totalViews"`
	TotalLikes   int64            `json:"totalLikes"`
	ByGenre      map[string]int64 `json:"byGenre"`
	ByDifficulty map[string]int64 `json:"byDifficulty"`
	AvgLikes     float64          `json:"avgLikes"`
	AvgViews     float64          `json:"avgViews"`
	MostViewed   *models.Tab      `json:"mostViewed,omitempty"`
}

// StatsService aggregates on demand; nothing is cached or maintained
// incrementally.
type StatsService struct {
	Tabs  *repo.TabRepo
	Songs *repo.SongRepo
	Users *repo.UserRepo
}

func (s *StatsService) Collect(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	var err error
	if stats.TotalTabs, err = s.Tabs.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalSongs, err = s.Songs.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalUsers, err = s.Users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalViews, err = s.Tabs.SumViews(ctx); err != nil {
		return nil, err
	}
	if stats.TotalLikes, err = s.Tabs.SumLikes(ctx); err != nil {
		return nil, err
	}
	if stats.ByGenre, err = s.Tabs.CountByGenre(ctx); err != nil {
		return nil, err
	}
	if stats.ByDifficulty, err = s.Tabs.CountByDifficulty(ctx); err != nil {
		return nil, err
	}

	if stats.TotalTabs > 0 {
		stats.AvgLikes = float64(stats.TotalLikes) / float64(stats.TotalTabs)
		stats.AvgViews = float64(stats.TotalViews) / float64(stats.TotalTabs)
	}

	if stats.MostViewed, err = s.Tabs.MostViewed(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}
