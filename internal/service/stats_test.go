package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MintCofee/tabshare/internal/models"
	"github.com/MintCofee/tabshare/internal/repo"
)

func newStatsService(t *testing.T) (*StatsService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Tab{}, &models.Song{}, &models.Favorite{}))

	svc := &StatsService{
		Tabs:  &repo.TabRepo{DB: db},
		Songs: &repo.SongRepo{DB: db},
		Users: &repo.UserRepo{DB: db},
	}
	return svc, db
}

func seedTab(t *testing.T, db *gorm.DB, title, genre, difficulty string, views, likes uint) models.Tab {
	t.Helper()

	tab := models.Tab{
		Title:      title,
		Artist:     "Fixture",
		Difficulty: difficulty,
		Genre:      genre,
		TabContent: "e|---0---0---0---|",
		Tuning:     "Standard",
		Author:     "fixture",
		Views:      views,
		Likes:      likes,
	}
	require.NoError(t, db.Create(&tab).Error)
	return tab
}

func TestCollectAggregates(t *testing.T) {
	svc, db := newStatsService(t)
	ctx := context.Background()

	seedTab(t, db, "A", "metal", "advanced", 10, 2)
	seedTab(t, db, "B", "metal", "beginner", 5, 1)
	seedTab(t, db, "C", "rock", "beginner", 0, 0)
	require.NoError(t, db.Create(&models.Song{Title: "S", Artist: "Fixture"}).Error)

	stats, err := svc.Collect(ctx)
	require.NoError(t, err)

	require.EqualValues(t, 3, stats.TotalTabs)
	require.EqualValues(t, 1, stats.TotalSongs)
	require.EqualValues(t, 15, stats.TotalViews)
	require.EqualValues(t, 3, stats.TotalLikes)
	require.EqualValues(t, 2, stats.ByGenre["metal"])
	require.EqualValues(t, 1, stats.ByGenre["rock"])
	require.EqualValues(t, 2, stats.ByDifficulty["beginner"])
	require.EqualValues(t, 1, stats.ByDifficulty["advanced"])
	require.InDelta(t, 1.0, stats.AvgLikes, 1e-9)
	require.InDelta(t, 5.0, stats.AvgViews, 1e-9)
	require.NotNil(t, stats.MostViewed)
	require.Equal(t, "A", stats.MostViewed.Title)
}

func TestCollectMostViewedTieBreaksOnEarliestID(t *testing.T) {
	svc, db := newStatsService(t)

	first := seedTab(t, db, "First", "rock", "beginner", 7, 0)
	seedTab(t, db, "Second", "rock", "beginner", 7, 0)

	stats, err := svc.Collect(context.Background())
	require.NoError(t, err)
	require.NotNil(t, stats.MostViewed)
	require.Equal(t, first.ID, stats.MostViewed.ID)
}

func TestCollectEmpty(t *testing.T) {
	svc, _ := newStatsService(t)

	stats, err := svc.Collect(context.Background())
	require.NoError(t, err)
	require.Zero(t, stats.TotalTabs)
	require.Zero(t, stats.AvgLikes)
	require.Zero(t, stats.AvgViews)
	require.Nil(t, stats.MostViewed)
	require.Empty(t, stats.ByGenre)
}
