package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/MintCofee/tabshare/internal/models"
)

type TabFilter struct {
	Search     string
	Genre      string
	Difficulty string
	Artist     string
}

type TabSort string

const (
	SortNewest  TabSort = "newest"
	SortPopular TabSort = "popular"
	SortLikes   TabSort = "likes"
)

type TabRepo struct {
	DB *gorm.DB
}

func (r *TabRepo) applyFilter(q *gorm.DB, f TabFilter) *gorm.DB {
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("title LIKE ? OR artist LIKE ?", like, like)
	}
	if f.Genre != "" {
		q = q.Where("genre = ?", f.Genre)
	}
	if f.Difficulty != "" {
		q = q.Where("difficulty = ?", f.Difficulty)
	}
	if f.Artist != "" {
		q = q.Where("artist = ?", f.Artist)
	}
	return q
}

func (r *TabRepo) List(ctx context.Context, f TabFilter, sort TabSort, offset, limit int) (int64, []models.Tab, error) {
	base := r.applyFilter(r.DB.WithContext(ctx).Model(&models.Tab{}), f)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var order string
	switch sort {
	case SortPopular:
		order = "views DESC, id ASC"
	case SortLikes:
		order = "likes DESC, id ASC"
	default:
		order = "created_at DESC, id DESC"
	}

	items := make([]models.Tab, 0, limit)
	q := r.applyFilter(r.DB.WithContext(ctx).Model(&models.Tab{}), f).Order(order)
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	if err := q.Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *TabRepo) Get(ctx context.Context, id uint) (*models.Tab, error) {
	var tab models.Tab
	if err := r.DB.WithContext(ctx).First(&tab, id).Error; err != nil {
		return nil, err
	}
	return &tab, nil
}

// GetCountingView increments the view counter and returns the updated record.
// Every read through this path is a view.
func (r *TabRepo) GetCountingView(ctx context.Context, id uint) (*models.Tab, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Tab{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.Get(ctx, id)
}

func (r *TabRepo) Create(ctx context.Context, tab *models.Tab) error {
	return r.DB.WithContext(ctx).Create(tab).Error
}

func (r *TabRepo) Save(ctx context.Context, tab *models.Tab) error {
	return r.DB.WithContext(ctx).Save(tab).Error
}

func (r *TabRepo) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Tab{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Like increments the like counter and returns the new count. Repeated calls
// keep incrementing; there is no per-user dedup.
func (r *TabRepo) Like(ctx context.Context, id uint) (uint, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Tab{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	tab, err := r.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return tab.Likes, nil
}

func (r *TabRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&models.Tab{}).Count(&total).Error
	return total, err
}

func (r *TabRepo) SumViews(ctx context.Context) (int64, error) {
	return r.sumColumn(ctx, "views")
}

func (r *TabRepo) SumLikes(ctx context.Context) (int64, error) {
	return r.sumColumn(ctx, "likes")
}

func (r *TabRepo) sumColumn(ctx context.Context, column string) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).
		Model(&models.Tab{}).
		Select("COALESCE(SUM(" + column + "), 0)").
		Scan(&total).Error
	return total, err
}

func (r *TabRepo) CountByGenre(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "genre")
}

func (r *TabRepo) CountByDifficulty(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "difficulty")
}

func (r *TabRepo) countGrouped(ctx context.Context, column string) (map[string]int64, error) {
	var rows []struct {
		Key   string
		Total int64
	}
	err := r.DB.WithContext(ctx).
		Model(&models.Tab{}).
		Select(column + " AS key, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Total
	}
	return out, nil
}

// MostViewed returns the tab with the highest view count, the earliest id
// winning ties. Returns nil without error when there are no tabs.
func (r *TabRepo) MostViewed(ctx context.Context) (*models.Tab, error) {
	var tab models.Tab
	err := r.DB.WithContext(ctx).
		Order("views DESC, id ASC").
		First(&tab).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tab, nil
}
