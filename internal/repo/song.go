package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/MintCofee/tabshare/internal/models"
)

type SongFilter struct {
	Artist string
	Album  string
	Year   *int
}

type SongRepo struct {
	DB *gorm.DB
}

func (r *SongRepo) applyFilter(q *gorm.DB, f SongFilter) *gorm.DB {
	if f.Artist != "" {
		q = q.Where("artist LIKE ?", "%"+f.Artist+"%")
	}
	if f.Album != "" {
		q = q.Where("album LIKE ?", "%"+f.Album+"%")
	}
	if f.Year != nil {
		q = q.Where("year = ?", *f.Year)
	}
	return q
}

func (r *SongRepo) List(ctx context.Context, f SongFilter, offset, limit int) (int64, []models.Song, error) {
	base := r.applyFilter(r.DB.WithContext(ctx).Model(&models.Song{}), f)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Song, 0, limit)
	q := r.applyFilter(r.DB.WithContext(ctx).Model(&models.Song{}), f).Order("id ASC")
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	if err := q.Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *SongRepo) Get(ctx context.Context, id uint) (*models.Song, error) {
	var song models.Song
	if err := r.DB.WithContext(ctx).First(&song, id).Error; err != nil {
		return nil, err
	}
	return &song, nil
}

func (r *SongRepo) Create(ctx context.Context, song *models.Song) error {
	return r.DB.WithContext(ctx).Create(song).Error
}

func (r *SongRepo) Save(ctx context.Context, song *models.Song) error {
	return r.DB.WithContext(ctx).Save(song).Error
}

func (r *SongRepo) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Song{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SongRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&models.Song{}).Count(&total).Error
	return total, err
}
