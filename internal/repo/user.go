package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MintCofee/tabshare/internal/models"
)

type UserRepo struct {
	DB *gorm.DB
}

func (r *UserRepo) ByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) ByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&models.User{}).Count(&total).Error
	return total, err
}

// AddFavorite inserts a favorite row unless the user already has one for the
// tab. Adding twice is a no-op.
func (r *UserRepo) AddFavorite(ctx context.Context, userID, tabID uint) error {
	fav := models.Favorite{UserID: userID, TabID: tabID}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&fav).Error
}

func (r *UserRepo) FavoriteTabIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := make([]uint, 0)
	err := r.DB.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("tab_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *UserRepo) FavoriteTabs(ctx context.Context, userID uint) ([]models.Tab, error) {
	tabs := make([]models.Tab, 0)
	err := r.DB.WithContext(ctx).
		Joins("JOIN favorites ON favorites.tab_id = tabs.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.id ASC").
		Find(&tabs).Error
	if err != nil {
		return nil, err
	}
	return tabs, nil
}
