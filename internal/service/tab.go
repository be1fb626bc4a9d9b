package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/MintCofee/tabshare/internal/events"
	"github.com/MintCofee/tabshare/internal/logging"
	"github.com/MintCofee/tabshare/internal/models"
	"github.com/MintCofee/tabshare/internal/repo"
	"github.com/MintCofee/tabshare/internal/search"
	"github.com/MintCofee/tabshare/internal/transport"
	"github.com/MintCofee/tabshare/internal/validation"
)

// Identity is the verified actor attached to a request by the auth
// middleware.
type Identity struct {
	UserID   uint
	Username string
	Role     string
}

func (i Identity) IsAdmin() bool { return i.Role == "admin" }

// canMutate is the owner-or-admin gate for tabs.
func (i Identity) canMutate(tab *models.Tab) bool {
	return i.IsAdmin() || i.Username == tab.Author
}

type TabService struct {
	Tabs     *repo.TabRepo
	Users    *repo.UserRepo
	Producer *events.Producer
	Search   *search.Service
}

func (s *TabService) List(ctx context.Context, f repo.TabFilter, sort repo.TabSort, offset, limit int) (int64, []models.Tab, error) {
	return s.Tabs.List(ctx, f, sort, offset, limit)
}

func (s *TabService) Get(ctx context.Context, id uint) (*models.Tab, error) {
	tab, err := s.Tabs.GetCountingView(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return tab, nil
}

func (s *TabService) Create(ctx context.Context, actor Identity, req transport.CreateTabRequest) (*models.Tab, error) {
	req.Normalize()
	if msgs := validation.Struct(req); len(msgs) > 0 {
		return nil, invalid(msgs)
	}

	tab := models.Tab{
		Title:      req.Title,
		Artist:     req.Artist,
		Difficulty: req.Difficulty,
		Genre:      req.Genre,
		TabContent: req.TabContent,
		Tuning:     req.Tuning,
		Author:     actor.Username,
		CreatedAt:  time.Now(),
	}
	if req.Capo != nil {
		tab.Capo = *req.Capo
	}
	if tab.Tuning == "" {
		tab.Tuning = "Standard"
	}

	if err := s.Tabs.Create(ctx, &tab); err != nil {
		logging.FromContext(ctx).Error("tab_create_failed", "error", err)
		return nil, err
	}

	s.publish(ctx, tab.ID, map[string]any{"type": "tab_created", "tabID": tab.ID, "title": tab.Title, "author": tab.Author})
	s.Search.IndexTab(ctx, &tab)
	return &tab, nil
}

func (s *TabService) Update(ctx context.Context, actor Identity, id uint, req transport.PatchTabRequest) (*models.Tab, error) {
	tab, err := s.Tabs.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if !actor.canMutate(tab) {
		return nil, ErrForbidden
	}

	req.Normalize()
	if msgs := validation.Struct(req); len(msgs) > 0 {
		return nil, invalid(msgs)
	}

	if req.Title != nil {
		tab.Title = *req.Title
	}
	if req.Artist != nil {
		tab.Artist = *req.Artist
	}
	if req.Difficulty != nil {
		tab.Difficulty = *req.Difficulty
	}
	if req.Genre != nil {
		tab.Genre = *req.Genre
	}
	if req.TabContent != nil {
		tab.TabContent = *req.TabContent
	}
	if req.Capo != nil {
		tab.Capo = *req.Capo
	}
	if req.Tuning != nil && *req.Tuning != "" {
		tab.Tuning = *req.Tuning
	}

	if err := s.Tabs.Save(ctx, tab); err != nil {
		logging.FromContext(ctx).Error("tab_update_failed", "tab_id", id, "error", err)
		return nil, err
	}

	s.publish(ctx, tab.ID, map[string]any{"type": "tab_updated", "tabID": tab.ID, "title": tab.Title})
	s.Search.IndexTab(ctx, tab)
	return tab, nil
}

func (s *TabService) Delete(ctx context.Context, actor Identity, id uint) (*models.Tab, error) {
	tab, err := s.Tabs.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if !actor.canMutate(tab) {
		return nil, ErrForbidden
	}

	if err := s.Tabs.Delete(ctx, id); err != nil {
		return nil, mapNotFound(err)
	}

	s.publish(ctx, id, map[string]any{"type": "tab_deleted", "tabID": id})
	s.Search.DeleteTab(ctx, id)
	return tab, nil
}

func (s *TabService) Like(ctx context.Context, actor Identity, id uint) (uint, error) {
	likes, err := s.Tabs.Like(ctx, id)
	if err != nil {
		return 0, mapNotFound(err)
	}

	s.publish(ctx, id, map[string]any{"type": "tab_liked", "tabID": id, "username": actor.Username})
	return likes, nil
}

// Favorite adds the tab to the actor's favorites set and returns the full
// set. Adding an already-present tab is a no-op.
func (s *TabService) Favorite(ctx context.Context, actor Identity, id uint) ([]uint, error) {
	if _, err := s.Tabs.Get(ctx, id); err != nil {
		return nil, mapNotFound(err)
	}
	if _, err := s.Users.ByID(ctx, actor.UserID); err != nil {
		return nil, mapNotFound(err)
	}

	if err := s.Users.AddFavorite(ctx, actor.UserID, id); err != nil {
		logging.FromContext(ctx).Error("favorite_failed", "tab_id", id, "user_id", actor.UserID, "error", err)
		return nil, err
	}

	return s.Users.FavoriteTabIDs(ctx, actor.UserID)
}

func (s *TabService) Favorites(ctx context.Context, actor Identity) ([]models.Tab, error) {
	if _, err := s.Users.ByID(ctx, actor.UserID); err != nil {
		return nil, mapNotFound(err)
	}
	return s.Users.FavoriteTabs(ctx, actor.UserID)
}

func (s *TabService) publish(ctx context.Context, key uint, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, events.TopicTabEvents, fmt.Sprint(key), event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "topic", events.TopicTabEvents, "error", err)
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
