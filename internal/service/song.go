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
	"github.com/MintCofee/tabshare/internal/transport"
	"github.com/MintCofee/tabshare/internal/validation"
)

// SongService is admin-gated at the route level for every mutation; songs
// carry no author, unlike tabs.
type SongService struct {
	Songs    *repo.SongRepo
	Tabs     *repo.TabRepo
	Producer *events.Producer
}

func (s *SongService) List(ctx context.Context, f repo.SongFilter, offset, limit int) (int64, []models.Song, error) {
	return s.Songs.List(ctx, f, offset, limit)
}

func (s *SongService) Get(ctx context.Context, id uint) (*models.Song, error) {
	song, err := s.Songs.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return song, nil
}

func (s *SongService) Create(ctx context.Context, req transport.CreateSongRequest) (*models.Song, error) {
	req.Normalize()
	msgs := validation.Struct(req)
	msgs = s.checkTabRef(ctx, req.TabID, msgs)
	if len(msgs) > 0 {
		return nil, invalid(msgs)
	}

	song := models.Song{
		Title:    req.Title,
		Artist:   req.Artist,
		Album:    req.Album,
		Year:     req.Year,
		Duration: req.Duration,
		TabID:    req.TabID,
	}
	if err := s.Songs.Create(ctx, &song); err != nil {
		logging.FromContext(ctx).Error("song_create_failed", "error", err)
		return nil, err
	}

	s.publish(ctx, song.ID, map[string]any{"type": "song_created", "songID": song.ID, "title": song.Title})
	return &song, nil
}

func (s *SongService) Update(ctx context.Context, id uint, req transport.PatchSongRequest) (*models.Song, error) {
	song, err := s.Songs.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	req.Normalize()
	msgs := validation.Struct(req)
	msgs = s.checkTabRef(ctx, req.TabID, msgs)
	if len(msgs) > 0 {
		return nil, invalid(msgs)
	}

	if req.Title != nil {
		song.Title = *req.Title
	}
	if req.Artist != nil {
		song.Artist = *req.Artist
	}
	if req.Album != nil {
		song.Album = *req.Album
	}
	if req.Year != nil {
		song.Year = req.Year
	}
	if req.Duration != nil {
		song.Duration = *req.Duration
	}
	if req.TabID != nil {
		song.TabID = req.TabID
	}

	if err := s.Songs.Save(ctx, song); err != nil {
		logging.FromContext(ctx).Error("song_update_failed", "song_id", id, "error", err)
		return nil, err
	}

	return song, nil
}

func (s *SongService) Delete(ctx context.Context, id uint) (*models.Song, error) {
	song, err := s.Songs.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if err := s.Songs.Delete(ctx, id); err != nil {
		return nil, mapNotFound(err)
	}
	return song, nil
}

// checkTabRef enforces the write-time foreign key: a song may only point at a
// tab that exists right now. The reference is allowed to dangle if the tab is
// deleted later.
func (s *SongService) checkTabRef(ctx context.Context, tabID *uint, msgs []string) []string {
	if tabID == nil {
		return msgs
	}
	if _, err := s.Tabs.Get(ctx, *tabID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return append(msgs, "tabId must reference an existing tab")
		}
		logging.FromContext(ctx).Error("song_tab_ref_check_failed", "tab_id", *tabID, "error", err)
		return append(msgs, "tabId could not be verified")
	}
	return msgs
}

func (s *SongService) publish(ctx context.Context, key uint, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, events.TopicTabEvents, fmt.Sprint(key), event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "topic", events.TopicTabEvents, "error", err)
	}
}
