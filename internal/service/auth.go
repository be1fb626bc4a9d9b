package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/MintCofee/tabshare/internal/events"
	"github.com/MintCofee/tabshare/internal/hash"
	"github.com/MintCofee/tabshare/internal/logging"
	"github.com/MintCofee/tabshare/internal/models"
	"github.com/MintCofee/tabshare/internal/repo"
	"github.com/MintCofee/tabshare/internal/tokens"
	"github.com/MintCofee/tabshare/internal/transport"
	"github.com/MintCofee/tabshare/internal/validation"
)

type AuthService struct {
	Users     *repo.UserRepo
	JWTSecret []byte
	Producer  *events.Producer
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	req.Normalize()
	if msgs := validation.Struct(req); len(msgs) > 0 {
		return nil, "", invalid(msgs)
	}

	if _, err := s.Users.ByUsername(ctx, req.Username); err == nil {
		return nil, "", fmt.Errorf("username %w", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Error("register_failed", "reason", "username lookup", "error", err)
		return nil, "", err
	}
	if _, err := s.Users.ByEmail(ctx, req.Email); err == nil {
		return nil, "", fmt.Errorf("email %w", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Error("register_failed", "reason", "email lookup", "error", err)
		return nil, "", err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash password", "error", err)
		return nil, "", err
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: pwHash,
		Role:         "user",
		JoinDate:     time.Now(),
	}
	if err := s.Users.Create(ctx, &user); err != nil {
		l.Error("register_failed", "reason", "insert", "error", err)
		return nil, "", err
	}

	token, err := tokens.Sign(user.ID, user.Username, user.Role, s.JWTSecret)
	if err != nil {
		l.Error("register_failed", "reason", "cannot sign token", "error", err)
		return nil, "", err
	}

	s.publish(ctx, events.TopicUserEvents, user.ID, map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})

	return &user, token, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	user, err := s.Users.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		l.Error("login_failed", "reason", "lookup", "error", err)
		return nil, "", err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := tokens.Sign(user.ID, user.Username, user.Role, s.JWTSecret)
	if err != nil {
		l.Error("login_failed", "reason", "cannot sign token", "error", err)
		return nil, "", err
	}

	s.publish(ctx, events.TopicUserEvents, user.ID, map[string]any{
		"type":     "user_logged_in",
		"userID":   user.ID,
		"username": user.Username,
	})

	return user, token, nil
}

func (s *AuthService) publish(ctx context.Context, topic string, key uint, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, topic, fmt.Sprint(key), event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "topic", topic, "error", err)
	}
}
