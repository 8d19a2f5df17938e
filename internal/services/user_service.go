package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"account-service/internal/domain/user"
	"account-service/internal/events"
	"account-service/internal/repository"
	account_errors "account-service/pkg/errors"
	"account-service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfileCache is a read-through cache of full user records keyed by email.
// GetProfile returns nil, nil on a miss.
type ProfileCache interface {
	GetProfile(ctx context.Context, email string) (*user.User, error)
	SetProfile(ctx context.Context, u *user.User) error
	InvalidateProfile(ctx context.Context, email string) error
}

// ImageArchive keeps an out-of-band copy of uploaded profile images.
type ImageArchive interface {
	PutProfileImage(ctx context.Context, userID string, img user.Image) error
	DeleteProfileImage(ctx context.Context, userID string) error
}

// EventPublisher announces user lifecycle changes.
type EventPublisher interface {
	Publish(ctx context.Context, env events.Envelope) error
}

type UserService struct {
	repo      repository.UserRepository
	cache     ProfileCache
	archive   ImageArchive
	publisher EventPublisher
	logger    *logger.Logger
	newID     func() string
	now       func() time.Time
}

// NewUserService wires the user store. cache and archive may be nil.
func NewUserService(repo repository.UserRepository, cache ProfileCache, archive ImageArchive, l *logger.Logger) *UserService {
	if l == nil {
		l = logger.NewNop()
	}
	return &UserService{
		repo:    repo,
		cache:   cache,
		archive: archive,
		logger:  l,
		newID:   uuid.NewString,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithPublisher enables lifecycle events. A nil publisher disables them.
func (s *UserService) WithPublisher(p EventPublisher) *UserService {
	s.publisher = p
	return s
}

// Login returns the id of the user registered under email, creating the user
// when none exists. A caller-supplied id is used verbatim for creation; for an
// existing email it is a conflicting registration and yields ErrConflict.
func (s *UserService) Login(ctx context.Context, email, id string) (string, error) {
	existing, err := s.repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		if id != "" {
			return "", account_errors.ErrConflict
		}
		return existing.ID, nil
	case !errors.Is(err, account_errors.ErrNotFound):
		return "", fmt.Errorf("find user: %w", err)
	}

	if id == "" {
		id = s.newID()
	}
	now := s.now()
	u := &user.User{ID: id, Email: email, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.Create(ctx, u); err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	s.publish(ctx, events.UserCreated, u.ID, email)
	return u.ID, nil
}

func (s *UserService) GetProfile(ctx context.Context, email string) (user.User, error) {
	if s.cache != nil {
		cached, err := s.cache.GetProfile(ctx, email)
		if err != nil {
			s.logger.WithContext(ctx).Warn("profile cache read failed", zap.String("email", email), zap.Error(err))
		} else if cached != nil {
			return *cached, nil
		}
	}

	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return user.User{}, err
	}

	if s.cache != nil {
		if err := s.cache.SetProfile(ctx, &u); err != nil {
			s.logger.WithContext(ctx).Warn("profile cache write failed", zap.String("email", email), zap.Error(err))
		}
	}
	return u, nil
}

// UpdateProfile merges the update into the stored record and persists it.
func (s *UserService) UpdateProfile(ctx context.Context, email string, update user.ProfileUpdate) (user.User, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return user.User{}, err
	}

	u.ApplyProfileUpdate(update)
	u.UpdatedAt = s.now()

	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return user.User{}, fmt.Errorf("update user: %w", err)
	}
	s.invalidate(ctx, email)
	s.publish(ctx, events.UserProfileUpdated, u.ID, email)

	if update.Image != nil && s.archive != nil {
		if err := s.archive.PutProfileImage(ctx, u.ID, *update.Image); err != nil {
			s.logger.WithContext(ctx).Warn("profile image archive failed", zap.String("user_id", u.ID), zap.Error(err))
		}
	}
	return u, nil
}

// Delete permanently removes the user registered under email.
func (s *UserService) Delete(ctx context.Context, email string) error {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteUser(ctx, u.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.invalidate(ctx, email)
	s.publish(ctx, events.UserDeleted, u.ID, email)

	if u.ProfileImage != nil && s.archive != nil {
		if err := s.archive.DeleteProfileImage(ctx, u.ID); err != nil {
			s.logger.WithContext(ctx).Warn("profile image archive delete failed", zap.String("user_id", u.ID), zap.Error(err))
		}
	}
	return nil
}

func (s *UserService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *UserService) invalidate(ctx context.Context, email string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateProfile(ctx, email); err != nil {
		s.logger.WithContext(ctx).Warn("profile cache invalidation failed", zap.String("email", email), zap.Error(err))
	}
}

func (s *UserService) publish(ctx context.Context, eventType events.EventType, userID, email string) {
	if s.publisher == nil {
		return
	}
	env, err := events.NewUserEnvelope(eventType, userID, email, s.now())
	if err == nil {
		err = s.publisher.Publish(ctx, env)
	}
	if err != nil {
		s.logger.WithContext(ctx).Warn("user event publish failed",
			zap.String("event_type", string(eventType)), zap.String("user_id", userID), zap.Error(err))
	}
}
