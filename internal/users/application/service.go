package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/ravosoft/photohub/backend/internal/platform/apperror"
	"github.com/ravosoft/photohub/backend/internal/platform/eventbus"
	"github.com/ravosoft/photohub/backend/internal/platform/events"
	"github.com/ravosoft/photohub/backend/internal/platform/logger"
	"github.com/ravosoft/photohub/backend/internal/platform/ownership"
	"github.com/ravosoft/photohub/backend/internal/platform/password"
	"github.com/ravosoft/photohub/backend/internal/platform/validator"
	"github.com/ravosoft/photohub/backend/internal/users/domain"
	"github.com/ravosoft/photohub/backend/internal/users/ports"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodeUserNotFound,
		"user not found",
		http.StatusNotFound,
	)

	ErrInvalidProfile = apperror.Validation(apperror.BusinessCodeInvalidFormat, "invalid profile data")

	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		apperror.BusinessCodeInvalidCredentials,
		"invalid credentials",
		http.StatusUnauthorized,
	)

	ErrAvatarNotFound = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodeImageNotFound,
		"avatar image not found",
		http.StatusNotFound,
	)
)

// PasswordVerifier checks a plain password against a stored hash.
type PasswordVerifier interface {
	Compare(hash, plain string) error
}

type UpdateProfileParams struct {
	DisplayName *string
	Bio         *string
}

type UserService struct {
	repo      ports.UserRepository
	ownership ownership.Registry
	passwords PasswordVerifier
	eventBus  *eventbus.Bus
	logger    logger.Logger
}

func NewUserService(
	repo ports.UserRepository,
	registry ownership.Registry,
	passwords PasswordVerifier,
	eventBus *eventbus.Bus,
	logger logger.Logger,
) *UserService {
	return &UserService{
		repo:      repo,
		ownership: registry,
		passwords: passwords,
		eventBus:  eventBus,
		logger:    logger,
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ports.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, params UpdateProfileParams) (*domain.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	displayName := validator.SanitizeTextPtr(params.DisplayName)
	bio := validator.SanitizeTextPtr(params.Bio)
	if err := user.UpdateProfile(displayName, bio); err != nil {
		return nil, ErrInvalidProfile.WithDetails(err.Error())
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// SetAvatar points the profile picture at one of the user's own images.
func (s *UserService) SetAvatar(ctx context.Context, userID, imageID uuid.UUID) (*domain.User, error) {
	owned, err := s.ownership.CheckOwnership(ctx, userID, ownership.ResourceImages, imageID)
	if err != nil {
		return nil, fmt.Errorf("failed to check image ownership: %w", err)
	}
	if !owned {
		return nil, ErrAvatarNotFound
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.SetAvatar(&imageID)

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}
	return user, nil
}

func (s *UserService) ClearAvatar(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.SetAvatar(nil)

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to clear avatar: %w", err)
	}
	return user, nil
}

// DeleteAccount removes the user after re-checking the password. Images,
// albums and sessions are removed by their own contexts on users.deleted.
func (s *UserService) DeleteAccount(ctx context.Context, userID uuid.UUID, plainPassword string) error {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.passwords.Compare(user.PasswordHash, plainPassword); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to verify password: %w", err)
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, ports.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info(ctx, "user account deleted", "user_id", userID)
	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.UserDeletedTopic,
		Payload: events.UserDeletedEvent{
			UserID:     userID,
			OccurredAt: time.Now().UTC(),
		},
	})
	return nil
}

// RegisterSubscribers clears avatars that point at deleted images.
func (s *UserService) RegisterSubscribers(bus *eventbus.Bus) {
	bus.Subscribe(events.ImageDeletedTopic, func(ctx context.Context, event eventbus.Event) error {
		payload, ok := event.Payload.(events.ImageDeletedEvent)
		if !ok {
			return fmt.Errorf("unexpected payload %T", event.Payload)
		}
		return s.repo.ClearAvatar(ctx, payload.ImageID)
	})
}
