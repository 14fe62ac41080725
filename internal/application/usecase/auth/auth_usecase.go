package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devconnect/api/internal/application/service"
	"github.com/devconnect/api/internal/domain/user"
	"github.com/devconnect/api/pkg/apperror"
	"github.com/devconnect/api/pkg/auth"
	"github.com/devconnect/api/pkg/gravatar"
	"github.com/devconnect/api/pkg/logger"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const minPasswordLen = 6

type AuthUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	events   service.EventPublisher
	logger   logger.Logger
}

func NewAuthUseCase(repo user.Repository, jwtSvc *auth.JWTService, events service.EventPublisher, log logger.Logger) *AuthUseCase {
	return &AuthUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		events:   events,
		logger:   log,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type RegisterOutput struct {
	Token string
}

func (uc *AuthUseCase) ExecuteRegister(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	var msgs []string
	if strings.TrimSpace(input.Name) == "" {
		msgs = append(msgs, "Name is required")
	}
	if !emailRegex.MatchString(input.Email) {
		msgs = append(msgs, "Please include a valid email")
	}
	if len(input.Password) < minPasswordLen {
		msgs = append(msgs, "Please enter a password with 6 or more characters")
	}
	if len(msgs) > 0 {
		return nil, apperror.NewValidation(msgs...)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	newUser := &user.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		Avatar:       gravatar.URL(input.Email),
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return nil, apperror.NewValidation("User already exists")
		}
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(newUser.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", newUser.ID.String()))
		return nil, apperror.NewInternal("failed to generate token", err)
	}

	go func() {
		err := uc.events.PublishUserEvent(context.Background(), service.UserEvent{
			EventType: service.UserEventRegistered,
			UserID:    newUser.ID,
		})
		if err != nil {
			uc.logger.Warn("Failed to publish 'registered' event", zap.String("user_id", newUser.ID.String()), zap.Error(err))
		}
	}()

	return &RegisterOutput{Token: token}, nil
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	Token string
}

// ExecuteLogin answers the same error for an unknown email and a wrong
// password so responses cannot be used to enumerate accounts.
func (uc *AuthUseCase) ExecuteLogin(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	var msgs []string
	if !emailRegex.MatchString(input.Email) {
		msgs = append(msgs, "Please include a valid email")
	}
	if input.Password == "" {
		msgs = append(msgs, "Password is required")
	}
	if len(msgs) > 0 {
		return nil, apperror.NewValidation(msgs...)
	}

	u, err := uc.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(input.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := uc.jwtSvc.GenerateToken(u.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", u.ID.String()))
		return nil, apperror.NewInternal("failed to generate token", err)
	}

	return &LoginOutput{Token: token}, nil
}

// ExecuteCurrentUser loads the account behind a verified token. The password
// hash never leaves the use case.
func (uc *AuthUseCase) ExecuteCurrentUser(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

// ExecuteDeleteAccount removes the user, their profile and every post they
// authored in one transaction.
func (uc *AuthUseCase) ExecuteDeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := uc.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	go func() {
		err := uc.events.PublishUserEvent(context.Background(), service.UserEvent{
			EventType: service.UserEventDeleted,
			UserID:    userID,
		})
		if err != nil {
			uc.logger.Warn("Failed to publish 'deleted' event", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}()

	return nil
}
