package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"pomodoro-tracker/internal/auth"
	"pomodoro-tracker/internal/model"
	"pomodoro-tracker/internal/repository"
)

// RegisterInput carries the fields accepted at sign-up.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// SettingsInput updates the user's timer preferences. Nil fields are
// left unchanged.
type SettingsInput struct {
	WorkDuration         *int
	ShortBreakDuration   *int
	LongBreakDuration    *int
	LongBreakInterval    *int
	NotificationsEnabled *bool
}

// AuthResult pairs a user with a freshly issued token.
type AuthResult struct {
	User  *model.User
	Token string
}

// AuthService handles registration, login, profiles and settings.
type AuthService struct {
	db     *gorm.DB
	users  *repository.UserRepository
	tokens *auth.TokenManager
}

func NewAuthService(db *gorm.DB, users *repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{db: db, users: users, tokens: tokens}
}

// Register creates a user with a default settings row and issues a token.
// Duplicate usernames or emails fail with ErrUsernameTaken / ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if input.Username == "" {
		return nil, validationf("username is required")
	}
	if input.Email == "" {
		return nil, validationf("email is required")
	}
	if err := auth.ValidatePassword(input.Password); err != nil {
		return nil, validationf("%s", err.Error())
	}

	taken, err := s.users.UsernameTaken(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	taken, err = s.users.EmailTaken(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		if err := users.Create(ctx, &user); err != nil {
			return err
		}
		settings := model.DefaultSettings(user.ID)
		return users.CreateSettings(ctx, &settings)
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: &user, Token: token}, nil
}

// Login verifies credentials and issues a token. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// Profile fetches a user by id.
func (s *AuthService) Profile(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

// GetSettings returns the user's settings, materializing defaults on
// first access.
func (s *AuthService) GetSettings(ctx context.Context, userID uint) (*model.UserSetting, error) {
	return s.ensureSettings(ctx, userID)
}

// UpdateSettings merges the supplied values over the stored row.
func (s *AuthService) UpdateSettings(ctx context.Context, userID uint, input SettingsInput) (*model.UserSetting, error) {
	settings, err := s.ensureSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.WorkDuration != nil {
		settings.WorkDuration = *input.WorkDuration
	}
	if input.ShortBreakDuration != nil {
		settings.ShortBreakDuration = *input.ShortBreakDuration
	}
	if input.LongBreakDuration != nil {
		settings.LongBreakDuration = *input.LongBreakDuration
	}
	if input.LongBreakInterval != nil {
		settings.LongBreakInterval = *input.LongBreakInterval
	}
	if input.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *input.NotificationsEnabled
	}

	if settings.WorkDuration <= 0 || settings.ShortBreakDuration <= 0 || settings.LongBreakDuration <= 0 {
		return nil, validationf("durations must be positive")
	}
	if settings.LongBreakInterval <= 0 {
		return nil, validationf("long break interval must be positive")
	}

	if err := s.users.SaveSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// ensureSettings is the idempotent get-or-create behind both settings
// operations. The transaction keeps concurrent first reads from racing
// past the existence check.
func (s *AuthService) ensureSettings(ctx context.Context, userID uint) (*model.UserSetting, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, notFound(err, "user")
	}

	var settings *model.UserSetting
	err := s.db.Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		found, err := users.FindSettings(ctx, userID)
		switch {
		case err == nil:
			settings = found
			return nil
		case err == gorm.ErrRecordNotFound:
			created := model.DefaultSettings(userID)
			if err := users.CreateSettings(ctx, &created); err != nil {
				return err
			}
			settings = &created
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return settings, nil
}
