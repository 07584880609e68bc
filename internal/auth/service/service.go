package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"autotradespot_backend/internal/auth/password"
	"autotradespot_backend/internal/auth/repository"
	"autotradespot_backend/internal/events"
	"autotradespot_backend/platform/apperr"
	"autotradespot_backend/platform/config"
	"autotradespot_backend/platform/httpkit"
	"autotradespot_backend/platform/logger"
	"autotradespot_backend/platform/phone"
	"autotradespot_backend/platform/sanitize"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const accessTokenType = "access"

var errInvalidCredentials = apperr.Unauthorized("invalid credentials")

// Profile is the user as exposed by the API.
type Profile struct {
	ID        uuid.UUID
	Email     string
	Name      string
	Username  *string
	Phone     string
	IsStaff   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Roles returns the token roles derived from the profile.
func (p Profile) Roles() []string {
	if p.IsStaff {
		return []string{httpkit.RoleStaff}
	}
	return []string{}
}

type Service struct {
	repo     repository.AuthRepository
	cfg      config.AuthServiceConfig
	eventBus events.Bus
	log      *logger.Logger
	now      func() time.Time
}

func New(repo repository.AuthRepository, cfg config.AuthServiceConfig, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, eventBus: eventBus, log: log, now: time.Now}
}

// SignUp registers a user. Addresses listed in STAFF_EMAILS become moderators.
func (s *Service) SignUp(ctx context.Context, email, plainPassword, name string) (Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return Profile{}, err
	}

	user, err := s.repo.CreateUser(ctx, repository.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		Name:         sanitize.Text(name),
		IsStaff:      s.isStaffEmail(email),
	})
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return Profile{}, apperr.Conflict("an account with this email already exists")
	}
	if err != nil {
		return Profile{}, err
	}

	s.eventBus.Publish(ctx, events.UserSignedUp{
		BaseEvent: events.NewBaseEvent(),
		UserID:    user.ID,
		Email:     user.Email,
	})
	s.log.AuthEvent("sign_up", user.Email, true, "")

	return toProfile(user), nil
}

// SignIn verifies credentials and issues an access token.
func (s *Service) SignIn(ctx context.Context, email, plainPassword string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		s.log.AuthEvent("sign_in", email, false, "unknown email")
		return "", errInvalidCredentials
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("sign_in", email, false, "password mismatch")
		return "", errInvalidCredentials
	}

	token, err := s.signJWT(toProfile(user))
	if err != nil {
		return "", err
	}
	s.log.AuthEvent("sign_in", email, true, "")
	return token, nil
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (Profile, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return Profile{}, apperr.NotFound("user not found")
	}
	if err != nil {
		return Profile{}, err
	}
	return toProfile(user), nil
}

type UpdateProfileInput struct {
	Name     *string
	Username *string
	Phone    *string
}

func (s *Service) UpdateMe(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (Profile, error) {
	params := repository.UpdateProfileParams{
		Name:     sanitize.TextPtr(input.Name),
		Username: sanitize.TextPtr(input.Username),
	}
	if input.Phone != nil {
		normalized, err := phone.Normalize(*input.Phone)
		if err != nil {
			return Profile{}, apperr.Validation("invalid profile").
				WithDetails(map[string]string{"phone": "Enter a valid phone number."})
		}
		params.Phone = &normalized
	}

	user, err := s.repo.UpdateProfile(ctx, userID, params)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return Profile{}, apperr.NotFound("user not found")
	case errors.Is(err, repository.ErrDuplicateName):
		return Profile{}, apperr.Conflict("username already taken")
	case err != nil:
		return Profile{}, err
	}
	return toProfile(user), nil
}

func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("user not found")
	}
	if err != nil {
		return err
	}
	if err := password.Compare(user.PasswordHash, current); err != nil {
		return apperr.Validation("current password is incorrect")
	}

	hash, err := password.Hash(next)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, userID, hash)
}

func (s *Service) signJWT(profile Profile) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   profile.ID.String(),
		"type":  accessTokenType,
		"roles": profile.Roles(),
		"exp":   now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
		"iat":   now.Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}

func (s *Service) isStaffEmail(email string) bool {
	for _, staff := range s.cfg.GetStaffEmails() {
		if staff == email {
			return true
		}
	}
	return false
}

func toProfile(user repository.User) Profile {
	return Profile{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Username:  user.Username,
		Phone:     user.Phone,
		IsStaff:   user.IsStaff,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
