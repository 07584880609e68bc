package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"autotradespot_backend/internal/auth/password"
	"autotradespot_backend/internal/auth/repository"
	"autotradespot_backend/internal/events"
	"autotradespot_backend/platform/apperr"
	"autotradespot_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type fakeConfig struct {
	staff []string
}

func (fakeConfig) GetJWTAccessSecret() string       { return "test-secret" }
func (fakeConfig) GetAccessTokenTTL() time.Duration { return time.Hour }
func (c fakeConfig) GetStaffEmails() []string       { return c.staff }

type fakeRepo struct {
	byID map[uuid.UUID]repository.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[uuid.UUID]repository.User{}}
}

func (r *fakeRepo) CreateUser(_ context.Context, p repository.CreateUserParams) (repository.User, error) {
	for _, u := range r.byID {
		if u.Email == p.Email {
			return repository.User{}, repository.ErrDuplicateEmail
		}
	}
	u := repository.User{ID: uuid.New(), Email: p.Email, PasswordHash: p.PasswordHash, Name: p.Name, IsStaff: p.IsStaff}
	r.byID[u.ID] = u
	return u, nil
}

func (r *fakeRepo) GetUserByEmail(_ context.Context, email string) (repository.User, error) {
	for _, u := range r.byID {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return repository.User{}, repository.ErrNotFound
}

func (r *fakeRepo) GetUserByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return repository.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeRepo) UpdateProfile(_ context.Context, id uuid.UUID, p repository.UpdateProfileParams) (repository.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return repository.User{}, repository.ErrNotFound
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Username != nil {
		u.Username = p.Username
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	r.byID[id] = u
	return u, nil
}

func (r *fakeRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	u := r.byID[id]
	u.PasswordHash = hash
	r.byID[id] = u
	return nil
}

func newTestService(staff ...string) (*Service, *fakeRepo) {
	repo := newFakeRepo()
	svc := New(repo, fakeConfig{staff: staff}, events.NewInMemoryBus(nil), logger.New("test"))
	return svc, repo
}

func TestSignUpMarksConfiguredStaff(t *testing.T) {
	svc, _ := newTestService("mod@example.com")

	profile, err := svc.SignUp(context.Background(), " Mod@Example.com ", "supersecret", "Moderator")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if !profile.IsStaff || profile.Email != "mod@example.com" {
		t.Fatalf("expected normalised staff profile, got %+v", profile)
	}
	if roles := profile.Roles(); len(roles) != 1 || roles[0] != "staff" {
		t.Fatalf("unexpected roles %v", roles)
	}
}

func TestSignUpDuplicateEmailIsConflict(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.SignUp(ctx, "a@example.com", "supersecret", ""); err != nil {
		t.Fatalf("first sign up: %v", err)
	}
	_, err := svc.SignUp(ctx, "a@example.com", "supersecret", "")
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSignInIssuesAccessToken(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	profile, err := svc.SignUp(ctx, "seller@example.com", "supersecret", "")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}

	raw, err := svc.SignIn(ctx, "seller@example.com", "supersecret")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	parsed, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) { return []byte("test-secret"), nil })
	if err != nil || !parsed.Valid {
		t.Fatalf("expected valid token, got %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != profile.ID.String() || claims["type"] != "access" {
		t.Fatalf("unexpected claims %v", claims)
	}
}

func TestSignInRejectsWrongPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.SignUp(ctx, "seller@example.com", "supersecret", ""); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if _, err := svc.SignIn(ctx, "seller@example.com", "nope"); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestUpdateMeNormalisesPhone(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	profile, err := svc.SignUp(ctx, "seller@example.com", "supersecret", "")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}

	number := "06 12345678"
	updated, err := svc.UpdateMe(ctx, profile.ID, UpdateProfileInput{Phone: &number})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Phone != "+31612345678" {
		t.Fatalf("expected E.164 phone, got %q", updated.Phone)
	}
}

func TestUpdateMeRejectsInvalidPhone(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	profile, err := svc.SignUp(ctx, "seller@example.com", "supersecret", "")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}

	number := "12"
	if _, err := svc.UpdateMe(ctx, profile.ID, UpdateProfileInput{Phone: &number}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestChangePasswordRequiresCurrent(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	profile, err := svc.SignUp(ctx, "seller@example.com", "supersecret", "")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}

	if err := svc.ChangePassword(ctx, profile.ID, "wrong", "newsecret1"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := svc.ChangePassword(ctx, profile.ID, "supersecret", "newsecret1"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if err := password.Compare(repo.byID[profile.ID].PasswordHash, "newsecret1"); err != nil {
		t.Fatalf("expected new password to be stored: %v", err)
	}
}
