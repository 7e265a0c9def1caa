package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AYOGRAM01/Jollyshop/internal/users"
	"github.com/AYOGRAM01/Jollyshop/pkg/auth/session"
	"github.com/AYOGRAM01/Jollyshop/pkg/config"
	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
	"github.com/AYOGRAM01/Jollyshop/pkg/enums"
	pkgerrors "github.com/AYOGRAM01/Jollyshop/pkg/errors"
	"github.com/AYOGRAM01/Jollyshop/pkg/security"
)

type fakeUsersRepo struct {
	findByEmailFn func(ctx context.Context, email string) (*models.User, error)
	findByIDFn    func(ctx context.Context, id uuid.UUID) (*models.User, error)
	createFn      func(ctx context.Context, user *models.User) error
	lastLoginFn   func(ctx context.Context, id uuid.UUID, at time.Time) error
}

func (f *fakeUsersRepo) WithTx(tx *gorm.DB) users.Repository { return f }

func (f *fakeUsersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsersRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsersRepo) Create(ctx context.Context, user *models.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, user)
	}
	user.ID = uuid.New()
	return nil
}

func (f *fakeUsersRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if f.lastLoginFn != nil {
		return f.lastLoginFn(ctx, id, at)
	}
	return nil
}

func (f *fakeUsersRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	return 0, nil
}

type fakeSessions struct {
	generateFn func(ctx context.Context, accessID string) (string, error)
	rotateFn   func(ctx context.Context, oldAccessID, provided string) (string, string, error)
	revoked    []string
}

func (f *fakeSessions) Generate(ctx context.Context, accessID string) (string, error) {
	if f.generateFn != nil {
		return f.generateFn(ctx, accessID)
	}
	return "refresh-token", nil
}

func (f *fakeSessions) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if f.rotateFn != nil {
		return f.rotateFn(ctx, oldAccessID, provided)
	}
	return session.NewAccessID(), "rotated-token", nil
}

func (f *fakeSessions) Revoke(ctx context.Context, accessID string) error {
	f.revoked = append(f.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret",
		Issuer:                 "jollyshop-test",
		ExpirationMinutes:      15,
		RefreshTokenTTLMinutes: 60,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func newTestService(t *testing.T, repo users.Repository, sessions sessionManager) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:     repo,
		Sessions: sessions,
		JWT:      testJWTConfig(),
		Password: testPasswordConfig(),
	})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func TestRegister_IssuesTokens(t *testing.T) {
	var created *models.User
	repo := &fakeUsersRepo{
		createFn: func(ctx context.Context, user *models.User) error {
			user.ID = uuid.New()
			created = user
			return nil
		},
	}
	svc := newTestService(t, repo, &fakeSessions{})

	result, err := svc.Register(context.Background(), RegisterParams{
		Email:     "Ada@Example.com",
		Password:  "correct horse",
		FirstName: "Ada",
		LastName:  "Obi",
	})
	if err != nil {
		t.Fatalf("unexpected register error: %v", err)
	}

	if created == nil {
		t.Fatal("expected a user to be created")
	}
	if created.Email != "ada@example.com" {
		t.Fatalf("email should be lowercased, got %q", created.Email)
	}
	if created.Role != enums.RoleCustomer {
		t.Fatalf("new accounts must default to customer, got %s", created.Role)
	}
	if created.PasswordHash == "correct horse" {
		t.Fatal("password must be hashed, not stored raw")
	}
	if result.Tokens.AccessToken == "" || result.Tokens.RefreshToken == "" {
		t.Fatal("expected an issued token pair")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &fakeUsersRepo{
		createFn: func(ctx context.Context, user *models.User) error {
			return errors.New(`duplicate key value violates unique constraint "ux_users_email"`)
		},
	}
	svc := newTestService(t, repo, &fakeSessions{})

	_, err := svc.Register(context.Background(), RegisterParams{
		Email:     "ada@example.com",
		Password:  "correct horse",
		FirstName: "Ada",
		LastName:  "Obi",
	})
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict code, got %s", pkgerrors.As(err).Code())
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := security.HashPassword("right password", testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	repo := &fakeUsersRepo{
		findByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: uuid.New(), Email: email, PasswordHash: hash, Role: enums.RoleCustomer, IsActive: true}, nil
		},
	}
	svc := newTestService(t, repo, &fakeSessions{})

	_, err = svc.Login(context.Background(), LoginParams{Email: "ada@example.com", Password: "wrong password"})
	if err == nil {
		t.Fatal("expected unauthorized error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized code, got %s", pkgerrors.As(err).Code())
	}
}

func TestLogin_UnknownEmailMatchesWrongPasswordShape(t *testing.T) {
	svc := newTestService(t, &fakeUsersRepo{}, &fakeSessions{})

	_, err := svc.Login(context.Background(), LoginParams{Email: "ghost@example.com", Password: "whatever"})
	if err == nil {
		t.Fatal("expected unauthorized error")
	}
	typed := pkgerrors.As(err)
	if typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized code, got %s", typed.Code())
	}
	if typed.Message() != "invalid email or password" {
		t.Fatalf("unknown email must not be distinguishable: %q", typed.Message())
	}
}

func TestLogin_Success(t *testing.T) {
	hash, err := security.HashPassword("right password", testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	userID := uuid.New()
	lastLoginRecorded := false
	repo := &fakeUsersRepo{
		findByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: userID, Email: email, PasswordHash: hash, FirstName: "Ada", Role: enums.RoleCustomer, IsActive: true}, nil
		},
		lastLoginFn: func(ctx context.Context, id uuid.UUID, at time.Time) error {
			lastLoginRecorded = true
			return nil
		},
	}
	svc := newTestService(t, repo, &fakeSessions{})

	result, err := svc.Login(context.Background(), LoginParams{Email: "ada@example.com", Password: "right password"})
	if err != nil {
		t.Fatalf("unexpected login error: %v", err)
	}
	if result.User.ID != userID {
		t.Fatalf("unexpected user %s", result.User.ID)
	}
	if !lastLoginRecorded {
		t.Fatal("expected last login to be recorded")
	}
	if result.Tokens.AccessToken == "" || result.Tokens.RefreshToken == "" {
		t.Fatal("expected an issued token pair")
	}
}

func TestRefresh_InvalidToken(t *testing.T) {
	sessions := &fakeSessions{
		rotateFn: func(ctx context.Context, oldAccessID, provided string) (string, string, error) {
			return "", "", session.ErrInvalidRefreshToken
		},
	}
	svc := newTestService(t, &fakeUsersRepo{}, sessions)

	// mint a real token so parsing succeeds and rotation is reached
	result, err := newTestService(t, &fakeUsersRepo{}, &fakeSessions{}).Register(context.Background(), RegisterParams{
		Email:     "ada@example.com",
		Password:  "correct horse",
		FirstName: "Ada",
		LastName:  "Obi",
	})
	if err != nil {
		t.Fatalf("setup register failed: %v", err)
	}

	_, err = svc.Refresh(context.Background(), result.Tokens.AccessToken, "stolen-token")
	if err == nil {
		t.Fatal("expected unauthorized error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized code, got %s", pkgerrors.As(err).Code())
	}
}

func TestLogout_RevokesSession(t *testing.T) {
	sessions := &fakeSessions{}
	svc := newTestService(t, &fakeUsersRepo{}, sessions)

	if err := svc.Logout(context.Background(), "access-id"); err != nil {
		t.Fatalf("unexpected logout error: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "access-id" {
		t.Fatalf("expected session revocation, got %v", sessions.revoked)
	}
}
