package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AYOGRAM01/Jollyshop/internal/users"
	pkgauth "github.com/AYOGRAM01/Jollyshop/pkg/auth"
	"github.com/AYOGRAM01/Jollyshop/pkg/auth/session"
	"github.com/AYOGRAM01/Jollyshop/pkg/config"
	dbpkg "github.com/AYOGRAM01/Jollyshop/pkg/db"
	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
	"github.com/AYOGRAM01/Jollyshop/pkg/enums"
	pkgerrors "github.com/AYOGRAM01/Jollyshop/pkg/errors"
	"github.com/AYOGRAM01/Jollyshop/pkg/logger"
	"github.com/AYOGRAM01/Jollyshop/pkg/security"
)

// Service issues and revokes credentials for storefront accounts.
type Service interface {
	Register(ctx context.Context, params RegisterParams) (*LoginResult, error)
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, accessID string) error
	Me(ctx context.Context, userID uuid.UUID) (*UserView, error)
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type service struct {
	repo     users.Repository
	sessions sessionManager
	jwt      config.JWTConfig
	password config.PasswordConfig
	logg     *logger.Logger
	validate *validator.Validate
	now      func() time.Time
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Repo     users.Repository
	Sessions sessionManager
	JWT      config.JWTConfig
	Password config.PasswordConfig
	Logger   *logger.Logger
	Now      func() time.Time
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	if params.Sessions == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if params.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:     params.Repo,
		sessions: params.Sessions,
		jwt:      params.JWT,
		password: params.Password,
		logg:     params.Logger,
		validate: validator.New(),
		now:      now,
	}, nil
}

func (s *service) Register(ctx context.Context, params RegisterParams) (*LoginResult, error) {
	params.Email = strings.ToLower(strings.TrimSpace(params.Email))
	params.FirstName = strings.TrimSpace(params.FirstName)
	params.LastName = strings.TrimSpace(params.LastName)

	if err := s.validate.Struct(params); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid registration")
	}

	hash, err := security.HashPassword(params.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := models.User{
		Email:        params.Email,
		PasswordHash: hash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Phone:        params.Phone,
		Role:         enums.RoleCustomer,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		if dbpkg.IsUniqueViolation(err, "ux_users_email") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}

	return s.issueTokens(ctx, user)
}

func (s *service) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	params.Email = strings.ToLower(strings.TrimSpace(params.Email))

	if err := s.validate.Struct(params); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid credentials payload")
	}

	user, err := s.repo.FindByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find user")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
	}

	ok, err := security.VerifyPassword(params.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
	}

	loginAt := s.now()
	if err := s.repo.UpdateLastLogin(ctx, user.ID, loginAt); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithUserID(ctx, user.ID.String()), "failed to record last login")
		}
	} else {
		user.LastLoginAt = &loginAt
	}

	return s.issueTokens(ctx, *user)
}

// Refresh rotates the refresh token tied to the presented (possibly expired)
// access token and mints a fresh pair.
func (s *service) Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error) {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwt, accessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefreshToken, err := s.sessions.Rotate(ctx, claims.ID, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	newAccessToken, err := pkgauth.MintAccessToken(s.jwt, s.now(), pkgauth.AccessTokenPayload{
		UserID: claims.UserID,
		Role:   claims.Role,
		JTI:    newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &TokenPair{AccessToken: newAccessToken, RefreshToken: newRefreshToken}, nil
}

func (s *service) Logout(ctx context.Context, accessID string) error {
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find user")
	}
	view := toUserView(*user)
	return &view, nil
}

func (s *service) issueTokens(ctx context.Context, user models.User) (*LoginResult, error) {
	accessID := session.NewAccessID()
	accessToken, err := pkgauth.MintAccessToken(s.jwt, s.now(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	refreshToken, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}

	return &LoginResult{
		User:   toUserView(user),
		Tokens: TokenPair{AccessToken: accessToken, RefreshToken: refreshToken},
	}, nil
}
