package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
	"github.com/AYOGRAM01/Jollyshop/pkg/enums"
)

// RegisterParams carries a new account submission.
type RegisterParams struct {
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=8,max=128"`
	FirstName string `validate:"required,max=120"`
	LastName  string `validate:"required,max=120"`
	Phone     *string
}

// LoginParams carries a credential pair.
type LoginParams struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// UserView is the account projection returned to clients.
type UserView struct {
	ID          uuid.UUID      `json:"id"`
	Email       string         `json:"email"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	Phone       *string        `json:"phone,omitempty"`
	Role        enums.UserRole `json:"role"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// TokenPair is the issued access/refresh credential pair.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResult bundles the authenticated user with the issued tokens.
type LoginResult struct {
	User   UserView  `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

func toUserView(user models.User) UserView {
	return UserView{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Phone:       user.Phone,
		Role:        user.Role,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
