package user

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"yatube/internal/core/user"

	"github.com/gofrs/uuid"
)

const MinPasswordLength = 8

// usernamePattern allows letters, digits and @ . + - _ only, so every
// username is a single clean path segment under /profile/.
var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

func ValidUsername(name string) bool {
	return usernamePattern.MatchString(name)
}

var (
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrInvalidUsername    = errors.New("username may contain only letters, digits and @/./+/-/_")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username or email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserRepository پورت برای ذخیره‌سازی و بازیابی کاربران
type UserRepository interface {
	Create(ctx context.Context, user *user.User) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*user.User, error)
	// Delete removes the user together with their posts, comments and follow
	// edges, and returns the image paths of the removed posts.
	Delete(ctx context.Context, id uuid.UUID) ([]string, error)
}

type SignupInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

type UserDTO struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

func NewUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:        u.ID.String(),
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
	}
}
