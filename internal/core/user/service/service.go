package userapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	userEntity "yatube/internal/core/user"
	mediaPort "yatube/internal/ports/media"
	userPort "yatube/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer = "yatube"
	tokenTTL    = 24 * time.Hour
)

// UserService سرویس مدیریت کاربران
type UserService struct {
	UserRepository userPort.UserRepository
	Media          mediaPort.Storage
	jwtKey         []byte
	logger         *zap.Logger
	now            func() time.Time
}

func NewUserService(repo userPort.UserRepository, media mediaPort.Storage, jwtKey []byte, logger *zap.Logger) *UserService {
	return &UserService{
		UserRepository: repo,
		Media:          media,
		jwtKey:         jwtKey,
		logger:         logger,
		now:            time.Now,
	}
}

// RegisterUser ثبت‌نام کاربر جدید
func (s *UserService) RegisterUser(ctx context.Context, in userPort.SignupInput) (*userPort.UserDTO, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if !userPort.ValidUsername(in.Username) {
		return nil, userPort.ErrInvalidUsername
	}
	if len(in.Password) < userPort.MinPasswordLength {
		return nil, userPort.ErrPasswordTooShort
	}

	existing, err := s.UserRepository.FindByUsernameOrEmail(ctx, in.Username, in.Email)
	if err == nil && existing != nil {
		return nil, userPort.ErrUserExists
	}
	if err != nil && !errors.Is(err, userPort.ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u, err := s.UserRepository.Create(ctx, &userEntity.User{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hashedPassword),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("username", u.Username), zap.String("userID", u.ID.String()))
	dto := userPort.NewUserDTO(u)
	return &dto, nil
}

// LoginUser ورود کاربر و صدور توکن JWT
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error) {
	u, err := s.UserRepository.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, userPort.ErrUserNotFound) {
			return nil, userPort.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		s.logger.Debug("invalid password", zap.String("username", u.Username))
		return nil, userPort.ErrInvalidCredentials
	}

	return s.IssueToken(u.ID)
}

// IssueToken signs a session token for the user.
func (s *UserService) IssueToken(userID uuid.UUID) (*userPort.LoginResponse, error) {
	expiresAt := s.now().Add(tokenTTL).Unix()
	claims := &jwt.StandardClaims{
		Subject:   userID.String(),
		Issuer:    tokenIssuer,
		IssuedAt:  s.now().Unix(),
		ExpiresAt: expiresAt,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
	if err != nil {
		return nil, fmt.Errorf("could not generate token: %w", err)
	}
	return &userPort.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// Authenticate resolves a session token into the user it was issued for.
func (s *UserService) Authenticate(ctx context.Context, token string) (*userPort.UserDTO, error) {
	claims := &jwt.StandardClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, userPort.ErrInvalidCredentials
	}

	id, err := uuid.FromString(claims.Subject)
	if err != nil {
		return nil, userPort.ErrInvalidCredentials
	}
	u, err := s.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := userPort.NewUserDTO(u)
	return &dto, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*userPort.UserDTO, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	dto := userPort.NewUserDTO(u)
	return &dto, nil
}

// DeleteUser removes the account and everything it owns, post images included.
func (s *UserService) DeleteUser(ctx context.Context, username string) error {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	images, err := s.UserRepository.Delete(ctx, u.ID)
	if err != nil {
		return err
	}
	for _, path := range images {
		if err := s.Media.Delete(ctx, path); err != nil {
			s.logger.Warn("could not delete image", zap.String("path", path), zap.Error(err))
		}
	}
	s.logger.Info("user deleted", zap.String("username", username), zap.Int("images", len(images)))
	return nil
}
