package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"karkandu/internal/apperr"
	"karkandu/internal/config"
	"karkandu/internal/httpapi/dto"
	"karkandu/internal/httpapi/middleware/auth"
	"karkandu/internal/httpapi/models"
	"karkandu/internal/httpapi/repository"
)

// Claims is the JWT payload for a signed-in session.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterDTO) (*dto.AuthResponse, error)
	Login(ctx context.Context, input dto.LoginDTO, ip, userAgent string) (*dto.AuthResponse, error)
	ValidateToken(tokenString string) (*Claims, error)
	Me(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, input dto.UpdateProfileDTO) (*dto.UserResponse, error)
}

type authService struct {
	users     repository.UserRepository
	loginLogs repository.LoginLogRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users repository.UserRepository, loginLogs repository.LoginLogRepository, cfg *config.Config) AuthService {
	return &authService{
		users:     users,
		loginLogs: loginLogs,
		jwtSecret: cfg.JWTSecret,
		tokenTTL:  cfg.TokenTTL,
	}
}

// Register creates a reader account and signs it in.
func (s *authService) Register(ctx context.Context, input dto.RegisterDTO) (*dto.AuthResponse, error) {
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.New(apperr.ErrInvalid, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	language := input.Language
	if language == "" {
		language = "en"
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashed,
		Role:     "user",
		Language: language,
		IsActive: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{Token: token, User: dto.FromUser(user)}, nil
}

// Login authenticates by email and password. An unknown email still runs a
// bcrypt compare against a dummy hash so both failure paths take the same
// time.
func (s *authService) Login(ctx context.Context, input dto.LoginDTO, ip, userAgent string) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		auth.VerifyPassword(auth.DummyHash, input.Password)
		return nil, apperr.New(apperr.ErrUnauthorized, "invalid credentials")
	}

	if err := auth.VerifyPassword(user.Password, input.Password); err != nil {
		return nil, apperr.New(apperr.ErrUnauthorized, "invalid credentials")
	}
	if !user.IsActive {
		return nil, apperr.New(apperr.ErrForbidden, "account is deactivated")
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	// Login history is best effort; a failed insert must not fail the login.
	_ = s.loginLogs.Create(ctx, &models.LoginLog{
		UserID:    user.ID,
		IP:        ip,
		UserAgent: userAgent,
	})

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{Token: token, User: dto.FromUser(user)}, nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses and verifies a session token.
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.New(apperr.ErrUnauthorized, "invalid token")
	}
	return claims, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, orNotFound(err, "user not found")
	}
	resp := dto.FromUser(user)
	return &resp, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID string, input dto.UpdateProfileDTO) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, orNotFound(err, "user not found")
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}
	if input.Language != nil {
		user.Language = *input.Language
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := dto.FromUser(user)
	return &resp, nil
}
