package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"karkandu/internal/apperr"
	"karkandu/internal/config"
	"karkandu/internal/httpapi/dto"
	"karkandu/internal/httpapi/models"
)

func newAuthService() (*MockUserRepository, *MockLoginLogRepository, AuthService) {
	users := new(MockUserRepository)
	loginLogs := new(MockLoginLogRepository)
	cfg := &config.Config{
		JWTSecret: "test-secret-that-is-long-enough!",
		TokenTTL:  7 * 24 * time.Hour,
	}
	return users, loginLogs, NewAuthService(users, loginLogs, cfg)
}

func TestRegister_Success(t *testing.T) {
	users, _, svc := newAuthService()

	users.On("FindByEmail", mock.Anything, "amudha@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	resp, err := svc.Register(context.Background(), dto.RegisterDTO{
		Name:     "Amudha",
		Email:    "amudha@example.com",
		Password: "password123",
		Language: "ta",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Amudha", resp.User.Name)
	assert.Equal(t, "ta", resp.User.Language)
	users.AssertExpectations(t)
}

func TestRegister_EmailInUse(t *testing.T) {
	users, _, svc := newAuthService()

	users.On("FindByEmail", mock.Anything, "taken@example.com").
		Return(&models.User{Email: "taken@example.com"}, nil)

	_, err := svc.Register(context.Background(), dto.RegisterDTO{
		Name:     "Someone",
		Email:    "taken@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, apperr.ErrInvalid)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	users, loginLogs, svc := newAuthService()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-1",
		Name:     "Amudha",
		Email:    "amudha@example.com",
		Password: string(hashed),
		Role:     "user",
		IsActive: true,
	}

	users.On("FindByEmail", mock.Anything, "amudha@example.com").Return(user, nil)
	users.On("Update", mock.Anything, user).Return(nil)
	loginLogs.On("Create", mock.Anything, mock.MatchedBy(func(entry *models.LoginLog) bool {
		return entry.UserID == "user-1" && entry.IP == "10.0.0.1"
	})).Return(nil)

	resp, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "amudha@example.com",
		Password: "password123",
	}, "10.0.0.1", "test-agent")

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.NotNil(t, user.LastLogin)
	loginLogs.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	users, _, svc := newAuthService()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.DefaultCost)
	users.On("FindByEmail", mock.Anything, "amudha@example.com").
		Return(&models.User{Password: string(hashed), IsActive: true}, nil)

	_, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "amudha@example.com",
		Password: "wrong",
	}, "", "")

	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestLogin_UnknownEmail(t *testing.T) {
	users, _, svc := newAuthService()

	users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "ghost@example.com",
		Password: "whatever",
	}, "", "")

	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	users, _, svc := newAuthService()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	users.On("FindByEmail", mock.Anything, "old@example.com").
		Return(&models.User{Password: string(hashed), IsActive: false}, nil)

	_, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "old@example.com",
		Password: "password123",
	}, "", "")

	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestValidateToken_Roundtrip(t *testing.T) {
	users, _, svc := newAuthService()

	users.On("FindByEmail", mock.Anything, "amudha@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	resp, err := svc.Register(context.Background(), dto.RegisterDTO{
		Name:     "Amudha",
		Email:    "amudha@example.com",
		Password: "password123",
	})
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(resp.Token)
	assert.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "user", claims.Role)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, _, svc := newAuthService()

	_, err := svc.ValidateToken("not.a.token")

	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}
