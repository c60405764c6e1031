package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/forgo/clubs/api/internal/database"
	"github.com/forgo/clubs/api/internal/model"
	"github.com/forgo/clubs/api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// Test helper to create auth service with mocks
func setupAuthService(t *testing.T) (*AuthService, *mockUserRepo) {
	t.Helper()

	userRepo := newMockUserRepo()
	tokenService := NewTokenService(TokenServiceConfig{
		JWTService: jwt.NewTestService("test-secret", "test-issuer", time.Hour),
	})

	authService := NewAuthService(AuthServiceConfig{
		UserRepo:     userRepo,
		TokenService: tokenService,
		BcryptCost:   bcrypt.MinCost,
	})

	return authService, userRepo
}

func validRegistration() RegisterRequest {
	return RegisterRequest{
		Email:    "ada@yale.edu",
		Password: "password123",
		Name:     "Ada Lovelace",
	}
}

// ============================================================================
// Register
// ============================================================================

func TestAuthService_Register_Success(t *testing.T) {
	t.Parallel()
	authService, userRepo := setupAuthService(t)
	ctx := context.Background()

	result, err := authService.Register(ctx, validRegistration())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if result.User.Email != "ada@yale.edu" {
		t.Errorf("expected email ada@yale.edu, got %s", result.User.Email)
	}
	if result.User.Role != model.UserRoleStudent {
		t.Errorf("expected role student, got %s", result.User.Role)
	}
	if result.Token == "" {
		t.Error("expected a token")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(result.User.PasswordHash), []byte("password123")); err != nil {
		t.Error("password hash verification failed")
	}

	stored, _ := userRepo.GetByEmail(ctx, "ada@yale.edu")
	if stored == nil {
		t.Error("user was not stored in repository")
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	t.Parallel()
	authService, _ := setupAuthService(t)

	tests := []struct {
		name   string
		mutate func(r *RegisterRequest)
	}{
		{"no email", func(r *RegisterRequest) { r.Email = "" }},
		{"no password", func(r *RegisterRequest) { r.Password = "" }},
		{"no name", func(r *RegisterRequest) { r.Name = "   " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegistration()
			tt.mutate(&req)
			_, err := authService.Register(context.Background(), req)
			if !errors.Is(err, ErrMissingFields) {
				t.Errorf("expected ErrMissingFields, got %v", err)
			}
		})
	}
}

func TestAuthService_Register_InvalidEmail(t *testing.T) {
	t.Parallel()
	authService, _ := setupAuthService(t)

	for _, email := range []string{"adayale.edu", "ada@", "@yale.edu", "ada@yale"} {
		t.Run(email, func(t *testing.T) {
			req := validRegistration()
			req.Email = email
			_, err := authService.Register(context.Background(), req)
			if !errors.Is(err, ErrInvalidEmail) {
				t.Errorf("expected ErrInvalidEmail, got %v", err)
			}
		})
	}
}

func TestAuthService_Register_InvalidPassword(t *testing.T) {
	t.Parallel()
	authService, _ := setupAuthService(t)

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"too short", "short", ErrPasswordTooShort},
		{"exactly 7 chars", "1234567", ErrPasswordTooShort},
		{"too long", strings.Repeat("x", model.MaxPasswordLength+1), ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegistration()
			req.Password = tt.password
			_, err := authService.Register(context.Background(), req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAuthService_Register_NameTooLong(t *testing.T) {
	t.Parallel()
	authService, _ := setupAuthService(t)

	req := validRegistration()
	req.Name = strings.Repeat("n", model.MaxNameLength+1)
	if _, err := authService.Register(context.Background(), req); !errors.Is(err, ErrNameTooLong) {
		t.Errorf("expected ErrNameTooLong, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()
	authService, _ := setupAuthService(t)
	ctx := context.Background()

	if _, err := authService.Register(ctx, validRegistration()); err != nil {
		t.Fatalf("First registration failed: %v", err)
	}

	req := validRegistration()
	req.Email = "ADA@yale.edu"
	if _, err := authService.Register(ctx, req); !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestAuthService_Register_DuplicateFromConstraint(t *testing.T) {
	t.Parallel()
	authService, userRepo := setupAuthService(t)

	// Lost race: the pre-check sees nothing but the insert hits the unique index.
	userRepo.createErr = database.ErrDuplicate

	if _, err := authService.Register(context.Background(), validRegistration()); !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestAuthService_Register_EmailNormalization(t *testing.T) {
	t.Parallel()
	authService, userRepo := setupAuthService(t)
	ctx := context.Background()

	req := validRegistration()
	req.Email = "  ADA@YALE.EDU  "
	if _, err := authService.Register(ctx, req); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, _ := userRepo.GetByEmail(ctx, "ada@yale.edu")
	if user == nil {
		t.Error("user should be findable by normalized email")
	}
}

// ============================================================================
// Login
// ============================================================================

func TestAuthService_Login_Success(t *testing.T) {
	t.Parallel()
	authService, _ := setupAuthService(t)
	ctx := context.Background()

	if _, err := authService.Register(ctx, validRegistration()); err != nil {
		t.Fatalf("Registration failed: %v", err)
	}

	result, err := authService.Login(ctx, LoginRequest{Email: "Ada@Yale.edu", Password: "password123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.User.Email != "ada@yale.edu" {
		t.Errorf("expected email ada@yale.edu, got %s", result.User.Email)
	}

	identity, err := authService.ValidateAccessToken(result.Token)
	if err != nil {
		t.Fatalf("token from login did not validate: %v", err)
	}
	if identity.ID != result.User.ID {
		t.Errorf("expected identity id %d, got %d", result.User.ID, identity.ID)
	}
}

func TestAuthService_Login_Failures(t *testing.T) {
	t.Parallel()
	authService, userRepo := setupAuthService(t)
	ctx := context.Background()

	if _, err := authService.Register(ctx, validRegistration()); err != nil {
		t.Fatalf("Registration failed: %v", err)
	}
	_ = userRepo.Create(ctx, &model.User{Email: "nohash@yale.edu", Name: "No Hash", Role: model.UserRoleStudent})

	tests := []struct {
		name string
		req  LoginRequest
	}{
		{"wrong password", LoginRequest{Email: "ada@yale.edu", Password: "wrongpassword"}},
		{"unknown email", LoginRequest{Email: "nobody@yale.edu", Password: "password123"}},
		{"empty fields", LoginRequest{}},
		{"account without password", LoginRequest{Email: "nohash@yale.edu", Password: "password123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := authService.Login(ctx, tt.req); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthService_Login_RepositoryError(t *testing.T) {
	t.Parallel()
	authService, userRepo := setupAuthService(t)

	boom := errors.New("connection reset")
	userRepo.getErr = boom

	_, err := authService.Login(context.Background(), LoginRequest{Email: "ada@yale.edu", Password: "password123"})
	if !errors.Is(err, boom) {
		t.Errorf("expected repository error to propagate, got %v", err)
	}
}

// ============================================================================
// Lookups
// ============================================================================

func TestAuthService_GetUserByID(t *testing.T) {
	t.Parallel()
	authService, _ := setupAuthService(t)
	ctx := context.Background()

	result, err := authService.Register(ctx, validRegistration())
	if err != nil {
		t.Fatalf("Registration failed: %v", err)
	}

	user, err := authService.GetUserByID(ctx, result.User.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if user.Name != "Ada Lovelace" {
		t.Errorf("expected name Ada Lovelace, got %s", user.Name)
	}

	if _, err := authService.GetUserByID(ctx, 999); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestIsValidEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		email string
		valid bool
	}{
		{"a@b.co", true},
		{"first.last@cs.yale.edu", true},
		{"", false},
		{"plain", false},
		{"a@b.", false},
		{"a@.b", false},
		{strings.Repeat("a", 250) + "@b.co", false},
	}

	for _, tt := range tests {
		if got := isValidEmail(tt.email); got != tt.valid {
			t.Errorf("isValidEmail(%q) = %v, want %v", tt.email, got, tt.valid)
		}
	}
}
