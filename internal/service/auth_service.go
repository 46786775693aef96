package service

import (
	"context"
	"errors"
	"time"

	"trainlog/workout-app/internal/domain"
	"trainlog/workout-app/internal/logger"
	"trainlog/workout-app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// AuthService registers users, verifies credentials and issues bearer tokens.
type AuthService interface {
	// Register creates a new account. Registering an email that already
	// exists fails with a conflict error.
	Register(ctx context.Context, email, password, username string) (*domain.User, error)
	// Login verifies credentials and returns a signed token. Unknown email
	// and wrong password produce the identical authentication error.
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	// Profile returns the public view of a user.
	Profile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error)
}

type authService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 7 * 24 * time.Hour
	}
	return &authService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register handles new user registration. Expects the email already
// normalized (trimmed, lowercased) by the validation layer.
func (s *authService) Register(ctx context.Context, email, password, username string) (*domain.User, error) {
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, domain.NewConflictError("Email already registered")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		logger.Log.Errorw("register: email lookup failed", "error", err)
		return nil, domain.NewInternalError("Failed to register user")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("register: password hashing failed", "error", err)
		return nil, domain.NewInternalError("Failed to register user")
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hashed),
		Username:     username,
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		// The unique index catches a concurrent register racing past the
		// GetByEmail check above.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.NewConflictError("Email already registered")
		}
		logger.Log.Errorw("register: user insert failed", "error", err)
		return nil, domain.NewInternalError("Failed to register user")
	}
	user.ID = userID

	user.PasswordHash = ""
	return user, nil
}

// Login handles user authentication and JWT generation.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Same message as a wrong password; never reveal which part failed.
			return "", nil, domain.NewAuthenticationError("Invalid credentials")
		}
		logger.Log.Errorw("login: email lookup failed", "error", err)
		return "", nil, domain.NewInternalError("Failed to log in")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.NewAuthenticationError("Invalid credentials")
	}

	token, err := s.generateJWT(user)
	if err != nil {
		logger.Log.Errorw("login: token generation failed", "error", err)
		return "", nil, domain.NewInternalError("Failed to log in")
	}

	user.PasswordHash = ""
	return token, user, nil
}

// Profile returns the user's public view, never the password hash.
func (s *authService) Profile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	if userID == primitive.NilObjectID {
		return nil, domain.NewValidationError("User id wasn't provided")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("User not found")
		}
		logger.Log.Errorw("profile: user lookup failed", "error", err)
		return nil, domain.NewInternalError("Failed to load profile")
	}

	user.PasswordHash = ""
	return user, nil
}

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// generateJWT creates a new signed token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "workout-app",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
