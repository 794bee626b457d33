package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront-demo/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-demo/internal/cache"
	"github.com/aaravmahajanofficial/storefront-demo/internal/errors"
	"github.com/aaravmahajanofficial/storefront-demo/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-demo/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-demo/internal/repositories"
	"github.com/aaravmahajanofficial/storefront-demo/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
)

const (
	MsgInvalidCredentials = "Invalid email or password. Please try again."
	MsgEmailTaken         = "An account with this email already exists. Please log in instead."
	MsgTooManyAttempts    = "Too many login attempts. Please try again later."
)

type AuthService interface {
	SignUp(ctx context.Context, req *models.SignUpRequest) (*models.AuthResponse, error)
	SignIn(ctx context.Context, req *models.SignInRequest) (*models.AuthResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

type authService struct {
	repo    repository.UserRepository
	limiter repository.RateLimitRepository
	cache   cache.Cache
	jwtKey  []byte
	expiry  time.Duration
	now     func() time.Time
	lookups singleflight.Group
}

// NewAuthService builds the auth boundary. userCache may be nil.
func NewAuthService(repo repository.UserRepository, limiter repository.RateLimitRepository, userCache cache.Cache, jwtKey []byte, expiry time.Duration) AuthService {
	return &authService{
		repo:    repo,
		limiter: limiter,
		cache:   userCache,
		jwtKey:  jwtKey,
		expiry:  expiry,
		now:     time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// unexpected carries the raw failure reason to the caller.
func unexpected(message string, err error) error {
	return errors.InternalError(message).WithDetail(err.Error()).WithError(err)
}

func (s *authService) SignUp(ctx context.Context, req *models.SignUpRequest) (*models.AuthResponse, error) {
	logger := middleware.LoggerFromContext(ctx)

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		metrics.RecordAuthAttempt("signup", "error")
		return nil, unexpected("Failed to secure password", err)
	}

	user := &models.User{
		Email:    normalizeEmail(req.Email),
		Name:     strings.TrimSpace(req.Name),
		Password: string(hashed),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if stderrors.Is(err, repository.ErrDuplicateEmail) {
			metrics.RecordAuthAttempt("signup", "duplicate")
			return nil, errors.DuplicateEntryError(MsgEmailTaken).WithError(err)
		}

		logger.Error("Failed to create user", slog.String("error", err.Error()))
		metrics.RecordAuthAttempt("signup", "error")
		return nil, unexpected("Failed to create account", err)
	}

	token, expiresIn, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	metrics.RecordAuthAttempt("signup", "success")
	logger.Info("User signed up", slog.String("user_id", user.ID.String()))

	return &models.AuthResponse{
		User:      user,
		Token:     token,
		ExpiresIn: expiresIn,
		Message:   "Account created successfully",
	}, nil
}

func (s *authService) SignIn(ctx context.Context, req *models.SignInRequest) (*models.AuthResponse, error) {
	logger := middleware.LoggerFromContext(ctx)
	email := normalizeEmail(req.Email)

	allowed, remaining, retryAfter, err := s.limiter.CheckLoginRateLimit(ctx, email)
	if err != nil {
		metrics.RecordAuthAttempt("signin", "error")
		return nil, unexpected("Rate limit check failed", err)
	}
	if !allowed {
		metrics.RecordAuthAttempt("signin", "rate_limited")
		return nil, errors.TooManyRequestsError(MsgTooManyAttempts).
			WithDetail(fmt.Sprintf("Retry after %d seconds", retryAfter))
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, repository.ErrUserNotFound) {
			metrics.RecordAuthAttempt("signin", "invalid")
			return nil, invalidCredentials(remaining)
		}

		metrics.RecordAuthAttempt("signin", "error")
		return nil, unexpected("Sign in failed", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		metrics.RecordAuthAttempt("signin", "invalid")
		return nil, invalidCredentials(remaining)
	}

	if err := s.limiter.ResetLoginAttempts(ctx, email); err != nil {
		logger.Warn("Failed to reset login attempts", slog.String("error", err.Error()))
	}

	token, expiresIn, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	metrics.RecordAuthAttempt("signin", "success")
	logger.Info("User signed in", slog.String("user_id", user.ID.String()))

	return &models.AuthResponse{
		User:      user,
		Token:     token,
		ExpiresIn: expiresIn,
		Message:   "Signed in successfully",
	}, nil
}

func invalidCredentials(remaining int) error {
	return errors.UnauthorizedError(MsgInvalidCredentials).
		WithDetail(fmt.Sprintf("%d attempts remaining", remaining))
}

func (s *authService) issueToken(user *models.User) (string, int, error) {
	now := s.now()
	claims := &models.Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
	if err != nil {
		return "", 0, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return token, int(s.expiry.Seconds()), nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.UserKeyPrefix, userID.String())

	if s.cache != nil {
		var cached models.User
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Warn("User cache read failed", slog.String("error", err.Error()))
		} else if found {
			return &cached, nil
		}
	}

	// Concurrent misses for one user share a single repository read, which
	// must outlive any one caller's cancellation.
	val, err, _ := s.lookups.Do(key, func() (any, error) {
		lookupCtx, cancel := utils.WithDBTimeout(context.WithoutCancel(ctx))
		defer cancel()

		return s.repo.GetUserById(lookupCtx, userID)
	})
	if err != nil {
		if stderrors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.NotFoundError("User not found").WithError(err)
		}

		return nil, unexpected("Failed to load user", err)
	}
	user := val.(*models.User)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, user, 0); err != nil {
			logger.Warn("User cache write failed", slog.String("error", err.Error()))
		}
	}

	return user, nil
}
