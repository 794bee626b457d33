package handlers_test

import (
	"net/http"
	"testing"

	"github.com/aaravmahajanofficial/storefront-demo/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/storefront-demo/internal/errors"
	"github.com/aaravmahajanofficial/storefront-demo/internal/models"
	"github.com/aaravmahajanofficial/storefront-demo/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront-demo/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSignUp(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(mocks.AuthService)
		h := handlers.NewAuthHandler(svc)
		req := models.SignUpRequest{Email: "new@example.com", Password: "secret1", Name: "New"}
		svc.On("SignUp", mock.Anything, &req).
			Return(&models.AuthResponse{User: &models.User{ID: uuid.New(), Email: req.Email}, Token: "tok", ExpiresIn: 3600}, nil).Once()

		rr := serve(h.SignUp(), sessionRequest(http.MethodPost, "/api/v1/auth/signup", jsonBody(t, req), ""))

		assert.Equal(t, http.StatusCreated, rr.Code)
		var got models.AuthResponse
		decodeData(t, rr, &got)
		assert.Equal(t, "tok", got.Token)
		svc.AssertExpectations(t)
	})

	t.Run("Short password", func(t *testing.T) {
		svc := new(mocks.AuthService)
		h := handlers.NewAuthHandler(svc)

		rr := serve(h.SignUp(), sessionRequest(http.MethodPost, "/api/v1/auth/signup", jsonBody(t, models.SignUpRequest{Email: "a@b.co", Password: "123"}), ""))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeEnvelope(t, rr).Error.Details, "Field Password must be at least 6")
		svc.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything)
	})

	t.Run("Email taken", func(t *testing.T) {
		svc := new(mocks.AuthService)
		h := handlers.NewAuthHandler(svc)
		svc.On("SignUp", mock.Anything, mock.Anything).
			Return(nil, appErrors.DuplicateEntryError("An account with this email already exists. Please log in instead.")).Once()

		rr := serve(h.SignUp(), sessionRequest(http.MethodPost, "/api/v1/auth/signup", jsonBody(t, models.SignUpRequest{Email: "a@b.co", Password: "secret1"}), ""))

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestSignIn(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"Invalid credentials", appErrors.UnauthorizedError("Invalid email or password. Please try again."), http.StatusUnauthorized, appErrors.ErrCodeUnauthorized},
		{"Rate limited", appErrors.TooManyRequestsError("Too many login attempts. Please try again later."), http.StatusTooManyRequests, appErrors.ErrCodeTooManyRequests},
		{"Backend failure", appErrors.InternalError("Sign in failed").WithDetail("connection refused"), http.StatusInternalServerError, appErrors.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.AuthService)
			h := handlers.NewAuthHandler(svc)
			svc.On("SignIn", mock.Anything, mock.AnythingOfType("*models.SignInRequest")).Return(nil, tt.err).Once()

			rr := serve(h.SignIn(), sessionRequest(http.MethodPost, "/api/v1/auth/signin", jsonBody(t, models.SignInRequest{Email: "a@b.co", Password: "x"}), ""))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCode, decodeEnvelope(t, rr).Error.Code)
		})
	}

	t.Run("Success", func(t *testing.T) {
		svc := new(mocks.AuthService)
		h := handlers.NewAuthHandler(svc)
		svc.On("SignIn", mock.Anything, &models.SignInRequest{Email: "a@b.co", Password: "secret1"}).
			Return(&models.AuthResponse{Token: "tok", ExpiresIn: 3600}, nil).Once()

		rr := serve(h.SignIn(), sessionRequest(http.MethodPost, "/api/v1/auth/signin", jsonBody(t, models.SignInRequest{Email: "a@b.co", Password: "secret1"}), ""))

		assert.Equal(t, http.StatusOK, rr.Code)
		svc.AssertExpectations(t)
	})
}

func TestMe(t *testing.T) {
	t.Run("Authenticated", func(t *testing.T) {
		svc := new(mocks.AuthService)
		h := handlers.NewAuthHandler(svc)
		userID := uuid.New()
		svc.On("Me", mock.Anything, userID).Return(&models.User{ID: userID, Email: "test@example.com"}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/auth/me", nil, userID, nil)
		rr := serve(h.Me(), req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got models.User
		decodeData(t, rr, &got)
		assert.Equal(t, userID, got.ID)
	})

	t.Run("No claims", func(t *testing.T) {
		svc := new(mocks.AuthService)
		h := handlers.NewAuthHandler(svc)

		rr := serve(h.Me(), testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/auth/me", nil, nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		svc.AssertNotCalled(t, "Me", mock.Anything, mock.Anything)
	})
}
