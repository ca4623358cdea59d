package register

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/vendor-directory/internal/services/account"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Register(ctx context.Context, email, rawPassword string) (*account.RegisterResult, error) {
	args := m.Called(ctx, email, rawPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.RegisterResult), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func validForm() map[string]string {
	return map[string]string{
		"email":                "user@example.com",
		"password":             "correct horse battery",
		"passwordConfirmation": "correct horse battery",
	}
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	serviceMock := new(ServiceMock)
	handler := New(newNoopLogger(), serviceMock, 24*time.Hour)

	tests := []struct {
		name           string
		requestBody    any
		mockResult     *account.RegisterResult
		mockErr        error
		mockCalled     bool
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:           "valid registration",
			requestBody:    validForm(),
			mockResult:     &account.RegisterResult{AccountUID: "uid-1", IsNewRegister: true},
			mockCalled:     true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name: "unexpected form field",
			requestBody: func() map[string]string {
				form := validForm()
				form["admin"] = "true"
				return form
			}(),
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid form submission",
			wantStatus:     "Error",
		},
		{
			name: "missing password field",
			requestBody: map[string]string{
				"email":                "user@example.com",
				"passwordConfirmation": "correct horse battery",
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid form submission",
			wantStatus:     "Error",
		},
		{
			name: "malformed email",
			requestBody: func() map[string]string {
				form := validForm()
				form["email"] = "not-an-email"
				return form
			}(),
			wantStatusCode: http.StatusBadRequest,
			wantError:      "field email must be a valid email address",
			wantStatus:     "Error",
		},
		{
			name: "password confirmation mismatch",
			requestBody: func() map[string]string {
				form := validForm()
				form["passwordConfirmation"] = "something else"
				return form
			}(),
			wantStatusCode: http.StatusBadRequest,
			wantError:      "passwords do not match",
			wantStatus:     "Error",
		},
		{
			name: "weak password",
			requestBody: map[string]string{
				"email":                "user@example.com",
				"password":             "password",
				"passwordConfirmation": "password",
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "password does not meet requirements",
			wantStatus:     "Error",
		},
		{
			name:           "email already registered",
			requestBody:    validForm(),
			mockErr:        account.ErrEmailExists,
			mockCalled:     true,
			wantStatusCode: http.StatusConflict,
			wantError:      "account with this email already exists",
			wantStatus:     "Error",
		},
		{
			name:           "confirmation email limit reached",
			requestBody:    validForm(),
			mockErr:        account.ErrConfirmationLimit,
			mockCalled:     true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "service failure",
			requestBody:    validForm(),
			mockErr:        errors.New("db down"),
			mockCalled:     true,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to register account",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock.ExpectedCalls = nil
			serviceMock.Calls = nil

			if tt.mockCalled {
				serviceMock.On("Register", mock.Anything, "user@example.com", mock.Anything).
					Return(tt.mockResult, tt.mockErr).Once()
			}

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			} else {
				assert.Nil(t, got["error"])
			}

			if tt.name == "valid registration" {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "user@example.com", data["email"])
				assert.NotEmpty(t, data["message"])
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
