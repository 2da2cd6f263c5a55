package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/octobees/cms-seeder/internal/auth"
	"github.com/octobees/cms-seeder/internal/config"
	"github.com/octobees/cms-seeder/internal/dto"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *dto.ErrorBody {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if resp.Data != nil || resp.Error == nil {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}
	return resp.Error
}

func TestAdminToken(t *testing.T) {
	e := echo.New()

	tests := map[string]struct {
		header     string
		expectCode int
		expectName string
	}{
		"missing header": {
			expectCode: http.StatusUnauthorized,
			expectName: "UnauthorizedError",
		},
		"invalid scheme": {
			header:     "Basic token",
			expectCode: http.StatusUnauthorized,
			expectName: "UnauthorizedError",
		},
		"wrong token": {
			header:     "Bearer other",
			expectCode: http.StatusForbidden,
			expectName: "ForbiddenError",
		},
		"success": {
			header:     "Bearer admin-token",
			expectCode: http.StatusOK,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			executed := false
			err := AdminToken("admin-token")(func(c echo.Context) error {
				executed = true
				return c.NoContent(http.StatusOK)
			})(c)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tt.expectCode {
				t.Fatalf("expected status %d, got %d", tt.expectCode, rec.Code)
			}
			if tt.expectCode == http.StatusOK {
				if !executed {
					t.Fatalf("expected next handler to be executed")
				}
				return
			}
			if executed {
				t.Fatalf("expected chain to stop")
			}
			if body := decodeError(t, rec); body.Name != tt.expectName || body.Status != tt.expectCode {
				t.Fatalf("unexpected error body: %+v", body)
			}
		})
	}
}

func TestUserJWT(t *testing.T) {
	e := echo.New()
	manager := auth.NewJWTManager("secret", 0)

	token, err := manager.GenerateToken(5, "auth", "auth@test.com")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := UserJWT(manager)(func(c echo.Context) error {
			id, ok := UserIDFromContext(c)
			if !ok || id != 5 {
				t.Fatalf("expected user id in context, got %d", id)
			}
			return c.NoContent(http.StatusOK)
		})(c)
		if err != nil || rec.Code != http.StatusOK {
			t.Fatalf("unexpected result: %d, %v", rec.Code, err)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer invalid")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		_ = UserJWT(manager)(func(c echo.Context) error {
			t.Fatalf("handler should not run")
			return nil
		})(c)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestLoggingMiddleware(t *testing.T) {
	logger, hook := test.NewNullLogger()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/_health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextKeyRequestID, "rid-123")

	err := Logging(logger)(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Data["request_id"] != "rid-123" || entry.Data["status"] != http.StatusNoContent {
		t.Fatalf("unexpected log entry: %+v", entry)
	}

	// errors are rendered, logged and propagated
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set(ContextKeyRequestID, "rid-456")
	expected := errors.New("boom")
	err = Logging(logger)(func(c echo.Context) error {
		return expected
	})(c)
	if !errors.Is(err, expected) {
		t.Fatalf("expected error to bubble up")
	}
	entry = hook.LastEntry()
	if entry.Data["request_id"] != "rid-456" || entry.Level != logrus.ErrorLevel {
		t.Fatalf("expected error entry for failed request, got %+v", entry)
	}
}

func TestRateLimiter(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	}

	mw := RateLimiter(config.RateLimitConfig{Requests: 1, Interval: time.Minute})

	rec := httptest.NewRecorder()
	_ = mw(next)(e.NewContext(httptest.NewRequest(http.MethodPost, "/api/events", nil), rec))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected first request to pass, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	_ = mw(next)(e.NewContext(httptest.NewRequest(http.MethodPost, "/api/events", nil), rec))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request rejected, got %d", rec.Code)
	}
	if body := decodeError(t, rec); body.Name != "RateLimitError" {
		t.Fatalf("unexpected error name: %s", body.Name)
	}

	// zero config should behave as passthrough
	mw = RateLimiter(config.RateLimitConfig{})
	for i := 0; i < 3; i++ {
		rec = httptest.NewRecorder()
		_ = mw(next)(e.NewContext(httptest.NewRequest(http.MethodPost, "/api/events", nil), rec))
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected passthrough when limiter disabled, got %d", rec.Code)
		}
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	e := echo.New()
	handler := RequestID()

	t.Run("reuse incoming header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "incoming")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler(func(c echo.Context) error {
			if RequestIDFromContext(c) != "incoming" {
				t.Fatalf("expected request id to be stored")
			}
			return c.NoContent(http.StatusOK)
		})(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if rec.Header().Get("X-Request-ID") != "incoming" {
			t.Fatalf("expected response header to propagate request id")
		}
	})

	t.Run("replace oversized header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", strings.Repeat("x", 200))
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		_ = handler(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)
		if rid := rec.Header().Get("X-Request-ID"); rid == "" || len(rid) > maxRequestIDLength {
			t.Fatalf("expected generated request id, got %q", rid)
		}
	})

	t.Run("generate when missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler(func(c echo.Context) error {
			if RequestIDFromContext(c) == "" {
				t.Fatalf("expected generated request id")
			}
			return c.NoContent(http.StatusOK)
		})(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if rec.Header().Get("X-Request-ID") == "" {
			t.Fatalf("expected response header set")
		}
	})
}
