package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/istl-web/auth-service/internal/auth"
	"github.com/istl-web/auth-service/internal/domain"
	"github.com/istl-web/auth-service/internal/transport/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testKey = "test-signing-key-at-least-32-chars!!"

func newTestEngine(tokens *auth.Tokens) *gin.Engine {
	r := gin.New()
	r.GET("/protected", middleware.Auth(tokens), func(c *gin.Context) {
		role, _ := c.Get(middleware.UserRoleKey)
		c.JSON(http.StatusOK, gin.H{"id": middleware.UserID(c), "role": role})
	})
	r.GET("/admin-only", middleware.Auth(tokens), middleware.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func get(r *gin.Engine, path string, mutate func(*http.Request)) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if mutate != nil {
		mutate(req)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_NoCredential_Returns401(t *testing.T) {
	tokens := auth.NewTokens([]byte(testKey), time.Hour, time.Hour)

	w := get(newTestEngine(tokens), "/protected", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_ValidCookie_AttachesIdentity(t *testing.T) {
	tokens := auth.NewTokens([]byte(testKey), time.Hour, time.Hour)
	raw, err := tokens.IssueSession(42, domain.RoleUser)
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}

	w := get(newTestEngine(tokens), "/protected", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: raw})
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if body := w.Body.String(); body != `{"id":42,"role":"user"}` {
		t.Errorf("body = %s", body)
	}
}

func TestAuth_BearerHeaderFallback(t *testing.T) {
	tokens := auth.NewTokens([]byte(testKey), time.Hour, time.Hour)
	raw, err := tokens.IssueSession(7, domain.RoleUser)
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}

	w := get(newTestEngine(tokens), "/protected", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+raw)
	})
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestAuth_ExpiredToken_Returns401(t *testing.T) {
	expired := auth.NewTokens([]byte(testKey), -time.Minute, time.Hour)
	raw, err := expired.IssueSession(1, domain.RoleUser)
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}

	tokens := auth.NewTokens([]byte(testKey), time.Hour, time.Hour)
	w := get(newTestEngine(tokens), "/protected", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: raw})
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_ResetTokenInCookie_Returns401(t *testing.T) {
	tokens := auth.NewTokens([]byte(testKey), time.Hour, time.Hour)
	raw, err := tokens.IssueReset(1)
	if err != nil {
		t.Fatalf("issue reset: %v", err)
	}

	w := get(newTestEngine(tokens), "/protected", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: raw})
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 (reset token must not open a session)", w.Code)
	}
}

func TestRequireAdmin_UserRole_Returns403(t *testing.T) {
	tokens := auth.NewTokens([]byte(testKey), time.Hour, time.Hour)
	raw, err := tokens.IssueSession(1, domain.RoleUser)
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}

	w := get(newTestEngine(tokens), "/admin-only", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: raw})
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestRequireAdmin_AdminRole_Returns200(t *testing.T) {
	tokens := auth.NewTokens([]byte(testKey), time.Hour, time.Hour)
	raw, err := tokens.IssueSession(1, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}

	w := get(newTestEngine(tokens), "/admin-only", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: raw})
	})
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
