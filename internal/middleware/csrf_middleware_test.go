package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newCSRFTestRouter(m *CSRFMiddleware, userID int64, authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.Use(func(c *gin.Context) {
		if authenticated {
			c.Set("userID", userID)
		}
		c.Next()
	})
	router.Use(m.Protect())

	handler := func(c *gin.Context) { c.Status(http.StatusOK) }
	router.GET("/resource", handler)
	router.POST("/resource", handler)
	router.DELETE("/resource", handler)

	return router
}

func TestCSRFSafeMethodsPassThrough(t *testing.T) {
	m := NewCSRFMiddleware()
	router := newCSRFTestRouter(m, 1, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("GET status = %d, want 200", w.Code)
	}
}

func TestCSRFRejectsMissingToken(t *testing.T) {
	m := NewCSRFMiddleware()
	router := newCSRFTestRouter(m, 1, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/resource", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("POST without token status = %d, want 403", w.Code)
	}
}

func TestCSRFRejectsWrongToken(t *testing.T) {
	m := NewCSRFMiddleware()
	if _, err := m.IssueToken(1); err != nil {
		t.Fatal(err)
	}
	router := newCSRFTestRouter(m, 1, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/resource", nil)
	req.Header.Set(CSRFHeader, "not-the-issued-token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("DELETE with wrong token status = %d, want 403", w.Code)
	}
}

func TestCSRFAcceptsIssuedToken(t *testing.T) {
	m := NewCSRFMiddleware()
	token, err := m.IssueToken(1)
	if err != nil {
		t.Fatal(err)
	}
	router := newCSRFTestRouter(m, 1, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/resource", nil)
	req.Header.Set(CSRFHeader, token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("POST with issued token status = %d, want 200", w.Code)
	}
}

func TestCSRFTokenIsPerUser(t *testing.T) {
	m := NewCSRFMiddleware()
	token, err := m.IssueToken(2)
	if err != nil {
		t.Fatal(err)
	}

	// User 1 presents user 2's token
	router := newCSRFTestRouter(m, 1, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/resource", nil)
	req.Header.Set(CSRFHeader, token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("POST with another user's token status = %d, want 403", w.Code)
	}
}

func TestCSRFRevokeToken(t *testing.T) {
	m := NewCSRFMiddleware()
	token, err := m.IssueToken(1)
	if err != nil {
		t.Fatal(err)
	}
	m.RevokeToken(1)

	router := newCSRFTestRouter(m, 1, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/resource", nil)
	req.Header.Set(CSRFHeader, token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("POST with revoked token status = %d, want 403", w.Code)
	}
}

func TestCSRFRequiresAuthentication(t *testing.T) {
	m := NewCSRFMiddleware()
	router := newCSRFTestRouter(m, 1, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/resource", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated POST status = %d, want 401", w.Code)
	}
}

func TestIssueTokenReplacesPrevious(t *testing.T) {
	m := NewCSRFMiddleware()

	first, err := m.IssueToken(1)
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.IssueToken(1)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("reissued token matches the previous one")
	}

	router := newCSRFTestRouter(m, 1, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/resource", nil)
	req.Header.Set(CSRFHeader, first)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("POST with stale token status = %d, want 403", w.Code)
	}
}
