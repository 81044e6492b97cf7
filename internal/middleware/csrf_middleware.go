package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/rmoreira/capacita/internal/app/models/dto"
	"github.com/rmoreira/capacita/internal/pkg/apperrors"
)

// CSRFHeader carries the token on state-changing admin requests
const CSRFHeader = "X-CSRF-Token"

// CSRFMiddleware issues and checks per-user CSRF tokens. Tokens live
// in memory and are bound to the authenticated user, so a stolen token
// from one session is useless in another.
type CSRFMiddleware struct {
	mu     sync.RWMutex
	tokens map[int64]string
}

// NewCSRFMiddleware creates a new CSRFMiddleware
func NewCSRFMiddleware() *CSRFMiddleware {
	return &CSRFMiddleware{tokens: make(map[int64]string)}
}

// IssueToken creates (or replaces) the CSRF token for a user
func (m *CSRFMiddleware) IssueToken(userID int64) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate csrf token: %w", err)
	}
	token := hex.EncodeToString(raw)

	m.mu.Lock()
	m.tokens[userID] = token
	m.mu.Unlock()

	return token, nil
}

// RevokeToken drops a user's CSRF token, typically on logout
func (m *CSRFMiddleware) RevokeToken(userID int64) {
	m.mu.Lock()
	delete(m.tokens, userID)
	m.mu.Unlock()
}

// Protect rejects state-changing requests whose CSRF header does not
// match the token issued to the authenticated user. Safe methods pass
// through untouched.
func (m *CSRFMiddleware) Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		userID, exists := c.Get("userID")
		if !exists {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		userIDInt, ok := userID.(int64)
		if !ok {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
			return
		}

		m.mu.RLock()
		issued, hasToken := m.tokens[userIDInt]
		m.mu.RUnlock()

		presented := c.GetHeader(CSRFHeader)

		// Constant-time compare so the token cannot be probed byte by byte
		if !hasToken || presented == "" ||
			subtle.ConstantTimeCompare([]byte(issued), []byte(presented)) != 1 {
			HandleAPIError(c, apperrors.ErrCSRFMismatch)
			c.Abort()
			return
		}

		c.Next()
	}
}
