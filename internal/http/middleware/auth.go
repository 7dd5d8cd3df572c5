package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"altura-admin/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// TokenCookie holds the booking API credential.
	TokenCookie = "token"
	// SIDCookie identifies the browser for flash notifications.
	SIDCookie = "admin_sid"

	sessionKey = "session"
	sidKey     = "admin_sid"
	roleKey    = "userRole"
)

// Session reads the credential from the token cookie (or a Bearer header for
// API callers) and stores a domain.Session on the context. It never rejects
// a request; calls without a token fail at the booking client.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if v, err := c.Cookie(TokenCookie); err == nil {
			token = v
		}
		if h := c.GetHeader("Authorization"); token == "" && strings.HasPrefix(h, "Bearer ") {
			token = strings.TrimPrefix(h, "Bearer ")
		}

		sess := SessionFromToken(token, time.Now())
		c.Set(sessionKey, sess)
		c.Set(roleKey, sess.Role)

		sid, err := c.Cookie(SIDCookie)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SIDCookie, sid, 0, "/", "", false, true)
		}
		c.Set(sidKey, sid)

		c.Next()
	}
}

// SessionFromToken builds a session from a raw token. JWT claims are read
// without verification for display and expiry only; the booking API owns
// verification. Expired tokens yield an empty session.
func SessionFromToken(token string, now time.Time) domain.Session {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Session{}
	}
	sess := domain.Session{Token: token}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// opaque token
		return sess
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if now.After(exp.Time) {
			return domain.Session{}
		}
		sess.ExpiresAt = exp.Time
	}
	sess.UserID = claimString(claims, "id", "user_id", "sub")
	sess.Name = claimString(claims, "name", "fullname", "username", "email")
	sess.Role = claimString(claims, "role")
	return sess
}

func claimString(claims jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		switch v := claims[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// GetSession returns the session stored by Session.
func GetSession(c *gin.Context) domain.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(domain.Session); ok {
			return s
		}
	}
	return domain.Session{}
}

// GetSID returns the browser id stored by Session.
func GetSID(c *gin.Context) string {
	return c.GetString(sidKey)
}

// RequireRoles refuses sessions whose role claim is present and not allowed.
// Tokens without a role claim pass; the booking API still authorizes them.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		role := strings.ToLower(strings.TrimSpace(c.GetString(roleKey)))
		if role == "" {
			c.Next()
			return
		}
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "forbidden: role tidak diizinkan",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Next()
	}
}
