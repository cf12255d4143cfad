package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"finance/internal/config"
	apperrors "finance/internal/errors"
	"finance/internal/services"
)

const sessionIssuer = "finance-api"

// SessionClaims represents the claims carried by a session token.
type SessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SessionManager issues and validates signed session tokens and the cookie
// that carries them.
type SessionManager struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	secure     bool
	now        func() time.Time
}

// NewSessionManager creates a SessionManager from configuration.
func NewSessionManager(cfg *config.Config) *SessionManager {
	return &SessionManager{
		secret:     []byte(cfg.SessionSecret),
		ttl:        cfg.SessionTTL,
		cookieName: cfg.SessionCookieName,
		secure:     cfg.CookieSecure,
		now:        time.Now,
	}
}

// CookieName returns the name of the session cookie.
func (m *SessionManager) CookieName() string {
	return m.cookieName
}

// Issue signs a session token for username.
func (m *SessionManager) Issue(username string) (string, error) {
	now := m.now()
	claims := &SessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    sessionIssuer,
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse validates a session token and returns its claims.
func (m *SessionManager) Parse(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	if claims.Username == "" {
		return nil, fmt.Errorf("session token has no principal")
	}
	return claims, nil
}

// SetCookie stores token in an HttpOnly session cookie.
func (m *SessionManager) SetCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, token, int(m.ttl.Seconds()), "/", "", m.secure, true)
}

// ClearCookie expires the session cookie.
func (m *SessionManager) ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, "", -1, "/", "", m.secure, true)
}

// tokenFrom reads the session token from the cookie, falling back to a
// Bearer Authorization header.
func (m *SessionManager) tokenFrom(c *gin.Context) string {
	if cookie, err := c.Cookie(m.cookieName); err == nil && cookie != "" {
		return cookie
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// AuthMiddleware verifies the session and sets the resolved user id in the context
func AuthMiddleware(sessions *SessionManager, resolver services.CurrentUserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := sessions.tokenFrom(c)
		if tokenString == "" {
			WriteError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := sessions.Parse(tokenString)
		if err != nil {
			WriteError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid or expired session"))
			c.Abort()
			return
		}

		userID, err := resolver.ResolveUserID(c.Request.Context(), claims.Username)
		if err != nil {
			WriteError(c, err)
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Set("username", claims.Username)
		c.Next()
	}
}
