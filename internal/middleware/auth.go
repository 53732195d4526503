package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nilehomes/landing/internal/pkg/apperr"
	"github.com/nilehomes/landing/internal/pkg/jwt"
	"github.com/nilehomes/landing/internal/pkg/response"
)

const ContextKeyPrincipal = "principal"

type principalCtxKey struct{}

// Principal is the authenticated admin attached to a request.
type Principal struct {
	UserID uint   `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Auth returns a middleware that requires a valid bearer token.
// A missing token yields 401, a bad or expired one 403.
func Auth(signer *jwt.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := Authenticate(signer, c.GetHeader("Authorization"))
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Set(ContextKeyPrincipal, p)
		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}

// Authenticate verifies a raw Authorization value.
// It fails with apperr.ErrUnauthorized when no token is present and apperr.ErrForbidden otherwise.
func Authenticate(signer *jwt.Signer, raw string) (Principal, error) {
	token := NormalizeToken(raw)
	if token == "" {
		return Principal{}, apperr.ErrUnauthorized
	}
	claims, err := signer.Parse(token)
	if err != nil {
		return Principal{}, apperr.ErrForbidden
	}
	return Principal{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}

// CurrentPrincipal extracts the authenticated admin from context.
func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(ContextKeyPrincipal)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

// WithPrincipal stores p on ctx for code that only sees context.Context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

// PrincipalFrom returns the admin stored by WithPrincipal.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalCtxKey{}).(Principal)
	return p, ok
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	if strings.EqualFold(token, "bearer") {
		return ""
	}
	return token
}
