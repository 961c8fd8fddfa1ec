package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskhub-backend/metrics"
	"taskhub-backend/services"
	"taskhub-backend/utils"
)

const principalKey = "principal"

// TokenVerifier turns a bearer token into the caller it was issued to.
type TokenVerifier interface {
	Verify(token string) (services.Principal, error)
}

// Authenticate requires a valid bearer token and stores the principal on
// the context. Missing or invalid tokens get 401.
func Authenticate(tokens TokenVerifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			metrics.RecordAuthFailure("missing_token")
			utils.AbortWithError(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			metrics.RecordAuthFailure("malformed_header")
			utils.AbortWithError(c, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		p, err := tokens.Verify(parts[1])
		if err != nil {
			metrics.RecordAuthFailure("invalid_token")
			log.Debug("token rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			utils.AbortWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(principalKey, p)
		c.Next()
	}
}

// Predicate decides whether an authenticated principal may proceed.
type Predicate func(p services.Principal) bool

func RoleIs(roles ...string) Predicate {
	return func(p services.Principal) bool {
		for _, r := range roles {
			if p.Role == r {
				return true
			}
		}
		return false
	}
}

// All combines predicates; every one must hold.
func All(preds ...Predicate) Predicate {
	return func(p services.Principal) bool {
		for _, pred := range preds {
			if !pred(p) {
				return false
			}
		}
		return true
	}
}

// Require must run after Authenticate. A principal failing pred gets 403.
func Require(pred Predicate) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			utils.AbortWithError(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !pred(p) {
			metrics.RecordAuthFailure("forbidden_role")
			utils.AbortWithError(c, http.StatusForbidden, "You do not have permission to access this resource")
			return
		}
		c.Next()
	}
}

func CurrentPrincipal(c *gin.Context) (services.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return services.Principal{}, false
	}
	p, ok := v.(services.Principal)
	return p, ok
}
