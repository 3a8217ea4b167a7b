package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rajeshboldtribe/boldserve/internal/dto"
	"github.com/rajeshboldtribe/boldserve/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys for user info
const (
	CtxUserID = "user_id"
	CtxClaims = "claims"
)

type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*service.Claims, error)
}

// AuthRequired проверяет Bearer токен и кладёт claims в контекст gin.
func AuthRequired(auth TokenAuthenticator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if authz == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("missing Authorization header"))
			return
		}
		token, ok := ExtractBearerToken(authz)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid Authorization header"))
			return
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("empty token"))
			return
		}

		claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, service.ErrTokenRevoked) {
				msg = "token revoked"
			} else if !errors.Is(err, service.ErrUnauthorized) {
				log.Warn("token check failed", zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError(msg))
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxClaims, claims)
		c.Next()
	}
}

// ClaimsFrom достаёт claims, положенные AuthRequired.
func ClaimsFrom(c *gin.Context) (*service.Claims, bool) {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*service.Claims)
	return claims, ok && claims != nil
}

// ExtractBearerToken извлекает токен из заголовка Authorization, устойчиво к лишним символам
// Примеры допустимых значений:
// - "Bearer abc.def.ghi"
// - "Bearer \"abc.def.ghi\""
// - "Bearer abc.def.ghi, extra"
func ExtractBearerToken(authz string) (string, bool) {
	if authz == "" {
		return "", false
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	t := strings.Trim(strings.TrimSpace(parts[1]), " \"'")
	// всё после запятой или пробела отбрасываем
	if i := strings.IndexAny(t, ", "); i >= 0 {
		t = t[:i]
	}
	return strings.Trim(t, " \"'"), true
}
