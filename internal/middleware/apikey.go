package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/rajeshboldtribe/boldserve/internal/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const APIKeyHeader = "X-API-KEY"

// APIKeyRequired закрывает админские маршруты ключом из ADMIN_API_KEY.
// Пустой ключ отключает проверку.
func APIKeyRequired(key string, log *zap.Logger) gin.HandlerFunc {
	if key == "" {
		log.Warn("ADMIN_API_KEY is empty, admin routes are not protected")
		return func(c *gin.Context) { c.Next() }
	}
	expected := []byte(key)
	return func(c *gin.Context) {
		got := c.GetHeader(APIKeyHeader)
		if got == "" || subtle.ConstantTimeCompare([]byte(got), expected) != 1 {
			log.Warn("invalid api key", zap.String("path", c.FullPath()), zap.String("ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid or missing API key"))
			return
		}
		c.Next()
	}
}
