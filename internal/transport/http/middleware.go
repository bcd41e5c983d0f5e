package http

import (
	"net/http"
	"strings"

	"distributor-service/internal/models"
	"distributor-service/internal/service"
	"distributor-service/internal/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthRequired разбирает Bearer-токен и кладёт (user_id, role) в контекст
// запроса. Дальше сервисный слой работает только с этой парой.
func AuthRequired(tokens *token.HSProvider, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if authz == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, NewUnauthorizedError("missing Authorization header"))
			return
		}
		raw, ok := ExtractBearerToken(authz)
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, NewUnauthorizedError("invalid Authorization header"))
			return
		}

		claims, err := tokens.ParseAndValidateAccess(raw)
		if err != nil {
			log.Warn("token validation failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, NewUnauthorizedError("invalid token"))
			return
		}

		role := models.Role(claims.Role)
		if !role.Valid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, NewUnauthorizedError("unknown role in token"))
			return
		}

		ctx := service.WithUserID(c.Request.Context(), claims.UserID)
		ctx = service.WithRole(ctx, role)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// ExtractBearerToken достаёт токен из заголовка Authorization, терпимо к
// лишним кавычкам по краям.
func ExtractBearerToken(authz string) (string, bool) {
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	t := strings.TrimSpace(parts[1])
	t = strings.Trim(t, " \"'")
	return t, true
}
