package middleware

import (
	"errors"
	"strings"

	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/services"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/error/code"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/error/response"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

var jwtService services.InterfaceJWTService

// InitAuthMiddleware 初始化认证中间件
func InitAuthMiddleware(service services.InterfaceJWTService) {
	jwtService = service
}

// extractToken 从授权头中提取token，格式必须是 "Bearer {token}"
func extractToken(authHeader string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Authentication 通用的认证中间件：缺少令牌返回401，令牌无效或过期返回403
func Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortWithCode(c, code.ErrTokenMissing)
			return
		}

		identity, err := jwtService.ParseToken(extractToken(authHeader))
		if err != nil {
			if errors.Is(err, services.ErrTokenMissing) {
				response.AbortWithCode(c, code.ErrTokenMissing)
				return
			}
			response.AbortWithCode(c, code.ErrTokenInvalid)
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// CurrentIdentity 读取认证中间件写入的身份
func CurrentIdentity(c *gin.Context) (*services.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*services.Identity)
	return identity, ok && identity != nil
}
