package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/backoffice/pkg/errors"
	"github.com/xiebiao/backoffice/pkg/jwt"
	"github.com/xiebiao/backoffice/pkg/response"
)

const (
	ctxUserID = "user_id"
	ctxName   = "operator_name"
	ctxRole   = "operator_role"
)

// AuthMiddleware JWT认证中间件
// 登录和签发由外部身份服务负责，这里只验签并把身份写入Context
type AuthMiddleware struct {
	jwtManager *jwt.Manager
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager}
}

// RequireAuth 要求携带有效Token
// 格式：Authorization: Bearer <token>
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.ErrorWithCode(c, apperrors.ErrCodeUnauthorized, "请先登录")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.ErrorWithCode(c, apperrors.ErrCodeInvalidToken, "Token格式错误")
			c.Abort()
			return
		}

		claims, err := m.jwtManager.ParseToken(parts[1])
		if err != nil {
			response.Error(c, err) // ErrTokenExpired / ErrInvalidToken
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.Subject)
		c.Set(ctxName, claims.Name)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// GetUserID 当前Token的subject，未认证返回空串
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// GetOperatorName 当前操作员名称
func GetOperatorName(c *gin.Context) string {
	return c.GetString(ctxName)
}
