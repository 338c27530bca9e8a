package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// 上下文键
const (
	CtxSubjectId = "subject_id"
	CtxIdentity  = "identity"
)

// JWTAuthMiddleware 验证请求是否携带有效 Token
func JWTAuthMiddleware(tm *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "请求头中 Authorization 为空"})
			c.Abort()
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization 格式有误"})
			c.Abort()
			return
		}

		claims, err := tm.Parse(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "无效的 Token"})
			c.Abort()
			return
		}
		c.Set(CtxSubjectId, claims.SubjectId)
		c.Set(CtxIdentity, claims.Identity)
		c.Next()
	}
}

// IdentityRequired 验证会话身份类别
func IdentityRequired(identities ...Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		identityAny, exists := c.Get(CtxIdentity)
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "无法获取会话身份"})
			c.Abort()
			return
		}

		identity := identityAny.(Identity)
		for _, required := range identities {
			if identity == required {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "权限不足"})
		c.Abort()
	}
}

// SubjectId 从上下文取会话主体 id
func SubjectId(c *gin.Context) int64 {
	if v, exists := c.Get(CtxSubjectId); exists {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
