package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"seth/app/auth"
	"seth/pkg/jwt"
	"seth/pkg/response"
)

// AuthJWT 解析请求头中的 JWT，加载请求主体并放入 context。
// 解析失败时直接 401 终止请求
func AuthJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromHeader(c)
		if tokenString == "" {
			response.Abort401(c, "缺少认证令牌")
			return
		}

		claims, err := jwt.NewJWT().ParserToken(tokenString)
		if err != nil {
			response.Abort401(c, err.Error())
			return
		}

		principal, err := auth.ResolvePrincipal(claims.UserID)
		if err != nil {
			response.Abort401(c, "用户不存在或已禁用")
			return
		}
		if !principal.User.IsActive {
			response.Abort401(c, "账号已停用")
			return
		}

		c.Set("current_principal", principal)
		c.Next()
	}
}

// RequireReporting 报表类接口的角色限制：管理员或客户账号
func RequireReporting() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := auth.CurrentPrincipal(c)
		if p == nil || (!p.IsStaff() && !p.IsCustomerUser()) {
			response.Abort403(c)
			return
		}
		c.Next()
	}
}

// RequireStaff 仅限平台管理员
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := auth.CurrentPrincipal(c)
		if p == nil || !p.IsStaff() {
			response.Abort403(c)
			return
		}
		c.Next()
	}
}

// RequireTerminal 仅限终端机账号，设备端接口用
func RequireTerminal() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := auth.CurrentPrincipal(c)
		if p == nil || !p.IsTerminalUser() {
			response.Abort403(c)
			return
		}
		c.Next()
	}
}

// tokenFromHeader 从 Authorization: Bearer xxx 请求头中提取 token
func tokenFromHeader(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
