// Package auth 登录接口
package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"seth/app/repositories"
	"seth/app/requests"
	appauth "seth/app/auth"
	"seth/pkg/hash"
	"seth/pkg/jwt"
	"seth/pkg/response"
)

// LoginController 用户名密码登录，签发 JWT
type LoginController struct {
	users *repositories.UserRepository
}

// NewLoginController 创建控制器
func NewLoginController() *LoginController {
	return &LoginController{
		users: repositories.NewUserRepository(),
	}
}

// Login POST /v1/auth/login
func (ctrl *LoginController) Login(c *gin.Context) {
	req, err := requests.ValidateLogin(c)
	if err != nil {
		var verr requests.ValidationError
		if errors.As(err, &verr) {
			response.ValidationError(c, verr.Errors)
			return
		}
		response.BadRequest(c, err)
		return
	}

	u, err := ctrl.users.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Abort401(c, "用户名或密码错误")
			return
		}
		response.ServerError(c, err)
		return
	}

	if !u.IsActive || !hash.BcryptCheck(req.Password, u.Password) {
		response.Abort401(c, "用户名或密码错误")
		return
	}

	principal, err := appauth.ResolvePrincipal(u.ID)
	if err != nil {
		response.ServerError(c, err)
		return
	}

	response.Data(c, gin.H{
		"token":       jwt.NewJWT().IssueToken(u.ID),
		"is_staff":    principal.IsStaff(),
		"is_customer": principal.IsCustomerUser(),
		"is_terminal": principal.IsTerminalUser(),
	})
}
