package requests

import (
	"github.com/gin-gonic/gin"
	"github.com/thedevsaddam/govalidator"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" valid:"username"`
	Password string `json:"password" valid:"password"`
}

// ValidateLogin 校验登录请求
func ValidateLogin(c *gin.Context) (LoginRequest, error) {
	rules := govalidator.MapData{
		"username": []string{"required", "min:2"},
		"password": []string{"required", "min:6"},
	}
	messages := govalidator.MapData{
		"username": []string{
			"required:用户名不能为空",
			"min:用户名长度至少 2 个字符",
		},
		"password": []string{
			"required:密码不能为空",
			"min:密码长度至少 6 个字符",
		},
	}

	return ValidateRequest[LoginRequest](c, rules, messages)
}
