// Package auth 请求主体（Principal）的解析和角色判断
package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"seth/app/models/customer"
	"seth/app/models/terminal"
	"seth/app/models/user"
	"seth/pkg/database"
	"seth/pkg/logger"
)

// ErrPermissionDenied 调用者身份不具备访问权限
var ErrPermissionDenied = errors.New("permission denied")

// Principal 一次请求的调用者身份。
//
// 与 User 模型的三种身份一一对应：管理员、客户账号、终端机账号。
// 由认证中间件解析一次后放进 gin context，后续只读。
type Principal struct {
	User     user.User
	Customer *customer.Customer // 客户账号时非空
	Terminal *terminal.Terminal // 终端机账号时非空
}

// IsStaff 是否平台管理员
func (p *Principal) IsStaff() bool {
	return p.User.IsStaff
}

// IsCustomerUser 是否客户账号
func (p *Principal) IsCustomerUser() bool {
	return p.Customer != nil
}

// IsTerminalUser 是否终端机账号
func (p *Principal) IsTerminalUser() bool {
	return p.Terminal != nil
}

// CanSeeDonators 是否允许查看捐赠者个人信息。
// 管理员始终可以，客户账号取决于客户的能力开关
func (p *Principal) CanSeeDonators() bool {
	if p.IsStaff() {
		return true
	}
	return p.IsCustomerUser() && p.Customer.CanSeeDonators
}

// ResolvePrincipal 根据用户 ID 加载用户及其关联身份
func ResolvePrincipal(userID uint64) (*Principal, error) {
	principal := &Principal{}

	if err := database.DB.First(&principal.User, userID).Error; err != nil {
		return nil, err
	}

	// 客户账号：customers 表通过 user_id 关联
	var c customer.Customer
	err := database.DB.Where("user_id = ?", userID).First(&c).Error
	switch {
	case err == nil:
		principal.Customer = &c
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	// 终端机账号：terminals 表通过 owner_id 关联
	var t terminal.Terminal
	err = database.DB.Where("owner_id = ?", userID).First(&t).Error
	switch {
	case err == nil:
		principal.Terminal = &t
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	return principal, nil
}

// CurrentPrincipal 从 gin context 中获取认证中间件写入的 Principal
func CurrentPrincipal(c *gin.Context) *Principal {
	value, exists := c.Get("current_principal")
	if !exists {
		return nil
	}

	principal, ok := value.(*Principal)
	if !ok {
		logger.ErrorString("Auth", "CurrentPrincipal", "无法获取请求主体")
		return nil
	}
	return principal
}

// CurrentUID 当前登录用户 ID
func CurrentUID(c *gin.Context) uint64 {
	if p := CurrentPrincipal(c); p != nil {
		return p.User.ID
	}
	return 0
}
