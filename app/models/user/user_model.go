// Package user 存放用户 Model 相关逻辑
package user

import (
	"seth/app/models"
)

// User 用户模型
//
// 一个用户只会是三种身份之一：
//   - 平台管理员（IsStaff == true）
//   - 客户账号（customers 表通过 user_id 关联）
//   - 终端机账号（terminals 表通过 owner_id 关联）
type User struct {
	models.BaseModel

	Username string `gorm:"type:varchar(255);uniqueIndex" json:"username"`
	Email    string `gorm:"type:varchar(255);index" json:"email,omitempty"`
	Password string `gorm:"type:varchar(255)" json:"-"`

	IsStaff     bool `gorm:"default:false;index" json:"is_staff"`
	IsSuperuser bool `gorm:"default:false" json:"is_superuser"`
	IsActive    bool `gorm:"default:true" json:"is_active"`

	models.CommonTimestampsField
}

// TableName 表名
func (User) TableName() string {
	return "users"
}
