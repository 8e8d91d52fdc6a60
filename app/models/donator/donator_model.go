// Package donator 捐赠者模型
package donator

import (
	"seth/app/models"
)

// Donator 捐赠者，以邮箱弱关联，可能完全为空（匿名捐赠）
type Donator struct {
	models.BaseModel

	Email            string `gorm:"type:varchar(255);index" json:"email"`
	AcceptNewsletter *bool  `gorm:"default:false" json:"accept_newsletter"`
	AcceptAsso       *bool  `gorm:"default:false" json:"accept_asso"`

	models.CommonTimestampsField
}

// TableName 表名
func (Donator) TableName() string {
	return "donators"
}
