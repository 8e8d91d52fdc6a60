// Package customer 客户（租户）模型
package customer

import (
	"seth/app/models"
)

// Customer 客户模型，拥有若干台终端机，是数据隔离的单位
type Customer struct {
	models.BaseModel

	// 客户的登录账号
	UserID *uint64 `gorm:"index" json:"user_id,omitempty"`

	Company        string `gorm:"type:varchar(255)" json:"company"`
	Representative string `gorm:"type:varchar(255)" json:"representative,omitempty"`
	SalesType      string `gorm:"type:varchar(1);default:A" json:"sales_type,omitempty"`
	IsActive       bool   `gorm:"default:true" json:"is_active"`
	IsArchived     bool   `gorm:"default:false" json:"is_archived"`

	// 能力开关
	CanEditFeaturedContent bool `gorm:"default:false" json:"can_edit_featured_content"`
	CanEditDonationFormula bool `gorm:"default:false" json:"can_edit_donation_formula"`
	CanSeeDonators         bool `gorm:"default:false" json:"can_see_donators"` // 是否能看到捐赠者的个人信息

	models.CommonTimestampsField
}

// TableName 表名
func (Customer) TableName() string {
	return "customers"
}
