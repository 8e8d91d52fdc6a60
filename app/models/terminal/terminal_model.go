// Package terminal 终端机模型
package terminal

import (
	"seth/app/models"
	"seth/app/models/customer"
)

// Terminal 终端机，归属于唯一的客户，携带捐赠配置的「实时值」。
// 新建 Payment 时会把这些实时值快照到账单记录里。
type Terminal struct {
	models.BaseModel

	Name string `gorm:"type:varchar(255)" json:"name"`

	// 终端机的登录账号，设备端用它来认证
	OwnerID uint64 `gorm:"uniqueIndex" json:"owner_id"`

	// 所属客户
	CustomerID uint64             `gorm:"index" json:"customer_id"`
	Customer   *customer.Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	Location string `gorm:"type:varchar(255)" json:"location,omitempty"`
	Version  string `gorm:"type:varchar(10)" json:"version,omitempty"`

	// 运行状态
	IsActive   bool `gorm:"default:false" json:"is_active"`
	IsOn       bool `gorm:"default:false" json:"is_on"`
	IsPlaying  bool `gorm:"default:false" json:"is_playing"`
	IsArchived bool `gorm:"default:false;index" json:"is_archived"`

	// 远程指令标记
	CheckForUpdates bool `gorm:"default:false" json:"check_for_updates"`
	Restart         bool `gorm:"default:false" json:"restart"`

	// 捐赠配置（实时值，快照的来源）
	PaymentTerminal *string `gorm:"type:varchar(250)" json:"payment_terminal"` // TPE 刷卡机编号
	DonationFormula *string `gorm:"type:varchar(250)" json:"donation_formula"`
	DonationShare   int     `gorm:"default:50" json:"donation_share"` // Partage 模式下捐给活动的百分比

	DonationMinAmount     int `gorm:"default:1" json:"donation_min_amount"`
	DonationDefaultAmount int `gorm:"default:1" json:"donation_default_amount"`
	DonationMaxAmount     int `gorm:"default:50" json:"donation_max_amount"`

	models.CommonTimestampsField
}

// TableName 表名
func (Terminal) TableName() string {
	return "terminals"
}
