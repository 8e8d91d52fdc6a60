// Package campaign 募捐活动模型
package campaign

import (
	"seth/app/models"
)

// Campaign 募捐活动，报表中只需要它的名称
type Campaign struct {
	models.BaseModel

	Name        string `gorm:"type:varchar(255);index" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	GoalAmount  int    `gorm:"default:0" json:"goal_amount,omitempty"`
	Link        string `gorm:"type:varchar(255)" json:"link,omitempty"`
	IsArchived  bool   `gorm:"default:false" json:"is_archived"`
	Featured    bool   `gorm:"default:false" json:"featured"`

	models.CommonTimestampsField
}

// TableName 表名
func (Campaign) TableName() string {
	return "campaigns"
}
