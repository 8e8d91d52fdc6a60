// Package game 游戏目录模型
package game

import (
	"seth/app/models"
)

// Game 终端机上可玩的游戏，报表中只需要它的名称
type Game struct {
	models.BaseModel

	Name     string `gorm:"type:varchar(255);index" json:"name"`
	Featured bool   `gorm:"default:false" json:"featured"`

	models.CommonTimestampsField
}

// TableName 表名
func (Game) TableName() string {
	return "games"
}
