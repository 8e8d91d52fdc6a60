// Package session 游戏会话模型
package session

import (
	"time"

	"seth/app/models"
)

// Session 终端机上的一次游玩/捐赠会话
type Session struct {
	models.BaseModel

	DonatorID  *uint64 `gorm:"index" json:"donator_id,omitempty"`
	CampaignID uint64  `gorm:"index" json:"campaign_id"`
	TerminalID uint64  `gorm:"index" json:"terminal_id"`
	GameID     *uint64 `gorm:"index" json:"game_id,omitempty"`

	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	StartGlobal *time.Time `json:"start_global,omitempty"`
	EndGlobal   *time.Time `json:"end_global,omitempty"`

	PositionAsso int `json:"position_asso"`

	// 时长，单位为秒
	Timesession       int64 `gorm:"default:0" json:"timesession"`
	TimesessionGlobal int64 `gorm:"default:0" json:"timesession_global"`

	models.CommonTimestampsField
}

// TableName 表名
func (Session) TableName() string {
	return "sessions"
}
