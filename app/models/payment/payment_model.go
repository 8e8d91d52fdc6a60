// Package payment 支付账单模型，整个报表子系统的核心数据
package payment

import (
	"time"

	"gorm.io/gorm"

	"seth/app/models/campaign"
	"seth/app/models/donator"
	"seth/app/models/game"
	"seth/app/models/terminal"
)

// Payment 一笔终端机上的交易记录。
//
// 创建之后不可变更：donation_formula / payment_terminal / amount_donated
// 在创建时从所属终端机的实时配置快照而来，之后终端机配置再变也不影响已有账单。
// 早期的历史数据没有这些快照字段（为 NULL），读取时需要回退推导，
// 见 AmountDonatedOrDerived。
type Payment struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	// 创建时间，只写一次
	Date time.Time `gorm:"index;autoCreateTime" json:"date"`

	Method   string  `gorm:"type:varchar(255)" json:"method"`
	Status   string  `gorm:"type:varchar(255);index" json:"status"`
	Amount   float64 `json:"amount"`
	Currency string  `gorm:"type:varchar(255)" json:"currency"`

	// 快照字段，历史数据可能为 NULL
	AmountDonated   *float64 `json:"amount_donated"`
	PaymentTerminal *string  `gorm:"type:varchar(250)" json:"payment_terminal"`
	DonationFormula *string  `gorm:"type:varchar(250)" json:"donation_formula"`
	DonationShare   int      `gorm:"default:0" json:"donation_share"`

	DonatorID *uint64          `gorm:"index" json:"donator_id,omitempty"`
	Donator   *donator.Donator `gorm:"foreignKey:DonatorID" json:"donator,omitempty"`

	CampaignID uint64             `gorm:"index" json:"campaign_id"`
	Campaign   *campaign.Campaign `gorm:"foreignKey:CampaignID" json:"campaign,omitempty"`

	TerminalID uint64             `gorm:"index" json:"terminal_id"`
	Terminal   *terminal.Terminal `gorm:"foreignKey:TerminalID" json:"terminal,omitempty"`

	GameID *uint64    `gorm:"index" json:"game_id,omitempty"`
	Game   *game.Game `gorm:"foreignKey:GameID" json:"game,omitempty"`
}

// TableName 表名
func (Payment) TableName() string {
	return "payments"
}

// BeforeCreate GORM 钩子，创建时快照终端机配置并推导 amount_donated
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	var t terminal.Terminal
	if err := tx.First(&t, p.TerminalID).Error; err != nil {
		return err
	}

	if p.PaymentTerminal == nil {
		p.PaymentTerminal = t.PaymentTerminal
	}

	if p.DonationFormula == nil {
		p.DonationFormula = t.DonationFormula
	}

	if p.DonationShare == 0 {
		p.DonationShare = t.DonationShare
	}

	if p.AmountDonated == nil {
		donated := DeriveAmountDonated(p.Amount, p.DonationFormula, p.DonationShare)
		p.AmountDonated = &donated
	}

	return nil
}
