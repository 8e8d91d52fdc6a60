package migrations

import (
	"seth/app/models/campaign"
	"seth/app/models/customer"
	"seth/app/models/donator"
	"seth/app/models/game"
	"seth/app/models/payment"
	"seth/app/models/session"
	"seth/app/models/terminal"
	"seth/app/models/user"
)

// RegisterTables 返回需要迁移的表的模型列表。
// 注意顺序：被外键引用的表排在前面
func RegisterTables() []interface{} {
	return []interface{}{
		&user.User{},
		&customer.Customer{},
		&campaign.Campaign{},
		&game.Game{},
		&donator.Donator{},
		&terminal.Terminal{},
		&session.Session{},
		&payment.Payment{},
	}
}
