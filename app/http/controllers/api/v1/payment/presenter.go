package payment

import (
	"time"

	paymentmodel "seth/app/models/payment"
)

// terminalRef 行内嵌的终端机信息
type terminalRef struct {
	ID              uint64  `json:"id"`
	Name            string  `json:"name"`
	Company         string  `json:"company"`
	PaymentTerminal *string `json:"payment_terminal"`
	DonationFormula *string `json:"donation_formula"`
}

// donatorRef 行内嵌的捐赠者信息，只有有权限的调用者才能看到
type donatorRef struct {
	Email            string `json:"email"`
	AcceptNewsletter *bool  `json:"accept_newsletter"`
	AcceptAsso       *bool  `json:"accept_asso"`
}

// Row 一行账单的对外表示。
// donation_formula / payment_terminal / amount_donated 对历史数据
// 做过回退推导，调用方看到的永远是补齐后的值
type Row struct {
	ID       uint64    `json:"id"`
	Date     time.Time `json:"date"`
	Method   string    `json:"method"`
	Status   string    `json:"status"`
	Amount   float64   `json:"amount"`
	Currency string    `json:"currency"`

	AmountDonated   float64 `json:"amount_donated"`
	PaymentTerminal *string `json:"payment_terminal"`
	DonationFormula *string `json:"donation_formula"`

	Campaign string       `json:"campaign"`
	Game     string       `json:"game"`
	Terminal *terminalRef `json:"terminal"`

	Donator *donatorRef `json:"donator,omitempty"`
}

// BuildRow 把账单模型转换为响应行。
// withDonator 为 false 时不输出捐赠者字段
func BuildRow(p *paymentmodel.Payment, withDonator bool) Row {
	row := Row{
		ID:       p.ID,
		Date:     p.Date,
		Method:   p.Method,
		Status:   p.Status,
		Amount:   p.Amount,
		Currency: p.Currency,

		AmountDonated:   p.AmountDonatedOrDerived(),
		PaymentTerminal: displayPaymentTerminal(p),
		DonationFormula: displayDonationFormula(p),
	}

	if p.Campaign != nil {
		row.Campaign = p.Campaign.Name
	}
	if p.Game != nil {
		row.Game = p.Game.Name
	}

	if p.Terminal != nil {
		ref := &terminalRef{
			ID:              p.Terminal.ID,
			Name:            p.Terminal.Name,
			PaymentTerminal: p.Terminal.PaymentTerminal,
			DonationFormula: p.Terminal.DonationFormula,
		}
		if p.Terminal.Customer != nil {
			ref.Company = p.Terminal.Customer.Company
		}
		row.Terminal = ref
	}

	if withDonator && p.Donator != nil {
		row.Donator = &donatorRef{
			Email:            p.Donator.Email,
			AcceptNewsletter: p.Donator.AcceptNewsletter,
			AcceptAsso:       p.Donator.AcceptAsso,
		}
	}

	return row
}

// BuildRows 批量转换
func BuildRows(payments []paymentmodel.Payment, withDonator bool) []Row {
	rows := make([]Row, 0, len(payments))
	for i := range payments {
		rows = append(rows, BuildRow(&payments[i], withDonator))
	}
	return rows
}

// displayDonationFormula 账单的分成模式，历史数据回退到终端机实时配置
func displayDonationFormula(p *paymentmodel.Payment) *string {
	if p.DonationFormula != nil {
		return p.DonationFormula
	}
	if p.Terminal != nil {
		return p.Terminal.DonationFormula
	}
	return nil
}

// displayPaymentTerminal 账单的 TPE 编号，历史数据回退到终端机实时配置
func displayPaymentTerminal(p *paymentmodel.Payment) *string {
	if p.PaymentTerminal != nil {
		return p.PaymentTerminal
	}
	if p.Terminal != nil {
		return p.Terminal.PaymentTerminal
	}
	return nil
}
