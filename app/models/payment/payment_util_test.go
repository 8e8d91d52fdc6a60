package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"seth/app/models/terminal"
)

func strPtr(s string) *string { return &s }

func TestDeriveAmountDonated(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		formula *string
		share   int
		want    float64
	}{
		{"Partage 按比例捐出", 100, strPtr(FormulaPartage), 30, 30},
		{"Partage 比例为零", 100, strPtr(FormulaPartage), 0, 0},
		{"Classique 全额捐出", 100, strPtr(FormulaClassique), 30, 100},
		{"Mécénat 全额捐出", 42.5, strPtr(FormulaMecenat), 50, 42.5},
		{"无模式视为全额捐出", 80, nil, 30, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveAmountDonated(tt.amount, tt.formula, tt.share))
		})
	}
}

func TestAmountDonatedOrDerived(t *testing.T) {
	frozen := 12.5

	t.Run("冻结值优先", func(t *testing.T) {
		p := Payment{
			Amount:          100,
			AmountDonated:   &frozen,
			DonationFormula: strPtr(FormulaPartage),
			DonationShare:   30,
		}
		assert.Equal(t, 12.5, p.AmountDonatedOrDerived())
	})

	t.Run("历史数据用自身快照推导", func(t *testing.T) {
		p := Payment{
			Amount:          100,
			DonationFormula: strPtr(FormulaPartage),
			DonationShare:   40,
		}
		assert.Equal(t, 40.0, p.AmountDonatedOrDerived())
	})

	t.Run("快照缺失回退到终端机实时配置", func(t *testing.T) {
		p := Payment{
			Amount: 100,
			Terminal: &terminal.Terminal{
				DonationFormula: strPtr(FormulaPartage),
				DonationShare:   25,
			},
		}
		assert.Equal(t, 25.0, p.AmountDonatedOrDerived())
	})

	t.Run("终端机也没有配置时全额捐出", func(t *testing.T) {
		p := Payment{Amount: 60}
		assert.Equal(t, 60.0, p.AmountDonatedOrDerived())
	})
}
