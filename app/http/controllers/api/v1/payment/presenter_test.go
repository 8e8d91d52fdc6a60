package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seth/app/models/campaign"
	"seth/app/models/customer"
	"seth/app/models/donator"
	"seth/app/models/game"
	paymentmodel "seth/app/models/payment"
	"seth/app/models/terminal"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func samplePayment() *paymentmodel.Payment {
	donated := 30.0
	return &paymentmodel.Payment{
		ID:       42,
		Date:     time.Date(2024, 3, 15, 14, 30, 5, 0, time.UTC),
		Status:   paymentmodel.StatusAccepted,
		Amount:   100,
		Currency: "EUR",

		AmountDonated:   &donated,
		DonationFormula: strPtr(paymentmodel.FormulaPartage),
		PaymentTerminal: strPtr("TPE-001"),
		DonationShare:   30,

		Donator: &donator.Donator{
			Email:            "donor@example.org",
			AcceptNewsletter: boolPtr(true),
			AcceptAsso:       nil,
		},
		Campaign: &campaign.Campaign{Name: "Campagne 2024"},
		Game:     &game.Game{Name: "Quiz"},
		Terminal: &terminal.Terminal{
			Name:     "Borne A",
			Customer: &customer.Customer{Company: "Asso A"},
		},
	}
}

func TestBuildRowDonatorVisibility(t *testing.T) {
	p := samplePayment()

	t.Run("有权限时带捐赠者信息", func(t *testing.T) {
		row := BuildRow(p, true)
		require.NotNil(t, row.Donator)
		assert.Equal(t, "donor@example.org", row.Donator.Email)
	})

	t.Run("无权限时完全不输出捐赠者", func(t *testing.T) {
		row := BuildRow(p, false)
		assert.Nil(t, row.Donator)
	})
}

func TestBuildRowLegacyFallback(t *testing.T) {
	// 历史账单：快照为空，展示值回退到终端机实时配置
	p := &paymentmodel.Payment{
		ID: 7, Amount: 100,
		Terminal: &terminal.Terminal{
			Name:            "Borne B",
			DonationFormula: strPtr(paymentmodel.FormulaClassique),
			PaymentTerminal: strPtr("TPE-009"),
		},
	}

	row := BuildRow(p, false)
	require.NotNil(t, row.DonationFormula)
	assert.Equal(t, paymentmodel.FormulaClassique, *row.DonationFormula)
	require.NotNil(t, row.PaymentTerminal)
	assert.Equal(t, "TPE-009", *row.PaymentTerminal)
	// 无快照、无推导依据以外的情况：全额捐出
	assert.Equal(t, 100.0, row.AmountDonated)
}

func TestCSVRecord(t *testing.T) {
	p := samplePayment()

	t.Run("有权限的完整行", func(t *testing.T) {
		record := csvRecord(p, true)
		require.Len(t, record, len(csvHeader))

		assert.Equal(t, "42", record[0])
		assert.Equal(t, "03/15/2024, 14:30:05", record[1])
		assert.Equal(t, "Accepted", record[2])
		assert.Equal(t, "donor@example.org", record[3])
		assert.Equal(t, "Oui", record[4])
		// 未知的同意状态输出一个空格
		assert.Equal(t, " ", record[5])
		assert.Equal(t, "Campagne 2024", record[6])
		assert.Equal(t, "Borne A", record[7])
		assert.Equal(t, "Asso A", record[8])
		assert.Equal(t, "TPE-001", record[9])
		assert.Equal(t, "100.00", record[10])
		assert.Equal(t, "Quiz", record[11])
		assert.Equal(t, "Partage", record[12])
	})

	t.Run("无权限时捐赠者三列为空", func(t *testing.T) {
		record := csvRecord(p, false)
		assert.Equal(t, "", record[3])
		assert.Equal(t, " ", record[4])
		assert.Equal(t, " ", record[5])
	})

	t.Run("拒绝同意输出 Non", func(t *testing.T) {
		p2 := samplePayment()
		p2.Donator.AcceptNewsletter = boolPtr(false)
		record := csvRecord(p2, true)
		assert.Equal(t, "Non", record[4])
	})
}
