package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"seth/app/auth"
	"seth/app/models/campaign"
	"seth/app/models/customer"
	"seth/app/models/payment"
	"seth/app/models/terminal"
	"seth/app/models/user"
	"seth/pkg/database"
	"seth/pkg/database/migrations"
)

// newTestDB 每个测试一个独立的内存 SQLite 库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(migrations.RegisterTables()...))

	database.DB = db
	return db
}

// fixture 测试数据：两家客户各一台终端机，外加若干账单
type fixture struct {
	customerA terminal.Terminal // 客户 A 的终端机，Partage 30%
	customerB terminal.Terminal // 客户 B 的终端机，Classique

	staff    *auth.Principal
	clientA  *auth.Principal
	clientB  *auth.Principal
	terminal *auth.Principal
}

func seedFixture(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()

	f := &fixture{}

	staffUser := user.User{Username: "admin", IsStaff: true, IsActive: true}
	userA := user.User{Username: "client-a", IsActive: true}
	userB := user.User{Username: "client-b", IsActive: true}
	deviceUser := user.User{Username: "device-1", IsActive: true}
	require.NoError(t, db.Create(&staffUser).Error)
	require.NoError(t, db.Create(&userA).Error)
	require.NoError(t, db.Create(&userB).Error)
	require.NoError(t, db.Create(&deviceUser).Error)

	custA := customer.Customer{Company: "Asso A", UserID: &userA.ID}
	custB := customer.Customer{Company: "Asso B", UserID: &userB.ID}
	require.NoError(t, db.Create(&custA).Error)
	require.NoError(t, db.Create(&custB).Error)

	partage := payment.FormulaPartage
	classique := payment.FormulaClassique
	tpeA := "TPE-001"

	f.customerA = terminal.Terminal{
		Name: "Borne A", OwnerID: deviceUser.ID, CustomerID: custA.ID,
		DonationFormula: &partage, DonationShare: 30, PaymentTerminal: &tpeA,
	}
	f.customerB = terminal.Terminal{
		Name: "Borne B", OwnerID: userB.ID + 100, CustomerID: custB.ID,
		DonationFormula: &classique, DonationShare: 50,
	}
	require.NoError(t, db.Create(&f.customerA).Error)
	require.NoError(t, db.Create(&f.customerB).Error)

	f.staff = &auth.Principal{User: staffUser}
	f.clientA = &auth.Principal{User: userA, Customer: &custA}
	f.clientB = &auth.Principal{User: userB, Customer: &custB}
	f.terminal = &auth.Principal{User: deviceUser, Terminal: &f.customerA}

	cmp := campaign.Campaign{Name: "Campagne 2024"}
	require.NoError(t, db.Create(&cmp).Error)

	// 客户 A：一笔成功 + 一笔跳过，客户 B：一笔成功
	at := func(day int) time.Time {
		return time.Date(2024, 3, day, 12, 0, 0, 0, time.UTC)
	}
	payments := []payment.Payment{
		{Date: at(10), Status: payment.StatusAccepted, Amount: 100, Currency: "EUR",
			CampaignID: cmp.ID, TerminalID: f.customerA.ID},
		{Date: at(11), Status: payment.StatusSkipped, Amount: 50, Currency: "EUR",
			CampaignID: cmp.ID, TerminalID: f.customerA.ID},
		{Date: at(12), Status: payment.StatusAccepted, Amount: 40, Currency: "EUR",
			CampaignID: cmp.ID, TerminalID: f.customerB.ID},
	}
	for i := range payments {
		require.NoError(t, db.Create(&payments[i]).Error)
	}

	return f
}

func TestPaymentCreateSnapshotsTerminalConfig(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)

	repo := NewPaymentRepository()
	p := payment.Payment{
		Status: payment.StatusAccepted, Amount: 10, Currency: "EUR",
		CampaignID: 1, TerminalID: f.customerA.ID,
	}
	require.NoError(t, repo.Create(context.Background(), &p))

	// Partage 30%：捐出 3，TPE 和模式从终端机快照而来
	require.NotNil(t, p.AmountDonated)
	assert.Equal(t, 3.0, *p.AmountDonated)
	require.NotNil(t, p.DonationFormula)
	assert.Equal(t, payment.FormulaPartage, *p.DonationFormula)
	require.NotNil(t, p.PaymentTerminal)
	assert.Equal(t, "TPE-001", *p.PaymentTerminal)
	assert.Equal(t, 30, p.DonationShare)
}

func TestPaymentScoping(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewPaymentRepository()
	ctx := context.Background()

	t.Run("管理员可见全部", func(t *testing.T) {
		list, err := repo.List(ctx, f.staff, payment.Filter{}, 0, 0)
		require.NoError(t, err)
		assert.Len(t, list, 3)
	})

	t.Run("客户只能看到自家终端机的账单", func(t *testing.T) {
		list, err := repo.List(ctx, f.clientA, payment.Filter{}, 0, 0)
		require.NoError(t, err)
		assert.Len(t, list, 2)
		for _, p := range list {
			assert.Equal(t, f.customerA.ID, p.TerminalID)
		}
	})

	t.Run("customer 参数不能放宽范围", func(t *testing.T) {
		other := f.customerB.CustomerID
		list, err := repo.List(ctx, f.clientA, payment.Filter{CustomerID: &other}, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("终端机账号被拒绝", func(t *testing.T) {
		_, err := repo.List(ctx, f.terminal, payment.Filter{}, 0, 0)
		assert.ErrorIs(t, err, auth.ErrPermissionDenied)
	})

	t.Run("匿名被拒绝", func(t *testing.T) {
		_, err := repo.List(ctx, nil, payment.Filter{}, 0, 0)
		assert.ErrorIs(t, err, auth.ErrPermissionDenied)
	})
}

func TestPaymentAggregates(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewPaymentRepository()
	ctx := context.Background()

	t.Run("Skiped 不计入总额和平均值但计入捐赠", func(t *testing.T) {
		agg, err := repo.Aggregate(ctx, f.clientA, payment.Filter{})
		require.NoError(t, err)

		// 客户 A：Accepted 100 + Skiped 50，终端机 Partage 30%
		assert.Equal(t, int64(2), agg.TotalCount)
		assert.Equal(t, 100.0, agg.TotalAmount)
		assert.Equal(t, 100.0, agg.AverageAmount)
		// 捐赠总额含 Skiped：100*0.3 + 50*0.3 = 45
		assert.Equal(t, 45.0, agg.AmountDonated)
		assert.Equal(t, 55.0, agg.AmountForOwner)
	})

	t.Run("空集返回全零", func(t *testing.T) {
		missing := uint64(9999)
		agg, err := repo.Aggregate(ctx, f.staff, payment.Filter{TerminalID: &missing})
		require.NoError(t, err)

		assert.Equal(t, int64(0), agg.TotalCount)
		assert.Zero(t, agg.TotalAmount)
		assert.Zero(t, agg.AverageAmount)
		assert.Zero(t, agg.AmountDonated)
		assert.Zero(t, agg.AmountForOwner)
	})

	t.Run("amount_for_owner 可以为负", func(t *testing.T) {
		// 客户 B 补一笔 Skiped：总额不变，捐赠变大
		require.NoError(t, db.Create(&payment.Payment{
			Date: time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC),
			Status: payment.StatusSkipped, Amount: 100, Currency: "EUR",
			CampaignID: 1, TerminalID: f.customerB.ID,
		}).Error)

		agg, err := repo.Aggregate(ctx, f.clientB, payment.Filter{})
		require.NoError(t, err)

		// Accepted 40（Classique 全捐）+ Skiped 100 全捐 = 140，total 40
		assert.Equal(t, 40.0, agg.TotalAmount)
		assert.Equal(t, 140.0, agg.AmountDonated)
		assert.Equal(t, -100.0, agg.AmountForOwner)
	})
}

func TestPaymentLegacyRowFallback(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewPaymentRepository()
	ctx := context.Background()

	// 历史账单：跳过钩子写入，快照字段保持 NULL
	legacy := payment.Payment{
		Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Status: payment.StatusAccepted, Amount: 200, Currency: "EUR",
		CampaignID: 1, TerminalID: f.customerA.ID,
	}
	require.NoError(t, db.Session(&gorm.Session{SkipHooks: true}).Create(&legacy).Error)
	require.Nil(t, legacy.AmountDonated)

	t.Run("formula 筛选回退到终端机配置", func(t *testing.T) {
		list, err := repo.List(ctx, f.staff, payment.Filter{DonationFormula: payment.FormulaPartage}, 0, 0)
		require.NoError(t, err)

		ids := make([]uint64, 0, len(list))
		for _, p := range list {
			ids = append(ids, p.ID)
		}
		assert.Contains(t, ids, legacy.ID)
	})

	t.Run("tpe 筛选回退到终端机配置", func(t *testing.T) {
		list, err := repo.List(ctx, f.staff, payment.Filter{PaymentTerminal: "TPE-001"}, 0, 0)
		require.NoError(t, err)

		found := false
		for _, p := range list {
			if p.ID == legacy.ID {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("捐赠聚合对历史账单现场推导", func(t *testing.T) {
		agg, err := repo.Aggregate(ctx, f.clientA, payment.Filter{})
		require.NoError(t, err)

		// 100*0.3 + 50*0.3 + 200*0.3（历史账单走终端机 Partage 30%）
		assert.Equal(t, 105.0, agg.AmountDonated)
	})
}

func TestPaymentListOrderingAndPagination(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewPaymentRepository()
	ctx := context.Background()

	t.Run("按时间倒序", func(t *testing.T) {
		list, err := repo.List(ctx, f.staff, payment.Filter{}, 0, 0)
		require.NoError(t, err)
		require.Len(t, list, 3)
		for i := 1; i < len(list); i++ {
			assert.False(t, list[i].Date.After(list[i-1].Date))
		}
	})

	t.Run("分页", func(t *testing.T) {
		page1, err := repo.List(ctx, f.staff, payment.Filter{}, 1, 2)
		require.NoError(t, err)
		assert.Len(t, page1, 2)

		page2, err := repo.List(ctx, f.staff, payment.Filter{}, 2, 2)
		require.NoError(t, err)
		assert.Len(t, page2, 1)
	})

	t.Run("时间区间为左闭右开", func(t *testing.T) {
		start := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 3, 12, 12, 0, 0, 0, time.UTC)
		list, err := repo.List(ctx, f.staff, payment.Filter{Start: &start, End: &end}, 0, 0)
		require.NoError(t, err)

		// 3/11 12:00 在区间内，3/12 12:00 是右端点，排除
		require.Len(t, list, 1)
		assert.Equal(t, 11, list[0].Date.Day())
	})
}

func TestPaymentForEachStreamsAllRows(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewPaymentRepository()

	var count int
	err := repo.ForEach(context.Background(), f.staff, payment.Filter{}, func(p *payment.Payment) error {
		count++
		// 导出需要的关联已经预加载
		assert.NotNil(t, p.Terminal)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
