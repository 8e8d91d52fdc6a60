package repositories

import (
	"context"
	"math"

	"gorm.io/gorm"

	"seth/app/auth"
	"seth/app/models/payment"
	"seth/pkg/database"
)

// 导出和聚合扫描时每批读取的行数
const paymentBatchSize = 500

// PaymentRepository 账单仓库，报表子系统的核心。
//
// 查询管道固定为：租户范围（角色决定，不可被参数放宽）→ 可选筛选条件
// → 聚合 / 分页。所有读取都不会修改账单数据。
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository 创建仓库实例
func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{
		db: database.DB,
	}
}

// PaymentAggregates 一次筛选结果的汇总数字
type PaymentAggregates struct {
	// 不含 Skiped 记录的总金额与平均金额（平均值保留两位小数）
	TotalAmount   float64 `json:"payments_total_amount_excluding_skiped"`
	AverageAmount float64 `json:"payments_average_amount_excluding_skiped"`

	// 捐给活动的总额，包括 Skiped 记录（历史口径，刻意保留）
	AmountDonated float64 `json:"amount_donated"`

	// 归终端机主的部分，total - donated，可能为负，不做裁剪
	AmountForOwner float64 `json:"amount_for_owner"`

	// 分页前的总行数
	TotalCount int64 `json:"total_number_of_payments"`
}

// scoped 返回调用者可见的最大账单集合。
// 管理员可见全部，客户账号只能看到自家终端机的账单，其余身份一律拒绝。
// 这是管道的第一步，任何查询参数都无法绕过
func (r *PaymentRepository) scoped(ctx context.Context, p *auth.Principal) (*gorm.DB, error) {
	query := r.db.WithContext(ctx).
		Model(&payment.Payment{}).
		Joins("LEFT JOIN terminals ON terminals.id = payments.terminal_id")

	if p == nil {
		return nil, auth.ErrPermissionDenied
	}

	if p.IsStaff() {
		return query, nil
	}

	if p.IsCustomerUser() {
		return query.Where("terminals.customer_id = ?", p.Customer.ID), nil
	}

	// 终端机账号、匿名等其余身份
	return nil, auth.ErrPermissionDenied
}

// filtered 在租户范围之上应用筛选条件，条件之间按 AND 组合。
// donation_formula / payment_terminal 两项对没有快照的历史账单
// 回退到所属终端机的实时配置进行匹配
func (r *PaymentRepository) filtered(ctx context.Context, p *auth.Principal, f payment.Filter) (*gorm.DB, error) {
	query, err := r.scoped(ctx, p)
	if err != nil {
		return nil, err
	}

	if f.TerminalID != nil {
		query = query.Where("payments.terminal_id = ?", *f.TerminalID)
	}

	if f.CustomerID != nil {
		query = query.Where("terminals.customer_id = ?", *f.CustomerID)
	}

	if f.CampaignID != nil {
		query = query.Where("payments.campaign_id = ?", *f.CampaignID)
	}

	if f.GameID != nil {
		query = query.Where("payments.game_id = ?", *f.GameID)
	}

	if f.Status != "" {
		query = query.Where("payments.status = ?", f.Status)
	}

	if f.DonationFormula != "" {
		query = query.Where(
			"payments.donation_formula = ? OR (payments.donation_formula IS NULL AND terminals.donation_formula = ?)",
			f.DonationFormula, f.DonationFormula,
		)
	}

	if f.PaymentTerminal != "" {
		query = query.Where(
			"payments.payment_terminal = ? OR (payments.payment_terminal IS NULL AND terminals.payment_terminal = ?)",
			f.PaymentTerminal, f.PaymentTerminal,
		)
	}

	if f.Start != nil {
		query = query.Where("payments.date >= ?", *f.Start)
	}

	if f.End != nil {
		query = query.Where("payments.date < ?", *f.End)
	}

	// 条件构建完毕，生成可以安全复用的会话
	return query.Session(&gorm.Session{}), nil
}

// List 返回一页筛选结果，按时间倒序。
// page <= 0 时不分页，返回全部筛选结果
func (r *PaymentRepository) List(ctx context.Context, p *auth.Principal, f payment.Filter, page, limit int) ([]payment.Payment, error) {
	query, err := r.filtered(ctx, p, f)
	if err != nil {
		return nil, err
	}

	query = query.
		Order("payments.date DESC").
		Preload("Donator").
		Preload("Campaign").
		Preload("Game").
		Preload("Terminal").
		Preload("Terminal.Customer")

	if page > 0 {
		query = query.Offset((page - 1) * limit).Limit(limit)
	}

	var payments []payment.Payment
	err = query.Find(&payments).Error
	return payments, err
}

// Aggregate 计算筛选结果（分页前）的汇总数字。
//
// 总额和平均值排除 Skiped 记录；捐赠总额包括 Skiped 记录，
// 这是为保持历史捐赠口径刻意保留的不对称。空集时全部返回 0
func (r *PaymentRepository) Aggregate(ctx context.Context, p *auth.Principal, f payment.Filter) (PaymentAggregates, error) {
	var agg PaymentAggregates

	query, err := r.filtered(ctx, p, f)
	if err != nil {
		return agg, err
	}

	// 1. 分页前总行数
	if err := query.Count(&agg.TotalCount).Error; err != nil {
		return agg, err
	}

	// 2. 排除 Skiped 后的总额与平均值
	var sums struct {
		Total   float64
		Average float64
	}
	err = query.
		Where("payments.status <> ?", payment.StatusSkipped).
		Select("COALESCE(SUM(payments.amount), 0) AS total, COALESCE(AVG(payments.amount), 0) AS average").
		Scan(&sums).Error
	if err != nil {
		return agg, err
	}

	agg.TotalAmount = sums.Total
	agg.AverageAmount = math.Round(sums.Average*100) / 100

	// 3. 捐赠总额：逐批扫描全部筛选结果，历史账单走回退推导
	var donated float64
	var batch []payment.Payment
	err = query.
		Preload("Terminal").
		FindInBatches(&batch, paymentBatchSize, func(tx *gorm.DB, n int) error {
			for i := range batch {
				donated += batch[i].AmountDonatedOrDerived()
			}
			return nil
		}).Error
	if err != nil {
		return agg, err
	}

	agg.AmountDonated = donated
	agg.AmountForOwner = agg.TotalAmount - agg.AmountDonated

	return agg, nil
}

// ForEach 逐批遍历全部筛选结果（不分页），用于 CSV 导出。
// 回调返回错误时中断遍历
func (r *PaymentRepository) ForEach(ctx context.Context, p *auth.Principal, f payment.Filter, fn func(*payment.Payment) error) error {
	query, err := r.filtered(ctx, p, f)
	if err != nil {
		return err
	}

	var batch []payment.Payment
	return query.
		Preload("Donator").
		Preload("Campaign").
		Preload("Game").
		Preload("Terminal").
		Preload("Terminal.Customer").
		FindInBatches(&batch, paymentBatchSize, func(tx *gorm.DB, n int) error {
			for i := range batch {
				if err := fn(&batch[i]); err != nil {
					return err
				}
			}
			return nil
		}).Error
}

// CollectedAndDonated 统计时间窗口内（全部状态）的收款总额与捐赠总额，
// 仪表盘的本月/上月数字用
func (r *PaymentRepository) CollectedAndDonated(ctx context.Context, p *auth.Principal, f payment.Filter) (collected, donated float64, err error) {
	query, err := r.filtered(ctx, p, f)
	if err != nil {
		return 0, 0, err
	}

	var batch []payment.Payment
	err = query.
		Preload("Terminal").
		FindInBatches(&batch, paymentBatchSize, func(tx *gorm.DB, n int) error {
			for i := range batch {
				collected += batch[i].Amount
				donated += batch[i].AmountDonatedOrDerived()
			}
			return nil
		}).Error

	return collected, donated, err
}

// LastAccepted 终端机最近 limit 笔成功的账单
func (r *PaymentRepository) LastAccepted(ctx context.Context, terminalID uint64, limit int) ([]payment.Payment, error) {
	var payments []payment.Payment
	err := r.db.WithContext(ctx).
		Where("terminal_id = ? AND status = ?", terminalID, payment.StatusAccepted).
		Order("date DESC").
		Limit(limit).
		Preload("Campaign").
		Preload("Game").
		Find(&payments).Error
	return payments, err
}

// AvgAcceptedAmount 终端机成功账单的平均金额
func (r *PaymentRepository) AvgAcceptedAmount(ctx context.Context, terminalID uint64) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).
		Model(&payment.Payment{}).
		Where("terminal_id = ? AND status = ?", terminalID, payment.StatusAccepted).
		Select("COALESCE(AVG(amount), 0)").
		Scan(&avg).Error
	return avg, err
}

// Create 写入一条账单，快照推导在模型的 BeforeCreate 钩子里完成
func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}
