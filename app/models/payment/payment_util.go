package payment

// 交易状态
const (
	StatusAccepted = "Accepted"
	// StatusSkipped 捐赠者跳过支付的记录。
	// 注意 "Skiped" 是历史数据中的固定取值（拼写如此），必须原样匹配
	StatusSkipped = "Skiped"
)

// 分成模式
const (
	FormulaClassique = "Classique"
	FormulaGratuit   = "Gratuit"
	FormulaMecenat   = "Mécénat"
	FormulaPartage   = "Partage"
)

// DonationFormulas 可用的分成模式列表
var DonationFormulas = []string{
	FormulaClassique,
	FormulaGratuit,
	FormulaMecenat,
	FormulaPartage,
}

// DeriveAmountDonated 按分成模式推导捐给活动的金额。
// Partage 模式下终端机主保留 share%，捐出部分为 amount*share/100；
// 其余模式金额全部捐出。
func DeriveAmountDonated(amount float64, formula *string, share int) float64 {
	if formula != nil && *formula == FormulaPartage {
		return amount * float64(share) / 100
	}
	return amount
}

// AmountDonatedOrDerived 返回这笔账单捐给活动的金额。
//
// 新数据直接使用创建时冻结的 amount_donated；
// 历史数据缺少该字段时，用账单自身的分成模式（缺失时回退到所属终端机的
// 实时配置）按同一公式现场推导。聚合和 CSV 导出都只通过这一个入口取值。
func (p *Payment) AmountDonatedOrDerived() float64 {
	if p.AmountDonated != nil {
		return *p.AmountDonated
	}

	formula := p.DonationFormula
	share := p.DonationShare

	if p.Terminal != nil {
		if formula == nil {
			formula = p.Terminal.DonationFormula
		}
		if share == 0 {
			share = p.Terminal.DonationShare
		}
	}

	return DeriveAmountDonated(p.Amount, formula, share)
}
