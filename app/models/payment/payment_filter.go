package payment

import "time"

// Filter 账单筛选条件。
//
// 每个字段都是可选项，零值表示「未提供该条件」，所有条件按 AND 组合。
// 字段在请求边界（app/requests）一次性校验并归一化，之后不再修改。
type Filter struct {
	CampaignID *uint64
	TerminalID *uint64
	CustomerID *uint64
	GameID     *uint64

	Status          string
	DonationFormula string
	PaymentTerminal string

	// 半开区间 [Start, End)
	Start *time.Time
	End   *time.Time
}
