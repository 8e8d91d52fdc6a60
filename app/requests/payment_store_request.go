package requests

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/thedevsaddam/govalidator"

	"seth/app/models/payment"
)

// PaymentStoreRequest 终端机上报一笔账单
type PaymentStoreRequest struct {
	TerminalID uint64  `json:"terminal_id"`
	CampaignID uint64  `json:"campaign_id"`
	DonatorID  *uint64 `json:"donator_id"`
	GameID     *uint64 `json:"game_id"`

	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Method   string  `json:"method"`
	Status   string  `json:"status"`

	// 可选快照，不传时由模型钩子从终端机配置补齐
	PaymentTerminal *string `json:"payment_terminal"`
	DonationFormula *string `json:"donation_formula"`
}

// ValidatePaymentStore 校验账单创建请求
func ValidatePaymentStore(c *gin.Context) (*PaymentStoreRequest, error) {
	var req PaymentStoreRequest

	// 1. 解析 JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, fmt.Errorf("解析 JSON 失败: %w", err)
	}

	// 2. 校验规则
	rules := govalidator.MapData{
		"terminal_id": []string{"required"},
		"campaign_id": []string{"required"},
		"status":      []string{"required"},
		"currency":    []string{"required"},
	}
	messages := govalidator.MapData{
		"terminal_id": []string{"required:terminal_id 不能为空"},
		"campaign_id": []string{"required:campaign_id 不能为空"},
		"status":      []string{"required:status 不能为空"},
		"currency":    []string{"required:currency 不能为空"},
	}

	opts := govalidator.Options{
		Data:     &req,
		Rules:    rules,
		Messages: messages,
	}
	if errs := govalidator.New(opts).ValidateStruct(); len(errs) > 0 {
		return nil, ValidationError{Errors: errs}
	}

	// 3. 业务约束
	if req.Amount < 0 {
		return nil, fmt.Errorf("amount 不能为负数")
	}

	if req.DonationFormula != nil && !validFormula(*req.DonationFormula) {
		return nil, fmt.Errorf("donation_formula 必须是 %s 之一", strings.Join(payment.DonationFormulas, "/"))
	}

	return &req, nil
}

func validFormula(formula string) bool {
	for _, f := range payment.DonationFormulas {
		if f == formula {
			return true
		}
	}
	return false
}
