package payment

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"seth/app/auth"
	paymentmodel "seth/app/models/payment"
	"seth/app/repositories"
	"seth/app/requests"
	"seth/pkg/logger"
	"seth/pkg/response"
)

// PaymentsController 账单上报接口
type PaymentsController struct {
	payments *repositories.PaymentRepository
}

// NewPaymentsController 创建控制器
func NewPaymentsController() *PaymentsController {
	return &PaymentsController{
		payments: repositories.NewPaymentRepository(),
	}
}

// Store POST /v1/payment
//
// 终端机上报一笔交易。终端机账号只能给自己上报，管理员可指定任意终端机。
// 快照字段在模型钩子里从终端机配置补齐并冻结
func (ctrl *PaymentsController) Store(c *gin.Context) {
	p := auth.CurrentPrincipal(c)
	if p == nil {
		response.Abort403(c)
		return
	}

	req, err := requests.ValidatePaymentStore(c)
	if err != nil {
		abortFilterError(c, err)
		return
	}

	// 终端机账号不信任请求里的 terminal_id
	if p.IsTerminalUser() {
		req.TerminalID = p.Terminal.ID
	} else if !p.IsStaff() {
		response.Abort403(c)
		return
	}

	pay := paymentmodel.Payment{
		Method:   req.Method,
		Status:   req.Status,
		Amount:   req.Amount,
		Currency: req.Currency,

		PaymentTerminal: req.PaymentTerminal,
		DonationFormula: req.DonationFormula,

		DonatorID:  req.DonatorID,
		CampaignID: req.CampaignID,
		TerminalID: req.TerminalID,
		GameID:     req.GameID,
	}

	if err := ctrl.payments.Create(c.Request.Context(), &pay); err != nil {
		response.ServerError(c, err, "账单保存失败")
		return
	}

	logger.Info("payment created",
		zap.Uint64("payment_id", pay.ID),
		zap.Uint64("terminal_id", pay.TerminalID),
		zap.Float64("amount", pay.Amount),
		zap.String("status", pay.Status),
	)

	response.Created(c, BuildRow(&pay, p.CanSeeDonators()))
}
