// Package payment 账单筛选报表接口
package payment

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"seth/app/auth"
	paymentmodel "seth/app/models/payment"
	"seth/app/repositories"
	"seth/app/requests"
	"seth/pkg/response"
)

// PaymentsFilteredController 筛选、聚合、分页一体的账单报表接口
type PaymentsFilteredController struct {
	payments *repositories.PaymentRepository
}

// NewPaymentsFilteredController 创建控制器
func NewPaymentsFilteredController() *PaymentsFilteredController {
	return &PaymentsFilteredController{
		payments: repositories.NewPaymentRepository(),
	}
}

// Index GET /v1/payment/filtered
//
// 返回调用者可见范围内、符合筛选条件的账单列表和汇总数字。
// 汇总永远基于分页前的完整筛选结果
func (ctrl *PaymentsFilteredController) Index(c *gin.Context) {
	p := auth.CurrentPrincipal(c)
	if p == nil {
		response.Abort403(c)
		return
	}

	filter, opts, err := requests.ValidatePaymentFilter(c)
	if err != nil {
		abortFilterError(c, err)
		return
	}

	agg, err := ctrl.payments.Aggregate(c.Request.Context(), p, filter)
	if err != nil {
		abortRepoError(c, err)
		return
	}

	list, err := ctrl.payments.List(c.Request.Context(), p, filter, opts.Page, opts.Limit)
	if err != nil {
		abortRepoError(c, err)
		return
	}

	body := gin.H{
		"payments_total_amount_excluding_skiped":   agg.TotalAmount,
		"payments_average_amount_excluding_skiped": agg.AverageAmount,
		"amount_donated":           agg.AmountDonated,
		"amount_for_owner":         agg.AmountForOwner,
		"total_number_of_payments": agg.TotalCount,
		"payments":                 BuildRows(list, p.CanSeeDonators()),
	}

	// 传了 page 才分页，同时带上页码信息
	if opts.Page > 0 {
		body["page"] = opts.Page
		body["limit"] = opts.Limit
		body["total_pages"] = totalPages(agg.TotalCount, opts.Limit)
	}

	response.JSON(c, body)
}

// ToCSV GET /v1/payment/filtered/to_csv
//
// 按同样的范围和筛选规则导出全部结果（不分页），逐批写出，
// 不会把完整结果集加载进内存
func (ctrl *PaymentsFilteredController) ToCSV(c *gin.Context) {
	p := auth.CurrentPrincipal(c)
	if p == nil {
		response.Abort403(c)
		return
	}

	filter, _, err := requests.ValidatePaymentFilter(c)
	if err != nil {
		abortFilterError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="paiements.csv"`)
	c.Status(http.StatusOK)

	writer := csv.NewWriter(c.Writer)
	if err := writer.Write(csvHeader); err != nil {
		return
	}

	showDonators := p.CanSeeDonators()
	err = ctrl.payments.ForEach(c.Request.Context(), p, filter, func(pay *paymentmodel.Payment) error {
		return writer.Write(csvRecord(pay, showDonators))
	})
	if err != nil {
		// 响应头已经发出，只能中断传输并记录
		if errors.Is(err, auth.ErrPermissionDenied) {
			response.Abort403(c)
			return
		}
		c.Error(err)
		return
	}

	writer.Flush()
}

// csvHeader 导出文件的表头，沿用运营侧习惯的法语列名
var csvHeader = []string{
	"Id",
	"Date",
	"Transaction",
	"Email donateur",
	"Accord newsletter",
	"Accord asso",
	"Campagne",
	"Terminal",
	"Client",
	"TPE",
	"Montant en €",
	"Jeu",
	"Formule de dons",
}

// csvRecord 一笔账单对应的 CSV 行。
// showDonators 为 false 时捐赠者三列置空，与 JSON 的可见性规则一致
func csvRecord(p *paymentmodel.Payment, showDonators bool) []string {
	record := make([]string, 0, len(csvHeader))

	record = append(record,
		fmt.Sprintf("%d", p.ID),
		p.Date.Format("01/02/2006, 15:04:05"),
		p.Status,
	)

	if showDonators && p.Donator != nil {
		record = append(record,
			p.Donator.Email,
			ouiNon(p.Donator.AcceptNewsletter),
			ouiNon(p.Donator.AcceptAsso),
		)
	} else {
		record = append(record, "", " ", " ")
	}

	var campaignName, gameName string
	if p.Campaign != nil {
		campaignName = p.Campaign.Name
	}
	if p.Game != nil {
		gameName = p.Game.Name
	}

	var terminalName, company string
	if p.Terminal != nil {
		terminalName = p.Terminal.Name
		if p.Terminal.Customer != nil {
			company = p.Terminal.Customer.Company
		}
	}

	record = append(record,
		campaignName,
		terminalName,
		company,
		derefOrEmpty(displayPaymentTerminal(p)),
		fmt.Sprintf("%.2f", p.Amount),
		gameName,
		derefOrEmpty(displayDonationFormula(p)),
	)

	return record
}

// ouiNon 三态布尔列：未知时输出一个空格
func ouiNon(v *bool) string {
	switch {
	case v == nil:
		return " "
	case *v:
		return "Oui"
	default:
		return "Non"
	}
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func totalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return int64(math.Ceil(float64(total) / float64(limit)))
}

// abortFilterError 参数错误统一回 422 / 400
func abortFilterError(c *gin.Context, err error) {
	var verr requests.ValidationError
	if errors.As(err, &verr) {
		response.ValidationError(c, verr.Errors)
		return
	}
	response.BadRequest(c, err)
}

// abortRepoError 仓库错误统一处理：无权限回 403，其余回 500
func abortRepoError(c *gin.Context, err error) {
	if errors.Is(err, auth.ErrPermissionDenied) {
		response.Abort403(c)
		return
	}
	response.ServerError(c, err)
}
