// Package terminal 终端机管理和设备端接口
package terminal

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"seth/app/auth"
	terminalmodel "seth/app/models/terminal"
	"seth/app/repositories"
	"seth/pkg/logger"
	"seth/pkg/response"
)

// 终端机统计中展示的最近账单条数
const recentPaymentsLimit = 5

// TerminalsController 终端机列表、统计和管理操作
type TerminalsController struct {
	terminals *repositories.TerminalRepository
	payments  *repositories.PaymentRepository
	sessions  *repositories.SessionRepository
}

// NewTerminalsController 创建控制器
func NewTerminalsController() *TerminalsController {
	return &TerminalsController{
		terminals: repositories.NewTerminalRepository(),
		payments:  repositories.NewPaymentRepository(),
		sessions:  repositories.NewSessionRepository(),
	}
}

// Index GET /v1/terminals
//
// 调用者可见的终端机列表，支持 is_active / is_on / is_playing / customer 筛选
func (ctrl *TerminalsController) Index(c *gin.Context) {
	p := auth.CurrentPrincipal(c)

	var filter repositories.TerminalFilter
	if raw := c.Query("is_active"); raw != "" {
		value := cast.ToBool(raw)
		filter.IsActive = &value
	}
	if raw := c.Query("is_on"); raw != "" {
		value := cast.ToBool(raw)
		filter.IsOn = &value
	}
	if raw := c.Query("is_playing"); raw != "" {
		value := cast.ToBool(raw)
		filter.IsPlaying = &value
	}
	if raw := c.Query("customer"); raw != "" {
		id := cast.ToUint64(raw)
		filter.CustomerID = &id
	}

	terminals, err := ctrl.terminals.List(c.Request.Context(), p, filter)
	if err != nil {
		abortTerminalError(c, err)
		return
	}

	response.Data(c, terminals)
}

// Stats GET /v1/terminal/:id/stats
//
// 单台终端机的运营数字：平均会话时长、平均成交金额、最近几笔成功账单
func (ctrl *TerminalsController) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	t, ok := ctrl.visibleTerminal(c)
	if !ok {
		return
	}

	avgSession, err := ctrl.sessions.AvgSeconds(ctx, t.ID, false)
	if err != nil {
		response.ServerError(c, err)
		return
	}

	avgGlobal, err := ctrl.sessions.AvgSeconds(ctx, t.ID, true)
	if err != nil {
		response.ServerError(c, err)
		return
	}

	avgAmount, err := ctrl.payments.AvgAcceptedAmount(ctx, t.ID)
	if err != nil {
		response.ServerError(c, err)
		return
	}

	recent, err := ctrl.payments.LastAccepted(ctx, t.ID, recentPaymentsLimit)
	if err != nil {
		response.ServerError(c, err)
		return
	}

	recentRows := make([]gin.H, 0, len(recent))
	for i := range recent {
		row := gin.H{
			"id":     recent[i].ID,
			"date":   recent[i].Date,
			"amount": recent[i].Amount,
		}
		if recent[i].Campaign != nil {
			row["campaign"] = recent[i].Campaign.Name
		}
		if recent[i].Game != nil {
			row["game"] = recent[i].Game.Name
		}
		recentRows = append(recentRows, row)
	}

	response.Data(c, gin.H{
		"terminal":                   t,
		"avg_session_seconds":        avgSession,
		"avg_session_seconds_global": avgGlobal,
		"avg_session":                formatHMS(avgSession),
		"avg_session_global":         formatHMS(avgGlobal),
		"avg_accepted_amount":        avgAmount,
		"recent_payments":            recentRows,
	})
}

// formatHMS 把秒数格式化成 HH:MM:SS，前端直接展示
func formatHMS(seconds float64) string {
	total := int64(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// Activate PUT /v1/terminal/:id/activate 启用终端机，仅管理员
func (ctrl *TerminalsController) Activate(c *gin.Context) {
	ctrl.updateTerminal(c, "activate", func(t *terminalmodel.Terminal) {
		t.IsActive = true
	})
}

// Deactivate PUT /v1/terminal/:id/deactivate 停用终端机，仅管理员
func (ctrl *TerminalsController) Deactivate(c *gin.Context) {
	ctrl.updateTerminal(c, "deactivate", func(t *terminalmodel.Terminal) {
		t.IsActive = false
	})
}

// Archive PUT /v1/terminal/:id/archive 归档终端机，仅管理员。
// 归档后从所有列表中消失，但历史账单保留
func (ctrl *TerminalsController) Archive(c *gin.Context) {
	ctrl.updateTerminal(c, "archive", func(t *terminalmodel.Terminal) {
		t.IsArchived = true
		t.IsActive = false
	})
}

// Restart PUT /v1/terminal/:id/restart 给终端机下发重启指令，仅管理员。
// 设备在下一次轮询指令时执行并清除标记
func (ctrl *TerminalsController) Restart(c *gin.Context) {
	ctrl.updateTerminal(c, "restart", func(t *terminalmodel.Terminal) {
		t.Restart = true
	})
}

// CheckForUpdates PUT /v1/terminal/:id/check-for-updates
// 给终端机下发检查更新指令，仅管理员
func (ctrl *TerminalsController) CheckForUpdates(c *gin.Context) {
	ctrl.updateTerminal(c, "check_for_updates", func(t *terminalmodel.Terminal) {
		t.CheckForUpdates = true
	})
}

// updateTerminal 管理操作的公共流程：取终端机、改状态、落库、记审计日志
func (ctrl *TerminalsController) updateTerminal(c *gin.Context, action string, mutate func(*terminalmodel.Terminal)) {
	ctx := c.Request.Context()

	t, err := ctrl.terminals.Get(ctx, cast.ToUint64(c.Param("id")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Abort404(c)
			return
		}
		response.ServerError(c, err)
		return
	}

	mutate(t)

	if err := ctrl.terminals.Save(ctx, t); err != nil {
		response.ServerError(c, err)
		return
	}

	logger.Info("terminal "+action,
		zap.Uint64("terminal_id", t.ID),
		zap.Uint64("operator_id", auth.CurrentUID(c)),
	)

	response.Data(c, t)
}

// visibleTerminal 读取路径参数中的终端机并做范围检查
func (ctrl *TerminalsController) visibleTerminal(c *gin.Context) (*terminalmodel.Terminal, bool) {
	p := auth.CurrentPrincipal(c)

	t, err := ctrl.terminals.Get(c.Request.Context(), cast.ToUint64(c.Param("id")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Abort404(c)
			return nil, false
		}
		response.ServerError(c, err)
		return nil, false
	}

	// 客户账号只能看自家终端机
	if p == nil || (!p.IsStaff() && !(p.IsCustomerUser() && p.Customer.ID == t.CustomerID)) {
		response.Abort403(c)
		return nil, false
	}

	return t, true
}

func abortTerminalError(c *gin.Context, err error) {
	if errors.Is(err, auth.ErrPermissionDenied) {
		response.Abort403(c)
		return
	}
	response.ServerError(c, err)
}
