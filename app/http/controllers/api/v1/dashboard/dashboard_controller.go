// Package dashboard 后台首页的汇总数字和筛选目录
package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"seth/app/auth"
	"seth/app/models/payment"
	"seth/app/repositories"
	"seth/pkg/app"
	"seth/pkg/period"
	"seth/pkg/redis"
	"seth/pkg/response"
)

// 仪表盘数字的缓存时长。数据口径是「本月累计」，几十秒的滞后可以接受
const cacheTTL = 60 * time.Second

// DashboardController 仪表盘接口
type DashboardController struct {
	payments  *repositories.PaymentRepository
	terminals *repositories.TerminalRepository
	sessions  *repositories.SessionRepository
	catalog   *repositories.CatalogRepository
}

// NewDashboardController 创建控制器
func NewDashboardController() *DashboardController {
	return &DashboardController{
		payments:  repositories.NewPaymentRepository(),
		terminals: repositories.NewTerminalRepository(),
		sessions:  repositories.NewSessionRepository(),
		catalog:   repositories.NewCatalogRepository(),
	}
}

// overview 仪表盘主体数据
type overview struct {
	CurrentMonth monthFigures `json:"current_month"`
	LastMonth    monthFigures `json:"last_month"`

	TerminalCount    int64 `json:"terminal_count"`
	TerminalsOnCount int   `json:"terminals_on_count"`

	// 本月开始的游戏会话数，当作捐赠人次
	DonatorsCurrentMonth int64 `json:"donators_current_month"`

	// 可见范围内累计的游戏时长（秒）
	GameSecondsTotal int64 `json:"game_seconds_total"`
}

type monthFigures struct {
	Collected float64 `json:"collected"`
	Donated   float64 `json:"donated"`
}

// Index GET /v1/dashboard
//
// 本月/上月收款与捐赠、终端机状态、捐赠人次等汇总数字。
// 结果按调用者身份短期缓存
func (ctrl *DashboardController) Index(c *gin.Context) {
	p := auth.CurrentPrincipal(c)
	if p == nil {
		response.Abort403(c)
		return
	}

	cacheKey := dashboardCacheKey(p)
	cache := redis.GetRedis(redis.CacheDB)

	if cached := cache.Get(cacheKey); cached != "" {
		var data overview
		if err := json.Unmarshal([]byte(cached), &data); err == nil {
			response.Data(c, data)
			return
		}
	}

	data, err := ctrl.buildOverview(c, p)
	if err != nil {
		if errors.Is(err, auth.ErrPermissionDenied) {
			response.Abort403(c)
			return
		}
		response.ServerError(c, err)
		return
	}

	if raw, err := json.Marshal(data); err == nil {
		cache.Set(cacheKey, string(raw), cacheTTL)
	}

	response.Data(c, data)
}

func (ctrl *DashboardController) buildOverview(c *gin.Context, p *auth.Principal) (*overview, error) {
	ctx := c.Request.Context()
	now := app.TimenowInTimezone()

	data := &overview{}

	// 本月 / 上月的收款与捐赠，所有状态都计入
	for _, window := range []struct {
		name    string
		figures *monthFigures
	}{
		{period.CurrentMonth, &data.CurrentMonth},
		{period.LastMonth, &data.LastMonth},
	} {
		start, end, err := period.Range(window.name, now)
		if err != nil {
			return nil, err
		}

		filter := payment.Filter{Start: &start, End: &end}
		collected, donated, err := ctrl.payments.CollectedAndDonated(ctx, p, filter)
		if err != nil {
			return nil, err
		}

		window.figures.Collected = collected
		window.figures.Donated = donated
	}

	count, err := ctrl.terminals.Count(ctx, p)
	if err != nil {
		return nil, err
	}
	data.TerminalCount = count

	on, err := ctrl.terminals.ListOn(ctx, p)
	if err != nil {
		return nil, err
	}
	data.TerminalsOnCount = len(on)

	monthStart, monthEnd, err := period.Range(period.CurrentMonth, now)
	if err != nil {
		return nil, err
	}
	donators, err := ctrl.sessions.CountStartedBetween(ctx, p, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	data.DonatorsCurrentMonth = donators

	seconds, err := ctrl.sessions.TotalGameSeconds(ctx, p)
	if err != nil {
		return nil, err
	}
	data.GameSecondsTotal = seconds

	return data, nil
}

// SelectItems GET /v1/payment/select-items
//
// 报表筛选下拉框的候选项：活动、游戏、终端机，管理员额外拿到客户列表
func (ctrl *DashboardController) SelectItems(c *gin.Context) {
	p := auth.CurrentPrincipal(c)
	ctx := c.Request.Context()

	campaigns, err := ctrl.catalog.Campaigns(ctx)
	if err != nil {
		response.ServerError(c, err)
		return
	}

	games, err := ctrl.catalog.Games(ctx)
	if err != nil {
		response.ServerError(c, err)
		return
	}

	terminals, err := ctrl.terminals.List(ctx, p, repositories.TerminalFilter{})
	if err != nil {
		if errors.Is(err, auth.ErrPermissionDenied) {
			response.Abort403(c)
			return
		}
		response.ServerError(c, err)
		return
	}

	body := gin.H{
		"campaigns": campaigns,
		"games":     games,
		"terminals": terminals,
		"periods":   period.Names,
	}

	if p != nil && p.IsStaff() {
		customers, err := ctrl.catalog.Customers(ctx, p)
		if err != nil {
			response.ServerError(c, err)
			return
		}
		body["customers"] = customers
	}

	response.Data(c, body)
}

// dashboardCacheKey 缓存键按身份区分：管理员共用一份，客户各一份
func dashboardCacheKey(p *auth.Principal) string {
	if p.IsStaff() {
		return "dashboard:staff"
	}
	if p.IsCustomerUser() {
		return fmt.Sprintf("dashboard:customer:%d", p.Customer.ID)
	}
	return fmt.Sprintf("dashboard:user:%d", p.User.ID)
}
