package routes

import (
	"github.com/gin-gonic/gin"

	authctrl "seth/app/http/controllers/api/v1/auth"
	"seth/app/http/controllers/api/v1/dashboard"
	"seth/app/http/controllers/api/v1/payment"
	"seth/app/http/controllers/api/v1/terminal"
	"seth/app/http/middlewares"
)

// 路由限流配置
const (
	// 全局限流：每小时每 IP 30000 请求
	GlobalRateLimit = "30000-H"
	// 登录限流：每小时每 IP 100 请求
	LoginRateLimit = "100-H"
	// CSV 导出限流：每分钟每 IP 10 请求，导出是全量扫描
	ExportRateLimit = "10-M"
	// 报表查询限流：每分钟每 IP 300 请求
	ReportRateLimit = "300-M"
)

// RegisterAPIRoutes 注册所有 API 路由
func RegisterAPIRoutes(r *gin.Engine) {
	v1 := r.Group("/v1")

	v1.Use(
		middlewares.SecurityHeaders(),
		middlewares.LimitIP(GlobalRateLimit),
		middlewares.Cors(),
	)

	// 登录，唯一的匿名接口
	lc := authctrl.NewLoginController()
	v1.POST("/auth/login",
		middlewares.LimitIP(LoginRateLimit),
		lc.Login,
	)

	// 其余接口全部要求 JWT
	authed := v1.Group("", middlewares.AuthJWT())

	// 账单报表：管理员和客户账号
	reporting := authed.Group("", middlewares.RequireReporting())
	{
		pfc := payment.NewPaymentsFilteredController()

		// 筛选 + 聚合 + 分页
		// GET /v1/payment/filtered
		reporting.GET("/payment/filtered",
			middlewares.LimitIP(ReportRateLimit),
			pfc.Index,
		)

		// 同样的筛选条件导出 CSV（不分页）
		// GET /v1/payment/filtered/to_csv
		reporting.GET("/payment/filtered/to_csv",
			middlewares.LimitIP(ExportRateLimit),
			pfc.ToCSV,
		)

		dc := dashboard.NewDashboardController()
		reporting.GET("/dashboard", dc.Index)
		reporting.GET("/payment/select-items", dc.SelectItems)

		tc := terminal.NewTerminalsController()
		reporting.GET("/terminals", tc.Index)
		reporting.GET("/terminal/:id/stats", tc.Stats)

		// 管理操作仅限管理员
		admin := reporting.Group("", middlewares.RequireStaff())
		{
			admin.PUT("/terminal/:id/activate", tc.Activate)
			admin.PUT("/terminal/:id/deactivate", tc.Deactivate)
			admin.PUT("/terminal/:id/archive", tc.Archive)
			admin.PUT("/terminal/:id/restart", tc.Restart)
			admin.PUT("/terminal/:id/check-for-updates", tc.CheckForUpdates)
		}
	}

	// 账单上报：终端机账号（管理员可代报）
	pc := payment.NewPaymentsController()
	authed.POST("/payment", pc.Store)

	// 设备端接口：终端机操作自己那台机器
	device := authed.Group("/my-terminal", middlewares.RequireTerminal())
	{
		mc := terminal.NewMyTerminalController()
		device.GET("", mc.Show)
		device.GET("/commands", mc.Commands)
		device.PUT("/turn-on", mc.TurnOn)
		device.PUT("/turn-off", mc.TurnOff)
		device.PUT("/play-on", mc.PlayOn)
		device.PUT("/play-off", mc.PlayOff)
	}
}
