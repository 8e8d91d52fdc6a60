package terminal

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"seth/app/auth"
	terminalmodel "seth/app/models/terminal"
	"seth/pkg/response"
)

// MyTerminalController 设备端接口，终端机账号操作自己那台机器。
// 路由上已由 RequireTerminal 中间件保证调用者是终端机账号
type MyTerminalController struct {
	TerminalsController
}

// NewMyTerminalController 创建控制器
func NewMyTerminalController() *MyTerminalController {
	return &MyTerminalController{
		TerminalsController: *NewTerminalsController(),
	}
}

// Show GET /v1/my-terminal 终端机读取自己的配置
func (ctrl *MyTerminalController) Show(c *gin.Context) {
	t, ok := ctrl.own(c)
	if !ok {
		return
	}
	response.Data(c, t)
}

// TurnOn PUT /v1/my-terminal/turn-on 上报开机
func (ctrl *MyTerminalController) TurnOn(c *gin.Context) {
	ctrl.setOwnState(c, func(t *terminalmodel.Terminal) {
		t.IsOn = true
	})
}

// TurnOff PUT /v1/my-terminal/turn-off 上报关机
func (ctrl *MyTerminalController) TurnOff(c *gin.Context) {
	ctrl.setOwnState(c, func(t *terminalmodel.Terminal) {
		t.IsOn = false
		t.IsPlaying = false
	})
}

// PlayOn PUT /v1/my-terminal/play-on 上报进入游戏
func (ctrl *MyTerminalController) PlayOn(c *gin.Context) {
	ctrl.setOwnState(c, func(t *terminalmodel.Terminal) {
		t.IsPlaying = true
	})
}

// PlayOff PUT /v1/my-terminal/play-off 上报退出游戏
func (ctrl *MyTerminalController) PlayOff(c *gin.Context) {
	ctrl.setOwnState(c, func(t *terminalmodel.Terminal) {
		t.IsPlaying = false
	})
}

// Commands GET /v1/my-terminal/commands
//
// 终端机轮询待执行的远程指令。指令是一次性的，读取即清除
func (ctrl *MyTerminalController) Commands(c *gin.Context) {
	t, ok := ctrl.own(c)
	if !ok {
		return
	}

	commands := gin.H{
		"restart":           t.Restart,
		"check_for_updates": t.CheckForUpdates,
	}

	if t.Restart || t.CheckForUpdates {
		t.Restart = false
		t.CheckForUpdates = false
		if err := ctrl.terminals.Save(c.Request.Context(), t); err != nil {
			response.ServerError(c, err)
			return
		}
	}

	response.Data(c, commands)
}

// own 加载当前终端机账号对应的机器
func (ctrl *MyTerminalController) own(c *gin.Context) (*terminalmodel.Terminal, bool) {
	p := auth.CurrentPrincipal(c)
	if p == nil || !p.IsTerminalUser() {
		response.Abort403(c)
		return nil, false
	}

	t, err := ctrl.terminals.GetByOwner(c.Request.Context(), p.User.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Abort404(c)
			return nil, false
		}
		response.ServerError(c, err)
		return nil, false
	}
	return t, true
}

func (ctrl *MyTerminalController) setOwnState(c *gin.Context, mutate func(*terminalmodel.Terminal)) {
	t, ok := ctrl.own(c)
	if !ok {
		return
	}

	mutate(t)

	if err := ctrl.terminals.Save(c.Request.Context(), t); err != nil {
		response.ServerError(c, err)
		return
	}

	response.Data(c, t)
}
