// Package bot wires the domain services to the Telegram transport: command
// and callback handlers, the proposal wizard, menus and the run lifecycle.
package bot

import (
	"context"
	"time"

	coreconfig "lecturebot/core/config"
	coretelegram "lecturebot/core/telegram"
	"lecturebot/core/telegram/commands"
	"lecturebot/core/telegram/helpers"
	"lecturebot/core/telegram/middleware"
	"lecturebot/core/telegram/router"
	"lecturebot/core/telegram/state"
	"lecturebot/internal/export"
	"lecturebot/internal/health"
	"lecturebot/internal/metrics"
	"lecturebot/internal/notify"
	"lecturebot/internal/service/lectures"
	"lecturebot/internal/service/ops"
	"lecturebot/internal/service/registrations"
	"lecturebot/internal/service/users"

	tele "gopkg.in/telebot.v4"
)

// Deps are the constructed services the transport layer binds to.
type Deps struct {
	Config   *coreconfig.Config
	Gate     *ops.Gate
	Users    *users.Service
	Lectures *lectures.Service
	Regs     *registrations.Service
	Exporter *export.Service
	Notifier *notify.Notifier
	Sessions state.Manager
	Metrics  metrics.Recorder
	Health   *health.Server
}

// App is the assembled Telegram application.
type App struct {
	cfg      *coreconfig.Config
	gate     *ops.Gate
	users    *users.Service
	lectures *lectures.Service
	regs     *registrations.Service
	exporter *export.Service
	notifier *notify.Notifier
	sessions state.Manager
	metrics  metrics.Recorder
	health   *health.Server
}

func NewApp(d Deps) *App {
	return &App{
		cfg:      d.Config,
		gate:     d.Gate,
		users:    d.Users,
		lectures: d.Lectures,
		regs:     d.Regs,
		exporter: d.Exporter,
		notifier: d.Notifier,
		sessions: d.Sessions,
		metrics:  d.Metrics,
		health:   d.Health,
	}
}

// CoreConfig implements the runner's ConfigCarrier.
func (a *App) CoreConfig() *coreconfig.Config {
	return a.cfg
}

// buildRegistry declares every command and callback the bot answers.
func (a *App) buildRegistry() *coretelegram.Registry {
	reg := coretelegram.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Open the main menu",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     a.handleHelpCommand,
		Description: "How to use the bot",
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     a.handleCancel,
		Description: "Abort the current conversation",
	})
	reg.RegisterCommand("/admin", commands.Command{
		Handler:     a.handleAdminCommand,
		Description: "Open the admin panel",
		AdminOnly:   true,
		Hidden:      true,
	})

	reg.RegisterCallback(cbBrowse, a.handleBrowse)
	reg.RegisterCallback(cbDetails, a.handleLectureDetails)
	reg.RegisterCallback(cbRegister, a.handleRegister)
	reg.RegisterCallback(cbMyRegs, a.handleMyRegistrations)
	reg.RegisterCallback(cbPropose, a.handlePropose)
	reg.RegisterCallback(cbHelp, a.handleHelp)
	reg.RegisterCallback(cbHome, a.handleHome)
	reg.RegisterCallback(cbBack, a.handleBack)

	reg.RegisterCallback(cbAdminPending, a.adminOnly(a.handleAdminPending))
	reg.RegisterCallback(cbAdminControls, a.adminOnly(a.handleAdminControls))
	reg.RegisterCallback(cbAdminExport, a.adminOnly(a.handleAdminExport))
	reg.RegisterCallback(cbApprove, a.adminOnly(a.handleApprove))
	reg.RegisterCallback(cbReject, a.adminOnly(a.handleReject))
	reg.RegisterCallback(cbVerifyOK, a.adminOnly(a.handleVerifyApprove))
	reg.RegisterCallback(cbVerifyNo, a.adminOnly(a.handleVerifyDecline))
	reg.RegisterCallback(cbHaltConfirm, a.adminOnly(a.handleHaltConfirm))
	reg.RegisterCallback(cbHalt, a.adminOnly(a.handleHalt))
	reg.RegisterCallback(cbResume, a.adminOnly(a.handleResume))
	reg.RegisterCallback(cbExportXLSX, a.adminOnly(a.handleExportXLSX))
	reg.RegisterCallback(cbExportCSV, a.adminOnly(a.handleExportCSV))

	reg.SetTextFallback(a.handleUnknownText)

	a.registerWizard()

	return reg
}

// adminOnly guards an admin callback at the transport level. The services
// enforce the same rule again with their own allow-list check.
func (a *App) adminOnly(h tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		sender := c.Sender()
		if sender == nil || !a.gate.IsAdmin(sender.ID) {
			return c.Respond(&tele.CallbackResponse{Text: "Unauthorized"})
		}
		return h(c)
	}
}

// TelegramRunOptions implements the runner's TelegramApp.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := a.buildRegistry()

	gateOpts := middleware.GateOptions{
		Halted:   a.gate.IsHalted,
		IsAdmin:  a.gate.IsAdmin,
		OnHalted: a.handleHalted,
	}

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		IsAdmin: a.gate.IsAdmin,
	})
	routes = append(routes, router.TextRoutes(a.sessions, reg, router.TextOptions{
		UnknownPhoto: a.handleUnexpectedPhoto,
	})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))

	return coretelegram.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg, gateOpts, nil),
		Routes:      routes,
		OnStart:     a.onStart,
		OnStop:      a.onStop,
	}, nil
}

func (a *App) onStart(ctx context.Context, rt coretelegram.Runtime) error {
	a.notifier.Bind(rt.Bot, rt.Dispatcher)
	a.sessions.StartSweeper(ctx, time.Duration(a.cfg.Sessions.SweepSeconds)*time.Second)
	if a.health != nil {
		a.health.Start(ctx)
	}
	return nil
}

func (a *App) onStop(ctx context.Context, rt coretelegram.Runtime) error {
	if a.health != nil {
		a.health.Stop(ctx)
	}
	return nil
}

// buildCtx derives the request-scoped context for service calls.
func buildCtx(c tele.Context) context.Context {
	return helpers.BuildContext(c)
}
