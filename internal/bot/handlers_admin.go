package bot

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"lecturebot/core/telegram/callbacks"
	"lecturebot/core/telegram/format"
	"lecturebot/core/telegram/helpers"
	"lecturebot/core/telegram/keyboard"
	"lecturebot/internal/model"

	tele "gopkg.in/telebot.v4"
)

func (a *App) handleAdminCommand(c tele.Context) error {
	return helpers.SendMD(c, "👨‍💼 ADMIN PANEL", adminMenu(a.gate.IsHalted()))
}

func (a *App) handleAdminPending(c tele.Context) error {
	ctx := buildCtx(c)
	pending, err := a.lectures.Pending(ctx)
	if err != nil {
		return helpers.EditOrSendMD(c, failText("❌ Error loading pending lectures", err), backHomeMenu())
	}
	if len(pending) == 0 {
		return helpers.EditOrSendMD(c, "✅ No pending lectures for review.", adminMenu(a.gate.IsHalted()))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Pending Lectures (%d):\n\n", len(pending))
	for i, l := range pending {
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, format.Escape(l.Title))
		fmt.Fprintf(&b, "   👤 By: %s\n", format.Escape(l.LecturerDisplayName()))
		fmt.Fprintf(&b, "   📚 Subject: %s\n\n", format.Escape(l.Subject))
	}

	return helpers.EditOrSendMD(c, b.String(), pendingReviewMenu(pending, 5))
}

// pendingReviewMenu renders one approve/reject row per pending lecture.
func pendingReviewMenu(pending []model.Lecture, limit int) *tele.ReplyMarkup {
	rows := make([][]keyboard.InlineBtn, 0, limit+1)
	for i, l := range pending {
		if i >= limit {
			break
		}
		id := strconv.FormatInt(l.ID, 10)
		rows = append(rows, []keyboard.InlineBtn{
			{Text: fmt.Sprintf("✅ #%d", l.ID), Unique: cbApprove, Data: id},
			{Text: fmt.Sprintf("❌ #%d", l.ID), Unique: cbReject, Data: id},
		})
	}
	rows = append(rows, backHomeRow())
	return keyboard.InlineButtonsRows(rows...)
}

func (a *App) handleAdminControls(c tele.Context) error {
	status := "🟢 RUNNING"
	if a.gate.IsHalted() {
		status = "🟥 STOPPED"
	}
	text := fmt.Sprintf("⚙️ BOT CONTROLS\n\nCurrent Status: %s\n\nEmergency controls:", status)
	return helpers.EditOrSendMD(c, text, controlsMenu(a.gate.IsHalted()))
}

func (a *App) handleAdminExport(c tele.Context) error {
	return helpers.EditOrSendMD(c, "📊 DATA EXPORT\n\nExport bot data:", exportMenu())
}

func (a *App) handleApprove(c tele.Context) error {
	ctx := buildCtx(c)
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return helpers.EditOrSendMD(c, "❌ Lecture not found.", backHomeMenu())
	}

	l, err := a.lectures.Approve(ctx, c.Sender().ID, id)
	if err != nil {
		return helpers.EditOrSendMD(c, failText("❌ Error approving lecture", err), backHomeMenu())
	}
	a.metrics.RecordDecision(model.LectureStatusActive)

	a.notifier.SendTo(ctx, l.LecturerID, fmt.Sprintf(
		"🎉 Your lecture \"%s\" has been approved!\n\nStudents can now browse and register for it.",
		l.Title))

	return helpers.EditOrSendMD(c, "✅ Lecture approved successfully!", backHomeMenu())
}

func (a *App) handleReject(c tele.Context) error {
	ctx := buildCtx(c)
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return helpers.EditOrSendMD(c, "❌ Lecture not found.", backHomeMenu())
	}

	if _, err := a.lectures.Reject(ctx, c.Sender().ID, id); err != nil {
		return helpers.EditOrSendMD(c, failText("❌ Error rejecting lecture", err), backHomeMenu())
	}
	a.metrics.RecordDecision(model.LectureStatusRejected)

	return helpers.EditOrSendMD(c, "❌ Lecture rejected.", backHomeMenu())
}

func (a *App) handleVerifyApprove(c tele.Context) error {
	ctx := buildCtx(c)
	userID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return helpers.EditOrSendMD(c, "❌ User not found.", backHomeMenu())
	}

	if err := a.users.ApproveVerification(ctx, c.Sender().ID, userID); err != nil {
		return helpers.EditOrSendMD(c, failText("❌ Error verifying user", err), backHomeMenu())
	}

	a.notifier.SendTo(ctx, userID,
		"✅ Your student status has been verified!\n\nYou can now propose lectures.")
	return helpers.EditOrSendMD(c, "✅ User verified.", backHomeMenu())
}

func (a *App) handleVerifyDecline(c tele.Context) error {
	ctx := buildCtx(c)
	userID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return helpers.EditOrSendMD(c, "❌ User not found.", backHomeMenu())
	}

	if err := a.users.DeclineVerification(ctx, c.Sender().ID, userID); err != nil {
		return helpers.EditOrSendMD(c, failText("❌ Error declining verification", err), backHomeMenu())
	}

	a.notifier.SendTo(ctx, userID,
		"❌ Your verification request was declined.\n\nPlease contact your department administrator.")
	return helpers.EditOrSendMD(c, "❌ Verification declined.", backHomeMenu())
}

func (a *App) handleHaltConfirm(c tele.Context) error {
	return helpers.EditOrSendMD(c,
		"🛑 CONFIRM EMERGENCY SHUTDOWN\n\nThis will:\n• Stop the bot for all users\n• Show maintenance message\n• Only allow admin access\n\nAre you sure?",
		confirmHaltMenu())
}

func (a *App) handleHalt(c tele.Context) error {
	ctx := buildCtx(c)
	if err := a.gate.SetHalted(ctx, true, c.Sender().ID); err != nil {
		return helpers.EditOrSendMD(c, failText("❌ Error stopping the bot", err), backHomeMenu())
	}
	a.metrics.SetHalted(true)
	return helpers.EditOrSendMD(c,
		"✅ BOT STOPPED SUCCESSFULLY\n\nAll user functions have been disabled. Only admins can access the bot now.",
		adminMenu(true))
}

func (a *App) handleResume(c tele.Context) error {
	ctx := buildCtx(c)
	if err := a.gate.SetHalted(ctx, false, c.Sender().ID); err != nil {
		return helpers.EditOrSendMD(c, failText("❌ Error restarting the bot", err), backHomeMenu())
	}
	a.metrics.SetHalted(false)
	return helpers.EditOrSendMD(c,
		"✅ BOT RESTARTED SUCCESSFULLY\n\nAll functions are now active for users.",
		adminMenu(false))
}

func (a *App) handleExportXLSX(c tele.Context) error {
	ctx := buildCtx(c)
	buf, name, err := a.exporter.Workbook(ctx, c.Sender().ID)
	if err != nil {
		return helpers.SendMD(c, failText("❌ Error generating export", err), backHomeMenu())
	}
	a.metrics.RecordExport("xlsx")

	doc := &tele.Document{
		File:     tele.FromReader(buf),
		FileName: name,
		Caption:  "📊 Registrations Export",
	}
	return c.Send(doc)
}

func (a *App) handleExportCSV(c tele.Context) error {
	ctx := buildCtx(c)
	data, name, err := a.exporter.CSV(ctx, c.Sender().ID)
	if err != nil {
		return helpers.SendMD(c, failText("❌ Error generating export", err), backHomeMenu())
	}
	a.metrics.RecordExport("csv")

	doc := &tele.Document{
		File:     tele.FromReader(bytes.NewReader(data)),
		FileName: name,
		Caption:  "📊 Registrations Export",
	}
	return c.Send(doc)
}
