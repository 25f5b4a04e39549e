package bot

import (
	"fmt"
	"strconv"

	"lecturebot/core/telegram/keyboard"
	"lecturebot/internal/model"

	tele "gopkg.in/telebot.v4"
)

// Callback keys. Payloads carry entity IDs after the separator.
const (
	cbBrowse   = "browse_lectures"
	cbDetails  = "lecture_details"
	cbRegister = "register_lecture"
	cbMyRegs   = "my_registrations"
	cbPropose  = "propose_lecture"
	cbHelp     = "help"
	cbHome     = "home"
	cbBack     = "back"

	cbAdminPending  = "admin_pending"
	cbAdminControls = "admin_controls"
	cbAdminExport   = "admin_export"
	cbApprove       = "approve_lecture"
	cbReject        = "reject_lecture"
	cbVerifyOK      = "verify_approve"
	cbVerifyNo      = "verify_decline"
	cbHaltConfirm   = "halt_confirm"
	cbHalt          = "halt_service"
	cbResume        = "resume_service"
	cbExportXLSX    = "export_registrations"
	cbExportCSV     = "export_registrations_csv"
)

func backHomeRow() []keyboard.InlineBtn {
	return []keyboard.InlineBtn{
		{Text: "🔄 Back", Unique: cbBack},
		{Text: "🏠 Home", Unique: cbHome},
	}
}

func mainMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: "📚 Browse Lectures", Unique: cbBrowse}},
		[]keyboard.InlineBtn{{Text: "💡 Propose Lecture", Unique: cbPropose}},
		[]keyboard.InlineBtn{{Text: "📋 My Registrations", Unique: cbMyRegs}},
		[]keyboard.InlineBtn{{Text: "ℹ️ Help", Unique: cbHelp}},
		backHomeRow(),
	)
}

func adminMenu(halted bool) *tele.ReplyMarkup {
	status := "🟢 BOT ACTIVE"
	if halted {
		status = "🟥 BOT STOPPED"
	}
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: status, Unique: cbAdminControls}},
		[]keyboard.InlineBtn{{Text: "📋 Pending Reviews", Unique: cbAdminPending}},
		[]keyboard.InlineBtn{
			{Text: "📊 Export Data", Unique: cbAdminExport},
			{Text: "⚙️ Bot Controls", Unique: cbAdminControls},
		},
		backHomeRow(),
	)
}

func controlsMenu(halted bool) *tele.ReplyMarkup {
	var action keyboard.InlineBtn
	if halted {
		action = keyboard.InlineBtn{Text: "🟢 RESTART BOT", Unique: cbResume}
	} else {
		action = keyboard.InlineBtn{Text: "🟥 EMERGENCY STOP", Unique: cbHaltConfirm}
	}
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{action},
		backHomeRow(),
	)
}

func confirmHaltMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: "🟥 CONFIRM SHUTDOWN", Unique: cbHalt}},
		[]keyboard.InlineBtn{{Text: "🟪 Cancel", Unique: cbAdminControls}},
	)
}

func exportMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: "📋 Export Registrations (xlsx)", Unique: cbExportXLSX}},
		[]keyboard.InlineBtn{{Text: "📄 Export Registrations (csv)", Unique: cbExportCSV}},
		backHomeRow(),
	)
}

func approvalButtons(lectureID int64) *tele.ReplyMarkup {
	id := strconv.FormatInt(lectureID, 10)
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "✅ Approve", Unique: cbApprove, Data: id},
			{Text: "❌ Reject", Unique: cbReject, Data: id},
		},
	)
}

func verificationButtons(userID int64) *tele.ReplyMarkup {
	id := strconv.FormatInt(userID, 10)
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "✅ Approve", Unique: cbVerifyOK, Data: id},
			{Text: "❌ Decline", Unique: cbVerifyNo, Data: id},
		},
	)
}

func backHomeMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(backHomeRow())
}

func lectureListMenu(lectures []model.Lecture, limit int) *tele.ReplyMarkup {
	rows := make([][]keyboard.InlineBtn, 0, limit+1)
	for i, l := range lectures {
		if i >= limit {
			break
		}
		rows = append(rows, []keyboard.InlineBtn{{
			Text:   fmt.Sprintf("📖 %s", truncate(l.Title, 24)),
			Unique: cbDetails,
			Data:   strconv.FormatInt(l.ID, 10),
		}})
	}
	rows = append(rows, backHomeRow())
	return keyboard.InlineButtonsRows(rows...)
}

func lectureDetailsMenu(l *model.Lecture) *tele.ReplyMarkup {
	rows := [][]keyboard.InlineBtn{
		{{Text: "✅ Register for this Lecture", Unique: cbRegister, Data: strconv.FormatInt(l.ID, 10)}},
	}
	rows = append(rows, []keyboard.InlineBtn{
		{Text: "🔄 Back to List", Unique: cbBrowse},
		{Text: "🏠 Home", Unique: cbHome},
	})
	markup := keyboard.InlineButtonsRows(rows...)
	if l.LecturerUsername != "" {
		contact := tele.InlineButton{
			Text: "💬 Contact Lecturer",
			URL:  "https://t.me/" + l.LecturerUsername,
		}
		first := markup.InlineKeyboard[:1]
		rest := markup.InlineKeyboard[1:]
		kb := make([][]tele.InlineButton, 0, len(markup.InlineKeyboard)+1)
		kb = append(kb, first...)
		kb = append(kb, []tele.InlineButton{contact})
		kb = append(kb, rest...)
		markup.InlineKeyboard = kb
	}
	return markup
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
