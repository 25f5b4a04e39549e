package bot

import (
	"errors"
	"fmt"
	"strings"

	"lecturebot/core/logger"
	"lecturebot/core/telegram/callbacks"
	"lecturebot/core/telegram/format"
	"lecturebot/core/telegram/helpers"
	"lecturebot/internal/model"
	"lecturebot/internal/service/users"

	tele "gopkg.in/telebot.v4"
)

const welcomeText = `🎓 Welcome to the University Lecture Registration Bot!

I help connect senior students who want to teach with freshmen who want to learn.

Choose an option below:`

const helpText = `ℹ️ *How to use this bot:*

*For Students:*
• Browse available lectures by senior students
• Register for lectures you're interested in
• Get notifications about new lectures

*For Lecturers (Senior Students):*
• Propose lectures on subjects you're good at
• Get your student status verified
• Connect with interested freshmen

*Need help?* Contact your department administrator.`

const maintenanceText = "🔧 Bot is currently under maintenance. Please try again later."

// failText surfaces the cause of a failed operation to the requester,
// sanitized and truncated so it stays a one-line notice.
func failText(prefix string, err error) string {
	return prefix + ": " + format.Escape(logger.SanitizeLimit(err.Error(), 128))
}

func (a *App) handleStart(c tele.Context) error {
	ctx := buildCtx(c)
	sender := c.Sender()

	if _, err := a.users.EnsureUser(ctx, profileOf(sender)); err != nil {
		return helpers.SendMD(c, failText("❌ Something went wrong", err), backHomeMenu())
	}

	a.metrics.RecordUpdate("command")

	if a.gate.IsAdmin(sender.ID) {
		return helpers.SendMD(c, "👨‍💼 ADMIN PANEL\n\n"+welcomeText, adminMenu(a.gate.IsHalted()))
	}
	return helpers.SendMD(c, welcomeText, mainMenu())
}

func (a *App) handleHelpCommand(c tele.Context) error {
	return helpers.SendMD(c, helpText, backHomeMenu())
}

func (a *App) handleHelp(c tele.Context) error {
	return helpers.EditOrSendMD(c, helpText, backHomeMenu())
}

func (a *App) handleHome(c tele.Context) error {
	sender := c.Sender()
	if a.gate.IsAdmin(sender.ID) {
		return helpers.EditOrSendMD(c, "👨‍💼 ADMIN PANEL\n\nWelcome back!", adminMenu(a.gate.IsHalted()))
	}
	return helpers.EditOrSendMD(c, "🎓 Welcome back!\n\nChoose an option:", mainMenu())
}

func (a *App) handleBack(c tele.Context) error {
	return a.handleHome(c)
}

func (a *App) handleBrowse(c tele.Context) error {
	ctx := buildCtx(c)
	list, err := a.lectures.Active(ctx)
	if err != nil {
		return helpers.EditOrSendMD(c, failText("❌ Error loading lectures", err), backHomeMenu())
	}
	if len(list) == 0 {
		return helpers.EditOrSendMD(c,
			"📚 No available lectures at the moment.\n\nCheck back later or propose a lecture yourself!",
			backHomeMenu())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📚 Available Lectures (%d):\n\n", len(list))
	for i, l := range list {
		fmt.Fprintf(&b, "*%d. %s*\n", i+1, format.Escape(l.Title))
		fmt.Fprintf(&b, "   👤 By: %s\n", format.Escape(l.LecturerDisplayName()))
		fmt.Fprintf(&b, "   📖 Subject: %s\n", format.Escape(l.Subject))
		fmt.Fprintf(&b, "   ⏰ Duration: %s\n\n", format.Escape(l.Duration))
	}
	b.WriteString("Tap a lecture for details and registration.")

	return helpers.EditOrSendMD(c, b.String(), lectureListMenu(list, 5))
}

func (a *App) handleLectureDetails(c tele.Context) error {
	ctx := buildCtx(c)
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return helpers.EditOrSendMD(c, "❌ Lecture not found.", backHomeMenu())
	}
	l, err := a.lectures.Get(ctx, id)
	if model.IsNotFound(err) {
		return helpers.EditOrSendMD(c, "❌ Lecture not found.", backHomeMenu())
	}
	if err != nil {
		return helpers.EditOrSendMD(c, failText("❌ Error loading lecture details", err), backHomeMenu())
	}

	text := fmt.Sprintf(
		"📚 *%s*\n\n👤 *Lecturer:* %s\n📖 *Subject:* %s\n⏰ *Duration:* %s\n🎓 *Prerequisites:* %s\n\n📝 *Description:*\n%s\n\n🕒 *Proposed Times:* %s",
		format.Escape(l.Title), format.Escape(l.LecturerDisplayName()), format.Escape(l.Subject),
		format.Escape(l.Duration), format.Escape(l.Prerequisites), format.Escape(l.Description),
		format.Escape(l.ProposedTimes),
	)
	return helpers.EditOrSendMD(c, text, lectureDetailsMenu(l))
}

func (a *App) handleRegister(c tele.Context) error {
	ctx := buildCtx(c)
	sender := c.Sender()

	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return helpers.EditOrSendMD(c, "❌ Lecture not found.", backHomeMenu())
	}

	student, err := a.users.EnsureUser(ctx, profileOf(sender))
	if err != nil {
		return helpers.EditOrSendMD(c, failText("❌ Error registering for lecture", err), backHomeMenu())
	}

	_, err = a.regs.Register(ctx, id, student)
	switch {
	case err == nil:
		a.metrics.RecordRegistration("ok")
		return helpers.EditOrSendMD(c,
			"✅ Successfully registered for the lecture!\n\nThe lecturer has been notified and will contact you with scheduling details.",
			backHomeMenu())
	case model.IsDuplicate(err):
		a.metrics.RecordRegistration("duplicate")
		return helpers.EditOrSendMD(c, "ℹ️ You're already registered for this lecture!", backHomeMenu())
	case model.IsNotFound(err):
		a.metrics.RecordRegistration("error")
		return helpers.EditOrSendMD(c, "❌ Lecture not found.", backHomeMenu())
	case errors.Is(err, model.ErrLectureClosed):
		a.metrics.RecordRegistration("closed")
		return helpers.EditOrSendMD(c, "❌ This lecture is not open for registration.", backHomeMenu())
	default:
		a.metrics.RecordRegistration("error")
		return helpers.EditOrSendMD(c, failText("❌ Error registering for lecture", err), backHomeMenu())
	}
}

func (a *App) handleMyRegistrations(c tele.Context) error {
	ctx := buildCtx(c)
	rows, err := a.regs.ForStudent(ctx, c.Sender().ID)
	if err != nil {
		return helpers.EditOrSendMD(c, failText("❌ Error loading registrations", err), backHomeMenu())
	}
	if len(rows) == 0 {
		return helpers.EditOrSendMD(c,
			"📋 Your registered lectures will appear here.\n\nNo registrations yet.",
			backHomeMenu())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Your Registrations (%d):\n\n", len(rows))
	for i, r := range rows {
		fmt.Fprintf(&b, "%d. *%s*\n   🗓 Registered: %s\n\n",
			i+1, format.Escape(r.LectureTitle), r.RegisteredAt.Format("2006-01-02"))
	}
	return helpers.EditOrSendMD(c, b.String(), backHomeMenu())
}

func (a *App) handleUnknownText(c tele.Context) error {
	return helpers.SendMD(c, "🤔 I didn't understand that.\n\nUse the menu below or /start.", mainMenu())
}

func (a *App) handleUnexpectedPhoto(c tele.Context) error {
	return helpers.SendText(c, "ℹ️ I wasn't expecting a photo. Use 💡 Propose Lecture to start verification.")
}

// handleHalted answers non-admin traffic while the service is halted.
func (a *App) handleHalted(c tele.Context) error {
	if c.Callback() != nil {
		return nil
	}
	return helpers.SendMD(c, maintenanceText, backHomeMenu())
}

func profileOf(sender *tele.User) (p users.Profile) {
	if sender == nil {
		return p
	}
	p.TelegramID = sender.ID
	p.Username = sender.Username
	p.FirstName = sender.FirstName
	p.LastName = sender.LastName
	return p
}
