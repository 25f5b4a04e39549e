package bot

import (
	"fmt"
	"strings"

	"lecturebot/core/telegram/format"
	"lecturebot/core/telegram/helpers"
	"lecturebot/core/telegram/state"
	"lecturebot/internal/service/lectures"

	tele "gopkg.in/telebot.v4"
)

// Conversation states. A user is in at most one at a time; idle sessions are
// evicted by the manager's TTL sweeper.
const (
	stateAwaitPhoto state.State = "verify_await_photo"

	stateProposalTitle         state.State = "proposal_title"
	stateProposalDescription   state.State = "proposal_description"
	stateProposalSubject       state.State = "proposal_subject"
	stateProposalPrerequisites state.State = "proposal_prerequisites"
	stateProposalDuration      state.State = "proposal_duration"
)

// Temp data keys for in-flight proposals.
const (
	tmpTitle         = "proposal_title"
	tmpDescription   = "proposal_description"
	tmpSubject       = "proposal_subject"
	tmpPrerequisites = "proposal_prerequisites"
)

func (a *App) registerWizard() {
	state.RegisterHandler(stateAwaitPhoto, a.wizardVerificationPhoto)
	state.RegisterHandler(stateProposalTitle, a.wizardTitle)
	state.RegisterHandler(stateProposalDescription, a.wizardDescription)
	state.RegisterHandler(stateProposalSubject, a.wizardSubject)
	state.RegisterHandler(stateProposalPrerequisites, a.wizardPrerequisites)
	state.RegisterHandler(stateProposalDuration, a.wizardDuration)
}

// handlePropose starts the proposal wizard, detouring into verification for
// users without a confirmed student status.
func (a *App) handlePropose(c tele.Context) error {
	ctx := buildCtx(c)
	sender := c.Sender()

	u, err := a.users.EnsureUser(ctx, profileOf(sender))
	if err != nil {
		return helpers.EditOrSendMD(c, failText("❌ Something went wrong", err), backHomeMenu())
	}

	if !u.IsVerified {
		a.sessions.SetState(sender.ID, stateAwaitPhoto)
		return helpers.EditOrSendMD(c,
			"📋 To propose a lecture, we need to verify your student status first.\n\nPlease send a clear photo of your Student ID card.\n\nType /cancel to abort.",
			backHomeMenu())
	}

	a.sessions.SetState(sender.ID, stateProposalTitle)
	return helpers.SendMD(c,
		"🎯 Let's create your lecture proposal!\n\n*Step 1 of 5:* What is the title of your lecture?\n\nExample: \"Introduction to Python Programming\"\n\nType /cancel to abort.",
		nil)
}

// handleCancel aborts any conversation. It is reachable mid-wizard because
// commands are dispatched before the FSM.
func (a *App) handleCancel(c tele.Context) error {
	userID := c.Sender().ID
	if !a.sessions.InProgress(userID) {
		return helpers.SendText(c, "Nothing to cancel.")
	}
	a.sessions.Clear(userID)
	return helpers.SendMD(c, "❌ Canceled. No data was saved.", mainMenu())
}

func (a *App) wizardVerificationPhoto(c tele.Context) error {
	ctx := buildCtx(c)
	sender := c.Sender()

	msg := c.Message()
	if msg == nil || msg.Photo == nil {
		return helpers.SendText(c, "Please send a photo of your Student ID card, or type /cancel to abort.")
	}

	if err := a.users.SubmitVerificationPhoto(ctx, sender.ID, msg.Photo.FileID); err != nil {
		return helpers.SendMD(c, failText("❌ Could not store your photo", err), backHomeMenu())
	}

	caption := fmt.Sprintf("🆕 Verification Request\n\nFrom: %s\nUsername: @%s\nID: %d",
		sender.FirstName, sender.Username, sender.ID)
	photo := &tele.Photo{File: tele.File{FileID: msg.Photo.FileID}, Caption: caption}
	a.notifier.Broadcast(ctx, photo, verificationButtons(sender.ID))

	a.sessions.Clear(sender.ID)
	return helpers.SendMD(c,
		"✅ Your student ID photo has been sent for verification. You'll be notified once approved.",
		mainMenu())
}

func (a *App) wizardTitle(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())
	if text == "" {
		return helpers.SendText(c, "Please send the lecture title as text, or type /cancel to abort.")
	}
	a.sessions.SetTemp(userID, tmpTitle, text)
	a.sessions.SetState(userID, stateProposalDescription)
	return helpers.SendMD(c,
		"📝 *Step 2 of 5:* Please provide a detailed description of your lecture.\n\nWhat will students learn? What topics will you cover?",
		nil)
}

func (a *App) wizardDescription(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())
	if text == "" {
		return helpers.SendText(c, "Please send a description as text, or type /cancel to abort.")
	}
	a.sessions.SetTemp(userID, tmpDescription, text)
	a.sessions.SetState(userID, stateProposalSubject)
	return helpers.SendMD(c,
		"📚 *Step 3 of 5:* What subject category does this lecture belong to?\n\nExamples: \"Programming\", \"Mathematics\", \"Economics\", \"Physics\"",
		nil)
}

func (a *App) wizardSubject(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())
	if text == "" {
		return helpers.SendText(c, "Please send a subject as text, or type /cancel to abort.")
	}
	a.sessions.SetTemp(userID, tmpSubject, text)
	a.sessions.SetState(userID, stateProposalPrerequisites)
	return helpers.SendMD(c,
		"🎓 *Step 4 of 5:* What prerequisites should students have?\n\nExamples: \"Basic math knowledge\", \"No experience needed\", \"Understanding of variables\"",
		nil)
}

func (a *App) wizardPrerequisites(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())
	if text == "" {
		return helpers.SendText(c, "Please send the prerequisites as text, or type /cancel to abort.")
	}
	a.sessions.SetTemp(userID, tmpPrerequisites, text)
	a.sessions.SetState(userID, stateProposalDuration)
	return helpers.SendMD(c,
		"⏰ *Step 5 of 5:* How long will the lecture take?\n\nExamples: \"2 hours\", \"1.5 hours with break\", \"3 sessions of 1 hour each\"",
		nil)
}

func (a *App) wizardDuration(c tele.Context) error {
	ctx := buildCtx(c)
	sender := c.Sender()
	userID := sender.ID

	duration := strings.TrimSpace(c.Text())
	if duration == "" {
		return helpers.SendText(c, "Please send the duration as text, or type /cancel to abort.")
	}

	title, _ := a.sessions.GetTempString(userID, tmpTitle)
	description, _ := a.sessions.GetTempString(userID, tmpDescription)
	subject, _ := a.sessions.GetTempString(userID, tmpSubject)
	prerequisites, _ := a.sessions.GetTempString(userID, tmpPrerequisites)
	a.sessions.Clear(userID)

	l, err := a.lectures.Submit(ctx, lectures.Proposal{
		LecturerID:    userID,
		Title:         title,
		Description:   description,
		Subject:       subject,
		Prerequisites: prerequisites,
		Duration:      duration,
	})
	if err != nil {
		return helpers.SendMD(c, failText("❌ Error submitting lecture proposal", err), mainMenu())
	}
	a.metrics.RecordProposal()

	review := fmt.Sprintf(
		"🆕 NEW LECTURE PROPOSAL\n\n📚 *Title:* %s\n👤 *Lecturer:* %s (@%s)\n📖 *Subject:* %s\n⏰ *Duration:* %s\n\n📝 *Description:* %s\n\n🎓 *Prerequisites:* %s",
		format.Escape(l.Title), format.Escape(sender.FirstName), format.Escape(sender.Username),
		format.Escape(l.Subject), format.Escape(l.Duration),
		format.Escape(l.Description), format.Escape(l.Prerequisites),
	)
	a.notifier.Broadcast(ctx, review,
		approvalButtons(l.ID),
		&tele.SendOptions{ParseMode: tele.ModeMarkdown})

	confirm := fmt.Sprintf(
		"✅ *Lecture Proposal Submitted!*\n\n*Title:* %s\n*Subject:* %s\n*Duration:* %s\n\nYour lecture is now under admin review. You'll be notified once it's approved and visible to students.",
		format.Escape(l.Title), format.Escape(l.Subject), format.Escape(l.Duration),
	)
	return helpers.SendMD(c, confirm, mainMenu())
}
