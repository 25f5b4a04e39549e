// Package notify delivers proactive messages: admin fanout for review
// requests and direct notices to students and lecturers. All sends go
// through the asynchronous dispatcher; a delivery failure to one recipient
// never blocks or aborts delivery to the rest.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"lecturebot/core/logger"
	"lecturebot/core/telegram/sender"
	"lecturebot/internal/model"

	tele "gopkg.in/telebot.v4"
)

// Sender is the outbound surface of the Telegram bot.
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Notifier fans messages out to the admin allow-list and to individual users.
type Notifier struct {
	bot    Sender
	disp   *sender.Dispatcher
	admins []int64
	// onFailure is an optional hook for the fanout failure counter.
	onFailure func()
}

func New(admins []int64, onFailure func()) *Notifier {
	return &Notifier{admins: admins, onFailure: onFailure}
}

// Bind attaches the live bot and dispatcher. Called from the run lifecycle
// before the first update is processed.
func (n *Notifier) Bind(bot Sender, disp *sender.Dispatcher) {
	n.bot = bot
	n.disp = disp
}

// SendTo delivers one message to one chat through the dispatcher. When the
// queue is saturated the send happens inline so the message is not dropped.
func (n *Notifier) SendTo(ctx context.Context, chatID int64, what interface{}, opts ...interface{}) {
	if n.bot == nil {
		return
	}
	run := func() error {
		_, err := n.bot.Send(tele.ChatID(chatID), what, opts...)
		return err
	}
	if n.disp == nil {
		n.finish(ctx, chatID, run())
		return
	}
	if err := n.disp.Enqueue(ctx, "notify.send", "sendMessage", run); err != nil {
		if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
			logger.Warn(ctx, "notify", "queue.fallback",
				slog.Int64("chat_id", chatID),
				slog.String("err", err.Error()),
			)
			n.finish(ctx, chatID, run())
			return
		}
		n.finish(ctx, chatID, err)
	}
}

func (n *Notifier) finish(ctx context.Context, chatID int64, err error) {
	if err == nil {
		return
	}
	if n.onFailure != nil {
		n.onFailure()
	}
	logger.Error(ctx, "notify", "send.fail",
		slog.Int64("chat_id", chatID),
		slog.String("err", err.Error()),
	)
}

// Broadcast delivers the same message to every allow-listed admin. Each
// recipient is an independent dispatcher job.
func (n *Notifier) Broadcast(ctx context.Context, what interface{}, opts ...interface{}) {
	for _, adminID := range n.admins {
		n.SendTo(ctx, adminID, what, opts...)
	}
	logger.Debug(ctx, "notify", "broadcast",
		slog.Int("recipients", len(n.admins)),
	)
}

// NotifyLecturer tells a lecturer about a new attendee. Implements the
// registrations service notifier.
func (n *Notifier) NotifyLecturer(ctx context.Context, lecturerID int64, lecture *model.Lecture, student *model.User) {
	text := fmt.Sprintf(
		"🎉 New registration!\n\n%s signed up for your lecture \"%s\".",
		student.DisplayName(), lecture.Title,
	)
	n.SendTo(ctx, lecturerID, text)
}
