package middleware

import tele "gopkg.in/telebot.v4"

// AdminOptions defines how admin-only checks should behave.
type AdminOptions struct {
	// IsAdmin reports allow-list membership for a Telegram user ID.
	IsAdmin  func(userID int64) bool
	OnReject tele.HandlerFunc
}

// AdminOnlyMiddleware ensures that only allow-listed users can invoke downstream handlers.
func AdminOnlyMiddleware(opts AdminOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return nil
			}
			if opts.IsAdmin != nil && !opts.IsAdmin(sender.ID) {
				if opts.OnReject != nil {
					return opts.OnReject(c)
				}
				return nil
			}
			return next(c)
		}
	}
}

// GateOptions configures the global maintenance gate.
type GateOptions struct {
	// Halted reports whether the service is in maintenance mode.
	Halted func() bool
	// IsAdmin reports allow-list membership; admins always pass the gate.
	IsAdmin func(userID int64) bool
	// OnHalted runs instead of the downstream handler while halted.
	OnHalted tele.HandlerFunc
}

// GateMiddleware rejects every non-admin interaction while the service is
// halted. It must run before any handler that reads or writes state.
func GateMiddleware(opts GateOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if opts.Halted == nil || !opts.Halted() {
				return next(c)
			}
			sender := c.Sender()
			if sender != nil && opts.IsAdmin != nil && opts.IsAdmin(sender.ID) {
				return next(c)
			}
			if cb := c.Callback(); cb != nil {
				_ = c.Respond(&tele.CallbackResponse{Text: "Service is down for maintenance"})
			}
			if opts.OnHalted != nil {
				return opts.OnHalted(c)
			}
			return nil
		}
	}
}
