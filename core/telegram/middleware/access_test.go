package middleware

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

// gateContext is the minimal tele.Context surface the gate touches.
type gateContext struct {
	tele.Context
	sender    *tele.User
	callback  *tele.Callback
	responded bool
}

func (c *gateContext) Sender() *tele.User       { return c.sender }
func (c *gateContext) Callback() *tele.Callback { return c.callback }
func (c *gateContext) Respond(resp ...*tele.CallbackResponse) error {
	c.responded = true
	return nil
}

func gateChain(opts GateOptions, handled *int) tele.HandlerFunc {
	return GateMiddleware(opts)(func(c tele.Context) error {
		*handled++
		return nil
	})
}

func TestGateMiddleware_HaltedBlocksNonAdmin(t *testing.T) {
	handled := 0
	notified := 0
	h := gateChain(GateOptions{
		Halted:  func() bool { return true },
		IsAdmin: func(id int64) bool { return id == 1 },
		OnHalted: func(c tele.Context) error {
			notified++
			return nil
		},
	}, &handled)

	c := &gateContext{sender: &tele.User{ID: 7}}
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if handled != 0 {
		t.Fatalf("downstream handler ran %d times while halted", handled)
	}
	if notified != 1 {
		t.Fatalf("OnHalted ran %d times, want 1", notified)
	}
}

func TestGateMiddleware_HaltedRespondsToCallback(t *testing.T) {
	handled := 0
	h := gateChain(GateOptions{
		Halted:  func() bool { return true },
		IsAdmin: func(int64) bool { return false },
	}, &handled)

	c := &gateContext{
		sender:   &tele.User{ID: 7},
		callback: &tele.Callback{ID: "cb1"},
	}
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if handled != 0 {
		t.Fatal("downstream handler ran for a halted callback")
	}
	if !c.responded {
		t.Fatal("callback was not answered while halted")
	}
}

func TestGateMiddleware_HaltedPassesAdmin(t *testing.T) {
	handled := 0
	h := gateChain(GateOptions{
		Halted:  func() bool { return true },
		IsAdmin: func(id int64) bool { return id == 1 },
	}, &handled)

	c := &gateContext{sender: &tele.User{ID: 1}}
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if handled != 1 {
		t.Fatalf("admin handled %d times while halted, want 1", handled)
	}
}

func TestGateMiddleware_RunningPassesEveryone(t *testing.T) {
	handled := 0
	h := gateChain(GateOptions{
		Halted:  func() bool { return false },
		IsAdmin: func(int64) bool { return false },
	}, &handled)

	c := &gateContext{sender: &tele.User{ID: 7}}
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if handled != 1 {
		t.Fatalf("handled %d times while running, want 1", handled)
	}
}
