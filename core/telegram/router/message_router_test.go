package router

import (
	"testing"

	tg "lecturebot/core/telegram"
	"lecturebot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

type stubFSM struct {
	inProgress bool
	handled    int
}

func (s *stubFSM) InProgress(userID int64) bool { return s.inProgress }

func (s *stubFSM) ManagerHandler(c tele.Context) error {
	s.handled++
	return nil
}

// textContext is the minimal tele.Context surface the text route touches.
type textContext struct {
	tele.Context
	text  string
	store map[string]interface{}
}

func newTextContext(text string) *textContext {
	return &textContext{text: text, store: make(map[string]interface{})}
}

func (c *textContext) Text() string             { return c.text }
func (c *textContext) Sender() *tele.User       { return &tele.User{ID: 7} }
func (c *textContext) Chat() *tele.Chat         { return &tele.Chat{ID: 7} }
func (c *textContext) Update() tele.Update      { return tele.Update{ID: 1} }
func (c *textContext) Callback() *tele.Callback { return nil }
func (c *textContext) Message() *tele.Message   { return nil }

func (c *textContext) Get(key string) interface{} { return c.store[key] }

func (c *textContext) Set(key string, v interface{}) { c.store[key] = v }

func onTextHandler(t *testing.T, routes []tg.Route) tele.HandlerFunc {
	t.Helper()
	for _, r := range routes {
		if r.Endpoint == tele.OnText {
			return r.Handler
		}
	}
	t.Fatal("no OnText route")
	return nil
}

func TestTextRoutes_UnknownCommandSkipsFSM(t *testing.T) {
	fsm := &stubFSM{inProgress: true}
	reg := tg.NewRegistry()

	h := onTextHandler(t, TextRoutes(fsm, reg, TextOptions{}))
	if err := h(newTextContext("/notacommand")); err != nil {
		t.Fatalf("handler: %v", err)
	}

	if fsm.handled != 0 {
		t.Fatal("command-prefixed message must not be dispatched to the FSM")
	}
}

func TestTextRoutes_UnknownCommandUsesTextFallback(t *testing.T) {
	fsm := &stubFSM{inProgress: true}
	reg := tg.NewRegistry()
	fallbacks := 0
	reg.SetTextFallback(func(c tele.Context) error {
		fallbacks++
		return nil
	})

	h := onTextHandler(t, TextRoutes(fsm, reg, TextOptions{}))
	if err := h(newTextContext("/notacommand")); err != nil {
		t.Fatalf("handler: %v", err)
	}

	if fallbacks != 1 {
		t.Fatalf("fallbacks = %d, expected 1", fallbacks)
	}
	if fsm.handled != 0 {
		t.Fatal("fallback dispatch must bypass the FSM")
	}
}

func TestTextRoutes_CommandWithArgumentsDispatches(t *testing.T) {
	fsm := &stubFSM{inProgress: true}
	reg := tg.NewRegistry()
	calls := 0
	reg.RegisterCommand("/cancel", commands.Command{
		Handler: func(c tele.Context) error {
			calls++
			return nil
		},
		Description: "Abort the current conversation",
	})

	h := onTextHandler(t, TextRoutes(fsm, reg, TextOptions{}))
	for _, text := range []string{"/cancel", "/cancel now", "/cancel@SomeBot"} {
		if err := h(newTextContext(text)); err != nil {
			t.Fatalf("handler(%q): %v", text, err)
		}
	}

	if calls != 3 {
		t.Fatalf("command calls = %d, expected 3", calls)
	}
	if fsm.handled != 0 {
		t.Fatal("command dispatch must bypass the FSM")
	}
}

func TestTextRoutes_PlainTextReachesFSM(t *testing.T) {
	fsm := &stubFSM{inProgress: true}
	reg := tg.NewRegistry()

	h := onTextHandler(t, TextRoutes(fsm, reg, TextOptions{}))
	if err := h(newTextContext("Introduction to Go")); err != nil {
		t.Fatalf("handler: %v", err)
	}

	if fsm.handled != 1 {
		t.Fatalf("fsm.handled = %d, expected 1", fsm.handled)
	}
}
