package cli

import (
	"sync"
	"sync/atomic"

	"github.com/alexanderramin/focuspro/internal/tracker"
	tea "github.com/charmbracelet/bubbletea"
)

type (
	snapshotMsg tracker.Snapshot
	noticeMsg   tracker.Notice
	promptMsg   tracker.FinishPrompt
)

// presenterBridge forwards controller callbacks into the bubbletea event
// loop as messages. Callbacks arrive from timer goroutines and from
// command goroutines, never from Update, so a blocking send is safe.
// Messages produced before attach are dropped; the model reads the initial
// snapshot directly.
type presenterBridge struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func newPresenterBridge() *presenterBridge {
	return &presenterBridge{}
}

// attach routes messages to send, usually (*tea.Program).Send.
func (b *presenterBridge) attach(send func(tea.Msg)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.send = send
}

func (b *presenterBridge) dispatch(msg tea.Msg) {
	b.mu.Lock()
	send := b.send
	b.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

func (b *presenterBridge) Render(s tracker.Snapshot)           { b.dispatch(snapshotMsg(s)) }
func (b *presenterBridge) Notify(n tracker.Notice)             { b.dispatch(noticeMsg(n)) }
func (b *presenterBridge) PromptFinish(p tracker.FinishPrompt) { b.dispatch(promptMsg(p)) }

var _ tracker.Presenter = (*presenterBridge)(nil)

// language is the active interface language, shared between the view and
// the controller's timer goroutines.
type language struct {
	v atomic.Value
}

func newLanguage(lang string) *language {
	l := &language{}
	l.Set(lang)
	return l
}

func (l *language) Get() string  { return l.v.Load().(string) }
func (l *language) Set(s string) { l.v.Store(s) }
