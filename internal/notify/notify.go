// Package notify delivers transient toast notifications keyed by message
// identifiers.
package notify

import (
	"sync"

	"github.com/rs/zerolog"
)

// Level is the severity of a toast
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Toast is one notification. Key is a translation identifier; Params fill
// its placeholders.
type Toast struct {
	Level  Level
	Key    string
	Params map[string]any
}

// Notifier shows toasts to the user.
type Notifier interface {
	Notify(t Toast)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Toast)

func (f NotifierFunc) Notify(t Toast) { f(t) }

// LogNotifier writes toasts to a logger.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(t Toast) {
	ev := n.log.Info()
	if t.Level == LevelError {
		ev = n.log.Warn()
	}
	ev.Str("toast_level", string(t.Level)).Fields(t.Params).Msg(t.Key)
}

// Recorder keeps every toast it receives.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) Notify(t Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

// Toasts returns the toasts received so far.
func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}

// Keys returns the message keys received so far.
func (r *Recorder) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, len(r.toasts))
	for i, t := range r.toasts {
		keys[i] = t.Key
	}
	return keys
}
