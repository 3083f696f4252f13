package notify

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLogNotifier(t *testing.T) {
	buf := &bytes.Buffer{}
	n := NewLogNotifier(zerolog.New(buf))

	n.Notify(Toast{Level: LevelError, Key: "errors.server", Params: map[string]any{"status": 503}})

	out := buf.String()
	assert.Contains(t, out, `"message":"errors.server"`)
	assert.Contains(t, out, `"status":503`)
	assert.Contains(t, out, `"level":"warn"`)
}

func TestRecorder(t *testing.T) {
	var r Recorder
	var n Notifier = &r

	n.Notify(Toast{Level: LevelSuccess, Key: "toast.transaction.created"})
	n.Notify(Toast{Level: LevelError, Key: "errors.network"})

	assert.Equal(t, []string{"toast.transaction.created", "errors.network"}, r.Keys())
	assert.Len(t, r.Toasts(), 2)
}
