package services

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/pennywise/client/internal/apiclient"
	"github.com/pennywise/client/internal/notify"
	"github.com/pennywise/client/internal/state"
	"github.com/rs/zerolog"
)

var (
	// ErrOperationCancelled is returned when the user declines a confirmation.
	ErrOperationCancelled = errors.New("operation cancelled")
	ErrNoPendingDelete    = errors.New("no delete awaiting confirmation")
)

// Catalog operations. They share the error policy of the list operations but
// have no slot in the list state.
const (
	OpLoadWallets    state.Operation = "loadWallets"
	OpLoadCategories state.Operation = "loadCategories"
)

// SessionHandler reacts to a credential the server refused.
type SessionHandler interface {
	HandleUnauthorized(ctx context.Context)
}

var fallbackMessages = map[state.Operation]string{
	state.OpLoadTransactions:  "Could not load transactions",
	state.OpLoadTransaction:   "Could not load the transaction",
	state.OpCreateTransaction: "Could not create the transaction",
	state.OpUpdateTransaction: "Could not update the transaction",
	state.OpDeleteTransaction: "Could not delete the transaction",
	OpLoadWallets:             "Could not load wallets",
	OpLoadCategories:          "Could not load categories",
}

// MessageFor returns the text recorded in state for a failure of op: the
// server's message when it sent one, otherwise a fixed per-operation text.
func MessageFor(op state.Operation, err error) string {
	if re, ok := apiclient.AsRemoteError(err); ok && re.Message != "" {
		return re.Message
	}
	if msg, ok := fallbackMessages[op]; ok {
		return msg
	}
	return "Request failed"
}

// ToastFor maps a failure to the notification shown to the user. The second
// result is false for failures that must stay silent.
func ToastFor(err error) (notify.Toast, bool) {
	if errors.Is(err, ErrOperationCancelled) {
		return notify.Toast{}, false
	}
	re, ok := apiclient.AsRemoteError(err)
	if !ok {
		return notify.Toast{Level: notify.LevelError, Key: "errors.unexpected"}, true
	}

	switch re.Kind {
	case apiclient.KindUnauthorized:
		return notify.Toast{}, false
	case apiclient.KindTransport:
		return notify.Toast{Level: notify.LevelError, Key: "errors.network"}, true
	case apiclient.KindForbidden:
		return notify.Toast{Level: notify.LevelError, Key: "errors.forbidden"}, true
	case apiclient.KindNotFound:
		return notify.Toast{Level: notify.LevelError, Key: "errors.notFound"}, true
	case apiclient.KindServer:
		return notify.Toast{Level: notify.LevelError, Key: "errors.server", Params: map[string]any{"status": re.Status}}, true
	}
	return notify.Toast{Level: notify.LevelError, Key: "errors.request", Params: map[string]any{"status": re.Status}}, true
}

// invalidPayload reports a local validation failure the way the server
// would reject the same body.
func invalidPayload(err error) error {
	details := ValidationDetails(err)
	fields := make([]string, 0, len(details))
	for f := range details {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msg := "Validation failed"
	if len(fields) > 0 {
		msg += ": " + strings.Join(fields, ", ")
	}
	return &apiclient.RemoteError{
		Kind:    apiclient.KindClient,
		Status:  http.StatusBadRequest,
		Message: msg,
		Err:     err,
	}
}

// reporter applies the failure policy shared by every service: a rejected
// credential goes to the session, everything else becomes one toast.
type reporter struct {
	notifier notify.Notifier
	session  SessionHandler
	log      zerolog.Logger
}

func (r reporter) failure(ctx context.Context, op state.Operation, err error) {
	ev := r.log.Error().Err(err).Str("operation", string(op))
	if re, ok := apiclient.AsRemoteError(err); ok {
		ev = ev.Str("kind", re.Kind.String()).Int("status", re.Status)
	}
	ev.Msg("Operation failed")

	if apiclient.IsUnauthorized(err) {
		if r.session != nil {
			r.session.HandleUnauthorized(ctx)
		}
		return
	}
	if t, ok := ToastFor(err); ok {
		r.notifier.Notify(t)
	}
}

func (r reporter) success(key string) {
	r.notifier.Notify(notify.Toast{Level: notify.LevelSuccess, Key: key})
}
