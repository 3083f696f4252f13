// Package audit records every change made to stored transactions.
package audit

import (
	"time"

	"github.com/pennywise/client/internal/models"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// EventType names the kind of change that was audited
type EventType string

const (
	EventCreated EventType = "TRANSACTION_CREATED"
	EventUpdated EventType = "TRANSACTION_UPDATED"
	EventDeleted EventType = "TRANSACTION_DELETED"
	EventFailed  EventType = "ERROR"
)

const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

type Event struct {
	Timestamp     time.Time         `json:"timestamp"`
	EventType     EventType         `json:"event_type"`
	TransactionID string            `json:"transaction_id"`
	ActorID       string            `json:"actor_id,omitempty"`
	Amount        *decimal.Decimal  `json:"amount,omitempty"`
	Status        string            `json:"status"`
	Details       map[string]string `json:"details,omitempty"`
}

// Logger writes audit events as structured log lines.
type Logger struct {
	log zerolog.Logger
	now func() time.Time
}

func NewLogger(log zerolog.Logger) *Logger {
	return &Logger{
		log: log.With().Str("component", "audit").Logger(),
		now: time.Now,
	}
}

// LogChange records a successful create or update of t.
func (a *Logger) LogChange(eventType EventType, actorID string, t models.Transaction) Event {
	amount := t.Amount
	details := map[string]string{"transaction_type": string(t.TransactionType)}
	if t.WalletFromID != nil {
		details["wallet_from_id"] = *t.WalletFromID
	}
	if t.WalletToID != nil {
		details["wallet_to_id"] = *t.WalletToID
	}
	return a.write(Event{
		EventType:     eventType,
		TransactionID: t.ID,
		ActorID:       actorID,
		Amount:        &amount,
		Status:        StatusSuccess,
		Details:       details,
	})
}

func (a *Logger) LogDelete(actorID, transactionID string) Event {
	return a.write(Event{
		EventType:     EventDeleted,
		TransactionID: transactionID,
		ActorID:       actorID,
		Status:        StatusSuccess,
	})
}

// LogError records a change that the store rejected.
func (a *Logger) LogError(actorID, transactionID, operation string, err error) Event {
	return a.write(Event{
		EventType:     EventFailed,
		TransactionID: transactionID,
		ActorID:       actorID,
		Status:        StatusFailed,
		Details:       map[string]string{"operation": operation, "error": err.Error()},
	})
}

func (a *Logger) write(e Event) Event {
	e.Timestamp = a.now()

	ev := a.log.Info()
	if e.Status == StatusFailed {
		ev = a.log.Error()
	}
	ev = ev.Time("timestamp", e.Timestamp).
		Str("event_type", string(e.EventType)).
		Str("transaction_id", e.TransactionID).
		Str("status", e.Status)
	if e.ActorID != "" {
		ev = ev.Str("actor_id", e.ActorID)
	}
	if e.Amount != nil {
		ev = ev.Str("amount", e.Amount.String())
	}
	for k, v := range e.Details {
		ev = ev.Str(k, v)
	}
	ev.Msg("AUDIT")
	return e
}
