package db

import (
	"context"

	"github.com/eisenwinter/tokenkeep/db/tables"
	"github.com/eisenwinter/tokenkeep/events"
	"github.com/eisenwinter/tokenkeep/events/event"
	"go.uber.org/zap"
)

// Auditor is a way to write audit log events into a persistent store
type Auditor interface {
	addToAuditLog(ctx context.Context, event string, payload tables.MapStructure) error
}

// BootstrapListeners registers all the event listeners from this package
func BootstrapListeners(store Auditor, log *zap.Logger) []events.EventListener {
	return []events.EventListener{
		&tokenIssuedListener{
			log:   log,
			store: store,
		},
		&userCreatedListener{
			log:   log,
			store: store,
		},
		&clientCreatedListener{
			log:   log,
			store: store,
		},
		&clientRetiredListener{
			log:   log,
			store: store,
		},
	}
}

type tokenIssuedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*tokenIssuedListener) ForEvent() events.EventName {
	return event.TokenIssuedEvent
}

// the token values themselves never end up in the audit log
func (l *tokenIssuedListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.TokenIssued)
	err := l.store.addToAuditLog(ctx, string(l.ForEvent()), map[string]interface{}{
		"token_id":   e.TokenID.String(),
		"client_id":  e.ClientID,
		"user_id":    e.UserID,
		"grant_type": e.GrantType,
		"scopes":     e.Scopes,
		"expires_at": e.ExpiresAt.Format("2006-01-02 15:04:05"),
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type userCreatedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*userCreatedListener) ForEvent() events.EventName {
	return event.UserCreatedEvent
}

func (l *userCreatedListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.UserCreated)
	err := l.store.addToAuditLog(ctx, string(l.ForEvent()), map[string]interface{}{
		"user_id": e.UserID,
		"email":   e.Email,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type clientCreatedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*clientCreatedListener) ForEvent() events.EventName {
	return event.ClientCreatedEvent
}

func (l *clientCreatedListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.ClientCreated)
	err := l.store.addToAuditLog(ctx, string(l.ForEvent()), map[string]interface{}{
		"id":        e.ID,
		"client_id": e.ClientID,
		"name":      e.ClientName,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type clientRetiredListener struct {
	store Auditor
	log   *zap.Logger
}

func (*clientRetiredListener) ForEvent() events.EventName {
	return event.ClientRetiredEvent
}

func (l *clientRetiredListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.ClientRetired)
	err := l.store.addToAuditLog(ctx, string(l.ForEvent()), map[string]interface{}{
		"client_id": e.ClientID,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}
