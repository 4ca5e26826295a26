package event

import (
	"time"

	"github.com/eisenwinter/tokenkeep/events"
	"github.com/google/uuid"
)

const (
	TokenIssuedEvent       events.EventName = "token_issued"
	TokenIssueRetriedEvent events.EventName = "token_issue_retried"

	UserCreatedEvent events.EventName = "user_created"

	ClientCreatedEvent events.EventName = "client_created"
	ClientRetiredEvent events.EventName = "client_retired"
)

// TokenIssued is dispatched once a token record has been persisted
type TokenIssued struct {
	TokenID   uuid.UUID
	ClientID  string
	UserID    string
	GrantType string
	Scopes    string
	ExpiresAt time.Time
}

func (*TokenIssued) Name() events.EventName { return TokenIssuedEvent }

// TokenIssueRetried is dispatched whenever a generated token collided with an existing one
type TokenIssueRetried struct {
	ClientID string
	Attempt  int
}

func (*TokenIssueRetried) Name() events.EventName { return TokenIssueRetriedEvent }

type UserCreated struct {
	UserID int
	Email  string
}

func (*UserCreated) Name() events.EventName { return UserCreatedEvent }

type ClientCreated struct {
	ID         int
	ClientID   string
	ClientName string
}

func (*ClientCreated) Name() events.EventName { return ClientCreatedEvent }

type ClientRetired struct {
	ClientID string
}

func (*ClientRetired) Name() events.EventName { return ClientRetiredEvent }
