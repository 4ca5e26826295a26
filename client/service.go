package client

import (
	"context"
	"errors"
	"strings"

	"github.com/eisenwinter/tokenkeep/db"
	"github.com/eisenwinter/tokenkeep/db/tables"
	"github.com/eisenwinter/tokenkeep/events"
	"github.com/eisenwinter/tokenkeep/events/event"
	"github.com/eisenwinter/tokenkeep/sanitize"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrNotFound indicates the requested client was not found
	ErrNotFound = errors.New("client not found")
	// ErrInvalidClient covers unknown, retired and wrongly authenticated clients alike
	ErrInvalidClient = errors.New("client authentication failed")
	// ErrClientIDExists is returned when registering a client id twice
	ErrClientIDExists = errors.New("client id already registered")
	// ErrInvalidClientID is returned for empty or whitespace containing client ids
	ErrInvalidClientID = errors.New("client id must not be empty or contain whitespace")
)

// Storer persists clients
type Storer interface {
	ClientByClientID(ctx context.Context, clientID string) (*tables.ClientTable, error)
	Clients(ctx context.Context, opts db.ListOptions) ([]*tables.ClientTable, error)
	InsertClient(ctx context.Context, clientID string, hashedSecret *string, name string, scopes string) (int, error)
	RetireClient(ctx context.Context, clientID string) error
}

// Dispatcher dispatches events
type Dispatcher interface {
	Dispatch(ctx context.Context, event events.Event)
}

type Service struct {
	log        *zap.Logger
	store      Storer
	dispatcher Dispatcher
}

func NewService(log *zap.Logger, store Storer, dispatcher Dispatcher) *Service {
	return &Service{
		log:        log,
		store:      store,
		dispatcher: dispatcher,
	}
}

func (s *Service) ClientByClientID(ctx context.Context, clientID string) (*Client, error) {
	entry, err := s.store.ClientByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return clientFromDbType(entry), nil
}

// Authenticate resolves an active client and checks its secret.
// Every rejection is reported as ErrInvalidClient, storage failures are passed on.
func (s *Service) Authenticate(ctx context.Context, clientID string, secret string) (*Client, error) {
	if clientID == "" {
		return nil, ErrInvalidClient
	}
	c, err := s.ClientByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.log.Debug("unknown client", sanitize.String("client_id", clientID))
			return nil, ErrInvalidClient
		}
		return nil, err
	}
	if c.IsRetired() {
		s.log.Debug("retired client tried to authenticate", sanitize.String("client_id", clientID))
		return nil, ErrInvalidClient
	}
	if !c.ValidateClientSecret(secret) {
		s.log.Info("client secret mismatch", sanitize.String("client_id", clientID))
		return nil, ErrInvalidClient
	}
	return c, nil
}

// Create registers a client, an empty secret registers a public client
func (s *Service) Create(
	ctx context.Context,
	clientID string,
	secret string,
	name string,
	scopes string,
) (*Client, error) {
	if clientID == "" || strings.ContainsAny(clientID, " \t\r\n") {
		return nil, ErrInvalidClientID
	}
	var hashed *string
	if secret != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
		if err != nil {
			s.log.Error("unable to hash client secret", zap.Error(err))
			return nil, err
		}
		hs := string(h)
		hashed = &hs
	}
	if name == "" {
		name = clientID
	}
	normalized := strings.Join(strings.Fields(scopes), " ")
	id, err := s.store.InsertClient(ctx, clientID, hashed, name, normalized)
	if err != nil {
		if errors.Is(err, db.ErrAlreadyExists) {
			return nil, ErrClientIDExists
		}
		return nil, err
	}
	s.dispatcher.Dispatch(ctx, &event.ClientCreated{
		ID:         id,
		ClientID:   clientID,
		ClientName: name,
	})
	return &Client{
		id:           id,
		clientID:     clientID,
		clientSecret: hashed,
		name:         name,
		scopes:       strings.Fields(normalized),
	}, nil
}

func (s *Service) List(ctx context.Context, opts db.ListOptions) ([]*Client, error) {
	entries, err := s.store.Clients(ctx, opts)
	if err != nil {
		return nil, err
	}
	clients := make([]*Client, len(entries))
	for i, v := range entries {
		clients[i] = clientFromDbType(v)
	}
	return clients, nil
}

// Retire disables the client for any further token requests, tokens already issued stay valid
func (s *Service) Retire(ctx context.Context, clientID string) error {
	err := s.store.RetireClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.dispatcher.Dispatch(ctx, &event.ClientRetired{ClientID: clientID})
	return nil
}
