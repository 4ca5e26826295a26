package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eisenwinter/tokenkeep/db"
	"github.com/eisenwinter/tokenkeep/db/tables"
	"github.com/eisenwinter/tokenkeep/events"
	"github.com/eisenwinter/tokenkeep/events/event"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var (
	// ErrInvalidUser wraps the validation failure of a new user
	ErrInvalidUser = errors.New("user data is invalid")
	// ErrEmailExists is returned when the e-mail address is already registered
	ErrEmailExists = errors.New("email id already exists")
)

// NewUser is the data required to register a user
type NewUser struct {
	FirstName   string `json:"f_name"       validate:"required,max=50"`
	LastName    string `json:"l_name"       validate:"required,max=50"`
	Email       string `json:"email_id"     validate:"required,email,max=100"`
	PhoneNumber string `json:"phone_number" validate:"required,max=15"`
	Address     string `json:"address"      validate:"required,max=255"`
}

// Storer persists users
type Storer interface {
	InsertUser(ctx context.Context, user *tables.UserTable) error
	Users(ctx context.Context, opts db.ListOptions) ([]*tables.UserTable, error)
}

// Dispatcher dispatches events
type Dispatcher interface {
	Dispatch(ctx context.Context, event events.Event)
}

type Service struct {
	log        *zap.Logger
	store      Storer
	dispatcher Dispatcher
	validate   *validator.Validate
	now        func() time.Time
}

func New(log *zap.Logger, store Storer, dispatcher Dispatcher) *Service {
	return &Service{
		log:        log,
		store:      store,
		dispatcher: dispatcher,
		validate:   validator.New(),
		now:        time.Now,
	}
}

// Create validates and stores a new user, the e-mail address has to be unique
func (s *Service) Create(ctx context.Context, nu NewUser) (*tables.UserTable, error) {
	nu.FirstName = strings.TrimSpace(nu.FirstName)
	nu.LastName = strings.TrimSpace(nu.LastName)
	nu.Email = strings.TrimSpace(nu.Email)
	nu.PhoneNumber = strings.TrimSpace(nu.PhoneNumber)
	nu.Address = strings.TrimSpace(nu.Address)
	if err := s.validate.Struct(nu); err != nil {
		s.log.Debug("rejected new user", zap.Error(err))
		return nil, fmt.Errorf("%w: %s", ErrInvalidUser, err.Error())
	}
	entity := &tables.UserTable{
		FirstName:   nu.FirstName,
		LastName:    nu.LastName,
		Email:       nu.Email,
		PhoneNumber: nu.PhoneNumber,
		Address:     nu.Address,
		CreatedDate: s.now().UTC().Truncate(time.Second),
	}
	if err := s.store.InsertUser(ctx, entity); err != nil {
		if errors.Is(err, db.ErrAlreadyExists) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	s.dispatcher.Dispatch(ctx, &event.UserCreated{
		UserID: entity.ID,
		Email:  entity.Email,
	})
	return entity, nil
}

func (s *Service) List(ctx context.Context, opts db.ListOptions) ([]*tables.UserTable, error) {
	return s.store.Users(ctx, opts)
}
