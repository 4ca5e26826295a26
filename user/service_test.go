package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eisenwinter/tokenkeep/db"
	"github.com/eisenwinter/tokenkeep/db/tables"
	"github.com/eisenwinter/tokenkeep/events/event"
	"github.com/eisenwinter/tokenkeep/user/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"
)

func validNewUser() NewUser {
	return NewUser{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		PhoneNumber: "+44123456",
		Address:     "12 St James's Square, London",
	}
}

func TestCreateUser(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	store := mocks.NewStorer(t)
	dispatcher := mocks.NewDispatcher(t)
	service := New(zaptest.NewLogger(t), store, dispatcher)
	service.now = func() time.Time { return time.Date(2024, 3, 1, 9, 30, 15, 500, time.UTC) }

	store.On("InsertUser", ctx, mock.AnythingOfType("*tables.UserTable")).
		Run(func(args mock.Arguments) { args.Get(1).(*tables.UserTable).ID = 42 }).
		Return(nil)
	dispatcher.On("Dispatch", ctx, &event.UserCreated{UserID: 42, Email: "ada@example.com"}).Return()

	nu := validNewUser()
	nu.FirstName = "  Ada "
	created, err := service.Create(ctx, nu)
	assert.NoError(err)
	assert.Equal(42, created.ID)
	assert.Equal("Ada", created.FirstName)
	assert.Equal(time.Date(2024, 3, 1, 9, 30, 15, 0, time.UTC), created.CreatedDate)
}

func TestCreateUserInvalid(t *testing.T) {
	ctx := context.Background()
	cases := map[string]func(*NewUser){
		"missing first name": func(u *NewUser) { u.FirstName = "" },
		"blank last name":    func(u *NewUser) { u.LastName = "   " },
		"bad email":          func(u *NewUser) { u.Email = "not-an-email" },
		"phone too long":     func(u *NewUser) { u.PhoneNumber = "1234567890123456" },
		"missing address":    func(u *NewUser) { u.Address = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			store := mocks.NewStorer(t)
			service := New(zaptest.NewLogger(t), store, mocks.NewDispatcher(t))
			nu := validNewUser()
			mutate(&nu)
			_, err := service.Create(ctx, nu)
			assert.ErrorIs(t, err, ErrInvalidUser)
			store.AssertNotCalled(t, "InsertUser", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewStorer(t)
	dispatcher := mocks.NewDispatcher(t)
	service := New(zaptest.NewLogger(t), store, dispatcher)

	store.On("InsertUser", ctx, mock.Anything).Return(db.ErrAlreadyExists)

	_, err := service.Create(ctx, validNewUser())
	assert.ErrorIs(t, err, ErrEmailExists)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestCreateUserStoreFailure(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewStorer(t)
	service := New(zaptest.NewLogger(t), store, mocks.NewDispatcher(t))

	broken := errors.New("disk full")
	store.On("InsertUser", ctx, mock.Anything).Return(broken)

	_, err := service.Create(ctx, validNewUser())
	assert.ErrorIs(t, err, broken)
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewStorer(t)
	service := New(zaptest.NewLogger(t), store, mocks.NewDispatcher(t))

	opts := db.ListOptions{Query: "l_name==Lovelace"}
	store.On("Users", ctx, opts).Return([]*tables.UserTable{{ID: 1, LastName: "Lovelace"}}, nil)

	users, err := service.List(ctx, opts)
	assert.NoError(t, err)
	assert.Len(t, users, 1)
}
