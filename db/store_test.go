package db

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/eisenwinter/tokenkeep/config"
	"github.com/eisenwinter/tokenkeep/db/tables"
	"github.com/eisenwinter/tokenkeep/events/event"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
)

// DataStoreTestSuite runs against sqlite in memory unless
// INTEGRATION_TEST_DB_TYPE and INTEGRATION_TEST_DB_DSN point somewhere else
type DataStoreTestSuite struct {
	suite.Suite
	dataStore *DataStore
	dbType    string
	dsn       string
}

func (s *DataStoreTestSuite) SetupTest() {
	var err error
	s.dataStore, err = NewStore(zaptest.NewLogger(s.T()), &config.DatabaseConfiguration{
		Type: s.dbType,
		DSN:  s.dsn,
	})
	require.NoError(s.T(), err)
	switch s.dbType {
	case "pg":
		s.dataStore.db.MustExec("DROP TABLE IF EXISTS tokens, clients, users, audit_logs, schema_migrations CASCADE;")
	case "mysql":
		s.dataStore.db.MustExec("DROP TABLE IF EXISTS tokens, clients, users, audit_logs, schema_migrations;")
	}
	require.NoError(s.T(), s.dataStore.EnsureUsable())
}

func (s *DataStoreTestSuite) TearDownTest() {
	_ = s.dataStore.Close()
}

func newTokenRecord(access string, refresh *string) *tables.TokenTable {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &tables.TokenTable{
		ID:           uuid.New(),
		ClientID:     "c1",
		UserID:       "u1",
		TokenType:    "bearer",
		AccessToken:  access,
		RefreshToken: refresh,
		Scopes:       "read",
		ExpiresAt:    now.Add(1800 * time.Second),
		CreatedAt:    now,
	}
}

func strPtr(s string) *string { return &s }

func (s *DataStoreTestSuite) TestSaveAndFindByAccessToken() {
	ctx := context.Background()
	record := newTokenRecord("access-1", strPtr("refresh-1"))
	s.Require().NoError(s.dataStore.SaveToken(ctx, record))

	found, ok, err := s.dataStore.FindByAccessToken(ctx, "access-1")
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal(record.ID, found.ID)
	s.Equal("c1", found.ClientID)
	s.Equal("u1", found.UserID)
	s.Equal("bearer", found.TokenType)
	s.Equal("read", found.Scopes)
	s.Equal(record.ExpiresAt.Unix(), found.ExpiresAt.Unix())
	s.Equal(1800*time.Second, found.ExpiresAt.Sub(found.CreatedAt))
	if s.NotNil(found.RefreshToken) {
		s.Equal("refresh-1", *found.RefreshToken)
	}
}

func (s *DataStoreTestSuite) TestFindByRefreshToken() {
	ctx := context.Background()
	record := newTokenRecord("access-2", strPtr("refresh-2"))
	s.Require().NoError(s.dataStore.SaveToken(ctx, record))

	found, ok, err := s.dataStore.FindByRefreshToken(ctx, "refresh-2")
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal("access-2", found.AccessToken)
}

func (s *DataStoreTestSuite) TestFindAbsentIsNotAnError() {
	ctx := context.Background()
	found, ok, err := s.dataStore.FindByAccessToken(ctx, "nonexistent-token")
	s.NoError(err)
	s.False(ok)
	s.Nil(found)

	found, ok, err = s.dataStore.FindByRefreshToken(ctx, "nonexistent-token")
	s.NoError(err)
	s.False(ok)
	s.Nil(found)
}

func (s *DataStoreTestSuite) TestDuplicateAccessTokenConflicts() {
	ctx := context.Background()
	original := newTokenRecord("dup", nil)
	s.Require().NoError(s.dataStore.SaveToken(ctx, original))

	second := newTokenRecord("dup", nil)
	second.ClientID = "c2"
	err := s.dataStore.SaveToken(ctx, second)
	s.ErrorIs(err, ErrAlreadyExists)

	found, ok, err := s.dataStore.FindByAccessToken(ctx, "dup")
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal(original.ID, found.ID)
	s.Equal("c1", found.ClientID)
}

func (s *DataStoreTestSuite) TestDuplicateRefreshTokenConflicts() {
	ctx := context.Background()
	s.Require().NoError(s.dataStore.SaveToken(ctx, newTokenRecord("a-1", strPtr("shared"))))
	err := s.dataStore.SaveToken(ctx, newTokenRecord("a-2", strPtr("shared")))
	s.ErrorIs(err, ErrAlreadyExists)

	_, ok, err := s.dataStore.FindByAccessToken(ctx, "a-2")
	s.NoError(err)
	s.False(ok)
}

func (s *DataStoreTestSuite) TestMissingRefreshTokensDoNotConflict() {
	ctx := context.Background()
	s.NoError(s.dataStore.SaveToken(ctx, newTokenRecord("n-1", nil)))
	s.NoError(s.dataStore.SaveToken(ctx, newTokenRecord("n-2", nil)))
}

func (s *DataStoreTestSuite) TestConcurrentDuplicateSaveHasOneWinner() {
	ctx := context.Background()
	const workers = 8
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- s.dataStore.SaveToken(ctx, newTokenRecord("race", nil))
		}()
	}
	wg.Wait()
	close(results)
	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		s.ErrorIs(err, ErrAlreadyExists)
	}
	s.Equal(1, succeeded)
}

func (s *DataStoreTestSuite) TestClients() {
	ctx := context.Background()
	secret := "hashed"
	id, err := s.dataStore.InsertClient(ctx, "svc", &secret, "Service", "read write")
	s.Require().NoError(err)
	s.Greater(id, 0)

	_, err = s.dataStore.InsertClient(ctx, "svc", nil, "Again", "")
	s.ErrorIs(err, ErrAlreadyExists)

	client, err := s.dataStore.ClientByClientID(ctx, "svc")
	s.Require().NoError(err)
	s.Equal(id, client.ID)
	s.Equal("read write", client.Scopes)
	s.Nil(client.RetiredOn)

	s.NoError(s.dataStore.RetireClient(ctx, "svc"))
	s.ErrorIs(s.dataStore.RetireClient(ctx, "svc"), ErrNotFound)

	client, err = s.dataStore.ClientByClientID(ctx, "svc")
	s.Require().NoError(err)
	s.NotNil(client.RetiredOn)

	_, err = s.dataStore.ClientByClientID(ctx, "unknown")
	s.ErrorIs(err, ErrNotFound)

	clients, err := s.dataStore.Clients(ctx, ListOptions{})
	s.NoError(err)
	s.Len(clients, 1)
}

func (s *DataStoreTestSuite) TestUsers() {
	ctx := context.Background()
	created := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	first := &tables.UserTable{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		PhoneNumber: "12345",
		Address:     "London",
		CreatedDate: created,
	}
	s.Require().NoError(s.dataStore.InsertUser(ctx, first))
	s.Greater(first.ID, 0)

	dup := *first
	dup.ID = 0
	s.ErrorIs(s.dataStore.InsertUser(ctx, &dup), ErrAlreadyExists)

	second := &tables.UserTable{
		FirstName:   "Alan",
		LastName:    "Turing",
		Email:       "alan@example.com",
		PhoneNumber: "67890",
		Address:     "Manchester",
		CreatedDate: created,
	}
	s.Require().NoError(s.dataStore.InsertUser(ctx, second))

	users, err := s.dataStore.Users(ctx, ListOptions{})
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.Equal("ada@example.com", users[0].Email)
	s.Equal(created.Unix(), users[0].CreatedDate.Unix())

	paged, err := s.dataStore.Users(ctx, ListOptions{Page: 2, PageSize: 1})
	s.Require().NoError(err)
	s.Require().Len(paged, 1)
	s.Equal("alan@example.com", paged[0].Email)

	filtered, err := s.dataStore.Users(ctx, ListOptions{Query: "l_name==Turing"})
	s.Require().NoError(err)
	s.Require().Len(filtered, 1)
	s.Equal("Turing", filtered[0].LastName)

	_, err = s.dataStore.Users(ctx, ListOptions{Query: "((l_name==Turing"})
	s.ErrorIs(err, ErrInvalidQuery)

	byMail, err := s.dataStore.UserByEmail(ctx, "ada@example.com")
	s.Require().NoError(err)
	s.Equal(first.ID, byMail.ID)

	_, err = s.dataStore.UserByEmail(ctx, "nobody@example.com")
	s.ErrorIs(err, ErrNotFound)
}

func (s *DataStoreTestSuite) TestAuditListeners() {
	ctx := context.Background()
	listeners := BootstrapListeners(s.dataStore.Auditor(), zaptest.NewLogger(s.T()))
	s.Len(listeners, 4)
	for _, l := range listeners {
		if l.ForEvent() == event.ClientRetiredEvent {
			s.NoError(l.Handle(ctx, &event.ClientRetired{ClientID: "svc"}))
		}
	}
	entries, err := s.dataStore.AuditLog(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("client_retired", entries[0].EventType)
	s.Equal("svc", entries[0].Event["client_id"])
}

func (s *DataStoreTestSuite) TestClientCreatedAuditEntry() {
	ctx := context.Background()
	listeners := BootstrapListeners(s.dataStore.Auditor(), zaptest.NewLogger(s.T()))
	for _, l := range listeners {
		if l.ForEvent() == event.ClientCreatedEvent {
			s.NoError(l.Handle(ctx, &event.ClientCreated{ID: 3, ClientID: "svc", ClientName: "Backend"}))
		}
	}
	entries, err := s.dataStore.AuditLog(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("client_created", entries[0].EventType)
	s.Equal("svc", entries[0].Event["client_id"])
	s.Equal("Backend", entries[0].Event["name"])
}

func TestDataStoreTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping datastore suite in short mode")
	}
	dbType := os.Getenv("INTEGRATION_TEST_DB_TYPE")
	dsn := os.Getenv("INTEGRATION_TEST_DB_DSN")
	if dbType == "" {
		dbType = "sqlite"
		dsn = ":memory:"
	}
	suite.Run(t, &DataStoreTestSuite{dbType: dbType, dsn: dsn})
}

func TestIsUniqueViolationIgnoresOtherErrors(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(context.DeadlineExceeded))
	assert.Equal(t, context.Canceled, classify(context.Canceled))
}
