//go:build integration
// +build integration

package kvstore

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/eisenwinter/tokenkeep/db"
	"github.com/eisenwinter/tokenkeep/db/tables"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newStore(t *testing.T) *Store {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	t.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		_ = client.Close()
	})
	require.NoError(t, client.FlushDB(context.Background()).Err())
	return New(zaptest.NewLogger(t), client)
}

func record(access string, refresh *string) *tables.TokenTable {
	now := time.Now().UTC().Truncate(time.Second)
	return &tables.TokenTable{
		ID:           uuid.New(),
		ClientID:     "c1",
		UserID:       "u1",
		TokenType:    "bearer",
		AccessToken:  access,
		RefreshToken: refresh,
		Scopes:       "read",
		ExpiresAt:    now.Add(30 * time.Minute),
		CreatedAt:    now,
	}
}

func TestSaveAndFind(t *testing.T) {
	assert := assert.New(t)
	s := newStore(t)
	ctx := context.Background()
	refresh := "refresh"
	original := record("access", &refresh)
	require.NoError(t, s.SaveToken(ctx, original))

	found, ok, err := s.FindByAccessToken(ctx, "access")
	require.NoError(t, err)
	assert.True(ok)
	assert.Equal(original.ID, found.ID)
	assert.True(original.ExpiresAt.Equal(found.ExpiresAt))

	found, ok, err = s.FindByRefreshToken(ctx, "refresh")
	require.NoError(t, err)
	assert.True(ok)
	assert.Equal("access", found.AccessToken)

	_, ok, err = s.FindByAccessToken(ctx, "nonexistent-token")
	assert.NoError(err)
	assert.False(ok)
}

func TestDuplicatesConflictWithoutPartialWrites(t *testing.T) {
	assert := assert.New(t)
	s := newStore(t)
	ctx := context.Background()
	refresh := "shared"
	require.NoError(t, s.SaveToken(ctx, record("dup", nil)))
	assert.ErrorIs(s.SaveToken(ctx, record("dup", nil)), db.ErrAlreadyExists)

	require.NoError(t, s.SaveToken(ctx, record("first", &refresh)))
	assert.ErrorIs(s.SaveToken(ctx, record("second", &refresh)), db.ErrAlreadyExists)
	_, ok, err := s.FindByAccessToken(ctx, "second")
	assert.NoError(err)
	assert.False(ok)
}

func TestConcurrentSaveHasOneWinner(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.SaveToken(ctx, record("race", nil))
		}()
	}
	wg.Wait()
	close(errs)
	ok := 0
	for err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, db.ErrAlreadyExists)
		}
	}
	assert.Equal(t, 1, ok)
}
