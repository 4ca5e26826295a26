package kvstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/eisenwinter/tokenkeep/db"
	"github.com/eisenwinter/tokenkeep/db/tables"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// all token keys carry the {token} hash tag so both keys of a record land in
// the same cluster slot and saveScript does not fail with CROSSSLOT
const (
	accessPrefix  = "tokenkeep:{token}:access:"
	refreshPrefix = "tokenkeep:{token}:refresh:"
)

// saveScript writes the record under the access key and, when present, the refresh key.
// Nothing is written if either key is taken, the script runs atomically on the server.
var saveScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
if #KEYS > 1 and redis.call('EXISTS', KEYS[2]) == 1 then
	return 0
end
redis.call('SET', KEYS[1], ARGV[1])
if #KEYS > 1 then
	redis.call('SET', KEYS[2], ARGV[1])
end
return 1
`)

// Store keeps token records in redis. Records carry no TTL, expired
// tokens stay readable and are rejected by the authority.
type Store struct {
	log    *zap.Logger
	client redis.UniversalClient
}

func New(log *zap.Logger, client redis.UniversalClient) *Store {
	return &Store{log: log, client: client}
}

// keys are hashes so the raw credentials never show up in a KEYS listing
func key(prefix string, token string) string {
	sum := sha256.Sum256([]byte(token))
	return prefix + hex.EncodeToString(sum[:])
}

func (s *Store) SaveToken(ctx context.Context, token *tables.TokenTable) error {
	payload, err := json.Marshal(token)
	if err != nil {
		return err
	}
	keys := []string{key(accessPrefix, token.AccessToken)}
	if token.RefreshToken != nil {
		keys = append(keys, key(refreshPrefix, *token.RefreshToken))
	}
	written, err := saveScript.Run(ctx, s.client, keys, string(payload)).Int()
	if err != nil {
		s.log.Error("could not store token", zap.Error(err))
		return err
	}
	if written == 0 {
		return db.ErrAlreadyExists
	}
	return nil
}

func (s *Store) FindByAccessToken(ctx context.Context, accessToken string) (*tables.TokenTable, bool, error) {
	return s.find(ctx, key(accessPrefix, accessToken))
}

func (s *Store) FindByRefreshToken(ctx context.Context, refreshToken string) (*tables.TokenTable, bool, error) {
	return s.find(ctx, key(refreshPrefix, refreshToken))
}

func (s *Store) find(ctx context.Context, k string) (*tables.TokenTable, bool, error) {
	raw, err := s.client.Get(ctx, k).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var token tables.TokenTable
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, false, err
	}
	return &token, true, nil
}

// Ping checks connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
