package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix  = "session:"
	defaultSessionTTL = 24 * time.Hour
)

// Session is the per-client state established at login: the user's id
// plus a display name for rendering. Absent session = anonymous.
type Session struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

// Store manages opaque session state keyed by a random id.
type Store interface {
	Create(ctx context.Context, s Session) (string, error)
	// Get resolves a session id. Lookup errors are treated the same as
	// a missing session: the caller only cares whether the client is
	// authenticated.
	Get(ctx context.Context, id string) (Session, bool)
	Delete(ctx context.Context, id string) error
}

// RedisStore keeps sessions in Redis with a rolling TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore returns a new RedisStore.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// Create stores a new session and returns its id.
func (s *RedisStore) Create(ctx context.Context, sess Session) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKeyPrefix+id, b, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return id, nil
}

// Get resolves a session id, refreshing its TTL on hit.
func (s *RedisStore) Get(ctx context.Context, id string) (Session, bool) {
	key := sessionKeyPrefix + id
	b, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return Session{}, false
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return Session{}, false
	}
	_ = s.rdb.Expire(ctx, key, s.ttl).Err()
	return sess, true
}

// Delete removes a session by id.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+id).Err()
}

func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}
