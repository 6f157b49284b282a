package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rpupo63/agency-site-backend/models"
)

// RedisSessionStore keeps sessions in Redis so several instances can share them.
// Each session lives under session:<id> with a TTL matching its expiry; a per-user set
// tracks ids so a new login can revoke the old ones.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

var _ SessionStore = (*RedisSessionStore)(nil)

func sessionKey(id string) string {
	return "session:" + id
}

func userSessionsKey(userID uuid.UUID) string {
	return "user_sessions:" + userID.String()
}

// sessionTTL is the lifetime the session was issued with, independent of the local clock.
// Sessions without CreatedAt fall back to the time left until expiry.
func sessionTTL(session models.Session) time.Duration {
	if session.CreatedAt.IsZero() {
		return time.Until(session.ExpiresAt)
	}
	return session.ExpiresAt.Sub(session.CreatedAt)
}

const maxReplaceAttempts = 3

// Replace drops the user's existing sessions and stores session in one MULTI block. The
// user's id set is watched so a concurrent login retries instead of leaving two live sessions.
func (s *RedisSessionStore) Replace(ctx context.Context, session models.Session) error {
	ttl := sessionTTL(session)
	if ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	setKey := userSessionsKey(session.UserID)
	replace := func(tx *redis.Tx) error {
		ids, err := tx.SMembers(ctx, setKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("list user sessions: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, id := range ids {
				pipe.Del(ctx, sessionKey(id))
			}
			pipe.Del(ctx, setKey)
			pipe.Set(ctx, sessionKey(session.ID), payload, ttl)
			pipe.SAdd(ctx, setKey, session.ID)
			pipe.Expire(ctx, setKey, ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxReplaceAttempts; i++ {
		err = s.client.Watch(ctx, replace, setKey)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*models.Session, error) {
	val, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(val, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	session, err := s.Get(ctx, id)
	if err != nil || session == nil {
		if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		return nil
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, sessionKey(id))
	pipe.SRem(ctx, userSessionsKey(session.UserID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op: Redis expires session keys itself.
func (s *RedisSessionStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}
