package adapter

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"

	"artisan/internal/pkg/redis"
	"artisan/internal/service/auth/domain"
	"artisan/internal/service/auth/port"
)

const sessionKeyPrefix = "session:"

// RedisSessionStore 把会话存在 session:<token> 下，靠 Redis TTL 过期。
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Put(ctx context.Context, token string, user domain.User, ttl time.Duration) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(err, "session: encode user")
	}
	if err := s.client.GetClient().Set(ctx, sessionKeyPrefix+token, payload, ttl).Err(); err != nil {
		return errors.Wrap(err, "session: save to redis")
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, token string) (domain.User, error) {
	payload, err := s.client.GetClient().Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return domain.User{}, domain.ErrSessionNotFound
		}
		return domain.User{}, errors.Wrap(err, "session: load from redis")
	}
	var user domain.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return domain.User{}, errors.Wrap(err, "session: decode user")
	}
	return user, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.GetClient().Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return errors.Wrap(err, "session: delete from redis")
	}
	return nil
}

var _ port.SessionStore = (*RedisSessionStore)(nil)
