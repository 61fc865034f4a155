package adapter

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"

	"artisan/internal/pkg/redis"
	"artisan/internal/service/cart/domain"
	"artisan/internal/service/cart/port"
)

// RedisPersistence 是 port.Persistence 的 Redis 实现。
// 整车状态作为一个 JSON 文档存在固定 key 下，
// 老版本缺失派生字段的文档也能读。
type RedisPersistence struct {
	client *redis.Client
	key    string
}

func NewRedisPersistence(client *redis.Client, key string) *RedisPersistence {
	return &RedisPersistence{client: client, key: key}
}

func (p *RedisPersistence) Load(ctx context.Context) (domain.State, error) {
	payload, err := p.client.GetClient().Get(ctx, p.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return domain.State{}, port.ErrNotFound
		}
		return domain.State{}, errors.Wrap(err, "cart: load from redis")
	}

	var state domain.State
	if err := json.Unmarshal(payload, &state); err != nil {
		return domain.State{}, errors.Wrap(port.ErrCorrupted, err.Error())
	}
	return state, nil
}

func (p *RedisPersistence) Save(ctx context.Context, state domain.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "cart: encode state")
	}
	if err := p.client.GetClient().Set(ctx, p.key, payload, 0).Err(); err != nil {
		return errors.Wrap(err, "cart: save to redis")
	}
	return nil
}

func (p *RedisPersistence) Clear(ctx context.Context) error {
	if err := p.client.GetClient().Del(ctx, p.key).Err(); err != nil {
		return errors.Wrap(err, "cart: clear redis entry")
	}
	return nil
}

var _ port.Persistence = (*RedisPersistence)(nil)
