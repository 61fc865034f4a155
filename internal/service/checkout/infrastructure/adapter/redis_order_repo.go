package adapter

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"

	"artisan/internal/pkg/redis"
	"artisan/internal/service/checkout/domain"
	"artisan/internal/service/checkout/port"
)

const (
	orderKeyPrefix     = "order:"
	orderIndexPrefix   = "orders:"
	orderIndexMaxItems = 100
)

// RedisOrderRepository 把订单以 JSON 存在 order:<id> 下，
// 并按客户邮箱维护一个订单号列表，供用户面板倒序展示。
type RedisOrderRepository struct {
	client *redis.Client
}

func NewRedisOrderRepository(client *redis.Client) *RedisOrderRepository {
	return &RedisOrderRepository{client: client}
}

func (r *RedisOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return errors.Wrap(err, "order: encode")
	}

	pipe := r.client.GetClient().Pipeline()
	pipe.Set(ctx, orderKeyPrefix+order.ID, payload, 0)
	indexKey := orderIndexPrefix + strings.ToLower(order.Customer.Email)
	pipe.LPush(ctx, indexKey, order.ID)
	pipe.LTrim(ctx, indexKey, 0, orderIndexMaxItems-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "order: save to redis")
	}
	return nil
}

func (r *RedisOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	payload, err := r.client.GetClient().Get(ctx, orderKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, errors.Wrap(err, "order: load from redis")
	}

	var order domain.Order
	if err := json.Unmarshal(payload, &order); err != nil {
		return nil, errors.Wrap(err, "order: decode")
	}
	return &order, nil
}

func (r *RedisOrderRepository) ListByEmail(ctx context.Context, email string) ([]*domain.Order, error) {
	indexKey := orderIndexPrefix + strings.ToLower(email)
	ids, err := r.client.GetClient().LRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "order: list ids")
	}

	orders := make([]*domain.Order, 0, len(ids))
	for _, id := range ids {
		order, err := r.FindByID(ctx, id)
		if errors.Is(err, domain.ErrOrderNotFound) {
			continue // 索引里可能留有已过期的订单号
		}
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

var _ port.OrderRepository = (*RedisOrderRepository)(nil)
