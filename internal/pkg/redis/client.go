package redis

import (
	"context"
	"time"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
)

// Client 封装 go-redis 客户端，统一连接与探活逻辑。
type Client struct {
	rdb *goredis.Client
}

// NewClient 建立连接并做一次 Ping 探活，确保启动期就能发现配置错误。
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to connect to redis at %s", addr)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient 暴露底层客户端给适配器使用。
func (c *Client) GetClient() *goredis.Client {
	return c.rdb
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
