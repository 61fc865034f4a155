package port

import (
	"context"
	"errors"

	"artisan/internal/service/cart/domain"
)

var (
	// ErrNotFound 表示存储中不存在购物车记录（首次会话）。
	ErrNotFound = errors.New("cart: persisted state not found")
	// ErrCorrupted 表示存储里的数据无法解析。
	// Store 据此清掉坏数据，避免之后每次启动都失败。
	ErrCorrupted = errors.New("cart: persisted state corrupted")
)

// Persistence 是购物车状态的出站持久化端口。
// 整个状态作为一个文档存在固定 key 下，由基础设施层实现。
type Persistence interface {
	Load(ctx context.Context) (domain.State, error)
	Save(ctx context.Context, state domain.State) error
	Clear(ctx context.Context) error
}
