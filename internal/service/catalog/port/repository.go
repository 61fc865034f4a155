package port

import (
	"context"

	"artisan/internal/service/catalog/domain"
)

// Reader 是商品目录的只读端口。
// category 为空或 "all" 表示不过滤。
type Reader interface {
	List(ctx context.Context, category string) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (domain.Product, error)
}

// Repository 在 Reader 之上增加管理面板用的写能力。
// 远端 REST 适配器只实现 Reader，此时管理接口不可用。
type Repository interface {
	Reader
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}
