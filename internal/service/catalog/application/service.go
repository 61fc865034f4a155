// internal/service/catalog/application/service.go
package application

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"artisan/internal/service/catalog/domain"
	"artisan/internal/service/catalog/port"
)

// Service 是商品目录的应用层。
// writer 为 nil 时目录是只读的（远端 REST 数据源），管理操作不可用。
type Service struct {
	reader port.Reader
	writer port.Repository
	tracer trace.Tracer
}

func NewService(reader port.Reader, writer port.Repository, tracer trace.Tracer) *Service {
	return &Service{reader: reader, writer: writer, tracer: tracer}
}

// ListProducts 按分类列出商品，"all" 等价于不过滤。
func (s *Service) ListProducts(ctx context.Context, category string) ([]domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.ListProducts")
	defer span.End()

	if category == "all" {
		category = ""
	}
	span.SetAttributes(attribute.String("catalog.category", category))
	return s.reader.List(ctx, category)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.GetProduct")
	defer span.End()
	span.SetAttributes(attribute.String("catalog.product_id", id))
	return s.reader.FindByID(ctx, id)
}

// AdminEnabled 表示当前数据源是否支持管理面板的写操作。
func (s *Service) AdminEnabled() bool {
	return s.writer != nil
}

// CreateProduct 新建商品，ID 缺省时自动生成。
func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) error {
	ctx, span := s.tracer.Start(ctx, "catalog.CreateProduct")
	defer span.End()

	if err := product.Validate(); err != nil {
		return err
	}
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	return s.writer.Create(ctx, product)
}

func (s *Service) UpdateProduct(ctx context.Context, product *domain.Product) error {
	ctx, span := s.tracer.Start(ctx, "catalog.UpdateProduct")
	defer span.End()

	if err := product.Validate(); err != nil {
		return err
	}
	return s.writer.Update(ctx, product)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "catalog.DeleteProduct")
	defer span.End()
	return s.writer.Delete(ctx, id)
}
