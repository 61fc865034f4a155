package infrastructure

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"artisan/internal/service/catalog/domain"
	"artisan/internal/service/catalog/port"
)

// GormProductRepository 是 port.Repository 的 GORM 实现。
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository 创建仓储实例并迁移表结构。
func NewGormProductRepository(db *gorm.DB) (*GormProductRepository, error) {
	if err := db.AutoMigrate(&ProductModel{}); err != nil {
		return nil, err
	}
	return &GormProductRepository{db: db}, nil
}

func (r *GormProductRepository) List(ctx context.Context, category string) ([]domain.Product, error) {
	query := r.db.WithContext(ctx).Model(&ProductModel{}).Order("created_at")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var models []ProductModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(models))
	for i := range models {
		products = append(products, ToDomainProduct(&models[i]))
	}
	return products, nil
}

func (r *GormProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	var model ProductModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, err
	}
	return ToDomainProduct(&model), nil
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	model := FromDomainProduct(product)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *GormProductRepository) Update(ctx context.Context, product *domain.Product) error {
	model := FromDomainProduct(product)
	result := r.db.WithContext(ctx).Model(&ProductModel{}).Where("id = ?", product.ID).Updates(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *GormProductRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ProductModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

var _ port.Repository = (*GormProductRepository)(nil)
