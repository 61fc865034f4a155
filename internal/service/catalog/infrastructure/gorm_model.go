package infrastructure

import (
	"time"

	"artisan/internal/service/catalog/domain"
)

// ProductModel 是 products 表的 GORM 模型，和领域模型分开维护。
type ProductModel struct {
	ID            string  `gorm:"primaryKey;size:64"`
	Name          string  `gorm:"size:255;not null"`
	Description   string  `gorm:"type:text"`
	Price         float64 `gorm:"not null"`
	Category      string  `gorm:"size:64;index"`
	Rating        float64
	StockQuantity int
	ImageURL      string `gorm:"size:512"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ProductModel) TableName() string {
	return "products"
}

// ToDomainProduct 把数据库模型转换为领域模型。
func ToDomainProduct(m *ProductModel) domain.Product {
	return domain.Product{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Price:         m.Price,
		Category:      m.Category,
		Rating:        m.Rating,
		StockQuantity: m.StockQuantity,
		ImageURL:      m.ImageURL,
	}
}

// FromDomainProduct 把领域模型转换为数据库模型。
func FromDomainProduct(p *domain.Product) ProductModel {
	return ProductModel{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Category:      p.Category,
		Rating:        p.Rating,
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
	}
}
