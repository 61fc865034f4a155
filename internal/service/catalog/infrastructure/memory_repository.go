package infrastructure

import (
	"context"
	"sync"

	"artisan/internal/service/catalog/domain"
	"artisan/internal/service/catalog/port"
)

// MemoryProductRepository 是进程内商品仓储，保持插入顺序。
// 本地模式和测试用，默认带一批手作商品的种子数据。
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products []domain.Product
}

// NewMemoryProductRepository 创建空仓储。
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{}
}

// NewSeededProductRepository 创建带演示商品的仓储。
func NewSeededProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{products: seedProducts()}
}

func seedProducts() []domain.Product {
	return []domain.Product{
		{ID: "p-1", Name: "Handcrafted Ceramic Mug", Price: 24.99, Category: "home", Rating: 4.8, StockQuantity: 15,
			Description: "Beautifully handcrafted ceramic mug, perfect for your morning coffee.",
			ImageURL:    "/images/products/ceramic-mug.jpg"},
		{ID: "p-2", Name: "Macramé Wall Hanging", Price: 59.99, Category: "decor", Rating: 4.9, StockQuantity: 8,
			Description: "Elegant macramé wall hanging to add warmth to any room.",
			ImageURL:    "/images/products/macrame.jpg"},
		{ID: "p-3", Name: "Hand-Knitted Wool Scarf", Price: 42.50, Category: "clothing", Rating: 4.7, StockQuantity: 12,
			Description: "Soft and warm hand-knitted wool scarf in earthy tones.",
			ImageURL:    "/images/products/knitted-scarf.jpg"},
		{ID: "p-4", Name: "Wooden Cutting Board", Price: 38.99, Category: "kitchen", Rating: 4.6, StockQuantity: 5,
			Description: "Handcrafted wooden cutting board made from sustainable materials.",
			ImageURL:    "/images/products/cutting-board.jpg"},
		{ID: "p-5", Name: "Botanical Soy Candle", Price: 19.99, Category: "home", Rating: 4.9, StockQuantity: 0,
			Description: "Hand-poured soy candle with essential oils and dried botanicals.",
			ImageURL:    "/images/products/candle.jpg"},
		{ID: "p-6", Name: "Leather Journal", Price: 32.00, Category: "stationery", Rating: 4.8, StockQuantity: 20,
			Description: "Handcrafted leather journal with handmade paper pages.",
			ImageURL:    "/images/products/journal.jpg"},
	}
}

func (r *MemoryProductRepository) List(_ context.Context, category string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *MemoryProductRepository) FindByID(_ context.Context, id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

func (r *MemoryProductRepository) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = append(r.products, *product)
	return nil
}

func (r *MemoryProductRepository) Update(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == product.ID {
			r.products[i] = *product
			return nil
		}
	}
	return domain.ErrProductNotFound
}

func (r *MemoryProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return domain.ErrProductNotFound
}

var _ port.Repository = (*MemoryProductRepository)(nil)
