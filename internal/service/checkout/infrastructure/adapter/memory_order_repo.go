package adapter

import (
	"context"
	"strings"
	"sync"

	"artisan/internal/service/checkout/domain"
	"artisan/internal/service/checkout/port"
)

// MemoryOrderRepository 是进程内的订单留存实现，测试和本地模式用。
type MemoryOrderRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Order
	byEmail map[string][]string // email -> 订单号，新的在前
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		byID:    make(map[string]*domain.Order),
		byEmail: make(map[string][]string),
	}
}

func (r *MemoryOrderRepository) Save(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *order
	r.byID[order.ID] = &stored
	email := strings.ToLower(order.Customer.Email)
	r.byEmail[email] = append([]string{order.ID}, r.byEmail[email]...)
	return nil
}

func (r *MemoryOrderRepository) FindByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	out := *order
	return &out, nil
}

func (r *MemoryOrderRepository) ListByEmail(_ context.Context, email string) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.byEmail[strings.ToLower(email)]
	orders := make([]*domain.Order, 0, len(ids))
	for _, id := range ids {
		if order, ok := r.byID[id]; ok {
			out := *order
			orders = append(orders, &out)
		}
	}
	return orders, nil
}

var _ port.OrderRepository = (*MemoryOrderRepository)(nil)
