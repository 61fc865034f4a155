// internal/service/checkout/domain/order.go
package domain

import (
	"errors"
	"time"

	cartdomain "artisan/internal/service/cart/domain"
)

var (
	// ErrEmptyCart 表示带着空购物车提交了结账，消费端应跳回购物车页
	ErrEmptyCart = errors.New("checkout: cart is empty")
	// ErrOrderNotFound 表示查询的订单不存在
	ErrOrderNotFound = errors.New("checkout: order not found")
)

// OrderLine 是订单里的一行商品，金额是下单时刻的快照。
type OrderLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// Order 是一笔已完成的订单。
// 各项金额取自清空购物车之前的快照，之后不再变化。
type Order struct {
	ID         string       `json:"id"`
	Customer   CustomerInfo `json:"customer"`
	Lines      []OrderLine  `json:"lines"`
	ItemCount  int          `json:"itemCount"`
	Total      float64      `json:"total"`
	Shipping   float64      `json:"shipping"`
	Tax        float64      `json:"tax"`
	GrandTotal float64      `json:"grandTotal"`
	PlacedAt   time.Time    `json:"placedAt"`
}

// NewOrder 用清空前的购物车快照和脱敏后的客户信息组装订单。
func NewOrder(id string, customer CustomerInfo, snapshot cartdomain.State) *Order {
	lines := make([]OrderLine, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		lines = append(lines, OrderLine{
			ProductID: item.ID,
			Name:      item.Name,
			UnitPrice: item.Price,
			Quantity:  item.Quantity,
		})
	}
	return &Order{
		ID:         id,
		Customer:   customer.Sanitized(),
		Lines:      lines,
		ItemCount:  snapshot.ItemCount,
		Total:      snapshot.Total,
		Shipping:   snapshot.Shipping,
		Tax:        snapshot.Tax,
		GrandTotal: snapshot.GrandTotal,
		PlacedAt:   time.Now(),
	}
}
