package domain

import "math"

// LineItem 是购物车中的一行商品。
// 展示字段（Name/Price/ImageURL）以第一次加入购物车时的值为准，
// 后续对同一商品的加购只累加数量。
type LineItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

// Normalize 在入车边界上校验并修正载荷。
// 返回 false 表示载荷不合法，调用方应当丢弃并记日志，而不是报错。
func (i *LineItem) Normalize() bool {
	if i.ID == "" {
		return false
	}
	if math.IsNaN(i.Price) || math.IsInf(i.Price, 0) || i.Price < 0 {
		return false
	}
	if i.Quantity < 1 {
		i.Quantity = 1
	}
	return true
}
