package domain

import "errors"

// Product 是商品目录里的一件手作商品。
type Product struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
	Rating        float64 `json:"rating"`
	StockQuantity int     `json:"stockQuantity"`
	ImageURL      string  `json:"imageUrl"`
}

func (p Product) InStock() bool {
	return p.StockQuantity > 0
}

var (
	// ErrProductNotFound 表示商品不存在，消费端展示专门的空态页
	ErrProductNotFound = errors.New("catalog: product not found")
	// ErrInvalidProduct 表示商品数据不合法（缺名字或价格为负）
	ErrInvalidProduct = errors.New("catalog: invalid product")
)

// Validate 在写入边界上做最基本的合法性检查。
func (p Product) Validate() error {
	if p.Name == "" || p.Price < 0 {
		return ErrInvalidProduct
	}
	return nil
}
