package port

import (
	"context"
	"errors"

	"artisan/internal/service/checkout/domain"
)

var (
	// ErrSubmissionFailed 表示订单提交在传输层失败。
	// 消费端展示为可重试的一般性错误，绝不触碰本地购物车状态。
	ErrSubmissionFailed = errors.New("checkout: order submission failed")
	// ErrSubmissionInFlight 表示已有一次提交在进行中，
	// 同一购物车不允许并发下单。
	ErrSubmissionInFlight = errors.New("checkout: submission already in progress")
)

// OrderDraft 是提交给订单接口的载荷。
type OrderDraft struct {
	Customer    domain.CustomerInfo `json:"customer"`
	Items       []domain.OrderLine  `json:"items"`
	TotalAmount float64             `json:"totalAmount"`
}

// Gateway 是订单提交的出站端口。
// 仓库里没有真实后端，默认实现是一次有延迟、可能失败的模拟调用，
// 没有取消语义：发起之后只能等它成功或失败。
type Gateway interface {
	SubmitOrder(ctx context.Context, draft OrderDraft) (string, error)
}

// OrderRepository 负责已完成订单的留存，供用户面板查询历史订单。
type OrderRepository interface {
	Save(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	ListByEmail(ctx context.Context, email string) ([]*domain.Order, error)
}

// EventProducer 在订单完成后对外发布通知事件（可选能力）。
type EventProducer interface {
	OrderPlaced(ctx context.Context, order *domain.Order) error
}
