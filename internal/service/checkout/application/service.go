// internal/service/checkout/application/service.go
package application

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"artisan/internal/pkg/logger"
	cartapp "artisan/internal/service/cart/application"
	"artisan/internal/service/checkout/domain"
	"artisan/internal/service/checkout/port"
)

// Service 编排一次完整的结账流程：
// 校验 → 取清空前的购物车快照 → 模拟提交 → 留存订单 → 清空购物车。
type Service struct {
	cart    *cartapp.Store
	gateway port.Gateway
	orders  port.OrderRepository
	events  port.EventProducer // 可为 nil（事件开关关闭时）
	tracer  trace.Tracer

	// submitMu 覆盖快照到清空的整个提交窗口，
	// 第二次并发提交直接拒绝，防止一车下出两单
	submitMu sync.Mutex
}

func NewService(cart *cartapp.Store, gateway port.Gateway, orders port.OrderRepository, events port.EventProducer, tracer trace.Tracer) *Service {
	return &Service{
		cart:    cart,
		gateway: gateway,
		orders:  orders,
		events:  events,
		tracer:  tracer,
	}
}

// PlaceOrder 驱动结账状态机走完一轮。
//
// 返回值约定：
//   - 校验失败：返回回到 EDITING 的 Checkout（带字段错误），error 为 nil；
//   - 空购物车：返回 domain.ErrEmptyCart，消费端应跳回购物车页；
//   - 已有提交在进行中：返回 port.ErrSubmissionInFlight，不触碰购物车；
//   - 提交失败：返回回到 EDITING 的 Checkout 和 port.ErrSubmissionFailed，
//     购物车和表单数据都保持原样；
//   - 成功：返回 COMPLETE 的 Checkout，其中的订单摘要基于清空前的快照。
func (s *Service) PlaceOrder(ctx context.Context, customer domain.CustomerInfo) (*domain.Checkout, error) {
	ctx, span := s.tracer.Start(ctx, "checkout.PlaceOrder")
	defer span.End()

	co := domain.NewCheckout(customer)
	if err := co.BeginValidation(); err != nil {
		return nil, err
	}

	if fieldErrors, first := customer.Validate(); len(fieldErrors) > 0 {
		span.SetAttributes(attribute.Int("checkout.field_errors", len(fieldErrors)))
		co.FailValidation(fieldErrors, first)
		return co, nil
	}

	if !s.submitMu.TryLock() {
		span.AddEvent("Concurrent submission rejected.")
		return nil, port.ErrSubmissionInFlight
	}
	defer s.submitMu.Unlock()

	// 摘要展示的是清空前的内容，所以必须先取快照
	snapshot := s.cart.Snapshot()
	if snapshot.IsEmpty() {
		span.AddEvent("Checkout attempted with empty cart.")
		return nil, domain.ErrEmptyCart
	}

	if err := co.BeginSubmission(); err != nil {
		return nil, err
	}

	draft := port.OrderDraft{
		Customer:    customer,
		TotalAmount: snapshot.GrandTotal,
	}
	for _, item := range snapshot.Items {
		draft.Items = append(draft.Items, domain.OrderLine{
			ProductID: item.ID,
			Name:      item.Name,
			UnitPrice: item.Price,
			Quantity:  item.Quantity,
		})
	}

	orderID, err := s.gateway.SubmitOrder(ctx, draft)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "order submission failed")
		ordersFailed.Inc()
		co.FailSubmission()
		// 购物车原样保留，调用方负责保留表单数据
		return co, errors.Wrap(port.ErrSubmissionFailed, err.Error())
	}

	order := domain.NewOrder(orderID, customer, snapshot)

	// 订单留存和事件发布失败都不阻断结账，降级为日志
	if err := s.orders.Save(ctx, order); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("order_id", order.ID).Msg("failed to persist order")
	}
	if s.events != nil {
		if err := s.events.OrderPlaced(ctx, order); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Str("order_id", order.ID).Msg("failed to publish order event")
		}
	}

	s.cart.Clear(ctx)
	if err := co.Complete(order); err != nil {
		return nil, err
	}

	ordersPlaced.Inc()
	span.SetAttributes(attribute.String("order.id", order.ID))
	logger.Ctx(ctx).Info().Str("order_id", order.ID).Float64("grand_total", order.GrandTotal).Msg("order placed")
	return co, nil
}

// GetOrder 查询单笔订单。
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "checkout.GetOrder")
	defer span.End()
	return s.orders.FindByID(ctx, id)
}

// ListOrders 按客户邮箱列出历史订单，供用户面板使用。
func (s *Service) ListOrders(ctx context.Context, email string) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "checkout.ListOrders")
	defer span.End()
	return s.orders.ListByEmail(ctx, email)
}
