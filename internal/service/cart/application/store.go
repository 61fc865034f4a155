package application

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"artisan/internal/pkg/logger"
	"artisan/internal/service/cart/domain"
	"artisan/internal/service/cart/port"
)

// Subscriber 在每次变更提交后收到最新快照。
type Subscriber func(domain.State)

// Store 是购物车内容与派生金额的唯一权威，并负责持久化。
//
// 所有变更都走同一条路径：持锁读取当前条目 → 归约出新条目 →
// 整体重算派生字段 → 持久化 → 通知订阅者，中间不让出锁，
// 避免并发派发意图时丢失更新。
//
// Store 内部的错误从不往外抛：非法载荷退化为空操作，
// 持久化失败只记日志，内存状态仍是本次会话的权威。
type Store struct {
	mu        sync.Mutex
	state     domain.State
	persister port.Persistence

	subMu       sync.Mutex
	subscribers []Subscriber
}

// NewStore 创建 Store 并尝试从持久化端口恢复上一次会话的购物车。
// 记录不存在则从空车开始；数据损坏时清掉坏记录再从空车开始。
// 恢复出来的派生字段一律不信任，全部基于条目重算。
func NewStore(ctx context.Context, persister port.Persistence) *Store {
	s := &Store{
		state:     domain.Empty(),
		persister: persister,
	}

	restored, err := persister.Load(ctx)
	switch {
	case err == nil:
		// 恢复的条目和新入车的条目走同一道校验，坏行丢弃不影响其余
		items := make([]domain.LineItem, 0, len(restored.Items))
		for _, item := range restored.Items {
			if !item.Normalize() {
				logger.Ctx(ctx).Warn().Str("id", item.ID).Msg("dropping invalid persisted cart item")
				invalidPayloads.Inc()
				continue
			}
			items = append(items, item)
		}
		s.state = domain.CalculateTotals(items)
		logger.Ctx(ctx).Info().Int("items", len(s.state.Items)).Msg("cart restored from storage")
	case errors.Is(err, port.ErrNotFound):
		// 首次会话，空车
	case errors.Is(err, port.ErrCorrupted):
		logger.Ctx(ctx).Warn().Err(err).Msg("persisted cart is corrupted, starting empty")
		if clearErr := persister.Clear(ctx); clearErr != nil {
			logger.Ctx(ctx).Warn().Err(clearErr).Msg("failed to clear corrupted cart entry")
		}
	default:
		logger.Ctx(ctx).Warn().Err(err).Msg("failed to load persisted cart, starting empty")
	}
	return s
}

// Subscribe 注册一个快照订阅者。回调在提交路径上同步执行，不应阻塞。
func (s *Store) Subscribe(fn Subscriber) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// AddItem 往购物车里加一件商品。
// 同一 ID 已存在时只累加数量，展示字段保留首次加入的值。
// 非法载荷记日志后丢弃，状态不变。
func (s *Store) AddItem(ctx context.Context, item domain.LineItem) {
	if !item.Normalize() {
		logger.Ctx(ctx).Warn().
			Str("id", item.ID).
			Float64("price", item.Price).
			Msg("discarding invalid cart item")
		invalidPayloads.Inc()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.cloneItems()
	if idx := s.state.IndexOf(item.ID); idx >= 0 {
		items[idx].Quantity += item.Quantity
	} else {
		items = append(items, item)
	}
	s.commit(ctx, items, "add")
}

// RemoveItem 删除指定商品，ID 不存在时是空操作。
func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.state.IndexOf(id)
	if idx < 0 {
		return
	}
	items := s.cloneItems()
	items = append(items[:idx], items[idx+1:]...)
	s.commit(ctx, items, "remove")
}

// UpdateQuantity 把指定商品数量设置为 quantity。
// 数量归零或为负视为移除，在同一条归约路径里用保护分支处理，
// 而不是再派发一次移除操作。未知 ID 是空操作。
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.state.IndexOf(id)
	if idx < 0 {
		return
	}
	items := s.cloneItems()
	if quantity <= 0 {
		items = append(items[:idx], items[idx+1:]...)
	} else {
		items[idx].Quantity = quantity
	}
	s.commit(ctx, items, "update_quantity")
}

// Clear 无条件重置为空购物车。
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(ctx, []domain.LineItem{}, "clear")
}

// Snapshot 返回当前状态的只读快照，调用方必须当作不可变数据使用。
func (s *Store) Snapshot() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// commit 在持锁状态下完成一次变更：重算派生值、持久化、通知订阅者。
func (s *Store) commit(ctx context.Context, items []domain.LineItem, op string) {
	s.state = domain.CalculateTotals(items)
	mutationsTotal.WithLabelValues(op).Inc()
	itemCount.Set(float64(s.state.ItemCount))

	if err := s.persister.Save(ctx, s.state); err != nil {
		// 持久化失败不能影响本次会话，购物车完整性优先于存储
		logger.Ctx(ctx).Warn().Err(err).Str("op", op).Msg("failed to persist cart state")
		persistFailures.Inc()
	}

	snapshot := s.state.Clone()
	s.subMu.Lock()
	subs := make([]Subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.subMu.Unlock()
	for _, fn := range subs {
		fn(snapshot)
	}
}

func (s *Store) cloneItems() []domain.LineItem {
	items := make([]domain.LineItem, len(s.state.Items))
	copy(items, s.state.Items)
	return items
}
