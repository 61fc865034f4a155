package adapter

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"artisan/internal/service/checkout/port"
)

// SimulatedGateway 模拟订单创建接口：固定延迟加可配置的失败率。
// 没有真实后端，提交阶段挂起在这里，调用方必须等它成功或失败。
type SimulatedGateway struct {
	latency     time.Duration
	failureRate float64

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulatedGateway(latency time.Duration, failureRate float64) *SimulatedGateway {
	return &SimulatedGateway{
		latency:     latency,
		failureRate: failureRate,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SubmitOrder 睡过模拟耗时后按失败率掷骰子，
// 成功时返回 ORD- 前缀的订单号。
func (g *SimulatedGateway) SubmitOrder(ctx context.Context, _ port.OrderDraft) (string, error) {
	timer := time.NewTimer(g.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	if g.roll() < g.failureRate {
		return "", port.ErrSubmissionFailed
	}

	id := "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:9])
	return id, nil
}

func (g *SimulatedGateway) roll() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Float64()
}

var _ port.Gateway = (*SimulatedGateway)(nil)
