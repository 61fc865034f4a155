package adapter

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"artisan/internal/service/cart/domain"
	"artisan/internal/service/cart/port"
)

// MemoryPersistence 是进程内的 port.Persistence 实现，
// 用于测试和没有 Redis 的本地模式。内部同样以 JSON 存放，
// 让序列化往返走的是和真实后端一样的路径。
type MemoryPersistence struct {
	mu      sync.RWMutex
	payload []byte
	set     bool
}

func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{}
}

func (p *MemoryPersistence) Load(_ context.Context) (domain.State, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.set {
		return domain.State{}, port.ErrNotFound
	}
	var state domain.State
	if err := json.Unmarshal(p.payload, &state); err != nil {
		return domain.State{}, errors.Wrap(port.ErrCorrupted, err.Error())
	}
	return state, nil
}

func (p *MemoryPersistence) Save(_ context.Context, state domain.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "cart: encode state")
	}
	p.mu.Lock()
	p.payload = payload
	p.set = true
	p.mu.Unlock()
	return nil
}

func (p *MemoryPersistence) Clear(_ context.Context) error {
	p.mu.Lock()
	p.payload = nil
	p.set = false
	p.mu.Unlock()
	return nil
}

// SeedRaw 直接写入原始字节，测试用来模拟旧格式或损坏的数据。
func (p *MemoryPersistence) SeedRaw(payload []byte) {
	p.mu.Lock()
	p.payload = payload
	p.set = true
	p.mu.Unlock()
}

// Raw 返回当前存储的原始字节，len == 0 表示没有记录。
func (p *MemoryPersistence) Raw() []byte {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.set {
		return nil
	}
	out := make([]byte, len(p.payload))
	copy(out, p.payload)
	return out
}

var _ port.Persistence = (*MemoryPersistence)(nil)
