package budget

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Store records estimated model spend per client and per UTC day.
type Store interface {
	AddSpend(ctx context.Context, client string, usd float64, at time.Time) error
	GetClientSpend(ctx context.Context, client string, day time.Time) (float64, error)
	GetDailySpend(ctx context.Context, day time.Time) (float64, error)
}

// Guard refuses model calls once the daily or per-client USD cap would be
// crossed. A zero limit disables that check; a nil Guard allows everything.
type Guard struct {
	dailyLimit  float64
	clientLimit float64
	store       Store
}

func NewGuard(dailyLimit, clientLimit float64, store Store) *Guard {
	return &Guard{
		dailyLimit:  dailyLimit,
		clientLimit: clientLimit,
		store:       store,
	}
}

func (g *Guard) Enabled() bool {
	return g != nil && g.store != nil && (g.dailyLimit > 0 || g.clientLimit > 0)
}

func (g *Guard) Allow(ctx context.Context, client string, projectedUSD float64, now time.Time) (bool, string, error) {
	if !g.Enabled() {
		return true, "", nil
	}

	if g.clientLimit > 0 {
		spent, err := g.store.GetClientSpend(ctx, client, now)
		if err != nil {
			return false, "", err
		}
		if spent+projectedUSD > g.clientLimit {
			return false, fmt.Sprintf("client budget exceeded (limit=%.4f USD)", g.clientLimit), nil
		}
	}

	if g.dailyLimit > 0 {
		spent, err := g.store.GetDailySpend(ctx, now)
		if err != nil {
			return false, "", err
		}
		if spent+projectedUSD > g.dailyLimit {
			return false, fmt.Sprintf("daily budget exceeded (limit=%.4f USD)", g.dailyLimit), nil
		}
	}

	return true, "", nil
}

func (g *Guard) Record(ctx context.Context, client string, usd float64, now time.Time) error {
	if !g.Enabled() || usd <= 0 {
		return nil
	}
	return g.store.AddSpend(ctx, client, usd, now)
}

// MemoryStore keeps only the current day; older totals are dropped on the
// first write of a new day.
type MemoryStore struct {
	mu       sync.Mutex
	day      string
	byClient map[string]float64
	total    float64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byClient: make(map[string]float64)}
}

func (m *MemoryStore) AddSpend(_ context.Context, client string, usd float64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d := dayKey(at); d != m.day {
		m.day = d
		m.byClient = make(map[string]float64)
		m.total = 0
	}

	m.byClient[client] += usd
	m.total += usd
	return nil
}

func (m *MemoryStore) GetClientSpend(_ context.Context, client string, day time.Time) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if dayKey(day) != m.day {
		return 0, nil
	}
	return m.byClient[client], nil
}

func (m *MemoryStore) GetDailySpend(_ context.Context, day time.Time) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if dayKey(day) != m.day {
		return 0, nil
	}
	return m.total, nil
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
