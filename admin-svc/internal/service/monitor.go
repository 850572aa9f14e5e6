package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"fastgrab/admin-svc/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Monitor holds the latest order snapshot seen by the dashboard. The first
// snapshot only seeds the set of known orders; later snapshots report the ids
// they add and raise an alert when there are any.
type Monitor struct {
	refreshMu sync.Mutex

	mu     sync.RWMutex
	orders []domain.Order
	known  map[string]struct{}
	seeded bool
	stats  domain.Stats

	reader OrderReader
	pins   PinStore
	now    func() time.Time
}

func NewMonitor(reader OrderReader, pins PinStore) *Monitor {
	return &Monitor{
		known:  make(map[string]struct{}),
		reader: reader,
		pins:   pins,
		now:    time.Now,
	}
}

func (m *Monitor) Refresh(ctx context.Context) (domain.Update, error) {
	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()

	orders, err := m.reader.ListOrders(ctx)
	if err != nil {
		return domain.Update{}, fmt.Errorf("failed to refresh orders: %w", err)
	}
	return m.Apply(orders), nil
}

func (m *Monitor) Apply(orders []domain.Order) domain.Update {
	m.mu.Lock()
	defer m.mu.Unlock()

	newIDs := []string{}
	for _, order := range orders {
		if _, ok := m.known[order.OrderID]; ok {
			continue
		}
		m.known[order.OrderID] = struct{}{}
		if m.seeded {
			newIDs = append(newIDs, order.OrderID)
		}
	}

	m.orders = orders
	m.stats = ComputeStats(orders)
	first := !m.seeded
	m.seeded = true

	if first {
		log.Printf("Dashboard seeded with %d orders", len(orders))
	} else if len(newIDs) > 0 {
		log.Printf("New orders arrived: %v", newIDs)
	}

	return domain.Update{
		Type:        "snapshot",
		Stats:       m.stats,
		NewOrderIDs: newIDs,
		Alert:       !first && len(newIDs) > 0,
		At:          m.now(),
	}
}

func ComputeStats(orders []domain.Order) domain.Stats {
	stats := domain.Stats{Total: len(orders), Revenue: decimal.Zero}
	for _, order := range orders {
		switch order.Status {
		case domain.StatusPendingOTP:
			stats.Pending++
		case domain.StatusCompleted:
			stats.Completed++
			stats.Revenue = stats.Revenue.Add(order.TotalAmount)
		}
	}
	return stats
}

func (m *Monitor) ensureSeeded(ctx context.Context) error {
	m.mu.RLock()
	seeded := m.seeded
	m.mu.RUnlock()
	if seeded {
		return nil
	}
	_, err := m.Refresh(ctx)
	return err
}

func (m *Monitor) Stats(ctx context.Context) (domain.Stats, error) {
	if err := m.ensureSeeded(ctx); err != nil {
		return domain.Stats{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats, nil
}

func (m *Monitor) Page(ctx context.Context, page, size int) (domain.Page, error) {
	if err := m.ensureSeeded(ctx); err != nil {
		return domain.Page{}, err
	}
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	pinnedID := ""
	if m.pins != nil {
		id, err := m.pins.Pinned(ctx)
		if err != nil {
			log.Printf("Warning: failed to load pinned order: %v", err)
		}
		pinnedID = id
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	total := len(m.orders)
	result := domain.Page{
		Orders:      []domain.Order{},
		Page:        page,
		PageSize:    size,
		TotalPages:  (total + size - 1) / size,
		TotalOrders: total,
		Stats:       m.stats,
	}
	if start := (page - 1) * size; start < total {
		end := start + size
		if end > total {
			end = total
		}
		result.Orders = append(result.Orders, m.orders[start:end]...)
	}
	if pinnedID != "" {
		for _, order := range m.orders {
			if order.OrderID == pinnedID {
				pinned := order
				result.Pinned = &pinned
				break
			}
		}
	}
	return result, nil
}

func (m *Monitor) Pin(ctx context.Context, orderID string) error {
	if err := m.ensureSeeded(ctx); err != nil {
		return err
	}
	m.mu.RLock()
	_, ok := m.known[orderID]
	m.mu.RUnlock()
	if !ok {
		return domain.ErrOrderNotFound
	}
	return m.pins.Pin(ctx, orderID)
}

func (m *Monitor) Unpin(ctx context.Context) error {
	return m.pins.Unpin(ctx)
}

// AllOrders reads straight from the store so exports do not mark orders as seen.
func (m *Monitor) AllOrders(ctx context.Context) ([]domain.Order, error) {
	return m.reader.ListOrders(ctx)
}
