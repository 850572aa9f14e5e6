package cart

import (
	"context"
	"log"
	"sync"

	"fastgrab/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// Persistence keeps a copy of the cart lines outside the process.
type Persistence interface {
	LoadCart(ctx context.Context) ([]domain.CartLine, error)
	SaveCart(ctx context.Context, lines []domain.CartLine) error
}

type Store struct {
	mu          sync.Mutex
	lines       []domain.CartLine
	persistence Persistence
}

// NewStore restores the last saved cart. A failed load starts an empty cart.
func NewStore(ctx context.Context, persistence Persistence) *Store {
	s := &Store{persistence: persistence}
	if persistence == nil {
		return s
	}

	lines, err := persistence.LoadCart(ctx)
	if err != nil {
		log.Printf("Warning: failed to restore cart: %v", err)
		return s
	}
	for _, line := range lines {
		if line.Quantity < 1 || line.UniqueKey == "" {
			continue
		}
		s.lines = append(s.lines, line)
	}
	return s
}

// UniqueKey distinguishes the same item ordered with different customizations.
func UniqueKey(itemID, flavor, variant string) string {
	key := itemID
	if flavor != "" {
		key += "-" + flavor
	}
	if variant != "" {
		key += "-" + variant
	}
	return key
}

func (s *Store) AddItem(ctx context.Context, item domain.FoodItem, quantity int, flavor, variant string) domain.CartLine {
	if quantity < 1 {
		quantity = 1
	}
	key := UniqueKey(item.ID, flavor, variant)

	s.mu.Lock()
	var line domain.CartLine
	if i := s.indexOf(key); i >= 0 {
		s.lines[i].Quantity += quantity
		line = s.lines[i]
	} else {
		line = domain.CartLine{
			FoodItem:       item,
			Quantity:       quantity,
			SelectedFlavor: flavor,
			UniqueKey:      key,
		}
		s.lines = append(s.lines, line)
	}
	snapshot := s.copyLines()
	s.mu.Unlock()

	s.save(ctx, snapshot)
	return line
}

func (s *Store) RemoveItem(ctx context.Context, key string) {
	s.mu.Lock()
	i := s.indexOf(key)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	snapshot := s.copyLines()
	s.mu.Unlock()

	s.save(ctx, snapshot)
}

// SetQuantity overwrites a line's quantity; zero or less removes the line.
func (s *Store) SetQuantity(ctx context.Context, key string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, key)
		return
	}

	s.mu.Lock()
	i := s.indexOf(key)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.lines[i].Quantity = quantity
	snapshot := s.copyLines()
	s.mu.Unlock()

	s.save(ctx, snapshot)
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()

	s.save(ctx, []domain.CartLine{})
}

func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLines()
}

func (s *Store) Line(key string) (domain.CartLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(key); i >= 0 {
		return s.lines[i], true
	}
	return domain.CartLine{}, false
}

// Count is the number of units across all lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, line := range s.lines {
		n += line.Quantity
	}
	return n
}

func (s *Store) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Total(s.lines)
}

func Total(lines []domain.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

func (s *Store) indexOf(key string) int {
	for i, line := range s.lines {
		if line.UniqueKey == key {
			return i
		}
	}
	return -1
}

func (s *Store) copyLines() []domain.CartLine {
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) save(ctx context.Context, lines []domain.CartLine) {
	if s.persistence == nil {
		return
	}
	if err := s.persistence.SaveCart(ctx, lines); err != nil {
		log.Printf("Warning: failed to persist cart: %v", err)
	}
}

// MemoryPersistence keeps the saved cart in process memory.
type MemoryPersistence struct {
	mu    sync.Mutex
	lines []domain.CartLine
}

func (m *MemoryPersistence) LoadCart(ctx context.Context) ([]domain.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.CartLine(nil), m.lines...), nil
}

func (m *MemoryPersistence) SaveCart(ctx context.Context, lines []domain.CartLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append([]domain.CartLine(nil), lines...)
	return nil
}
