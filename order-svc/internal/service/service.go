package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fastgrab/order-svc/internal/cart"
	"fastgrab/order-svc/internal/catalog"
	"fastgrab/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	ErrLineNotFound  = errors.New("cart line not found")
	ErrInvalidFlavor = errors.New("flavor not offered for this item")
	ErrInvalidQty    = errors.New("quantity must be positive")
)

type CartView struct {
	Lines     []domain.CartLine `json:"lines"`
	Total     decimal.Decimal   `json:"total"`
	ItemCount int               `json:"itemCount"`
}

type AddToCartRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
	Flavor   string `json:"flavor,omitempty"`
	Variant  string `json:"variant,omitempty"`
}

// CheckoutService keeps one Checkout per shopper session.
type CheckoutService struct {
	mu          sync.Mutex
	sessions    map[string]*Checkout
	storage     SessionStorage
	catalog     *catalog.Provider
	recommender RecommendationServiceInterface
	deps        Collaborators
}

func NewCheckoutService(menu *catalog.Provider, storage SessionStorage, recommender RecommendationServiceInterface, deps Collaborators) *CheckoutService {
	if storage == nil {
		storage = NewMemorySessionStorage()
	}
	return &CheckoutService{
		sessions:    make(map[string]*Checkout),
		storage:     storage,
		catalog:     menu,
		recommender: recommender,
		deps:        deps,
	}
}

func (s *CheckoutService) session(ctx context.Context, sessionID string) *Checkout {
	if checkout := s.lookup(sessionID); checkout != nil {
		return checkout
	}

	// Restoring from session storage happens outside the registry lock.
	persistence := s.storage.ForSession(sessionID)
	checkout := NewCheckout(ctx, cart.NewStore(ctx, persistence), persistence, s.deps)

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[sessionID]; ok {
		existing.Touch()
		return existing
	}
	s.sessions[sessionID] = checkout
	return checkout
}

func (s *CheckoutService) lookup(sessionID string) *Checkout {
	s.mu.Lock()
	defer s.mu.Unlock()
	checkout, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	checkout.Touch()
	return checkout
}

// EvictIdle drops sessions untouched for longer than maxIdle. Their carts and
// shipping details stay in session storage; an in-flight verification does not.
// Sessions with an outstanding store write are kept.
func (s *CheckoutService) EvictIdle(maxIdle time.Duration) int {
	now := time.Now
	if s.deps.Now != nil {
		now = s.deps.Now
	}
	cutoff := now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, checkout := range s.sessions {
		if checkout.IdleSince().Before(cutoff) && !checkout.Busy() {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

func (s *CheckoutService) Cart(ctx context.Context, sessionID string) (CartView, error) {
	return cartView(s.session(ctx, sessionID).Cart()), nil
}

func (s *CheckoutService) AddToCart(ctx context.Context, sessionID string, req AddToCartRequest) (CartView, error) {
	item, err := s.catalog.Item(req.ItemID)
	if err != nil {
		return CartView{}, err
	}
	if req.Flavor != "" && !offersFlavor(item, req.Flavor) {
		return CartView{}, ErrInvalidFlavor
	}
	if req.Quantity < 0 {
		return CartView{}, ErrInvalidQty
	}

	store := s.session(ctx, sessionID).Cart()
	store.AddItem(ctx, item, req.Quantity, req.Flavor, req.Variant)
	return cartView(store), nil
}

func (s *CheckoutService) UpdateQuantity(ctx context.Context, sessionID, key string, quantity int) (CartView, error) {
	store := s.session(ctx, sessionID).Cart()
	if _, ok := store.Line(key); !ok {
		return cartView(store), ErrLineNotFound
	}
	store.SetQuantity(ctx, key, quantity)
	return cartView(store), nil
}

func (s *CheckoutService) RemoveFromCart(ctx context.Context, sessionID, key string) (CartView, error) {
	store := s.session(ctx, sessionID).Cart()
	store.RemoveItem(ctx, key)
	return cartView(store), nil
}

func (s *CheckoutService) ClearCart(ctx context.Context, sessionID string) (CartView, error) {
	store := s.session(ctx, sessionID).Cart()
	store.Clear(ctx)
	return cartView(store), nil
}

func (s *CheckoutService) CartRecommendations(ctx context.Context, sessionID string) ([]string, error) {
	if s.recommender == nil {
		return []string{}, nil
	}
	lines := s.session(ctx, sessionID).Cart().Lines()
	selected := make([]string, 0, len(lines))
	for _, line := range lines {
		selected = append(selected, line.Name)
	}
	return s.recommender.Recommend(ctx, selected, s.catalog.ItemNames()), nil
}

func (s *CheckoutService) Status(ctx context.Context, sessionID string) (Snapshot, error) {
	return s.session(ctx, sessionID).Status(), nil
}

func (s *CheckoutService) Begin(ctx context.Context, sessionID string) (Snapshot, error) {
	return s.session(ctx, sessionID).Begin(ctx)
}

func (s *CheckoutService) SubmitShipping(ctx context.Context, sessionID string, details domain.UserDetails) (Snapshot, error) {
	return s.session(ctx, sessionID).SubmitShipping(ctx, details)
}

func (s *CheckoutService) SubmitPayment(ctx context.Context, sessionID string, details domain.PaymentDetails) (Snapshot, error) {
	return s.session(ctx, sessionID).SubmitPayment(ctx, details)
}

func (s *CheckoutService) Verify(ctx context.Context, sessionID, code string) (Snapshot, error) {
	return s.session(ctx, sessionID).Verify(ctx, code)
}

func (s *CheckoutService) Cancel(ctx context.Context, sessionID string) (Snapshot, error) {
	return s.session(ctx, sessionID).Cancel(ctx)
}

func (s *CheckoutService) Reset(ctx context.Context, sessionID string) (Snapshot, error) {
	return s.session(ctx, sessionID).Reset(ctx)
}

func (s *CheckoutService) LastOrder(ctx context.Context, sessionID string) (*domain.Order, error) {
	order := s.session(ctx, sessionID).LastOrder()
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func cartView(store *cart.Store) CartView {
	lines := store.Lines()
	return CartView{
		Lines:     lines,
		Total:     cart.Total(lines),
		ItemCount: store.Count(),
	}
}

func offersFlavor(item domain.FoodItem, flavor string) bool {
	for _, f := range item.Flavors {
		if f == flavor {
			return true
		}
	}
	return false
}

type OrderService struct {
	store OrderStore
	qr    QRGenerator
}

func NewOrderService(store OrderStore, qr QRGenerator) *OrderService {
	return &OrderService{store: store, qr: qr}
}

func (s *OrderService) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.store.Get(ctx, orderID)
}

func (s *OrderService) QRCode(ctx context.Context, orderID string) ([]byte, error) {
	if _, err := s.store.Get(ctx, orderID); err != nil {
		return nil, err
	}
	png, err := s.qr.Generate(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

// MemorySessionStorage keeps session carts and shipping details in memory.
type MemorySessionStorage struct {
	mu       sync.Mutex
	sessions map[string]*memorySession
}

func NewMemorySessionStorage() *MemorySessionStorage {
	return &MemorySessionStorage{sessions: make(map[string]*memorySession)}
}

func (m *MemorySessionStorage) ForSession(sessionID string) SessionPersistence {
	m.mu.Lock()
	defer m.mu.Unlock()
	if session, ok := m.sessions[sessionID]; ok {
		return session
	}
	session := &memorySession{}
	m.sessions[sessionID] = session
	return session
}

type memorySession struct {
	cart.MemoryPersistence
	mu   sync.Mutex
	user *domain.UserDetails
}

func (m *memorySession) LoadUserDetails(ctx context.Context) (*domain.UserDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil, nil
	}
	user := *m.user
	return &user, nil
}

func (m *memorySession) SaveUserDetails(ctx context.Context, details domain.UserDetails) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = &details
	return nil
}

func (m *memorySession) ClearUserDetails(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	return nil
}
