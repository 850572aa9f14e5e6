package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"fastgrab/order-svc/internal/cart"
	"fastgrab/order-svc/internal/domain"
	"fastgrab/order-svc/internal/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type State string

const (
	StateBuilding             State = "building"
	StateAwaitingShippingInfo State = "awaiting_shipping_info"
	StateAwaitingPayment      State = "awaiting_payment"
	StateSubmitting           State = "submitting"
	StateAwaitingVerification State = "awaiting_verification"
	StateFinalizing           State = "finalizing"
	StateCompleted            State = "completed"
	StateAborted              State = "aborted"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("action not allowed in the current checkout state")
	ErrInProgress        = errors.New("a checkout step is already in progress")
	ErrStoreWrite        = errors.New("order could not be saved, please try again")
	ErrContextLost       = errors.New("order context lost, please restart checkout")
	ErrInvalidCode       = errors.New("verification code must be exactly 6 digits")
)

// CodeDisplayWindow is the countdown shown next to the verification prompt.
// Nothing expires when it runs out.
const CodeDisplayWindow = 3 * time.Minute

type Snapshot struct {
	State         State               `json:"state"`
	OrderID       string              `json:"orderId,omitempty"`
	Processing    bool                `json:"processing"`
	Total         decimal.Decimal     `json:"total"`
	ItemCount     int                 `json:"itemCount"`
	UserDetails   *domain.UserDetails `json:"userDetails,omitempty"`
	CardType      domain.CardType     `json:"cardType,omitempty"`
	CodeExpiresAt *time.Time          `json:"codeExpiresAt,omitempty"`
	LastOrder     *domain.Order       `json:"lastOrder,omitempty"`
}

type Collaborators struct {
	Orders     OrderStore
	Dispatcher *Dispatcher
	Publisher  EventPublisher
	Codes      CodeIssuer
	IDs        IDGenerator
	Operators  []string
	Now        func() time.Time
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewOrderID() string {
	return uuid.NewString()
}

// Checkout drives one shopper's order from cart review to a verified order.
// Store writes are awaited. Notifications and events are dispatched in the
// background, and only after the write they describe has been acknowledged.
type Checkout struct {
	mu            sync.Mutex
	state         State
	processing    bool
	cart          *cart.Store
	profile       ProfileStore
	user          *domain.UserDetails
	payment       *domain.PaymentDetails
	pending       *domain.Order
	codeExpiresAt time.Time
	lastOrder     *domain.Order
	lastSeen      atomic.Int64
	deps          Collaborators
}

func NewCheckout(ctx context.Context, cartStore *cart.Store, profile ProfileStore, deps Collaborators) *Checkout {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.IDs == nil {
		deps.IDs = UUIDGenerator{}
	}

	c := &Checkout{
		state:   StateBuilding,
		cart:    cartStore,
		profile: profile,
		deps:    deps,
	}
	c.Touch()

	if profile != nil {
		user, err := profile.LoadUserDetails(ctx)
		if err != nil {
			log.Printf("Warning: failed to restore user details: %v", err)
		} else {
			c.user = user
		}
	}
	return c
}

func (c *Checkout) Cart() *cart.Store {
	return c.cart
}

func (c *Checkout) Status() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Checkout) LastOrder() *domain.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastOrder == nil {
		return nil
	}
	order := *c.lastOrder
	return &order
}

// Begin moves a non-empty cart into the shipping step. An empty cart leaves
// the checkout in the building state.
func (c *Checkout) Begin(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Touch()

	if c.processing {
		return c.snapshotLocked(), ErrInProgress
	}
	switch c.state {
	case StateBuilding, StateAwaitingShippingInfo, StateAwaitingPayment, StateAborted, StateCompleted:
	default:
		return c.snapshotLocked(), ErrInvalidTransition
	}

	if c.cart.Empty() {
		c.state = StateBuilding
		return c.snapshotLocked(), ErrEmptyCart
	}

	c.state = StateAwaitingShippingInfo
	c.payment = nil
	c.pending = nil
	c.codeExpiresAt = time.Time{}
	return c.snapshotLocked(), nil
}

func (c *Checkout) SubmitShipping(ctx context.Context, details domain.UserDetails) (Snapshot, error) {
	c.mu.Lock()
	c.Touch()

	if c.processing {
		defer c.mu.Unlock()
		return c.snapshotLocked(), ErrInProgress
	}
	if c.state != StateAwaitingShippingInfo && c.state != StateAwaitingPayment {
		defer c.mu.Unlock()
		return c.snapshotLocked(), ErrInvalidTransition
	}
	if err := validation.ValidateUserDetails(details); err != nil {
		defer c.mu.Unlock()
		return c.snapshotLocked(), err
	}

	c.user = &details
	c.state = StateAwaitingPayment
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	if c.profile != nil {
		if err := c.profile.SaveUserDetails(ctx, details); err != nil {
			log.Printf("Warning: failed to persist user details: %v", err)
		}
	}
	return snapshot, nil
}

// SubmitPayment validates the card, snapshots the cart into a pending order and
// records it. The verification step is only reachable once the order store has
// acknowledged the write.
func (c *Checkout) SubmitPayment(ctx context.Context, details domain.PaymentDetails) (Snapshot, error) {
	c.mu.Lock()
	c.Touch()

	if c.processing {
		defer c.mu.Unlock()
		return c.snapshotLocked(), ErrInProgress
	}
	switch c.state {
	case StateAwaitingPayment, StateSubmitting, StateAborted:
	default:
		defer c.mu.Unlock()
		return c.snapshotLocked(), ErrInvalidTransition
	}
	if c.user == nil {
		defer c.mu.Unlock()
		c.abortLocked()
		return c.snapshotLocked(), ErrContextLost
	}
	if err := validation.ValidatePaymentDetails(details); err != nil {
		defer c.mu.Unlock()
		return c.snapshotLocked(), err
	}

	lines := c.cart.Lines()
	if len(lines) == 0 {
		defer c.mu.Unlock()
		c.state = StateBuilding
		c.pending = nil
		return c.snapshotLocked(), ErrEmptyCart
	}

	details.CardType = validation.DetectCardType(details.CardNumber)

	retry := c.state == StateSubmitting && c.pending != nil
	orderID := c.deps.IDs.NewOrderID()
	if retry {
		orderID = c.pending.OrderID
	}

	order := c.buildOrder(orderID, lines, *c.user, details)
	c.pending = order
	c.payment = &details
	c.state = StateSubmitting
	c.processing = true
	payload := *order
	c.mu.Unlock()

	err := c.deps.Orders.Create(ctx, &payload)
	if err != nil && retry && errors.Is(err, domain.ErrOrderExists) {
		log.Printf("Order %s already recorded by an earlier attempt", orderID)
		err = nil
	}

	c.mu.Lock()
	c.processing = false
	if err != nil {
		defer c.mu.Unlock()
		log.Printf("ERROR: failed to create order %s: %v", orderID, err)
		return c.snapshotLocked(), fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}

	if !payload.CreatedAt.IsZero() {
		c.pending.CreatedAt = payload.CreatedAt
	}
	c.state = StateAwaitingVerification
	c.codeExpiresAt = c.deps.Now().Add(CodeDisplayWindow)
	created := *c.pending
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.announce(&created, domain.EventOrderCreated, func() (domain.Message, error) {
		return NewOrderMessage(&created, c.deps.Operators)
	})
	if c.deps.Codes != nil {
		if _, err := c.deps.Codes.Issue(context.WithoutCancel(ctx), &created); err != nil {
			log.Printf("Warning: failed to issue verification code for order %s: %v", created.OrderID, err)
		}
	}
	return snapshot, nil
}

// Verify accepts any six digit code, marks the pending order completed and
// clears the cart and payment details.
func (c *Checkout) Verify(ctx context.Context, code string) (Snapshot, error) {
	c.mu.Lock()
	c.Touch()

	if c.processing {
		defer c.mu.Unlock()
		return c.snapshotLocked(), ErrInProgress
	}
	switch c.state {
	case StateAwaitingVerification:
		if c.pending == nil || c.user == nil {
			defer c.mu.Unlock()
			c.abortLocked()
			return c.snapshotLocked(), ErrContextLost
		}
	case StateBuilding, StateAborted:
		defer c.mu.Unlock()
		c.abortLocked()
		return c.snapshotLocked(), ErrContextLost
	default:
		defer c.mu.Unlock()
		return c.snapshotLocked(), ErrInvalidTransition
	}
	if !validation.ValidCode(code) {
		defer c.mu.Unlock()
		return c.snapshotLocked(), ErrInvalidCode
	}

	orderID := c.pending.OrderID
	c.processing = true
	c.mu.Unlock()

	err := c.deps.Orders.UpdateVerification(ctx, orderID, code, domain.StatusCompleted)

	c.mu.Lock()
	c.processing = false
	if err != nil {
		defer c.mu.Unlock()
		if errors.Is(err, domain.ErrOrderNotFound) {
			c.abortLocked()
			return c.snapshotLocked(), fmt.Errorf("%w: %w", ErrContextLost, err)
		}
		log.Printf("ERROR: failed to verify order %s: %v", orderID, err)
		return c.snapshotLocked(), fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}

	verifiedAt := c.deps.Now()
	completed := *c.pending
	completed.OTP = code
	completed.Status = domain.StatusCompleted
	completed.VerifiedAt = &verifiedAt
	c.state = StateFinalizing

	// The order is already completed in the store, so finalizing must not
	// depend on the caller still being connected.
	c.cart.Clear(context.WithoutCancel(ctx))
	c.payment = nil
	c.pending = nil
	c.codeExpiresAt = time.Time{}
	c.lastOrder = &completed
	c.state = StateCompleted
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.announce(&completed, domain.EventOrderVerified, func() (domain.Message, error) {
		return VerificationMessage(&completed, code, c.deps.Operators)
	})
	return snapshot, nil
}

// Cancel abandons the current attempt. A recorded order stays pending.
func (c *Checkout) Cancel(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Touch()

	if c.processing {
		return c.snapshotLocked(), ErrInProgress
	}
	if c.state == StateCompleted {
		return c.snapshotLocked(), ErrInvalidTransition
	}
	if c.pending != nil {
		log.Printf("Checkout cancelled, order %s left pending", c.pending.OrderID)
	}
	c.abortLocked()
	return c.snapshotLocked(), nil
}

// Reset forgets the cart, shipping details and payment details.
func (c *Checkout) Reset(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Touch()

	if c.processing {
		return c.snapshotLocked(), ErrInProgress
	}

	c.cart.Clear(ctx)
	c.user = nil
	c.payment = nil
	c.pending = nil
	c.codeExpiresAt = time.Time{}
	c.state = StateBuilding
	if c.profile != nil {
		if err := c.profile.ClearUserDetails(ctx); err != nil {
			log.Printf("Warning: failed to clear user details: %v", err)
		}
	}
	return c.snapshotLocked(), nil
}

// Touch records activity without taking the checkout lock, so the session
// registry can mark a checkout as in use before handing it out.
func (c *Checkout) Touch() {
	c.lastSeen.Store(c.deps.Now().UnixNano())
}

func (c *Checkout) IdleSince() time.Time {
	return time.Unix(0, c.lastSeen.Load())
}

// Busy reports whether a store write is outstanding.
func (c *Checkout) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.processing
}

func (c *Checkout) announce(order *domain.Order, eventType string, render func() (domain.Message, error)) {
	msg, err := render()
	if err != nil {
		log.Printf("Warning: %v", err)
	} else {
		c.deps.Dispatcher.Dispatch(msg)
	}

	c.deps.Dispatcher.Publish(c.deps.Publisher, domain.OrderEvent{
		Type:        eventType,
		OrderID:     order.OrderID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		Timestamp:   c.deps.Now(),
	})
}

func (c *Checkout) buildOrder(orderID string, lines []domain.CartLine, user domain.UserDetails, payment domain.PaymentDetails) *domain.Order {
	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		name := line.Name
		if line.SelectedFlavor != "" {
			name += " (" + line.SelectedFlavor + ")"
		}
		items = append(items, domain.OrderItem{
			Name:     name,
			Quantity: line.Quantity,
			Price:    line.Price,
			Subtotal: line.Subtotal(),
		})
	}

	return &domain.Order{
		OrderID:     orderID,
		Items:       items,
		TotalAmount: cart.Total(lines),
		UserDetails: user,
		PaymentDetails: domain.StoredPayment{
			CardName:   payment.CardName,
			CardNumber: validation.MaskCardNumber(payment.CardNumber),
			ExpiryDate: payment.ExpiryDate,
			CardType:   payment.CardType,
		},
		Status:    domain.StatusPendingOTP,
		CreatedAt: c.deps.Now(),
	}
}

func (c *Checkout) abortLocked() {
	c.state = StateAborted
	c.processing = false
	c.pending = nil
	c.payment = nil
	c.codeExpiresAt = time.Time{}
}

func (c *Checkout) snapshotLocked() Snapshot {
	snapshot := Snapshot{
		State:      c.state,
		Processing: c.processing,
		Total:      c.cart.Total(),
		ItemCount:  c.cart.Count(),
	}
	if c.user != nil {
		user := *c.user
		snapshot.UserDetails = &user
	}
	if c.payment != nil {
		snapshot.CardType = c.payment.CardType
	}
	if c.pending != nil {
		snapshot.OrderID = c.pending.OrderID
	}
	if !c.codeExpiresAt.IsZero() {
		expires := c.codeExpiresAt
		snapshot.CodeExpiresAt = &expires
	}
	if c.lastOrder != nil {
		order := *c.lastOrder
		snapshot.LastOrder = &order
	}
	return snapshot
}
