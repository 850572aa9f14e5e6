package service

import (
	"context"
	"net/http"

	"fastgrab/order-svc/internal/cart"
	"fastgrab/order-svc/internal/domain"
)

type CheckoutServiceInterface interface {
	Cart(ctx context.Context, sessionID string) (CartView, error)
	AddToCart(ctx context.Context, sessionID string, req AddToCartRequest) (CartView, error)
	UpdateQuantity(ctx context.Context, sessionID, key string, quantity int) (CartView, error)
	RemoveFromCart(ctx context.Context, sessionID, key string) (CartView, error)
	ClearCart(ctx context.Context, sessionID string) (CartView, error)
	CartRecommendations(ctx context.Context, sessionID string) ([]string, error)

	Status(ctx context.Context, sessionID string) (Snapshot, error)
	Begin(ctx context.Context, sessionID string) (Snapshot, error)
	SubmitShipping(ctx context.Context, sessionID string, details domain.UserDetails) (Snapshot, error)
	SubmitPayment(ctx context.Context, sessionID string, details domain.PaymentDetails) (Snapshot, error)
	Verify(ctx context.Context, sessionID, code string) (Snapshot, error)
	Cancel(ctx context.Context, sessionID string) (Snapshot, error)
	Reset(ctx context.Context, sessionID string) (Snapshot, error)
	LastOrder(ctx context.Context, sessionID string) (*domain.Order, error)
}

type OrderServiceInterface interface {
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	QRCode(ctx context.Context, orderID string) ([]byte, error)
}

type RecommendationServiceInterface interface {
	Recommend(ctx context.Context, selectedItems, availableItems []string) []string
}

type OrderStore interface {
	Create(ctx context.Context, order *domain.Order) error
	UpdateVerification(ctx context.Context, orderID, code string, status domain.OrderStatus) error
	Get(ctx context.Context, orderID string) (*domain.Order, error)
}

type Notifier interface {
	Send(ctx context.Context, msg domain.Message) domain.SendResult
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

// ProfileStore keeps the shopper's shipping details between orders.
type ProfileStore interface {
	LoadUserDetails(ctx context.Context) (*domain.UserDetails, error)
	SaveUserDetails(ctx context.Context, details domain.UserDetails) error
	ClearUserDetails(ctx context.Context) error
}

type SessionPersistence interface {
	cart.Persistence
	ProfileStore
}

type SessionStorage interface {
	ForSession(sessionID string) SessionPersistence
}

// CodeIssuer hands the shopper a verification code out of band.
type CodeIssuer interface {
	Issue(ctx context.Context, order *domain.Order) (string, error)
}

type IDGenerator interface {
	NewOrderID() string
}

type QRGenerator interface {
	Generate(orderID string) ([]byte, error)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

var (
	_ CheckoutServiceInterface       = (*CheckoutService)(nil)
	_ OrderServiceInterface          = (*OrderService)(nil)
	_ RecommendationServiceInterface = (*RecommendationService)(nil)
)
