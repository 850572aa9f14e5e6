package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices and totals travel as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

var (
	ErrOrderExists   = errors.New("order already exists")
	ErrOrderNotFound = errors.New("order not found")
)

type FoodCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type FoodItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl"`
	ImageHint   string          `json:"dataAiHint,omitempty"`
	Flavors     []string        `json:"flavors,omitempty"`
}

type CartLine struct {
	FoodItem
	Quantity       int    `json:"quantity"`
	SelectedFlavor string `json:"selectedFlavor,omitempty"`
	UniqueKey      string `json:"uniqueKey"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type UserDetails struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type CardType string

const (
	CardVisa       CardType = "visa"
	CardMastercard CardType = "mastercard"
	CardUnknown    CardType = "unknown"
)

type PaymentDetails struct {
	CardName   string   `json:"cardName"`
	CardNumber string   `json:"cardNumber"`
	ExpiryDate string   `json:"expiryDate"`
	CVV        string   `json:"cvv,omitempty"`
	CardType   CardType `json:"cardType,omitempty"`
}

// StoredPayment is the only payment shape that leaves the workflow: masked
// card number and no CVV.
type StoredPayment struct {
	CardName   string   `json:"cardName"`
	CardNumber string   `json:"cardNumber"`
	ExpiryDate string   `json:"expiryDate"`
	CardType   CardType `json:"cardType"`
}

type OrderStatus string

const (
	StatusPendingOTP OrderStatus = "pending_otp"
	StatusCompleted  OrderStatus = "completed"
)

type OrderItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type Order struct {
	OrderID        string          `json:"orderId"`
	Items          []OrderItem     `json:"items"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	UserDetails    UserDetails     `json:"userDetails"`
	PaymentDetails StoredPayment   `json:"paymentDetails"`
	Status         OrderStatus     `json:"status"`
	OTP            string          `json:"otp,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	VerifiedAt     *time.Time      `json:"verifiedAt,omitempty"`
}

const (
	EventOrderCreated  = "order_created"
	EventOrderVerified = "order_verified"
)

type OrderEvent struct {
	Type        string          `json:"type"`
	OrderID     string          `json:"orderId"`
	Status      OrderStatus     `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Timestamp   time.Time       `json:"timestamp"`
}

type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type SendResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
}
