package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

var ErrOrderNotFound = errors.New("order not found")

const (
	StatusPendingOTP = "pending_otp"
	StatusCompleted  = "completed"
)

type OrderItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type Customer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type Payment struct {
	CardName   string `json:"cardName"`
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	CardType   string `json:"cardType"`
}

// Order is the dashboard's read model of an order row.
type Order struct {
	OrderID        string          `json:"orderId"`
	Items          []OrderItem     `json:"items"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	UserDetails    Customer        `json:"userDetails"`
	PaymentDetails Payment         `json:"paymentDetails"`
	Status         string          `json:"status"`
	OTP            string          `json:"otp,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	VerifiedAt     *time.Time      `json:"verifiedAt,omitempty"`
}

type Stats struct {
	Total     int             `json:"total"`
	Pending   int             `json:"pending"`
	Completed int             `json:"completed"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// Update is pushed to dashboards after every refresh.
type Update struct {
	Type        string    `json:"type"`
	Stats       Stats     `json:"stats"`
	NewOrderIDs []string  `json:"newOrderIds"`
	Alert       bool      `json:"alert"`
	At          time.Time `json:"at"`
}

type Page struct {
	Orders      []Order `json:"orders"`
	Page        int     `json:"page"`
	PageSize    int     `json:"pageSize"`
	TotalPages  int     `json:"totalPages"`
	TotalOrders int     `json:"totalOrders"`
	Pinned      *Order  `json:"pinned,omitempty"`
	Stats       Stats   `json:"stats"`
}

const (
	EventOrderCreated  = "order_created"
	EventOrderVerified = "order_verified"
)

// OrderEvent is published by the checkout service on the orders topic.
type OrderEvent struct {
	Type      string    `json:"type"`
	OrderID   string    `json:"orderId"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
