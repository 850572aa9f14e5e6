package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"fastgrab/order-svc/internal/domain"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) Create(ctx context.Context, order *domain.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}
	user, err := json.Marshal(order.UserDetails)
	if err != nil {
		return fmt.Errorf("failed to encode user details: %w", err)
	}
	payment, err := json.Marshal(order.PaymentDetails)
	if err != nil {
		return fmt.Errorf("failed to encode payment details: %w", err)
	}

	err = r.DB.QueryRowContext(ctx, `
		INSERT INTO orders (order_id, items, total_amount, user_details, payment_details, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, order.OrderID, items, order.TotalAmount, user, payment, string(order.Status)).
		Scan(&order.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrOrderExists
		}
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateVerification(ctx context.Context, orderID, code string, status domain.OrderStatus) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE orders
		SET otp = $1, status = $2, verified_at = NOW()
		WHERE order_id = $3
	`, code, string(status), orderID)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if affected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	var (
		order                domain.Order
		items, user, payment []byte
		status               string
		otp                  sql.NullString
		verifiedAt           sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT order_id, items, total_amount, user_details, payment_details, status, otp, created_at, verified_at
		FROM orders
		WHERE order_id = $1
	`, orderID).Scan(&order.OrderID, &items, &order.TotalAmount, &user, &payment, &status, &otp, &order.CreatedAt, &verifiedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	if err := json.Unmarshal(user, &order.UserDetails); err != nil {
		return nil, fmt.Errorf("failed to decode user details: %w", err)
	}
	if err := json.Unmarshal(payment, &order.PaymentDetails); err != nil {
		return nil, fmt.Errorf("failed to decode payment details: %w", err)
	}
	order.Status = domain.OrderStatus(status)
	order.OTP = otp.String
	if verifiedAt.Valid {
		t := verifiedAt.Time
		order.VerifiedAt = &t
	}
	return &order, nil
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			order_id TEXT PRIMARY KEY,
			items JSONB NOT NULL,
			total_amount NUMERIC(12,2) NOT NULL,
			user_details JSONB NOT NULL,
			payment_details JSONB NOT NULL,
			status TEXT NOT NULL,
			otp TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			verified_at TIMESTAMPTZ
		)`,
		"CREATE INDEX IF NOT EXISTS orders_created_at_idx ON orders (created_at DESC)",
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}
