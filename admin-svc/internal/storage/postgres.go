package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"fastgrab/admin-svc/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// ListOrders returns every order, newest first.
func (r *PostgresRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT order_id, items, total_amount, user_details, payment_details, status,
		       COALESCE(otp, ''), created_at, verified_at
		FROM orders
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var (
			order                domain.Order
			items, user, payment []byte
			verifiedAt           sql.NullTime
		)
		if err := rows.Scan(&order.OrderID, &items, &order.TotalAmount, &user, &payment,
			&order.Status, &order.OTP, &order.CreatedAt, &verifiedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		if err := decodeColumns(&order, items, user, payment); err != nil {
			return nil, fmt.Errorf("order %s: %w", order.OrderID, err)
		}
		if verifiedAt.Valid {
			t := verifiedAt.Time
			order.VerifiedAt = &t
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func decodeColumns(order *domain.Order, items, user, payment []byte) error {
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return err
	}
	if err := json.Unmarshal(user, &order.UserDetails); err != nil {
		return err
	}
	return json.Unmarshal(payment, &order.PaymentDetails)
}
