package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"

	"fastgrab/order-svc/internal/domain"
	"fastgrab/order-svc/internal/validation"
)

// SimulatedSMS stands in for an SMS gateway. The code is only logged and the
// workflow accepts any six digit code regardless of what was issued.
type SimulatedSMS struct{}

func (SimulatedSMS) Issue(ctx context.Context, order *domain.Order) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64()+100000)
	log.Printf("Verification code for order %s sent to %s", order.OrderID, validation.MaskPhone(order.UserDetails.Phone))
	return code, nil
}
