package service

import (
	"fmt"
	"net/url"

	"github.com/skip2/go-qrcode"
)

// DefaultQRGenerator encodes a link back to the order confirmation page.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(orderID string) ([]byte, error) {
	qrData := fmt.Sprintf("%s/confirmation?orderId=%s", g.BaseURL, url.QueryEscape(orderID))
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
