package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"strings"
	"sync"
	"time"

	"fastgrab/order-svc/internal/domain"
)

var newOrderTemplate = template.Must(template.New("new_order").Parse(`<h1>New Order Received</h1>
<p><strong>Order ID:</strong> {{.OrderID}}</p>
<h2>Customer Details</h2>
<p><strong>Name:</strong> {{.UserDetails.Name}}</p>
<p><strong>Email:</strong> {{.UserDetails.Email}}</p>
<p><strong>Phone:</strong> {{.UserDetails.Phone}}</p>
<p><strong>Address:</strong> {{.UserDetails.Address}}</p>
<h2>Order Items</h2>
<ul>
{{- range .Items}}
<li>{{.Name}} (x{{.Quantity}}) - ${{.Price.StringFixed 2}} each = ${{.Subtotal.StringFixed 2}}</li>
{{- end}}
</ul>
<p><strong>Total Amount:</strong> ${{.TotalAmount.StringFixed 2}}</p>
<h2>Payment Details</h2>
<p><strong>Name on Card:</strong> {{.PaymentDetails.CardName}}</p>
<p><strong>Card Number:</strong> {{.PaymentDetails.CardNumber}}</p>
<p><strong>Expiry Date:</strong> {{.PaymentDetails.ExpiryDate}}</p>
<p><strong>Card Type:</strong> {{.PaymentDetails.CardType}}</p>
`))

var verificationTemplate = template.Must(template.New("verification").Parse(`<h1>Order Verification</h1>
<p>Customer <strong>{{.Name}}</strong> submitted a verification code for order <strong>{{.OrderID}}</strong>.</p>
<p><strong>OTP:</strong> {{.Code}}</p>
`))

func NewOrderMessage(order *domain.Order, recipients []string) (domain.Message, error) {
	var body bytes.Buffer
	if err := newOrderTemplate.Execute(&body, order); err != nil {
		return domain.Message{}, fmt.Errorf("failed to render new order message: %w", err)
	}
	return domain.Message{
		To:      strings.Join(recipients, ","),
		Subject: "New Order Received - ID: " + order.OrderID,
		Body:    body.String(),
	}, nil
}

func VerificationMessage(order *domain.Order, code string, recipients []string) (domain.Message, error) {
	var body bytes.Buffer
	data := struct {
		Name    string
		OrderID string
		Code    string
	}{order.UserDetails.Name, order.OrderID, code}
	if err := verificationTemplate.Execute(&body, data); err != nil {
		return domain.Message{}, fmt.Errorf("failed to render verification message: %w", err)
	}
	return domain.Message{
		To:      strings.Join(recipients, ","),
		Subject: "OTP for Order Verification - ID: " + order.OrderID,
		Body:    body.String(),
	}, nil
}

// Dispatcher runs best-effort side effects in the background: operator mail
// and order events. Results are only logged and every job gets its own timeout,
// detached from the request that triggered it.
type Dispatcher struct {
	notifier Notifier
	timeout  time.Duration
	wg       sync.WaitGroup
}

func NewDispatcher(notifier Notifier, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{notifier: notifier, timeout: timeout}
}

func (d *Dispatcher) Dispatch(msg domain.Message) {
	if d == nil || d.notifier == nil {
		return
	}

	d.run(fmt.Sprintf("sending %q", msg.Subject), func(ctx context.Context) {
		result := d.notifier.Send(ctx, msg)
		if !result.Success {
			log.Printf("Warning: failed to send %q: %s", msg.Subject, result.Error)
			return
		}
		log.Printf("Notification %q sent (id=%s) %s", msg.Subject, result.MessageID, result.Message)
	})
}

func (d *Dispatcher) Publish(publisher EventPublisher, event domain.OrderEvent) {
	if d == nil || publisher == nil {
		return
	}

	d.run(fmt.Sprintf("publishing %s for order %s", event.Type, event.OrderID), func(ctx context.Context) {
		if err := publisher.PublishOrderEvent(ctx, event); err != nil {
			log.Printf("Warning: failed to publish %s for order %s: %v", event.Type, event.OrderID, err)
		}
	})
}

func (d *Dispatcher) run(label string, job func(ctx context.Context)) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Warning: panic while %s: %v", label, r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		job(ctx)
	}()
}

// Wait blocks until every dispatched job has finished.
func (d *Dispatcher) Wait() {
	if d == nil {
		return
	}
	d.wg.Wait()
}
