// Package notify delivers operator e-mails over SMTP.
package notify

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"fastgrab/config"
	"fastgrab/order-svc/internal/domain"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotifier sends HTML mail through the configured relay. Without
// credentials it only logs the message and reports success.
type SMTPNotifier struct {
	cfg    config.SMTPConfig
	dialer Dialer
}

func NewSMTPNotifier(cfg config.SMTPConfig) (*SMTPNotifier, error) {
	n := &SMTPNotifier{cfg: cfg}
	if !cfg.Configured() {
		return n, nil
	}
	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", cfg.Port, err)
	}
	n.dialer = gomail.NewDialer(cfg.Host, port, cfg.User, cfg.Password)
	return n, nil
}

// NewSMTPNotifierWithDialer is used when the transport is provided by the caller.
func NewSMTPNotifierWithDialer(cfg config.SMTPConfig, dialer Dialer) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, dialer: dialer}
}

func (n *SMTPNotifier) Send(ctx context.Context, msg domain.Message) domain.SendResult {
	if n.dialer == nil {
		log.Printf("SMTP not configured, email to %s not sent: %s", msg.To, msg.Subject)
		return domain.SendResult{
			Success:   true,
			MessageID: fmt.Sprintf("simulated-%d", time.Now().UnixMilli()),
			Message:   "SMTP not configured, email logged only",
		}
	}

	recipients := config.SplitList(msg.To)
	if len(recipients) == 0 {
		return domain.SendResult{Success: false, Error: "no recipients"}
	}

	messageID := "smtp-" + uuid.NewString()
	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", "<"+messageID+"@fastgrab>")
	m.SetBody("text/html", msg.Body)

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("mailer panic: %v", r)
			}
		}()
		done <- n.dialer.DialAndSend(m)
	}()

	select {
	case <-ctx.Done():
		return domain.SendResult{Success: false, Error: ctx.Err().Error()}
	case err := <-done:
		if err != nil {
			return domain.SendResult{Success: false, Error: err.Error()}
		}
	}
	return domain.SendResult{Success: true, MessageID: messageID, Message: "email sent"}
}
