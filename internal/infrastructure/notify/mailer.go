// Package notify envoie les notifications de commande au personnel : les
// événements écrits dans l'outbox au checkout sont relus par un poller et
// dispatchés par email.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	gomail "gopkg.in/gomail.v2"

	"github.com/darkom-tn/darkom-api/internal/domain/repository"
	"github.com/darkom-tn/darkom-api/pkg/config"
)

// Sender port d'envoi d'un événement outbox. Le poller ne connaît que cette
// interface ; l'implémentation SMTP est remplaçable en test.
type Sender interface {
	Send(ctx context.Context, event *repository.OutboxEvent) error
}

var _ Sender = (*Mailer)(nil)

// Mailer envoie les alertes nouvelle commande par SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewMailer construit l'expéditeur depuis la configuration SMTP.
func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		to:     cfg.StaffTo,
	}
}

// orderPlacedEmail miroir du payload écrit au checkout.
type orderPlacedEmail struct {
	OrderID         string          `json:"order_id"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerAddress string          `json:"customer_address"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Items           []struct {
		ProductName string          `json:"product_name"`
		Price       decimal.Decimal `json:"price"`
		Quantity    int             `json:"quantity"`
	} `json:"items"`
}

// Send formate et expédie l'email correspondant à l'événement. Un type
// d'événement inconnu est une erreur : l'événement restera non traité et
// visible dans la table plutôt que silencieusement ignoré.
func (m *Mailer) Send(_ context.Context, event *repository.OutboxEvent) error {
	if event.EventType != repository.EventOrderPlaced {
		return fmt.Errorf("notify: type d'événement inconnu %q", event.EventType)
	}

	var p orderPlacedEmail
	if err := json.Unmarshal(event.Payload, &p); err != nil {
		return fmt.Errorf("notify: payload illisible: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Nouvelle commande %s\n\n", p.OrderID)
	fmt.Fprintf(&b, "Client : %s\nTéléphone : %s\nAdresse : %s\n\n", p.CustomerName, p.CustomerPhone, p.CustomerAddress)
	for _, it := range p.Items {
		fmt.Fprintf(&b, "  - %s x%d  (%s DT)\n", it.ProductName, it.Quantity, it.Price.StringFixed(3))
	}
	fmt.Fprintf(&b, "\nTotal : %s DT\n", p.TotalAmount.StringFixed(3))

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", fmt.Sprintf("Nouvelle commande %s (%s DT)", p.OrderID, p.TotalAmount.StringFixed(3)))
	msg.SetBody("text/plain", b.String())

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("notify: envoi SMTP: %w", err)
	}
	return nil
}
