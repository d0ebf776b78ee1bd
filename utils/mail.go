package utils

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"

	"github.com/shopping-mall/mall-api/models"
)

//go:embed templates/*.html
var mailTemplates embed.FS

type MailConfig struct {
	SMTPAddress string // host:port
	SMTPHost    string // auth host, defaults to the host of SMTPAddress
	FromEmail   string
	Password    string
}

// Mailer sends HTML mail through a plain-auth SMTP relay. A Mailer without
// an address or sender is disabled and silently skips every message.
type Mailer struct {
	cfg       MailConfig
	templates *template.Template
	send      func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(cfg MailConfig) (*Mailer, error) {
	tmpl, err := template.ParseFS(mailTemplates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("template parse error: %w", err)
	}
	return &Mailer{cfg: cfg, templates: tmpl, send: smtp.SendMail}, nil
}

func (m *Mailer) Enabled() bool {
	return m.cfg.SMTPAddress != "" && m.cfg.FromEmail != ""
}

func (m *Mailer) SendEmail(emailTo, emailSubject, templateName string, data any) error {
	if !m.Enabled() {
		return nil
	}

	var body bytes.Buffer
	if err := m.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		m.cfg.FromEmail,
		emailTo,
		emailSubject,
		body.String(),
	)

	host := m.cfg.SMTPHost
	if host == "" {
		var err error
		if host, _, err = net.SplitHostPort(m.cfg.SMTPAddress); err != nil {
			return fmt.Errorf("invalid smtp address %q: %w", m.cfg.SMTPAddress, err)
		}
	}
	auth := smtp.PlainAuth("", m.cfg.FromEmail, m.cfg.Password, host)

	if err := m.send(m.cfg.SMTPAddress, auth, m.cfg.FromEmail, []string{emailTo}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

type orderConfirmation struct {
	Name        string
	OrderID     uint
	Items       []models.OrderItem
	ShippingFee int64
	TotalAmount int64
	Address     string
}

// OrderPlaced mails the order summary to the customer.
func (m *Mailer) OrderPlaced(_ context.Context, email, name string, order *models.Order) error {
	shipping := order.ShippingInfo
	address := strings.TrimSpace(strings.Join([]string{
		shipping.AddressLine1, shipping.AddressLine2, shipping.City, shipping.State, shipping.PostalCode, shipping.Country,
	}, " "))

	data := orderConfirmation{
		Name:        name,
		OrderID:     order.ID,
		Items:       order.Items,
		ShippingFee: order.ShippingFee,
		TotalAmount: order.TotalAmount,
		Address:     address,
	}
	subject := fmt.Sprintf("주문 확인 #%d", order.ID)
	return m.SendEmail(email, subject, "order_confirmation.html", data)
}
