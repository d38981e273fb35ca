package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/alimikegami/refurbished-store/storefront-service/config"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/domain"
	"gopkg.in/gomail.v2"
)

type SMTPMailer struct {
	config config.SMTPConfig
	dialer *gomail.Dialer
}

func CreateSMTPMailer(config config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Sender, config.Password),
	}
}

func (m *SMTPMailer) Enabled() bool {
	return m.config.Host != "" && m.config.Sender != ""
}

func (m *SMTPMailer) SendOrderReceipt(ctx context.Context, order domain.Order, recipient domain.User) error {
	if !m.Enabled() || recipient.Email == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	message := gomail.NewMessage()
	message.SetHeader("From", m.config.Sender)
	message.SetHeader("To", recipient.Email)
	message.SetHeader("Subject", fmt.Sprintf("Payment received for order %s", order.ID.Hex()))
	message.SetBody("text/plain", ReceiptBody(order, recipient))

	if err := m.dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("sending receipt for order %s: %w", order.ID.Hex(), err)
	}

	return nil
}

func ReceiptBody(order domain.Order, recipient domain.User) string {
	var b strings.Builder
	currency := order.CurrencyCode

	fmt.Fprintf(&b, "Hi %s,\n\nThanks for your order %s. Your payment has been received.\n\n", recipient.Name, order.ID.Hex())
	for _, item := range order.OrderItems {
		fmt.Fprintf(&b, "%d x %s  %.2f %s\n", item.Qty, item.Name, item.Price*float64(item.Qty), currency)
	}
	fmt.Fprintf(&b, "\nItems: %.2f %s\nShipping: %.2f %s\nTax: %.2f %s\nTotal: %.2f %s\n", order.ItemsPrice, currency, order.ShippingPrice, currency, order.TaxPrice, currency, order.TotalPrice, currency)
	fmt.Fprintf(&b, "\nShipping to: %s, %s, %s, %s\n", order.ShippingAddress.Address, order.ShippingAddress.City, order.ShippingAddress.PostalCode, order.ShippingAddress.Country)

	return b.String()
}
