package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"carstor-backend/config"
)

type EmailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func GetEmailConfig() *EmailConfig {
	return &EmailConfig{
		Host:     config.GetEnv("SMTP_HOST", ""),
		Port:     config.GetEnv("SMTP_PORT", ""),
		Username: config.GetEnv("SMTP_USERNAME", ""),
		Password: config.GetEnv("SMTP_PASSWORD", ""),
		From:     config.GetEnv("SMTP_FROM", ""),
	}
}

func SendEmail(to, subject, htmlBody string) error {
	cfg := GetEmailConfig()
	if cfg.Host == "" || cfg.Port == "" || cfg.From == "" {
		return fmt.Errorf("SMTP not configured")
	}

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n",
		cfg.From, to, subject)
	msg := []byte(headers + htmlBody)

	var auth smtp.Auth
	if cfg.Username != "" && cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	addr := cfg.Host + ":" + cfg.Port
	return smtp.SendMail(addr, auth, cfg.From, []string{to}, msg)
}

func firstName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "there"
	}
	return strings.Split(name, " ")[0]
}

// SendOrderConfirmation emails the buyer after a successful checkout.
// Non-blocking; failures are logged and never fail the request.
func SendOrderConfirmation(email, name string, orderID string, total float64) {
	go func() {
		subject := "Order Confirmed - CarStor"
		body := fmt.Sprintf(`<h2>Order Confirmed!</h2>
<p>Hi %s,</p>
<p>Your order <strong>#%s</strong> has been placed successfully.</p>
<p>Order total: <strong>$%.2f</strong></p>
<p>We'll notify you when a seller responds to your order.</p>
<p>The CarStor Team</p>`, firstName(name), orderID, total)
		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send order confirmation to %s: %v", email, err)
		}
	}()
}

// SendOrderStatusUpdate emails the buyer when a seller approves or
// declines an order. Non-blocking.
func SendOrderStatusUpdate(email, name, orderID, status string) {
	go func() {
		subject := "Order Status Update - CarStor"
		body := fmt.Sprintf(`<h2>Order Status Update</h2>
<p>Hi %s,</p>
<p>Your order <strong>#%s</strong> status has been updated to: <strong>%s</strong></p>
<p>The CarStor Team</p>`, firstName(name), orderID, status)
		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send status update email to %s: %v", email, err)
		}
	}()
}
