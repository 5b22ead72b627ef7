package mail

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

// Notifier manda uma cópia do resumo do lead por SMTP para o endereço do
// admin. Mesmo contrato best-effort do Telegram: sem host ou destinatário
// configurado, não faz nada.
type Notifier struct {
	Host     string
	Port     int
	User     string
	Password string
	To       string
}

func NewNotifier(host string, port int, user, password, to string) *Notifier {
	if port == 0 {
		port = 587
	}
	return &Notifier{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		To:       to,
	}
}

func (n *Notifier) NotifyLead(status, email, source string, at time.Time) error {
	if n.Host == "" || n.To == "" {
		return nil
	}

	body := fmt.Sprintf(
		"Resume lead captured\n\nStatus: %s\nEmail: %s\nSource: %s\nTime: %s\n",
		status, email, source, at.Format(time.RFC3339),
	)

	m := gomail.NewMessage()
	m.SetHeader("From", n.User)
	m.SetHeader("To", n.To)
	m.SetHeader("Subject", fmt.Sprintf("Resume lead %s: %s", status, email))
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(n.Host, n.Port, n.User, n.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
