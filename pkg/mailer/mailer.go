// Package mailer sends operational email over SMTP.
package mailer

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/kvnochieng52/flight-distance/config"
)

// Registration is the data shown to an administrator about a new sign-up.
type Registration struct {
	UserID    uint
	Name      string
	Email     string
	Telephone string
	IP        string
	At        time.Time
}

// Sender abstracts the SMTP transport.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer renders and sends notification mail.
type Mailer struct {
	sender Sender
	from   string
	admin  string
}

// New returns nil when mail is not configured.
func New(cfg *config.MailConfig) *Mailer {
	if cfg.SMTPHost == "" || cfg.AdminAddress == "" {
		return nil
	}
	return NewWithSender(gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password), cfg.From, cfg.AdminAddress)
}

// NewWithSender builds a Mailer on top of an arbitrary transport.
func NewWithSender(sender Sender, from, admin string) *Mailer {
	return &Mailer{sender: sender, from: from, admin: admin}
}

var registrationTemplate = template.Must(template.New("registration").Parse(`<p>A new account is waiting for approval.</p>
<ul>
<li>ID: {{.UserID}}</li>
<li>Name: {{.Name}}</li>
<li>Email: {{.Email}}</li>
<li>Telephone: {{.Telephone}}</li>
<li>IP address: {{.IP}}</li>
<li>Registered at: {{.At.Format "2006-01-02 15:04:05"}}</li>
</ul>`))

// NotifyRegistration tells the administrator a new account needs activation.
func (m *Mailer) NotifyRegistration(r Registration) error {
	var body strings.Builder
	if err := registrationTemplate.Execute(&body, r); err != nil {
		return fmt.Errorf("render registration mail: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.admin)
	msg.SetHeader("Subject", "New registration pending approval: "+r.Email)
	msg.SetBody("text/html", body.String())

	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("send registration mail: %w", err)
	}
	return nil
}
