// Package mailer sends notification e-mail over SMTP.
package mailer

import (
	"bytes"
	"crypto/tls"
	"embed"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/models"
)

var (
	//go:embed templates/leave_decision.html
	emailTemplates embed.FS

	leaveDecisionTemplate = template.Must(template.New("leave_decision.html").ParseFS(emailTemplates, "templates/leave_decision.html"))
)

// SendFunc matches smtp.SendMail so tests can capture outgoing mail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Client struct {
	host     string
	port     int
	username string
	password string
	from     string
	send     SendFunc
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
		send:     smtp.SendMail,
	}
}

// WithSender replaces the transport used on non-TLS ports.
func (c *Client) WithSender(send SendFunc) *Client {
	c.send = send
	return c
}

type leaveDecisionData struct {
	LeaveType string
	StartDate string
	EndDate   string
	TotalDays int
	Status    string
	DecidedBy string
	Reason    string
}

// LeaveDecided tells the requester the current status of their leave.
func (c *Client) LeaveDecided(to string, leave *models.LeaveRequest) error {
	data := leaveDecisionData{
		LeaveType: string(leave.LeaveType),
		StartDate: leave.StartDate.String(),
		EndDate:   leave.EndDate.String(),
		TotalDays: leave.TotalDays,
		Status:    string(leave.Status),
		Reason:    leave.Reason,
	}
	switch {
	case leave.Status == models.LeaveApproved && leave.ApprovedBy != nil:
		data.DecidedBy = *leave.ApprovedBy
	case leave.Status == models.LeaveRejected && leave.RejectedBy != nil:
		data.DecidedBy = *leave.RejectedBy
	}

	var body bytes.Buffer
	if err := leaveDecisionTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("render leave decision template: %w", err)
	}

	subject := fmt.Sprintf("Leave request #%d %s", leave.ID, leave.Status)
	return c.sendHTML(to, subject, body.String())
}

func (c *Client) sendHTML(to, subject, htmlBody string) error {
	if c.host == "" {
		return fmt.Errorf("smtp host is not configured")
	}

	from := c.from
	if from == "" {
		from = c.username
	}
	if from == "" {
		return fmt.Errorf("smtp from address is not configured")
	}

	addr := fmt.Sprintf("%s:%d", c.host, c.port)
	msg := buildHTMLMessage(from, to, subject, htmlBody)

	if c.username == "" && c.password == "" {
		return c.send(addr, nil, from, []string{to}, []byte(msg))
	}

	auth := smtp.PlainAuth("", c.username, c.password, c.host)
	if c.port == 465 {
		return c.sendSMTPTLS(addr, auth, from, to, msg)
	}
	return c.send(addr, auth, from, []string{to}, []byte(msg))
}

// sendSMTPTLS handles implicit TLS on port 465, which smtp.SendMail does not.
func (c *Client) sendSMTPTLS(addr string, auth smtp.Auth, from, to, msg string) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: c.host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, c.host)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	wc, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := wc.Write([]byte(msg)); err != nil {
		return err
	}
	if err := wc.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func buildHTMLMessage(from, to, subject, htmlBody string) string {
	return fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"utf-8\"\r\n\r\n%s", from, to, subject, htmlBody)
}
