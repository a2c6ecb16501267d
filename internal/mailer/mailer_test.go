package mailer

import (
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/models"
)

type capture struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	msg  string
}

func (c *capture) send(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
	c.addr, c.auth, c.from, c.to, c.msg = addr, a, from, to, string(msg)
	return nil
}

func testLeave() *models.LeaveRequest {
	approver := "U001"
	return &models.LeaveRequest{
		ID:         42,
		UserID:     "U010",
		LeaveType:  models.LeaveSick,
		StartDate:  models.Date(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		EndDate:    models.Date(time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)),
		TotalDays:  3,
		Reason:     "flu",
		Status:     models.LeaveApproved,
		ApprovedBy: &approver,
	}
}

func TestLeaveDecided(t *testing.T) {
	var got capture
	client := NewClient(&config.Config{SMTPHost: "smtp.local", SMTPPort: 25, SMTPFrom: "hr@example.com"}).
		WithSender(got.send)

	if err := client.LeaveDecided("u010@example.com", testLeave()); err != nil {
		t.Fatalf("LeaveDecided: %v", err)
	}

	if got.addr != "smtp.local:25" {
		t.Fatalf("expected smtp.local:25, got %q", got.addr)
	}
	if got.auth != nil {
		t.Fatal("expected no auth without credentials")
	}
	if len(got.to) != 1 || got.to[0] != "u010@example.com" {
		t.Fatalf("unexpected recipients: %v", got.to)
	}
	for _, want := range []string{
		"Subject: Leave request #42 APPROVED",
		"SICKLEAVE request for 2025-01-01 to 2025-01-03 (3 days)",
		"Decided by: U001",
	} {
		if !strings.Contains(got.msg, want) {
			t.Fatalf("expected message to contain %q, got:\n%s", want, got.msg)
		}
	}
}

func TestLeaveDecided_Unconfigured(t *testing.T) {
	client := NewClient(&config.Config{})
	if err := client.LeaveDecided("u010@example.com", testLeave()); err == nil {
		t.Fatal("expected error without smtp host")
	}

	client = NewClient(&config.Config{SMTPHost: "smtp.local", SMTPPort: 25})
	if err := client.LeaveDecided("u010@example.com", testLeave()); err == nil {
		t.Fatal("expected error without a from address")
	}
}

func TestLeaveDecided_UsesAuthWhenCredentialsSet(t *testing.T) {
	var got capture
	client := NewClient(&config.Config{
		SMTPHost:     "smtp.local",
		SMTPPort:     587,
		SMTPUsername: "hr@example.com",
		SMTPPassword: "secret",
	}).WithSender(got.send)

	if err := client.LeaveDecided("u010@example.com", testLeave()); err != nil {
		t.Fatalf("LeaveDecided: %v", err)
	}
	if got.auth == nil {
		t.Fatal("expected plain auth when credentials are set")
	}
	if got.from != "hr@example.com" {
		t.Fatalf("expected username as from fallback, got %q", got.from)
	}
}
