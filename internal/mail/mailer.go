package mail

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Mailer delivers transactional email. Implementations must be safe for
// concurrent use; the notifier fans out from goroutines.
type Mailer interface {
	SendOTP(to, code string) error
	SendAnnouncement(to, clubName, title, content string) error
	SendAdminRequest(to, applicantEmail, applicantName, clubName, approveURL, rejectURL string) error
	SendAdminApproved(to, clubName string) error
}

// SMTPMailer sends mail over SMTP with gomail.
type SMTPMailer struct {
	host   string
	port   int
	user   string
	pass   string
	from   string
	logger *logrus.Logger
}

// NewSMTPMailer creates an SMTP mailer.
func NewSMTPMailer(host string, port int, user, pass, from string, logger *logrus.Logger) *SMTPMailer {
	return &SMTPMailer{
		host:   host,
		port:   port,
		user:   user,
		pass:   pass,
		from:   from,
		logger: logger,
	}
}

var _ Mailer = (*SMTPMailer)(nil)

// SendOTP delivers the verification code mail.
func (m *SMTPMailer) SendOTP(to, code string) error {
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>Club Hub Email Verification</h2>
    <p>Your verification code is:</p>
    <div style="font-size: 28px; font-weight: bold; letter-spacing: 3px;">%s</div>
    <p>The code expires in 5 minutes.</p>
  </div>
</body>
</html>`, code)
	return m.send(to, "[Club Hub] Verification Code", body)
}

// SendAnnouncement delivers a new-announcement notification to a subscriber.
func (m *SMTPMailer) SendAnnouncement(to, clubName, title, content string) error {
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background: #f6f7fb; color: #1f2937;">
  <div style="max-width: 600px; margin: 24px auto; background: #ffffff; border-radius: 12px; border: 1px solid #e5e7eb;">
    <div style="background: #0f172a; color: #ffffff; padding: 16px 20px; font-weight: bold;">%s posted a new announcement</div>
    <div style="padding: 20px;">
      <h2 style="margin-top: 0;">%s</h2>
      <p>%s</p>
      <div style="margin-top: 20px; font-size: 12px; color: #6b7280;">You receive this because you subscribed to %s on Club Hub.</div>
    </div>
  </div>
</body>
</html>`, clubName, title, content, clubName)
	return m.send(to, fmt.Sprintf("[Club Hub] %s: %s", clubName, title), body)
}

// SendAdminRequest mails the coordinator about a pending club-admin request,
// with signed approve/reject links.
func (m *SMTPMailer) SendAdminRequest(to, applicantEmail, applicantName, clubName, approveURL, rejectURL string) error {
	name := applicantName
	if strings.TrimSpace(name) == "" {
		name = applicantEmail
	}
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 560px; margin: 0 auto; padding: 16px;">
    <h2>Club Admin Request</h2>
    <p><b>%s</b> (%s) requested admin access for <b>%s</b>.</p>
    <p>
      <a href="%s" style="display:inline-block; padding: 10px 18px; background: #22c55e; color: #fff; text-decoration: none; border-radius: 8px;">Approve</a>
      &nbsp;
      <a href="%s" style="display:inline-block; padding: 10px 18px; background: #ef4444; color: #fff; text-decoration: none; border-radius: 8px;">Reject</a>
    </p>
    <p style="font-size: 12px; color: #6b7280;">The links expire in 7 days. You can also act from the admin dashboard.</p>
  </div>
</body>
</html>`, name, applicantEmail, clubName, approveURL, rejectURL)
	return m.send(to, "[Club Hub] New club admin request", body)
}

// SendAdminApproved notifies an applicant that their request was approved.
func (m *SMTPMailer) SendAdminApproved(to, clubName string) error {
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>Request Approved</h2>
    <p>You are now a club admin for <b>%s</b>. Log in again to pick up your new role.</p>
  </div>
</body>
</html>`, clubName)
	return m.send(to, "[Club Hub] Club admin request approved", body)
}

func (m *SMTPMailer) send(to, subject, htmlBody string) error {
	if m.host == "" || m.from == "" {
		return fmt.Errorf("mail config missing")
	}
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("empty recipient")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	if m.logger != nil {
		m.logger.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("email sent")
	}
	return nil
}
