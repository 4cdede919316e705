package utils

import (
	"context"
	"fmt"
	"html"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const appName = "LearnHub"

// Email is one outgoing HTML message.
type Email struct {
	To      string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers emails.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// SendgridMailer sends through the SendGrid v3 API.
type SendgridMailer struct {
	client *sendgrid.Client
	from   *mail.Email
}

func NewSendgridMailer(apiKey, sender string) *SendgridMailer {
	return &SendgridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(appName, sender),
	}
}

func (m *SendgridMailer) Send(ctx context.Context, email Email) error {
	msg := mail.NewSingleEmail(
		m.from,
		"["+appName+"] "+email.Subject,
		mail.NewEmail(email.ToName, email.To),
		email.Text,
		email.HTML,
	)
	res, err := m.client.SendWithContext(ctx, msg)
	if err != nil {
		return errors.Wrap(err, "sendgrid send")
	}
	if res.StatusCode >= http.StatusBadRequest {
		return errors.Errorf("sendgrid send: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

// ConsoleMailer prints emails to the log and keeps them for inspection.
type ConsoleMailer struct {
	mu   sync.Mutex
	Sent []Email
}

func (m *ConsoleMailer) Send(_ context.Context, email Email) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, email)
	m.mu.Unlock()
	log.Printf("--- Sending Email ---\nTo: %s\nSubject: %s\n", email.To, email.Subject)
	return nil
}

// NewMailer picks SendGrid when an API key is configured.
func NewMailer(apiKey, sender string) Mailer {
	if apiKey == "" {
		return &ConsoleMailer{}
	}
	return NewSendgridMailer(apiKey, sender)
}

// getEmailTemplate wraps body in the shared layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1B3A5B; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B3A5B; line-height: 1.6; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #3FA34D; margin: 20px 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">You are receiving this email because you have a %s account.</div>
		</div>
	</body>
	</html>
	`, strings.ToUpper(appName), title, bodyContent, appName)
}

// CertificateEmail announces an issued certificate with its public verification hash.
func CertificateEmail(to, name, courseTitle, hash string) Email {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations on completing <strong>%s</strong>.</p>
		<div class="info-box">
			<strong>Certificate code:</strong> %s<br>
			Anyone can verify it at <code>/certificate/%s</code>.
		</div>
	`, html.EscapeString(name), html.EscapeString(courseTitle), hash, hash)

	return Email{
		To:      to,
		ToName:  name,
		Subject: "Your certificate for " + courseTitle,
		Text:    fmt.Sprintf("Congratulations on completing %s. Certificate code: %s", courseTitle, hash),
		HTML:    getEmailTemplate("Certificate Issued", body),
	}
}

// EnrollmentEmail confirms the courses a checkout enrolled the user in.
func EnrollmentEmail(to, name string, courseTitles []string) Email {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations! You have successfully enrolled in:</p>
		<ul>%s</ul>
		<p>Track your progress and complete every class to earn your certificate.</p>
	`, html.EscapeString(name), listItems(courseTitles))

	return Email{
		To:      to,
		ToName:  name,
		Subject: "Course Enrollment Confirmation",
		Text:    "You are now enrolled in: " + strings.Join(courseTitles, ", "),
		HTML:    getEmailTemplate("Enrollment Successful!", body),
	}
}

// CartReminderEmail lists the courses still waiting in the user's cart.
func CartReminderEmail(to, name string, courseTitles []string) Email {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>These courses are still waiting in your cart:</p>
		<ul>%s</ul>
		<p>Check out to start learning.</p>
	`, html.EscapeString(name), listItems(courseTitles))

	return Email{
		To:      to,
		ToName:  name,
		Subject: "Courses waiting in your cart",
		Text:    "Still in your cart: " + strings.Join(courseTitles, ", "),
		HTML:    getEmailTemplate("Still interested?", body),
	}
}

func listItems(titles []string) string {
	var items strings.Builder
	for _, title := range titles {
		items.WriteString("<li>" + html.EscapeString(title) + "</li>")
	}
	return items.String()
}
