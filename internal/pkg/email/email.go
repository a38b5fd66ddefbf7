package email

import (
	"crypto/tls"
	"fmt"
	"html"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Sender delivers a single HTML e-mail
type Sender interface {
	Send(toEmail, subject, htmlBody string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
}

// SMTPSender implements Sender over net/smtp
type SMTPSender struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSMTPSender creates a new SMTPSender
func NewSMTPSender(config SMTPConfig, logger zerolog.Logger) *SMTPSender {
	return &SMTPSender{
		config: config,
		logger: logger,
	}
}

// Configured reports whether credentials are present
func (s *SMTPSender) Configured() bool {
	return s.config.Host != "" && s.config.Username != "" && s.config.Password != ""
}

// Send delivers the message. Without credentials it only logs, which keeps
// local development free of an SMTP server.
func (s *SMTPSender) Send(toEmail, subject, htmlBody string) error {
	if !s.Configured() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SMTP credentials not configured - email not sent")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	message := s.buildMessage(toEmail, subject, htmlBody)
	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if !s.config.UseTLS {
		if err := smtp.SendMail(serverAddress, auth, s.config.FromEmail, []string{toEmail}, message); err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	}

	conn, err := tls.Dial("tcp", serverAddress, &tls.Config{ServerName: s.config.Host})
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if err = client.Auth(auth); err != nil {
		s.logger.Error().Err(err).Msg("SMTP authentication failed")
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}
	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(toEmail); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return nil
}

// buildMessage renders headers in a fixed order followed by the body
func (s *SMTPSender) buildMessage(toEmail, subject, htmlBody string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", toEmail)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}

const layout = `<html>
<body>
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h2 style="color: #333;">%s</h2>
		<p>Hello %s,</p>
		%s
		<p>Best regards,<br>The AlumniHub Team</p>
	</div>
</body>
</html>`

func render(title, name, content string) string {
	return fmt.Sprintf(layout, title, html.EscapeString(name), content)
}

// RegistrationReceived is sent to alumni right after sign-up
func RegistrationReceived(name string) (subject, body string) {
	subject = "Your AlumniHub registration is under review"
	body = render("Thanks for joining AlumniHub!", name,
		`<p>An administrator will verify your alumni status shortly. You can already log in; mentoring and job posting unlock once you are verified.</p>`)
	return subject, body
}

// VerificationDecision tells an alumnus how their verification was decided
func VerificationDecision(name string, approved bool, note string) (subject, body string) {
	var content string
	if approved {
		subject = "Your alumni status has been verified"
		content = `<p>Your alumni status is verified. Welcome to the network!</p>`
	} else {
		subject = "Your alumni verification was declined"
		content = `<p>We could not verify your alumni status.</p>`
	}
	if note != "" {
		content += fmt.Sprintf(`<p>Note from the administrator: <em>%s</em></p>`, html.EscapeString(note))
	}
	return subject, render("Alumni verification", name, content)
}
