package email

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPSender_SendWithoutCredentialsOnlyLogs(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: 587}, zerolog.Nop())
	assert.False(t, s.Configured())
	assert.NoError(t, s.Send("someone@example.com", "Hi", "<p>hi</p>"))
}

func TestSMTPSender_BuildMessage(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{FromName: "AlumniHub", FromEmail: "no-reply@alumnihub.app"}, zerolog.Nop())

	msg := string(s.buildMessage("ayse@example.com", "Welcome", "<p>body</p>"))
	head, body, found := strings.Cut(msg, "\r\n\r\n")
	require.True(t, found)
	assert.Equal(t, "<p>body</p>", body)
	assert.Equal(t, []string{
		"From: AlumniHub <no-reply@alumnihub.app>",
		"To: ayse@example.com",
		"Subject: Welcome",
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}, strings.Split(head, "\r\n"))
}

func TestVerificationDecision(t *testing.T) {
	subject, body := VerificationDecision("Ayşe <Y>", true, "")
	assert.Contains(t, subject, "verified")
	assert.Contains(t, body, "Ayşe &lt;Y&gt;")
	assert.NotContains(t, body, "Note from the administrator")

	subject, body = VerificationDecision("Mert", false, "missing diploma")
	assert.Contains(t, subject, "declined")
	assert.Contains(t, body, "missing diploma")
}

func TestRegistrationReceived(t *testing.T) {
	subject, body := RegistrationReceived("Mert")
	assert.NotEmpty(t, subject)
	assert.Contains(t, body, "Hello Mert,")
}
