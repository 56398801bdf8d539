package adapter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMessage(t *testing.T) {
	msg := string(buildMessage("noreply@example.com", "alice@example.com", "Password reset requested", "body text"))

	assert.True(t, strings.HasPrefix(msg, "From: noreply@example.com\r\n"))
	assert.Contains(t, msg, "To: alice@example.com\r\n")
	assert.Contains(t, msg, "Subject: Password reset requested\r\n")
	assert.Contains(t, msg, "\r\n\r\nbody text\r\n")
}

func TestSMTPHost(t *testing.T) {
	assert.Equal(t, "mail.example.com", smtpHost("mail.example.com:587"))
	assert.Equal(t, "mail.example.com", smtpHost("mail.example.com"))
}
