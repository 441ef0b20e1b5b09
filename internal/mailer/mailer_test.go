package mailer

import (
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariselli/hoofprint/internal/config"
)

func TestSend_BuildsHTMLMessage(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	m := New(config.MailConfig{
		SMTPHost: "smtp.example.com",
		SMTPPort: 587,
		Username: "rider",
		Password: "secret",
		From:     "rider@example.com",
	})
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	require.NoError(t, m.Send("leo@brandt.example", "Follow-up", "<p>Hello</p>"))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "rider@example.com", gotFrom)
	assert.Equal(t, []string{"leo@brandt.example"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Follow-up")
	assert.Contains(t, string(gotMsg), "Content-Type: text/html")
	assert.Contains(t, string(gotMsg), "<p>Hello</p>")
}

func TestSend_Unconfigured(t *testing.T) {
	m := New(config.MailConfig{})
	assert.False(t, m.Configured())
	assert.Error(t, m.Send("x@example.com", "s", "b"))
}

func TestSend_PropagatesFailure(t *testing.T) {
	m := New(config.MailConfig{SMTPHost: "smtp.example.com", SMTPPort: 587, From: "a@b.c"})
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}
	assert.Error(t, m.Send("x@example.com", "s", "b"))
}
