package mail

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/MohdOwais22/subaku-backend/internal/config"
	userUsecase "github.com/MohdOwais22/subaku-backend/internal/usecase/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPMailer_Send(t *testing.T) {
	mailer := NewSMTPMailer(config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		User:     "shop@example.com",
		Password: "secret",
	})

	var gotAddr, gotFrom string
	var gotTo []string
	var gotBody []byte
	mailer.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotBody = addr, from, to, msg
		return nil
	}

	err := mailer.Send(context.Background(), userUsecase.Message{
		To:      "ann@example.com",
		Subject: "Ecommerce Password Recovery\r\nBcc: evil@example.com",
		Body:    "Your password reset token is :- \n\n https://shop/password/reset/abc",
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "shop@example.com", gotFrom)
	assert.Equal(t, []string{"ann@example.com"}, gotTo)
	assert.Contains(t, string(gotBody), "Subject: Ecommerce Password RecoveryBcc: evil@example.com\r\n")
	assert.Contains(t, string(gotBody), "https://shop/password/reset/abc")
}

func TestSMTPMailer_SendFailure(t *testing.T) {
	mailer := NewSMTPMailer(config.SMTPConfig{Host: "smtp.example.com", Port: 25, From: "noreply@example.com"})
	cause := errors.New("535 authentication failed")
	mailer.send = func(string, smtp.Auth, string, []string, []byte) error { return cause }

	err := mailer.Send(context.Background(), userUsecase.Message{To: "a@b.c"})
	assert.ErrorIs(t, err, cause)
}

func TestLogMailer(t *testing.T) {
	assert.NoError(t, LogMailer{}.Send(context.Background(), userUsecase.Message{To: "a@b.c"}))
}
