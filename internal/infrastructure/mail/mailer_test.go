package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewSMTPSender_Validation(t *testing.T) {
	_, err := NewSMTPSender(nil, nil)
	assert.Error(t, err)

	_, err = NewSMTPSender(&SMTPConfig{}, nil)
	assert.Error(t, err)

	_, err = NewSMTPSender(&SMTPConfig{Host: "smtp.example.com"}, nil)
	assert.Error(t, err, "sender address required")

	sender, err := NewSMTPSender(&SMTPConfig{
		Host:     "smtp.example.com",
		Username: "orders@jontech.example",
		Password: "secret",
	}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "orders@jontech.example", sender.from)
}

func TestLogSender_Send(t *testing.T) {
	sender := NewLogSender(zap.NewNop())

	err := sender.Send(context.Background(), &Message{
		To:             "customer@example.com",
		Subject:        "Your JONTECH receipt R-2026-000042",
		Body:           "Thanks for your order.",
		AttachmentName: "R-2026-000042.pdf",
		Attachment:     []byte("%PDF-1.4"),
		AttachmentMIME: "application/pdf",
	})
	assert.NoError(t, err)
}

func TestSend_InvalidMessage(t *testing.T) {
	sender := NewLogSender(nil)

	assert.Error(t, sender.Send(context.Background(), nil))
	assert.Error(t, sender.Send(context.Background(), &Message{Subject: "x"}))
	assert.Error(t, sender.Send(context.Background(), &Message{To: "a@b.c"}))
}
