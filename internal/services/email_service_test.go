package services

import (
	"bytes"
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"testing"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildResetMessage(t *testing.T) {
	raw := buildResetMessage("DentalCare", "noreply@example.com", "hasta@example.com", "042517", t0)

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "Password Reset Code", msg.Header.Get("Subject"))
	assert.Equal(t, "hasta@example.com", msg.Header.Get("To"))

	from, err := mail.ParseAddress(msg.Header.Get("From"))
	require.NoError(t, err)
	assert.Equal(t, "noreply@example.com", from.Address)

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/alternative", mediaType)

	parts := multipart.NewReader(msg.Body, params["boundary"])
	var types []string
	for {
		p, err := parts.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		body, err := io.ReadAll(p)
		require.NoError(t, err)
		assert.Contains(t, string(body), "042517")
		assert.Contains(t, string(body), "valid for 1 hour")
		types = append(types, p.Header.Get("Content-Type"))
	}
	assert.Len(t, types, 2)
}

func TestSMTPSender_DisabledOnlyLogs(t *testing.T) {
	s := NewSMTPSender(&config.Config{SMTPHost: "127.0.0.1", SMTPPort: 1, SMTPUser: "clinic@example.com"})
	assert.Equal(t, "clinic@example.com", s.from)
	assert.NoError(t, s.SendPasswordResetCode(context.Background(), "hasta@example.com", "123456"))
}

func TestSMTPSender_DeliveryError(t *testing.T) {
	s := NewSMTPSender(&config.Config{SMTPHost: "127.0.0.1", SMTPPort: 1, SendRealEmails: true})
	err := s.SendPasswordResetCode(context.Background(), "hasta@example.com", "123456")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hasta@example.com")
}
