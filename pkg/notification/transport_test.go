package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

func TestSMTPTransport_BuildMsg(t *testing.T) {
	transport, err := NewSMTPTransport(SMTPConfig{Host: "localhost", Port: 1025, From: "noreply@example.com"})
	require.NoError(t, err)

	email := BuildEmail("", Record{
		ID:        3,
		Recipient: "jane@example.com",
		Subject:   "Your car is reserved",
		BodyText:  "See you soon",
		BodyHTML:  "<p>See you soon</p>",
	})

	msg, err := transport.buildMsg(email)
	require.NoError(t, err)

	assert.Equal(t, []string{"Your car is reserved"}, msg.GetGenHeader(mail.HeaderSubject))
	assert.Equal(t, []string{"3@jane@example.com"}, msg.GetGenHeader(mail.Header(HeaderNotificationRef)))
	assert.Equal(t, []string{"yes"}, msg.GetGenHeader(mail.Header(HeaderTrackOpens)))

	from := msg.GetFrom()
	require.Len(t, from, 1)
	assert.Equal(t, "noreply@example.com", from[0].Address)

	to := msg.GetTo()
	require.Len(t, to, 1)
	assert.Equal(t, "jane@example.com", to[0].Address)

	t.Run("Invalid recipient", func(t *testing.T) {
		_, err := transport.buildMsg(Email{From: "noreply@example.com", To: "not an address"})
		assert.Error(t, err)
	})
}
