package email

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeMatchesExample(t *testing.T) {
	composer, err := NewComposer("balkanspinewellness@gmail.com", "Balkan Spine Wellness")
	require.NoError(t, err)

	msg, err := composer.Compose(ContactEmailData{
		SenderName:  "Ion Popescu",
		SenderEmail: "ion@example.ro",
		Message:     "Durere de spate",
	})
	require.NoError(t, err)

	assert.Equal(t, "Mesaj nou: Ion Popescu - Balkan Spine Wellness", msg.Subject)
	assert.Equal(t, "Nume: Ion Popescu\nEmail: ion@example.ro\n\nMesaj:\nDurere de spate", msg.Body)

	link := msg.Link()
	require.True(t, strings.HasPrefix(link, "mailto:balkanspinewellness@gmail.com?subject="))

	_, query, _ := strings.Cut(link, "?")
	_, encodedBody, found := strings.Cut(query, "&body=")
	require.True(t, found)
	body, err := url.PathUnescape(encodedBody)
	require.NoError(t, err)
	assert.Equal(t, msg.Body, body)
}

func TestComposeDoesNotEscapeHTML(t *testing.T) {
	composer, err := NewComposer("office@example.ro", "Brand")
	require.NoError(t, err)

	msg, err := composer.Compose(ContactEmailData{
		SenderName:  "A & B <x>",
		SenderEmail: "a@b.ro",
		Message:     "\"quoted\"",
	})
	require.NoError(t, err)

	assert.Contains(t, msg.Subject, "A & B <x>")
	assert.Contains(t, msg.Body, "\"quoted\"")
}

func TestLinkHandoff(t *testing.T) {
	ctx := context.Background()
	handoff := NewLinkHandoff(60)

	assert.NoError(t, handoff.Open(ctx, "mailto:a@b.ro?subject=x&body=y"))
	assert.ErrorIs(t, handoff.Open(ctx, "https://example.ro"), ErrNotMailto)
	assert.ErrorIs(t, handoff.Open(ctx, "mailto:?subject=x"), ErrNoRecipient)
	assert.ErrorIs(t, handoff.Open(ctx, "mailto:a@b.ro?body="+strings.Repeat("x", 80)), ErrLinkTooLong)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, handoff.Open(cancelled, "mailto:a@b.ro"), context.Canceled)
}

func TestLinkHandoffWithoutLimit(t *testing.T) {
	handoff := NewLinkHandoff(0)
	assert.NoError(t, handoff.Open(context.Background(), "mailto:a@b.ro?body="+strings.Repeat("x", 5000)))
}
