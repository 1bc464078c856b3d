package email

import (
	"bytes"
	"fmt"
	"text/template"

	"balkan-spine-wellness/pkg/deeplink"
)

// Composer turns a contact form submission into a mail draft addressed to the
// practice.
type Composer struct {
	recipient string
	brand     string
	subject   *template.Template
	body      *template.Template
}

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	SenderName  string
	SenderEmail string
	Message     string
	Brand       string
}

// Message is a composed draft ready to be handed to a mail client.
type Message struct {
	To      string
	Subject string
	Body    string
}

const (
	contactSubjectTemplate = `Mesaj nou: {{.SenderName}} - {{.Brand}}`
	contactBodyTemplate    = "Nume: {{.SenderName}}\nEmail: {{.SenderEmail}}\n\nMesaj:\n{{.Message}}"
)

// NewComposer parses the subject and body templates once.
func NewComposer(recipient, brand string) (*Composer, error) {
	subject, err := template.New("subject").Parse(contactSubjectTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse subject template: %w", err)
	}
	body, err := template.New("body").Parse(contactBodyTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse body template: %w", err)
	}
	return &Composer{
		recipient: recipient,
		brand:     brand,
		subject:   subject,
		body:      body,
	}, nil
}

// Recipient is the fixed address every draft is sent to. It doubles as the
// fallback address shown when the mail client cannot be opened.
func (c *Composer) Recipient() string {
	return c.recipient
}

// Compose renders the subject and body for a submission.
func (c *Composer) Compose(data ContactEmailData) (*Message, error) {
	data.Brand = c.brand

	var subject bytes.Buffer
	if err := c.subject.Execute(&subject, data); err != nil {
		return nil, fmt.Errorf("failed to execute subject template: %w", err)
	}

	var body bytes.Buffer
	if err := c.body.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to execute body template: %w", err)
	}

	return &Message{
		To:      c.recipient,
		Subject: subject.String(),
		Body:    body.String(),
	}, nil
}

// Link encodes the message as a mailto: URI.
func (m *Message) Link() string {
	return deeplink.Mailto(m.To, m.Subject, m.Body)
}
