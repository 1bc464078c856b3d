package domain

import (
	"context"
	"errors"
)

// ContactDraft represents the contact form fields of one visitor session
type ContactDraft struct {
	Name    string `json:"name" form:"name" binding:"required,single_line"`
	Email   string `json:"email" form:"email" binding:"required,email"`
	Message string `json:"message" form:"message" binding:"required"`
}

// IsEmpty reports whether no field has been filled in.
func (d ContactDraft) IsEmpty() bool {
	return d.Name == "" && d.Email == "" && d.Message == ""
}

// ContactField names a single draft field for field-by-field updates
type ContactField string

const (
	FieldName    ContactField = "name"
	FieldEmail   ContactField = "email"
	FieldMessage ContactField = "message"
)

// ContactFieldUpdate is the body of a single-field draft update
type ContactFieldUpdate struct {
	Field ContactField `json:"field" binding:"required,oneof=name email message"`
	Value string       `json:"value"`
}

type StatusType string

const (
	StatusIdle    StatusType = "idle"
	StatusLoading StatusType = "loading"
	StatusSuccess StatusType = "success"
	StatusError   StatusType = "error"
)

// SubmissionStatus is the status text shown next to the contact form
type SubmissionStatus struct {
	Type    StatusType `json:"type"`
	Message string     `json:"message"`
}

// Visible reports whether the page should show a status banner.
func (s SubmissionStatus) Visible() bool {
	return s.Type != StatusIdle
}

// ContactReceipt is returned for a submission whose mail link was handed off
type ContactReceipt struct {
	Status     SubmissionStatus `json:"status"`
	MailtoLink string           `json:"mailto_link"`
}

// ContactState is a snapshot of one session's form
type ContactState struct {
	Draft  ContactDraft     `json:"draft"`
	Status SubmissionStatus `json:"status"`
}

var (
	ErrSubmissionInProgress = errors.New("a submission is already in progress")
	ErrSessionClosed        = errors.New("contact session is closed")
	ErrSessionNotFound      = errors.New("contact session not found")
	ErrUnknownField         = errors.New("unknown contact field")
	ErrNoPendingHandoff     = errors.New("no handed off draft to report on")
)

// MailHandoff hands a mailto link to the visitor's environment so it opens in
// a new browsing context. An error means the link could not be opened.
type MailHandoff interface {
	Open(ctx context.Context, link string) error
}

// ContactController owns the form state of a single visitor session
type ContactController interface {
	// Submit composes the mail draft for the given fields and hands it off
	Submit(ctx context.Context, draft ContactDraft) (*ContactReceipt, error)
	SetField(field ContactField, value string) error
	State() ContactState
	// ReportHandoffFailure is called when the page could not open the link it
	// received; the draft comes back and the status turns into an error.
	ReportHandoffFailure() (*ContactReceipt, error)
	// Subscribe registers fn for status changes until the returned func is called
	Subscribe(fn func(SubmissionStatus)) (unsubscribe func())
	// Close tears the session down, cancelling any pending status revert
	Close()
}

// ContactSessions keeps one ContactController per visitor session
type ContactSessions interface {
	Mount(sessionID string) ContactController
	Get(sessionID string) (ContactController, error)
	Unmount(sessionID string) bool
	Len() int
}
