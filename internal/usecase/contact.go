package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"balkan-spine-wellness/internal/domain"
	"balkan-spine-wellness/pkg/email"
	"balkan-spine-wellness/pkg/logger"
)

const (
	statusProcessing = "Se procesează..."
	statusHandedOff  = `Am deschis aplicația de email. Te rugăm să verifici fereastra nouă și să apeși "Trimite".`
	statusFallback   = "Nu am putut deschide aplicația de email. Te rugăm să ne scrii direct la %s"

	DefaultStatusRevert = 8 * time.Second
)

// ErrHandoffFailed marks submissions whose mail link could not be opened.
var ErrHandoffFailed = errors.New("mail handoff failed")

// Stopper cancels a scheduled action. *time.Timer satisfies it.
type Stopper interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Stopper
}

type timeScheduler struct{}

func (timeScheduler) AfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

// ContactOptions configures the controllers created for visitor sessions
type ContactOptions struct {
	Composer    *email.Composer
	Handoff     domain.MailHandoff
	RevertAfter time.Duration
	Scheduler   Scheduler
}

type contactController struct {
	sessionID   string
	composer    *email.Composer
	handoff     domain.MailHandoff
	scheduler   Scheduler
	revertAfter time.Duration

	mu     sync.Mutex
	draft  domain.ContactDraft
	status domain.SubmissionStatus
	// handedOff is the draft behind the current success status
	handedOff domain.ContactDraft
	// generation increases with every submission; a revert timer only acts on
	// the submission that scheduled it.
	generation   uint64
	revert       Stopper
	listeners    map[uint64]func(domain.SubmissionStatus)
	nextListener uint64
	closed       bool
}

// NewContactController creates the form controller of one visitor session.
func NewContactController(sessionID string, opts ContactOptions) domain.ContactController {
	if opts.RevertAfter <= 0 {
		opts.RevertAfter = DefaultStatusRevert
	}
	if opts.Scheduler == nil {
		opts.Scheduler = timeScheduler{}
	}
	return &contactController{
		sessionID:   sessionID,
		composer:    opts.Composer,
		handoff:     opts.Handoff,
		scheduler:   opts.Scheduler,
		revertAfter: opts.RevertAfter,
		status:      domain.SubmissionStatus{Type: domain.StatusIdle},
		listeners:   make(map[uint64]func(domain.SubmissionStatus)),
	}
}

// Submit moves the status idle→loading→success|error. The lock is released
// while the link is handed off, so a concurrent Submit observes loading and
// is rejected instead of opening a second draft.
func (c *contactController) Submit(ctx context.Context, draft domain.ContactDraft) (*domain.ContactReceipt, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, domain.ErrSessionClosed
	}
	if c.status.Type == domain.StatusLoading {
		c.mu.Unlock()
		return nil, domain.ErrSubmissionInProgress
	}
	c.stopRevertLocked()
	c.generation++
	gen := c.generation
	c.draft = draft
	loading := domain.SubmissionStatus{Type: domain.StatusLoading, Message: statusProcessing}
	listeners := c.setStatusLocked(loading)
	c.mu.Unlock()
	notify(listeners, loading)

	link, err := c.handOff(ctx, draft)
	if err != nil {
		logger.Log.Error("Mailto handoff failed", "session_id", c.sessionID, "error", err)
		failed := domain.SubmissionStatus{
			Type:    domain.StatusError,
			Message: fmt.Sprintf(statusFallback, c.composer.Recipient()),
		}
		c.finish(gen, failed, false)
		return &domain.ContactReceipt{Status: failed}, errors.Join(ErrHandoffFailed, err)
	}

	done := domain.SubmissionStatus{Type: domain.StatusSuccess, Message: statusHandedOff}
	c.finish(gen, done, true)
	return &domain.ContactReceipt{Status: done, MailtoLink: link}, nil
}

// handOff composes the draft and asks the environment to open it. Panics from
// either step are reported like any other failure.
func (c *contactController) handOff(ctx context.Context, draft domain.ContactDraft) (link string, err error) {
	defer func() {
		if r := recover(); r != nil {
			link = ""
			err = fmt.Errorf("handoff panicked: %v", r)
		}
	}()

	msg, err := c.composer.Compose(email.ContactEmailData{
		SenderName:  draft.Name,
		SenderEmail: draft.Email,
		Message:     draft.Message,
	})
	if err != nil {
		return "", err
	}

	link = msg.Link()
	if err := c.handoff.Open(ctx, link); err != nil {
		return "", err
	}
	return link, nil
}

func (c *contactController) finish(gen uint64, status domain.SubmissionStatus, handedOff bool) {
	c.mu.Lock()
	if c.closed || gen != c.generation {
		c.mu.Unlock()
		return
	}
	listeners := c.setStatusLocked(status)
	if handedOff {
		c.handedOff = c.draft
		c.draft = domain.ContactDraft{}
		c.revert = c.scheduler.AfterFunc(c.revertAfter, func() { c.revertToIdle(gen) })
	}
	c.mu.Unlock()
	notify(listeners, status)
}

func (c *contactController) revertToIdle(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.generation || c.status.Type != domain.StatusSuccess {
		c.mu.Unlock()
		return
	}
	c.revert = nil
	c.handedOff = domain.ContactDraft{}
	idle := domain.SubmissionStatus{Type: domain.StatusIdle}
	listeners := c.setStatusLocked(idle)
	c.mu.Unlock()
	notify(listeners, idle)
}

func (c *contactController) ReportHandoffFailure() (*domain.ContactReceipt, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, domain.ErrSessionClosed
	}
	if c.status.Type != domain.StatusSuccess {
		c.mu.Unlock()
		return nil, domain.ErrNoPendingHandoff
	}
	c.stopRevertLocked()
	c.generation++
	c.draft = c.handedOff
	c.handedOff = domain.ContactDraft{}
	failed := domain.SubmissionStatus{
		Type:    domain.StatusError,
		Message: fmt.Sprintf(statusFallback, c.composer.Recipient()),
	}
	listeners := c.setStatusLocked(failed)
	c.mu.Unlock()

	logger.Log.Error("Mailto handoff failed in the browser", "session_id", c.sessionID)
	notify(listeners, failed)
	return &domain.ContactReceipt{Status: failed}, nil
}

func (c *contactController) SetField(field domain.ContactField, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return domain.ErrSessionClosed
	}
	switch field {
	case domain.FieldName:
		c.draft.Name = value
	case domain.FieldEmail:
		c.draft.Email = value
	case domain.FieldMessage:
		c.draft.Message = value
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownField, field)
	}
	return nil
}

func (c *contactController) State() domain.ContactState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.ContactState{Draft: c.draft, Status: c.status}
}

func (c *contactController) Subscribe(fn func(domain.SubmissionStatus)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return func() {}
	}
	id := c.nextListener
	c.nextListener++
	c.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

func (c *contactController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.stopRevertLocked()
	clear(c.listeners)
}

func (c *contactController) stopRevertLocked() {
	if c.revert != nil {
		c.revert.Stop()
		c.revert = nil
	}
}

func (c *contactController) setStatusLocked(status domain.SubmissionStatus) []func(domain.SubmissionStatus) {
	c.status = status
	listeners := make([]func(domain.SubmissionStatus), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	return listeners
}

func notify(listeners []func(domain.SubmissionStatus), status domain.SubmissionStatus) {
	for _, fn := range listeners {
		fn(status)
	}
}
