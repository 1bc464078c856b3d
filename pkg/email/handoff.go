package email

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrLinkTooLong = errors.New("mailto link exceeds the maximum length")
	ErrNoRecipient = errors.New("mailto link has no recipient")
	ErrNotMailto   = errors.New("link is not a mailto URI")
)

// LinkHandoff checks that a mailto link can be opened by the visitor's mail
// client. The page itself opens the link in a new browsing context once the
// handoff accepts it, so the current page is never navigated away.
type LinkHandoff struct {
	maxLength int
}

// NewLinkHandoff creates a handoff; maxLength <= 0 disables the length check.
func NewLinkHandoff(maxLength int) *LinkHandoff {
	return &LinkHandoff{maxLength: maxLength}
}

func (h *LinkHandoff) Open(ctx context.Context, link string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rest, ok := strings.CutPrefix(link, "mailto:")
	if !ok {
		return ErrNotMailto
	}
	recipient, _, _ := strings.Cut(rest, "?")
	if strings.TrimSpace(recipient) == "" {
		return ErrNoRecipient
	}

	// Many mail clients silently truncate long URIs, so refuse instead.
	if h.maxLength > 0 && len(link) > h.maxLength {
		return fmt.Errorf("%w: %d > %d", ErrLinkTooLong, len(link), h.maxLength)
	}
	return nil
}
