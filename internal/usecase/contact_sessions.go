package usecase

import (
	"context"
	"sync"
	"time"

	"balkan-spine-wellness/internal/domain"
	"balkan-spine-wellness/pkg/logger"
)

// ControllerFactory builds the controller for a newly mounted session
type ControllerFactory func(sessionID string) domain.ContactController

type sessionEntry struct {
	controller domain.ContactController
	lastSeen   time.Time
}

// ContactSessionRegistry keeps one contact controller per visitor session and
// tears down sessions that went quiet.
type ContactSessionRegistry struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
	factory ControllerFactory
	ttl     time.Duration
	now     func() time.Time
}

// NewContactSessionRegistry creates a registry; ttl <= 0 disables sweeping.
func NewContactSessionRegistry(factory ControllerFactory, ttl time.Duration) *ContactSessionRegistry {
	return &ContactSessionRegistry{
		entries: make(map[string]*sessionEntry),
		factory: factory,
		ttl:     ttl,
		now:     time.Now,
	}
}

// NewContactControllerFactory binds shared options to every new session.
func NewContactControllerFactory(opts ContactOptions) ControllerFactory {
	return func(sessionID string) domain.ContactController {
		return NewContactController(sessionID, opts)
	}
}

// Mount returns the session's controller, creating an empty one on first use.
func (r *ContactSessionRegistry) Mount(sessionID string) domain.ContactController {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[sessionID]
	if !ok {
		entry = &sessionEntry{controller: r.factory(sessionID)}
		r.entries[sessionID] = entry
	}
	entry.lastSeen = r.now()
	return entry.controller
}

func (r *ContactSessionRegistry) Get(sessionID string) (domain.ContactController, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	entry.lastSeen = r.now()
	return entry.controller, nil
}

// Unmount closes and forgets a session. It reports whether one existed.
func (r *ContactSessionRegistry) Unmount(sessionID string) bool {
	r.mu.Lock()
	entry, ok := r.entries[sessionID]
	delete(r.entries, sessionID)
	r.mu.Unlock()

	if ok {
		entry.controller.Close()
	}
	return ok
}

func (r *ContactSessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep unmounts sessions idle for longer than the TTL and returns how many
// were removed.
func (r *ContactSessionRegistry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var expired []domain.ContactController
	for id, entry := range r.entries {
		if entry.lastSeen.Before(cutoff) {
			expired = append(expired, entry.controller)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()

	for _, c := range expired {
		c.Close()
	}
	return len(expired)
}

// Run sweeps on every tick until ctx is done, then closes all sessions.
func (r *ContactSessionRegistry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.CloseAll()
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				logger.Log.Debug("Swept idle contact sessions", "count", n)
			}
		}
	}
}

func (r *ContactSessionRegistry) CloseAll() {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[string]*sessionEntry)
	r.mu.Unlock()

	for _, entry := range entries {
		entry.controller.Close()
	}
}
