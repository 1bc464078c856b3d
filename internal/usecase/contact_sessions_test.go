package usecase

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"balkan-spine-wellness/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubController struct {
	domain.ContactController
	closed atomic.Int32
}

func (s *stubController) Close() {
	s.closed.Add(1)
}

func newStubRegistry(ttl time.Duration) (*ContactSessionRegistry, map[string]*stubController) {
	created := make(map[string]*stubController)
	r := NewContactSessionRegistry(func(id string) domain.ContactController {
		c := &stubController{}
		created[id] = c
		return c
	}, ttl)
	return r, created
}

func TestRegistryMountReusesSession(t *testing.T) {
	r, created := newStubRegistry(time.Minute)

	first := r.Mount("a")
	second := r.Mount("a")
	other := r.Mount("b")

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
	assert.Len(t, created, 2)
	assert.Equal(t, 2, r.Len())

	got, err := r.Get("a")
	require.NoError(t, err)
	assert.Same(t, first, got)

	_, err = r.Get("missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestRegistryUnmountClosesController(t *testing.T) {
	r, created := newStubRegistry(time.Minute)
	r.Mount("a")

	assert.True(t, r.Unmount("a"))
	assert.False(t, r.Unmount("a"))
	assert.Equal(t, int32(1), created["a"].closed.Load())
	assert.Equal(t, 0, r.Len())
}

func TestRegistrySweepClosesIdleSessions(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	r, created := newStubRegistry(30 * time.Minute)
	r.now = func() time.Time { return now }

	r.Mount("old")
	now = now.Add(20 * time.Minute)
	r.Mount("fresh")
	now = now.Add(15 * time.Minute)

	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, int32(1), created["old"].closed.Load())
	assert.Equal(t, int32(0), created["fresh"].closed.Load())

	_, err := r.Get("fresh")
	assert.NoError(t, err)
}

func TestRegistrySweepDisabled(t *testing.T) {
	r, _ := newStubRegistry(0)
	r.Mount("a")
	assert.Equal(t, 0, r.Sweep())
}

func TestRegistryRunClosesAllOnShutdown(t *testing.T) {
	r, created := newStubRegistry(time.Hour)
	r.Mount("a")
	r.Mount("b")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	<-done

	assert.Equal(t, 0, r.Len())
	assert.Equal(t, int32(1), created["a"].closed.Load())
	assert.Equal(t, int32(1), created["b"].closed.Load())
}
