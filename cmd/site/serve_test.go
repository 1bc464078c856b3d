package main

import (
	"bufio"
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"balkan-spine-wellness/internal/delivery/http/middleware"
	v1 "balkan-spine-wellness/internal/delivery/http/v1"
	"balkan-spine-wellness/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownWithOpenStream(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sessions := usecase.NewContactSessionRegistry(usecase.NewContactControllerFactory(usecase.ContactOptions{}), time.Hour)
	r := gin.New()
	api := r.Group("/v1", middleware.VisitorSession())
	v1.NewContactHandler(api, sessions, func(c *gin.Context) { c.Next() })

	runCtx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()
	sessionsDone := make(chan struct{})
	go func() {
		defer close(sessionsDone)
		sessions.Run(runCtx, time.Hour)
	}()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := newServer(runCtx, cancelRun, ln.Addr().String(), r)
	go func() { _ = srv.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/v1/contact/events")
	require.NoError(t, err)
	defer resp.Body.Close()

	line, err := bufio.NewReader(resp.Body).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event:status\n", line)
	require.Equal(t, 1, sessions.Len())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	start := time.Now()
	require.NoError(t, srv.Shutdown(ctx))
	assert.Less(t, time.Since(start), time.Second)

	select {
	case <-sessionsDone:
	case <-time.After(time.Second):
		t.Fatal("session janitor still running after shutdown")
	}
	assert.Equal(t, 0, sessions.Len())
}
