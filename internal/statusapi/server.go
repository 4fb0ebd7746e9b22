// internal/statusapi/server.go
package statusapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tamzrod/lifelights/internal/metrics"
	"github.com/tamzrod/lifelights/internal/status"
)

// Server exposes the status board and metrics over HTTP. Read-only.
type Server struct {
	addr    string
	board   *status.Board
	metrics *metrics.Metrics
	engine  *gin.Engine
}

// New constructs a server with routes and middleware.
// A nil metrics disables /metrics.
func New(addr string, board *status.Board, m *metrics.Metrics) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	server := &Server{addr: addr, board: board, metrics: m, engine: engine}
	server.registerRoutes()
	return server
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/watchers", s.handleListWatchers)
	s.engine.GET("/watchers/:name", s.handleGetWatcher)

	if s.metrics != nil {
		s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}
}

// handleHealth reports 503 while any watcher's last dispatch cycle failed.
func (s *Server) handleHealth(c *gin.Context) {
	if !s.board.Healthy() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleListWatchers(c *gin.Context) {
	snaps := s.board.All()
	c.JSON(http.StatusOK, gin.H{
		"data": snaps,
		"meta": gin.H{
			"count": len(snaps),
		},
	})
}

func (s *Server) handleGetWatcher(c *gin.Context) {
	name := c.Param("name")

	snap, ok := s.board.Get(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "watcher not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":   snap,
		"health": status.HealthName(snap.Health),
	})
}
