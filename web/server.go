// Package web exposes the run history over HTTP for local inspection.
package web

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"video2md/internal/app/repository"
)

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "v2md_http_requests_total",
	Help: "HTTP requests served, by path and status.",
}, []string{"path", "status"})

// Server serves the run-history API.
type Server struct {
	history    repository.RunDAO
	httpServer *http.Server
	log        *zap.SugaredLogger
}

func NewServer(addr string, history repository.RunDAO, log *zap.SugaredLogger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		history: history,
		log:     log,
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now().Unix()})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/runs", s.listRuns)
		api.GET("/runs/:id", s.getRun)
	}

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("http server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) listRuns(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.reply(c, http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	runs, err := s.history.GetAll(limit)
	if err != nil {
		s.log.Errorw("list runs failed", "error", err)
		s.reply(c, http.StatusInternalServerError, gin.H{"error": "failed to load runs"})
		return
	}
	s.reply(c, http.StatusOK, gin.H{"runs": runs, "count": len(runs)})
}

func (s *Server) getRun(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		s.reply(c, http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	run, err := s.history.GetByID(id)
	if err != nil {
		s.reply(c, http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	s.reply(c, http.StatusOK, run)
}

func (s *Server) reply(c *gin.Context, status int, body any) {
	requestsTotal.WithLabelValues(c.FullPath(), strconv.Itoa(status)).Inc()
	c.JSON(status, body)
}
