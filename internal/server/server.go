// Package server exposes report runs over HTTP with live progress on a
// websocket.
package server

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gauthierbraillon/ytdigest/internal/aggregator"
	"github.com/gauthierbraillon/ytdigest/internal/display"
	"github.com/gauthierbraillon/ytdigest/internal/metrics"
)

// Runner executes one report run.
type Runner interface {
	Run(ctx context.Context, refs []string, hooks aggregator.Hooks) *aggregator.Report
}

// Event types pushed to websocket clients.
const (
	EventWelcome  = "welcome"
	EventStarted  = "run.started"
	EventProgress = "run.progress"
	EventNotice   = "run.notice"
	EventFinished = "run.finished"
)

// Event is one websocket message.
type Event struct {
	Type    string             `json:"type"`
	RunID   string             `json:"run_id,omitempty"`
	Done    int                `json:"done,omitempty"`
	Total   int                `json:"total,omitempty"`
	Message string             `json:"message,omitempty"`
	Notice  *aggregator.Notice `json:"notice,omitempty"`
	Status  aggregator.Status  `json:"status,omitempty"`
	At      time.Time          `json:"at"`
}

type reportRequest struct {
	Links string `json:"links"`
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request and event logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMetrics exposes m on /metrics and tracks runs in progress.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// Server serves the report API. Only one run executes at a time.
type Server struct {
	runner  Runner
	hub     *Hub
	logger  logrus.FieldLogger
	metrics *metrics.Metrics
	running sync.Mutex
	engine  *gin.Engine
}

// New creates a Server backed by runner.
func New(runner Runner, opts ...Option) *Server {
	s := &Server{
		runner: runner,
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.hub = NewHub(s.logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), s.logRequests())

	router.GET("/", s.index)
	router.GET("/health", s.health)
	router.POST("/api/reports", s.createReport)
	router.GET("/ws/reports", s.hub.handle)
	if s.metrics != nil {
		router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	s.engine = router
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "ws_clients": s.hub.Count()})
}

func (s *Server) index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
}

func (s *Server) createReport(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	refs := aggregator.ParseReferences(req.Links)
	if len(refs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "enter at least one link"})
		return
	}

	format, err := display.ParseFormat(c.DefaultQuery("format", string(display.FormatJSON)))
	if err != nil || format == display.FormatText {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be json or csv"})
		return
	}

	if !s.running.TryLock() {
		c.JSON(http.StatusConflict, gin.H{"error": "a report is already running"})
		return
	}
	defer s.running.Unlock()

	if s.metrics != nil {
		s.metrics.RunsInProgress.Inc()
		defer s.metrics.RunsInProgress.Dec()
	}

	s.hub.BroadcastJSON(Event{Type: EventStarted, Total: len(refs), At: time.Now().UTC()})
	report := s.runner.Run(c.Request.Context(), refs, aggregator.Hooks{
		OnProgress: func(done, total int) {
			s.hub.BroadcastJSON(Event{Type: EventProgress, Done: done, Total: total, At: time.Now().UTC()})
		},
		OnNotice: func(n aggregator.Notice) {
			s.hub.BroadcastJSON(Event{Type: EventNotice, Notice: &n, Message: n.Message, At: time.Now().UTC()})
		},
	})
	s.hub.BroadcastJSON(Event{
		Type:   EventFinished,
		RunID:  report.RunID,
		Done:   report.Processed,
		Total:  report.Total,
		Status: report.Status(),
		At:     time.Now().UTC(),
	})

	if format == display.FormatCSV {
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", `attachment; filename="ytdigest-`+report.RunID+`.csv"`)
		c.Status(http.StatusOK)
		if err := display.WriteCSV(c.Writer, report); err != nil {
			s.logger.WithError(err).Warn("Failed to stream CSV report")
		}
		return
	}
	c.JSON(http.StatusOK, report)
}

// logRequests logs each request through the server logger.
func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if strings.HasPrefix(c.Request.URL.Path, "/ws/") {
			return
		}
		entry := s.logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Error("Request failed")
			return
		}
		entry.Debug("Request handled")
	}
}
