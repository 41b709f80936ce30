// Package server exposes the text engine as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alnah/go-textkit/internal/caption"
	"github.com/alnah/go-textkit/internal/config"
	"github.com/alnah/go-textkit/internal/contraction"
	"github.com/alnah/go-textkit/internal/engine"
)

// DefaultAddr is the listen address used when none is given.
const DefaultAddr = ":8080"

// shutdownTimeout bounds graceful shutdown after the context is cancelled.
const shutdownTimeout = 5 * time.Second

// Server serves the engine over HTTP.
type Server struct {
	engine  *engine.Engine
	bounds  caption.Bounds
	rate    caption.Rate
	maxBody int64
	logger  *slog.Logger
	router  *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithBounds sets the accepted speaking-rate range.
func WithBounds(b caption.Bounds) Option {
	return func(s *Server) { s.bounds = b }
}

// WithDefaultRate sets the rate used when a caption request omits wpm.
func WithDefaultRate(r caption.Rate) Option {
	return func(s *Server) { s.rate = r }
}

// WithMaxBody sets the maximum request body size in bytes.
func WithMaxBody(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Server over eng.
func New(eng *engine.Engine, opts ...Option) *Server {
	s := &Server{
		engine:  eng,
		bounds:  caption.DefaultBounds,
		rate:    caption.DefaultRate,
		maxBody: config.DefaultMaxInput,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), logRequests(s.logger))

	r.GET("/healthz", func(c *gin.Context) {
		ok(c, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.Use(limitBody(s.maxBody))
	{
		api.POST("/sentences", s.handleSentences)
		api.POST("/contractions", s.handleContractions)
		api.POST("/captions", s.handleCaptions)
	}

	r.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, CodeNotFound, "no such endpoint")
	})
	return r
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("stopped")
	return nil
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

type sentencesRequest struct {
	Text     string `json:"text"`
	Numbered bool   `json:"numbered"`
}

type contractionsRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

type captionsRequest struct {
	Text   string `json:"text"`
	WPM    int    `json:"wpm"`
	Clamp  bool   `json:"clamp"`
	Format string `json:"format"`
}

func (s *Server) handleSentences(c *gin.Context) {
	var req sentencesRequest
	if !s.bind(c, &req) {
		return
	}
	if req.Numbered {
		numbered := s.engine.NumberedSentences(req.Text)
		if numbered == nil {
			ok(c, gin.H{"sentences": []any{}})
			return
		}
		ok(c, gin.H{"sentences": numbered})
		return
	}
	sentences := s.engine.SegmentSentences(req.Text)
	if sentences == nil {
		sentences = []string{}
	}
	ok(c, gin.H{"sentences": sentences})
}

func (s *Server) handleContractions(c *gin.Context) {
	var req contractionsRequest
	if !s.bind(c, &req) {
		return
	}
	mode := contraction.Expand
	if req.Mode != "" {
		m, err := contraction.ParseMode(req.Mode)
		if err != nil {
			fail(c, http.StatusBadRequest, CodeInvalidMode, err.Error())
			return
		}
		mode = m
	}
	ok(c, gin.H{"text": s.engine.TransformContractions(req.Text, mode), "mode": mode.String()})
}

func (s *Server) handleCaptions(c *gin.Context) {
	var req captionsRequest
	if !s.bind(c, &req) {
		return
	}

	rate := s.rate
	if req.WPM != 0 {
		if req.Clamp {
			rate = s.bounds.Clamp(req.WPM)
		} else {
			r, err := s.bounds.Parse(req.WPM)
			if err != nil {
				fail(c, http.StatusBadRequest, CodeRateOutOfRange, err.Error())
				return
			}
			rate = r
		}
	}

	var f caption.Format
	if req.Format != "" {
		parsed, err := caption.ParseFormat(req.Format)
		if err != nil {
			fail(c, http.StatusBadRequest, CodeUnknownFormat, err.Error())
			return
		}
		f = parsed
	}

	caps := s.engine.SynthesizeCaptions(req.Text, rate)
	if caps == nil {
		caps = []caption.Caption{}
	}
	data := gin.H{"captions": caps, "wpm": rate.OrDefault().WPM()}

	// A format also returns the rendered document, e.g. for saving as .srt.
	if !f.IsZero() {
		var sb strings.Builder
		if err := caption.Write(&sb, caps, f); err != nil {
			fail(c, http.StatusInternalServerError, CodeInternal, err.Error())
			return
		}
		data["format"] = f.String()
		data["content"] = sb.String()
	}
	ok(c, data)
}

// bind decodes the JSON body, writing the error response on failure.
func (s *Server) bind(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		fail(c, http.StatusRequestEntityTooLarge, CodePayloadTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		return false
	}
	fail(c, http.StatusBadRequest, CodeBadRequest, "invalid JSON body: "+err.Error())
	return false
}
