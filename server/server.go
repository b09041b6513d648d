package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kardolus/onchain-agent/wallet"
)

const (
	ChatPath    = "/api/agent/chat"
	HealthPath  = "/healthz"
	MetricsPath = "/metrics"

	shutdownTimeout = 5 * time.Second
)

// Chatter runs one agent turn and returns the full response text.
//
//go:generate mockgen -destination=chattermocks_test.go -package=server_test github.com/kardolus/onchain-agent/server Chatter
type Chatter interface {
	Chat(ctx context.Context, prompt string) (string, error)
}

type ChatRequest struct {
	Prompt string `json:"prompt"`
}

type ChatResponse struct {
	Response    string           `json:"response"`
	DisplayText string           `json:"display_text"`
	Wallet      *wallet.Snapshot `json:"wallet"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type Server struct {
	chatter     Chatter
	interpreter *wallet.Interpreter
	logger      *zap.Logger
	metrics     *Metrics
	origins     []string
	engine      *gin.Engine
}

type Option func(*Server)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithInterpreter(i *wallet.Interpreter) Option {
	return func(s *Server) {
		if i != nil {
			s.interpreter = i
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithAllowedOrigins restricts CORS; by default every origin is allowed.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) { s.origins = origins }
}

func New(chatter Chatter, opts ...Option) *Server {
	s := &Server{
		chatter: chatter,
		logger:  zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.interpreter == nil {
		s.interpreter = wallet.NewInterpreter(wallet.WithLogger(s.logger))
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}

	s.engine = s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	if len(s.origins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.origins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.Use(requestLogger(s.logger))
	router.Use(gin.Recovery())

	router.POST(ChatPath, s.chat)
	router.GET(HealthPath, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET(MetricsPath, gin.WrapH(s.metrics.Handler()))

	return router
}

func (s *Server) chat(c *gin.Context) {
	start := time.Now()
	status := http.StatusOK
	defer func() {
		s.metrics.observeRequest(status, time.Since(start).Seconds())
	}()

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		status = http.StatusBadRequest
		c.JSON(status, ErrorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		status = http.StatusBadRequest
		c.JSON(status, ErrorResponse{Error: "prompt is required"})
		return
	}

	response, err := s.chatter.Chat(c.Request.Context(), req.Prompt)
	if err != nil {
		status = http.StatusInternalServerError
		_ = c.Error(err)
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}

	result := s.interpreter.Interpret(response)
	s.metrics.observeSnapshot(result.Snapshot != nil)

	c.JSON(status, ChatResponse{
		Response:    response,
		DisplayText: result.DisplayText,
		Wallet:      result.Snapshot,
	})
}

// Run serves on addr until ctx ends, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
