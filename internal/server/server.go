package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Server is the HTTP listener Telegram delivers webhook updates to.
type Server struct {
	httpServer *http.Server
	logger     *zerolog.Logger
}

// NewRouter mounts webhook on POST /{token} plus a health probe. The token is
// the secret path segment Telegram was told to call. Bot tokens contain a
// colon, so the segment is matched by value rather than as a static route.
func NewRouter(token string, webhook http.HandlerFunc, logger *zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/:token", func(c *gin.Context) {
		if c.Param("token") != token {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		webhook(c.Writer, c.Request)
	})

	return router
}

// requestLogger logs each request without the path, which carries the token.
func requestLogger(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route != "/healthz" {
			route = "webhook"
		}

		logger.Debug().
			Str("method", c.Request.Method).
			Str("route", route).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("http request")
	}
}

// New creates a server listening on 0.0.0.0:port.
func New(port int, handler http.Handler, logger *zerolog.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              net.JoinHostPort("0.0.0.0", strconv.Itoa(port)),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Start binds the listener and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("unable to listen on %s: %w", s.httpServer.Addr, err)
	}

	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("webhook server listening")

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("webhook server stopped")
		}
	}()

	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down webhook server")
	return s.httpServer.Shutdown(ctx)
}
