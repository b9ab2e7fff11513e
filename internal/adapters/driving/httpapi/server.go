// Package httpapi exposes the lookup service over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/sharepoint-lookup/internal/core/domain"
	"github.com/custodia-labs/sharepoint-lookup/internal/core/ports/driven"
	"github.com/custodia-labs/sharepoint-lookup/internal/core/ports/driving"
	"github.com/custodia-labs/sharepoint-lookup/internal/logger"
)

// defaultEntityType is used for bare string values.
const defaultEntityType = "string"

// ErrMissingLookupService is returned when the lookup service is not provided.
var ErrMissingLookupService = errors.New("httpapi: lookup service is required")

// Server serves lookup requests.
type Server struct {
	lookup driving.LookupService
	store  driven.OptionsStore
}

// NewServer creates a server. store may be nil, in which case every
// request must carry its own options.
func NewServer(lookup driving.LookupService, store driven.OptionsStore) (*Server, error) {
	if lookup == nil {
		return nil, ErrMissingLookupService
	}
	return &Server{lookup: lookup, store: store}, nil
}

// SetupRouter builds the gin engine with all routes registered.
func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/healthz", s.Health)
	r.POST("/lookup", s.Lookup)
	r.POST("/validate", s.Validate)

	return r
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// LookupRequest is the body of POST /lookup.
// Entities take precedence over Values; Options override the stored options.
type LookupRequest struct {
	Entities []domain.Entity           `json:"entities"`
	Values   []string                  `json:"values"`
	Options  *domain.ConnectionOptions `json:"options"`
}

// ValidateRequest is the body of POST /validate.
type ValidateRequest struct {
	Options *domain.ConnectionOptions `json:"options"`
}

// Health reports liveness.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Lookup runs a batch lookup.
func (s *Server) Lookup(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	entities := req.Entities
	if len(entities) == 0 {
		for _, v := range req.Values {
			if v = strings.TrimSpace(v); v != "" {
				entities = append(entities, domain.Entity{Type: defaultEntityType, Value: v})
			}
		}
	}
	if len(entities) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one entity is required"})
		return
	}

	results, err := s.lookup.Lookup(c.Request.Context(), entities, s.options(req.Options))
	if err != nil {
		payload := domain.PayloadOf(err)
		logger.Warn("lookup failed: %s: %s", payload.Name, payload.Detail)
		c.JSON(statusFor(err), gin.H{"error": payload})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// Validate checks connection options.
func (s *Server) Validate(c *gin.Context) {
	var req ValidateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
	}

	errs := s.lookup.ValidateOptions(s.options(req.Options))
	c.JSON(http.StatusOK, gin.H{"valid": len(errs) == 0, "errors": errs})
}

func (s *Server) options(override *domain.ConnectionOptions) domain.ConnectionOptions {
	if override != nil {
		return *override
	}
	if s.store == nil {
		return domain.ConnectionOptions{}
	}
	return s.store.Options()
}

// statusFor maps a lookup failure to an HTTP status.
func statusFor(err error) int {
	var lookupErr *domain.LookupError
	if errors.As(err, &lookupErr) && lookupErr.Kind == domain.KindConfiguration {
		return http.StatusBadRequest
	}
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
