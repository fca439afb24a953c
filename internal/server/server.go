package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rezonia/efactura/internal/metrics"
	"github.com/rezonia/efactura/internal/model"
	"github.com/rezonia/efactura/internal/processor"
	"github.com/rezonia/efactura/internal/ubl"
)

const requestTimeout = 30 * time.Second

// Config holds server configuration
type Config struct {
	Address           string
	Currency          string
	DefaultTaxPercent *decimal.Decimal // nil keeps the standard rate
	StrictIdentifiers bool
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	Debug             bool
	Logger            zerolog.Logger
}

// Server represents the HTTP API server
type Server struct {
	config   *Config
	router   *gin.Engine
	pipeline *processor.Pipeline
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.New()
	logger := config.Logger.With().Str("component", "server").Logger()

	opts := []processor.Option{
		processor.WithLogger(config.Logger.With().Str("component", "pipeline").Logger()),
		processor.WithMetrics(m),
		processor.WithCurrency(config.Currency),
		processor.WithStrictIdentifiers(config.StrictIdentifiers),
	}
	if config.DefaultTaxPercent != nil {
		opts = append(opts, processor.WithDefaultTaxPercent(*config.DefaultTaxPercent))
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	s := &Server{
		config:   config,
		router:   router,
		pipeline: processor.NewPipeline(opts...),
		metrics:  m,
		logger:   logger,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/invoices/xml", s.handleGenerate)
		v1.POST("/invoices/validate", s.handleValidate)
		v1.POST("/invoices/inspect", s.handleInspect)

		v1.POST("/identifiers/normalize", s.handleNormalizeIdentifier)
		v1.POST("/addresses/normalize", s.handleNormalizeAddress)
	}
}

// Run starts the HTTP server and shuts it down when ctx is done
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("address", s.config.Address).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics returns the server's metrics
func (s *Server) Metrics() *metrics.Metrics {
	return s.metrics
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleGenerate(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	result := s.pipeline.GenerateBytes(ctx, body)
	if result.Error != nil {
		writeError(c, result.Error)
		return
	}

	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, GenerateResponse{
			XML:      result.XML,
			Totals:   newTotalsOutput(result),
			Warnings: result.Warnings,
		})
		return
	}

	for _, w := range result.Warnings {
		c.Writer.Header().Add(HeaderWarning, w)
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(result.XML))
}

func (s *Server) handleValidate(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	if processor.DetectFormat(body) != processor.FormatJSON {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "only JSON invoices can be validated"})
		return
	}

	input, err := processor.DecodeInput(bytes.NewReader(body))
	if err != nil {
		writeError(c, err)
		return
	}

	if err := s.pipeline.Validate(input); err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			s.metrics.IncrementValidationFailure(verr.Field)
			c.JSON(http.StatusOK, ValidationResponse{
				Valid:  false,
				Errors: []FieldError{{Field: verr.Field, Line: verr.Line, Message: verr.Message}},
			})
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ValidationResponse{Valid: true})
}

func (s *Server) handleInspect(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	if processor.DetectFormat(body) == processor.FormatUnknown {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unsupported format, expected UBL XML or a JSON invoice"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	summary, err := s.pipeline.Inspect(ctx, body)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func readBody(c *gin.Context) ([]byte, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return nil, false
	}

	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return nil, false
	}

	return body, true
}

// writeError maps pipeline errors to status codes: structural defects are
// 422, undecodable input is 400
func writeError(c *gin.Context, err error) {
	var verr *model.ValidationError
	var perr *model.ParseError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: verr.Message,
			Field: verr.Field,
			Line:  verr.Line,
		})
	case errors.As(err, &perr):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   perr.Message,
			Field:   perr.Field,
			Details: err.Error(),
		})
	case errors.Is(err, ubl.ErrNotInvoice):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "request canceled"})
	default:
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	}
}
