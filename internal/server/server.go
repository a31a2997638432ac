// Package server exposes the calculators over HTTP
package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/rgehrsitz/pphgo/internal/calculation"
	"github.com/rgehrsitz/pphgo/internal/config"
	"github.com/rgehrsitz/pphgo/internal/domain"
)

const (
	requestIDHeader = "X-Request-ID"
	contentTypeJSON = "application/json; charset=utf-8"
	calculatePrefix = "/v1/calculate/"
	ratesPrefix     = "/v1/rates/"
)

// ErrorEnvelope is the body of every error response
type ErrorEnvelope struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id"`
}

// Server routes HTTP requests to the calculation engine
type Server struct {
	Engine *calculation.CalculationEngine
	Parser *config.InputParser
	Logger calculation.Logger
}

// New creates a server. A nil logger discards log output.
func New(engine *calculation.CalculationEngine, logger calculation.Logger) *Server {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &Server{
		Engine: engine,
		Parser: config.NewInputParser(),
		Logger: logger,
	}
}

// Handler is the fasthttp entry point
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	requestID := string(ctx.Request.Header.Peek(requestIDHeader))
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx.Response.Header.Set(requestIDHeader, requestID)

	path := string(ctx.Path())
	switch {
	case path == "/healthz":
		if s.allow(ctx, requestID, fasthttp.MethodGet) {
			writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
		}
	case path == "/v1/classifications":
		if s.allow(ctx, requestID, fasthttp.MethodGet) {
			writeJSON(ctx, fasthttp.StatusOK, classificationViews())
		}
	case strings.HasPrefix(path, ratesPrefix):
		if s.allow(ctx, requestID, fasthttp.MethodGet) {
			s.handleRates(ctx, requestID, strings.TrimPrefix(path, ratesPrefix))
		}
	case strings.HasPrefix(path, calculatePrefix):
		if s.allow(ctx, requestID, fasthttp.MethodPost) {
			s.handleCalculate(ctx, requestID, strings.TrimPrefix(path, calculatePrefix))
		}
	default:
		writeError(ctx, fasthttp.StatusNotFound, "not_found", "no route for "+path, "", requestID)
	}

	s.Logger.Infof("%s %s %d %s request_id=%s",
		ctx.Method(), path, ctx.Response.StatusCode(), time.Since(start), requestID)
}

func (s *Server) allow(ctx *fasthttp.RequestCtx, requestID, method string) bool {
	if string(ctx.Method()) == method {
		return true
	}
	ctx.Response.Header.Set("Allow", method)
	writeError(ctx, fasthttp.StatusMethodNotAllowed, "method_not_allowed",
		fmt.Sprintf("%s requires %s", ctx.Path(), method), "", requestID)
	return false
}

func (s *Server) handleCalculate(ctx *fasthttp.RequestCtx, requestID, name string) {
	scheme, err := config.ParseScheme(name)
	if err != nil {
		writeError(ctx, fasthttp.StatusNotFound, "unknown_scheme", err.Error(), "", requestID)
		return
	}

	c, err := decodeComputation(scheme, ctx.PostBody())
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid_json", err.Error(), "", requestID)
		return
	}
	c.Name = requestID
	if err := s.Parser.ValidateComputation(&c); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid_request", err.Error(), "", requestID)
		return
	}

	result, err := s.calculate(c)
	if err != nil {
		s.writeCalculationError(ctx, err, requestID)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, result)
}

// decodeComputation reads the scheme's request from a JSON body
func decodeComputation(scheme domain.Scheme, body []byte) (domain.Computation, error) {
	c := domain.Computation{Scheme: scheme}
	var target any
	switch scheme {
	case domain.SchemeMonthly:
		c.Monthly = &domain.MonthlyRequest{}
		target = c.Monthly
	case domain.SchemeAnnual:
		c.Annual = &domain.AnnualRequest{}
		target = c.Annual
	case domain.SchemeGoods:
		c.Goods = &domain.GoodsTaxRequest{}
		target = c.Goods
	case domain.SchemeWithholding:
		c.Withholding = &domain.WithholdingRequest{}
		target = c.Withholding
	case domain.SchemeFinal:
		c.Final = &domain.FinalTaxRequest{}
		target = c.Final
	case domain.SchemeVAT:
		c.VAT = &domain.VATRequest{}
		target = c.VAT
	case domain.SchemeUnifiedLevy:
		c.Levy = &domain.UnifiedLevyRequest{}
		target = c.Levy
	default:
		return c, fmt.Errorf("unknown scheme %s", scheme)
	}
	if len(body) == 0 {
		return c, fmt.Errorf("request body is empty")
	}
	if err := json.Unmarshal(body, target); err != nil {
		return c, fmt.Errorf("failed to decode %s request: %w", scheme, err)
	}
	return c, nil
}

func (s *Server) calculate(c domain.Computation) (any, error) {
	switch c.Scheme {
	case domain.SchemeMonthly:
		return s.Engine.CalculateMonthly(*c.Monthly)
	case domain.SchemeAnnual:
		return s.Engine.CalculateAnnual(*c.Annual)
	case domain.SchemeGoods:
		return s.Engine.CalculateGoodsTax(*c.Goods)
	case domain.SchemeWithholding:
		return s.Engine.CalculateWithholding(*c.Withholding)
	case domain.SchemeFinal:
		return s.Engine.CalculateFinalTax(*c.Final)
	case domain.SchemeVAT:
		return s.Engine.CalculateVAT(*c.VAT)
	case domain.SchemeUnifiedLevy:
		return s.Engine.CalculateUnifiedLevy(*c.Levy)
	}
	return nil, fmt.Errorf("unknown scheme %s", c.Scheme)
}

func (s *Server) writeCalculationError(ctx *fasthttp.RequestCtx, err error, requestID string) {
	var invalid *calculation.InvalidInputError
	var unresolved *calculation.UnresolvedClassificationError
	switch {
	case errors.As(err, &invalid):
		writeError(ctx, fasthttp.StatusBadRequest, "invalid_input", err.Error(), invalid.Field, requestID)
	case errors.As(err, &unresolved):
		writeError(ctx, fasthttp.StatusUnprocessableEntity, "unresolved_classification", err.Error(), "classification", requestID)
	default:
		s.Logger.Errorf("calculation failed: %v request_id=%s", err, requestID)
		writeError(ctx, fasthttp.StatusInternalServerError, "internal", err.Error(), "", requestID)
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType(contentTypeJSON)
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}

func writeError(ctx *fasthttp.RequestCtx, status int, code, message, field, requestID string) {
	writeJSON(ctx, status, ErrorEnvelope{
		Code:      code,
		Message:   message,
		Field:     field,
		RequestID: requestID,
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, shutdownTimeout time.Duration) error {
	srv := &fasthttp.Server{
		Handler:     s.Handler,
		Name:        "pphgo",
		ReadTimeout: readTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Infof("listening on %s", addr)
		errCh <- srv.ListenAndServe(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.Logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
