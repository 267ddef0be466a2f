package server

import (
	"context"
	"errors"
	"net"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/ilsalary/net-salary-calculator/internal/calculation"
	"github.com/ilsalary/net-salary-calculator/internal/domain"
	"github.com/ilsalary/net-salary-calculator/internal/logging"
	"github.com/ilsalary/net-salary-calculator/internal/remote"
	"github.com/ilsalary/net-salary-calculator/internal/ruletable"
)

// Route paths.
const (
	RouteCalculate       = "/api/v1/calculate"
	RouteRemoteCalculate = "/api/v1/calculator/calculate"
	RouteTaxBrackets     = "/api/v1/calculator/tax-brackets"
	RouteConstants       = "/api/v1/calculator/constants"
	RouteHealth          = "/health"
	RouteMetrics         = "/metrics"

	// CalculationIDHeader carries the id assigned to every calculation response.
	CalculationIDHeader = "X-Calculation-ID"
)

var errTaxYear = errors.New("tax_year must be a positive integer")

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Options configure a Server.
type Options struct {
	Rules   *ruletable.Holder
	Logger  *zap.Logger
	TaxYear int // default tax year; zero selects the latest table
}

// Server exposes the calculation engine and rule tables over HTTP.
type Server struct {
	rules   *ruletable.Holder
	engine  *calculation.Engine
	logger  *zap.Logger
	metrics *Metrics
	taxYear int

	metricsHandler fasthttp.RequestHandler
	httpServer     *fasthttp.Server
	now            func() time.Time
}

// New builds a server with its own Prometheus registry.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	engine := calculation.NewEngine()
	engine.SetLogger(logging.NewCalculationLogger(logger))

	s := &Server{
		rules:          opts.Rules,
		engine:         engine,
		logger:         logger.Named("http"),
		metrics:        NewMetrics(reg),
		taxYear:        opts.TaxYear,
		metricsHandler: fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
		now:            time.Now,
	}
	s.httpServer = &fasthttp.Server{
		Handler:      s.Handler(),
		Name:         "netsalary",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routing handler with access logging and request metrics.
func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		route := s.route(ctx)
		status := ctx.Response.StatusCode()
		elapsed := time.Since(start)
		s.metrics.ObserveRequest(route, status, elapsed)
		s.logger.Info("request",
			zap.ByteString("method", ctx.Method()),
			zap.ByteString("path", ctx.Path()),
			zap.Int("status", status),
			zap.Duration("elapsed", elapsed),
		)
	}
}

func (s *Server) route(ctx *fasthttp.RequestCtx) string {
	path := string(ctx.Path())
	switch path {
	case RouteCalculate:
		if s.allow(ctx, fasthttp.MethodPost) {
			s.handleCalculate(ctx)
		}
	case RouteRemoteCalculate:
		if s.allow(ctx, fasthttp.MethodPost) {
			s.handleRemoteCalculate(ctx)
		}
	case RouteTaxBrackets:
		if s.allow(ctx, fasthttp.MethodGet) {
			s.handleTaxBrackets(ctx)
		}
	case RouteConstants:
		if s.allow(ctx, fasthttp.MethodGet) {
			s.handleConstants(ctx)
		}
	case RouteHealth:
		if s.allow(ctx, fasthttp.MethodGet) {
			s.handleHealth(ctx)
		}
	case RouteMetrics:
		s.metricsHandler(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found: "+path)
		return "not_found"
	}
	return path
}

func (s *Server) allow(ctx *fasthttp.RequestCtx, method string) bool {
	if string(ctx.Method()) == method {
		return true
	}
	ctx.Response.Header.Set("Allow", method)
	writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
	return false
}

func (s *Server) handleCalculate(ctx *fasthttp.RequestCtx) {
	var in domain.CalculationInput
	if err := json.Unmarshal(ctx.PostBody(), &in); err != nil {
		s.metrics.RecordCalculation(employmentLabel(in.EmploymentType), "decode_error")
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	outcome, ok := s.calculate(ctx, &in)
	if !ok {
		return
	}
	if outcome.Single != nil {
		writeJSON(ctx, fasthttp.StatusOK, outcome.Single)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, outcome.Multi)
}

// handleRemoteCalculate answers the flattened request shape the remote client sends.
func (s *Server) handleRemoteCalculate(ctx *fasthttp.RequestCtx) {
	var req remote.APIRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.metrics.RecordCalculation(employmentLabel(domain.EmploymentType(req.EmploymentType)), "decode_error")
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	in, err := remote.FromAPIRequest(req, s.now())
	if err != nil {
		s.metrics.RecordCalculation(employmentLabel(domain.EmploymentType(req.EmploymentType)), "invalid_input")
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	outcome, ok := s.calculate(ctx, in)
	if !ok {
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, remote.ToAPIResponse(outcome))
}

func (s *Server) calculate(ctx *fasthttp.RequestCtx, in *domain.CalculationInput) (*domain.Outcome, bool) {
	id := uuid.New().String()
	ctx.Response.Header.Set(CalculationIDHeader, id)
	label := employmentLabel(in.EmploymentType)

	rules, err := s.resolveRules(ctx)
	if err != nil {
		s.metrics.RecordCalculation(label, "rules_error")
		writeError(ctx, statusFor(err), err.Error())
		return nil, false
	}
	outcome, err := s.engine.Calculate(in, rules)
	if err != nil {
		status := statusFor(err)
		reason := "error"
		if status == fasthttp.StatusBadRequest {
			reason = "invalid_input"
		}
		s.metrics.RecordCalculation(label, reason)
		s.logger.Warn("calculation failed", zap.String("calculation_id", id), zap.Error(err))
		writeError(ctx, status, err.Error())
		return nil, false
	}
	s.metrics.RecordCalculation(label, "ok")
	s.logger.Debug("calculation complete",
		zap.String("calculation_id", id),
		zap.Int("tax_year", rules.TaxYear),
		zap.String("net", outcome.NetSalary().StringFixed(2)),
	)
	return outcome, true
}

type bracketsView struct {
	TaxYear  int                 `json:"tax_year"`
	Brackets []domain.TaxBracket `json:"brackets"`
}

func (s *Server) handleTaxBrackets(ctx *fasthttp.RequestCtx) {
	rules, err := s.resolveRules(ctx)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, bracketsView{TaxYear: rules.TaxYear, Brackets: rules.IncomeTaxBrackets})
}

type constantsView struct {
	TaxYear             int                         `json:"tax_year"`
	SocialSecurity      domain.SocialSecurityConfig `json:"social_security"`
	Pension             domain.PensionConfig        `json:"pension"`
	CreditPoints        domain.CreditPointsConfig   `json:"credit_points"`
	Donations           domain.DonationsConfig      `json:"donations"`
	DisabilityExemption domain.DisabilityConfig     `json:"disability_exemption"`
	SelfEmployed        domain.SelfEmployedConfig   `json:"self_employed"`
	StudyFund           domain.StudyFundConfig      `json:"study_fund"`
	LocalityDiscounts   []domain.LocalityDiscount   `json:"locality_discounts"`
}

func (s *Server) handleConstants(ctx *fasthttp.RequestCtx) {
	rules, err := s.resolveRules(ctx)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, constantsView{
		TaxYear:             rules.TaxYear,
		SocialSecurity:      rules.SocialSecurity,
		Pension:             rules.Pension,
		CreditPoints:        rules.CreditPoints,
		Donations:           rules.Donations,
		DisabilityExemption: rules.DisabilityExemption,
		SelfEmployed:        rules.SelfEmployed,
		StudyFund:           rules.StudyFund,
		LocalityDiscounts:   rules.LocalityDiscounts,
	})
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, remote.HealthStatus{
		Status:   "healthy",
		TaxYears: s.rules.Registry().Years(),
	})
}

// resolveRules picks the table named by ?tax_year, then the configured year, then the latest.
func (s *Server) resolveRules(ctx *fasthttp.RequestCtx) (*domain.RuleTable, error) {
	year := s.taxYear
	if raw := ctx.QueryArgs().Peek("tax_year"); len(raw) > 0 {
		v, err := strconv.Atoi(string(raw))
		if err != nil || v <= 0 {
			return nil, errTaxYear
		}
		year = v
	}
	return s.rules.Registry().Resolve(year)
}

// Serve accepts connections on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// ListenAndServe listens on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("listening", zap.String("addr", addr), zap.Ints("tax_years", s.rules.Registry().Years()))
	return s.httpServer.ListenAndServe(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.ShutdownWithContext(ctx)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errTaxYear),
		errors.Is(err, calculation.ErrInvalidInput),
		errors.Is(err, calculation.ErrUnsupportedEmploymentType):
		return fasthttp.StatusBadRequest
	case errors.Is(err, ruletable.ErrUnknownTaxYear):
		return fasthttp.StatusNotFound
	default:
		return fasthttp.StatusInternalServerError
	}
}

// employmentLabel bounds the metric label to the known employment types.
func employmentLabel(t domain.EmploymentType) string {
	switch t {
	case "", domain.EmploymentEmployee:
		return string(domain.EmploymentEmployee)
	case domain.EmploymentSelfEmployed, domain.EmploymentCombined, domain.EmploymentMultipleEmployers:
		return string(t)
	default:
		return "unknown"
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to encode response: "+err.Error())
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
