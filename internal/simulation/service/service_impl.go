package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/immolens/internal/affordability"
	"github.com/smallbiznis/immolens/internal/charges"
	"github.com/smallbiznis/immolens/internal/clock"
	"github.com/smallbiznis/immolens/internal/depreciation"
	"github.com/smallbiznis/immolens/internal/financing"
	obscontext "github.com/smallbiznis/immolens/internal/observability/context"
	"github.com/smallbiznis/immolens/internal/observability/logger"
	"github.com/smallbiznis/immolens/internal/observability/metrics"
	"github.com/smallbiznis/immolens/internal/observability/tracing"
	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
	"github.com/smallbiznis/immolens/internal/profitability"
	"github.com/smallbiznis/immolens/internal/projection"
	"github.com/smallbiznis/immolens/internal/simulation/domain"
	"github.com/smallbiznis/immolens/internal/synthesis"
	"github.com/smallbiznis/immolens/internal/taxation"
	"github.com/smallbiznis/immolens/internal/validation"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log       *zap.Logger
	Clock     clock.Clock
	GenID     *snowflake.Node
	Validator *validation.Validator
	Provider  paramdomain.Provider   `optional:"true"`
	Engine    *metrics.EngineMetrics `optional:"true"`
	Metrics   *metrics.Metrics       `optional:"true"`
}

type Service struct {
	log       *zap.Logger
	clock     clock.Clock
	genID     *snowflake.Node
	validator *validation.Validator
	provider  paramdomain.Provider
	engine    *metrics.EngineMetrics
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

func NewService(p Params) domain.Service {
	v := p.Validator
	if v == nil {
		v = validation.New()
	}
	clk := p.Clock
	if clk == nil {
		clk = clock.SystemClock{}
	}
	node := p.GenID
	if node == nil {
		node, _ = snowflake.NewNode(1)
	}
	return &Service{
		log:       p.Log.Named("simulation.service"),
		clock:     clk,
		genID:     node,
		validator: v,
		provider:  p.Provider,
		engine:    p.Engine,
		metrics:   p.Metrics,
		tracer:    otel.Tracer("immolens/simulation"),
	}
}

// CalculateJSON decodes payload and runs Calculate.
func (s *Service) CalculateJSON(ctx context.Context, payload []byte, cfg *paramdomain.ResolvedConfiguration) domain.Result {
	raw, err := s.validator.Decode(payload)
	if err != nil {
		s.engine.IncSimulation(metrics.OutcomeValidationError)
		s.metrics.RecordSimulation(ctx, metrics.OutcomeValidationError, "")
		return failure(err)
	}
	return s.Calculate(ctx, raw, cfg)
}

func (s *Service) Calculate(ctx context.Context, raw domain.RawInput, cfg *paramdomain.ResolvedConfiguration) (result domain.Result) {
	started := time.Now()
	id := s.genID.Generate().String()
	ctx, _ = obscontext.EnsureCorrelationID(ctx)
	ctx = obscontext.WithCalculationID(ctx, id)

	ctx, span := s.tracer.Start(ctx, "simulation.calculate")
	defer span.End()
	log := logger.WithContext(ctx, s.log)

	r := &run{svc: s}
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("simulation panicked",
				zap.String("stage", r.stage),
				zap.Any("panic", rec),
				zap.Stack("stack"),
			)
			result = s.finish(ctx, span, log, &domain.CalculationError{Stage: r.stage, Err: fmt.Errorf("panic: %v", rec)})
		}
		s.engine.ObserveDuration(time.Since(started))
	}()

	report, alerts, err := r.execute(ctx, raw, cfg)
	if err != nil {
		return s.finish(ctx, span, log, err)
	}

	s.engine.IncSimulation(metrics.OutcomeSuccess)
	s.engine.IncRegime(string(report.Taxation.Selected.Code))
	s.engine.IncParameterSource(report.ConfigurationSource)
	s.engine.ObserveScore(float64(report.Synthesis.Score))
	for severity, n := range countBySeverity(alerts) {
		s.engine.AddAlerts(string(severity), n)
	}
	s.metrics.RecordSimulation(ctx, metrics.OutcomeSuccess, string(report.Synthesis.Profile))
	s.metrics.RecordRegimeSelection(ctx, string(report.Taxation.Selected.Code), string(report.Input.Structure.LegalForm))

	span.SetAttributes(tracing.SafeAttributes(
		attribute.String("simulation.regime", string(report.Taxation.Selected.Code)),
		attribute.Int("simulation.score", report.Synthesis.Score),
		attribute.Int("simulation.alerts", len(alerts)),
	)...)
	log.Info("simulation completed",
		zap.String("regime", string(report.Taxation.Selected.Code)),
		zap.Int("score", report.Synthesis.Score),
		zap.Int("alerts", len(alerts)),
		zap.Duration("duration", time.Since(started)),
	)

	return domain.Success{
		ID:        id,
		Data:      report.Rounded(),
		Alerts:    alerts,
		Timestamp: s.clock.Now(),
	}
}

func (s *Service) finish(ctx context.Context, span trace.Span, log *zap.Logger, err error) domain.Result {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		s.engine.IncSimulation(metrics.OutcomeValidationError)
		s.metrics.RecordSimulation(ctx, metrics.OutcomeValidationError, "")
		span.SetAttributes(attribute.String("simulation.outcome", metrics.OutcomeValidationError))
		log.Info("simulation rejected", zap.String("field", verr.Field), zap.String("reason", reasonOf(verr)))
		return failure(err)
	}

	var cerr *domain.CalculationError
	if !errors.As(err, &cerr) {
		cerr = &domain.CalculationError{Stage: "unknown", Err: err}
	}
	s.engine.IncSimulation(metrics.OutcomeCalculationErr)
	s.metrics.RecordSimulation(ctx, metrics.OutcomeCalculationErr, "")
	span.RecordError(tracing.SafeError(cerr))
	span.SetStatus(codes.Error, "calculation failed")
	log.Error("simulation failed", zap.String("stage", cerr.Stage), zap.Error(cerr))
	return failure(cerr)
}

func failure(err error) domain.Failure {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		details := make(map[string]any, len(verr.Details)+1)
		for k, v := range verr.Details {
			details[k] = v
		}
		if reason := reasonOf(verr); reason != "" {
			details["reason"] = reason
		}
		return domain.Failure{
			Message: verr.Message,
			Code:    domain.CodeValidationError,
			Field:   verr.Field,
			Details: details,
		}
	}

	f := domain.Failure{
		Message: "the simulation could not be completed",
		Code:    domain.CodeCalculationError,
	}
	var cerr *domain.CalculationError
	if errors.As(err, &cerr) {
		f.Details = map[string]any{"stage": cerr.Stage}
	}
	return f
}

func reasonOf(verr *domain.ValidationError) string {
	if verr.Reason == nil {
		return ""
	}
	return verr.Reason.Error()
}

func countBySeverity(alerts []domain.Alert) map[domain.Severity]int {
	counts := make(map[domain.Severity]int, 3)
	for _, a := range alerts {
		counts[a.Severity]++
	}
	return counts
}

// run carries one calculation through its stages. stage names the step in progress
// so a panic can be attributed.
type run struct {
	svc   *Service
	stage string
}

func (r *run) step(ctx context.Context, stage string, fn func(ctx context.Context) error) error {
	r.stage = stage
	ctx, span := r.svc.tracer.Start(ctx, "simulation."+stage)
	defer span.End()

	started := time.Now()
	err := fn(ctx)
	r.svc.engine.ObserveStage(stage, time.Since(started))
	if err != nil {
		span.RecordError(tracing.SafeError(err))
		span.SetStatus(codes.Error, stage+" failed")
	}
	return err
}

// compute runs a stage that cannot fail. Panics still surface through Calculate.
func (r *run) compute(ctx context.Context, stage string, fn func()) {
	r.stage = stage
	_, span := r.svc.tracer.Start(ctx, "simulation."+stage)
	defer span.End()

	started := time.Now()
	fn()
	r.svc.engine.ObserveStage(stage, time.Since(started))
}

func (r *run) execute(ctx context.Context, raw domain.RawInput, provided *paramdomain.ResolvedConfiguration) (domain.Report, []domain.Alert, error) {
	var (
		cfg     paramdomain.ResolvedConfiguration
		in      domain.Input
		fin     domain.FinancingResult
		ch      domain.ChargesResult
		prof    domain.ProfitabilityResult
		tax     domain.TaxationResult
		regime  taxation.Regime
		afford  domain.AffordabilityResult
		proj    domain.ProjectionResult
		synth   domain.SynthesisResult
		inputA  []domain.Alert
		taxA    []domain.Alert
		affordA []domain.Alert
		synthA  []domain.Alert
	)

	if err := r.step(ctx, metrics.StageValidation, func(context.Context) error {
		return r.svc.validator.Schema(raw)
	}); err != nil {
		return domain.Report{}, nil, err
	}

	if err := r.step(ctx, metrics.StageParameters, func(ctx context.Context) error {
		var err error
		cfg, err = r.svc.resolveConfig(ctx, raw.RequestedFiscalYear(), provided)
		return err
	}); err != nil {
		return domain.Report{}, nil, err
	}

	if err := r.step(ctx, metrics.StageValidation, func(context.Context) error {
		var err error
		in, inputA, err = r.svc.validator.Normalize(raw, cfg)
		return err
	}); err != nil {
		return domain.Report{}, nil, err
	}

	r.compute(ctx, metrics.StageFinancing, func() {
		fin = financing.Calculate(in, cfg)
	})
	r.compute(ctx, metrics.StageCharges, func() {
		ch = charges.Calculate(in.Operating, cfg)
	})
	r.compute(ctx, metrics.StageProfitability, func() {
		prof = profitability.Calculate(in, fin, ch)
	})

	if err := r.step(ctx, metrics.StageTaxation, func(context.Context) error {
		first := financing.YearSlice(fin.Schedule, 1)
		taxIn := taxation.Input{
			Year:              1,
			GrossRent:         ch.EffectiveRent,
			DeductibleCharges: ch.Deductible,
			Interest:          first.Interest,
			LoanInsurance:     first.Insurance,
			MarginalRate:      in.Structure.MarginalRate,
			Depreciation:      depreciation.NewPlan(in.Property, in.Options.DepreciationMode, cfg).Year(1),
		}
		var err error
		tax, regime, taxA, err = taxation.Compare(taxIn, prof.AnnualCashflow, in.Structure, in.Operating.RentalType, cfg)
		if err != nil {
			return &domain.CalculationError{Stage: metrics.StageTaxation, Err: err}
		}
		prof = profitability.WithTax(prof, ch, fin.AcquisitionCost, tax.Selected.TaxDue)
		return nil
	}); err != nil {
		return domain.Report{}, nil, err
	}

	r.compute(ctx, metrics.StageAffordability, func() {
		afford, affordA = affordability.Analyze(in, fin.MonthlyTotal, cfg)
	})
	r.compute(ctx, metrics.StageProjection, func() {
		proj = projection.Run(projection.Params{Input: in, Config: cfg, Financing: fin, Regime: regime})
	})

	upstream := synthesis.MergeAlerts(inputA, taxA, affordA)
	r.compute(ctx, metrics.StageSynthesis, func() {
		synth, synthA = synthesis.Synthesize(synthesis.Params{
			Input:         in,
			Config:        cfg,
			Profitability: prof,
			Taxation:      tax,
			Affordability: afford,
			Projection:    proj,
			Alerts:        upstream,
		})
	})

	report := domain.Report{
		FiscalYear:          cfg.FiscalYear,
		ConfigurationSource: string(cfg.Source),
		Input:               in,
		Financing:           fin,
		Charges:             ch,
		Profitability:       prof,
		Taxation:            tax,
		Affordability:       afford,
		Projection:          proj,
		Synthesis:           synth,
	}
	return report, synthesis.MergeAlerts(upstream, synthA), nil
}

func (s *Service) resolveConfig(ctx context.Context, year int, provided *paramdomain.ResolvedConfiguration) (paramdomain.ResolvedConfiguration, error) {
	if provided != nil {
		return provided.Clone(), nil
	}
	if s.provider == nil {
		cfg := paramdomain.DefaultConfiguration()
		if year != 0 {
			cfg.FiscalYear = year
		}
		return cfg, nil
	}

	cfg, err := s.provider.GetConfig(ctx, year)
	if errors.Is(err, paramdomain.ErrInvalidFiscalYear) {
		return cfg, domain.NewValidationError("options.fiscal_year", err, fmt.Sprintf("fiscal year %d is not supported", year), nil)
	}
	if err != nil {
		return cfg, &domain.CalculationError{Stage: metrics.StageParameters, Err: err}
	}
	return cfg, nil
}
