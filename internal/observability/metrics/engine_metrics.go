package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess         = "success"
	OutcomeValidationError = "validation_error"
	OutcomeCalculationErr  = "calculation_error"
)

const (
	StageValidation    = "validation"
	StageParameters    = "parameters"
	StageFinancing     = "financing"
	StageCharges       = "charges"
	StageProfitability = "profitability"
	StageTaxation      = "taxation"
	StageAffordability = "affordability"
	StageProjection    = "projection"
	StageSynthesis     = "synthesis"
)

var engineStages = []string{
	StageValidation,
	StageParameters,
	StageFinancing,
	StageCharges,
	StageProfitability,
	StageTaxation,
	StageAffordability,
	StageProjection,
	StageSynthesis,
}

// EngineMetrics captures calculation engine health signals scraped on /metrics.
type EngineMetrics struct {
	simulations      *prometheus.CounterVec
	duration         prometheus.Observer
	stageDuration    *prometheus.HistogramVec
	alerts           *prometheus.CounterVec
	regimes          *prometheus.CounterVec
	parameterSources *prometheus.CounterVec
	score            prometheus.Observer
	stageObservers   map[string]prometheus.Observer
}

var (
	engineMetricsOnce sync.Once
	engineMetrics     *EngineMetrics
)

// Engine returns the process-wide engine metrics registered on the default registry.
func Engine() *EngineMetrics {
	return EngineWithConfig(Config{})
}

// EngineWithConfig returns the singleton engine metrics using config labels.
func EngineWithConfig(cfg Config) *EngineMetrics {
	engineMetricsOnce.Do(func() {
		engineMetrics = NewEngineMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return engineMetrics
}

// NewEngineMetrics registers a fresh set of collectors on registerer.
func NewEngineMetrics(registerer prometheus.Registerer, cfg Config) *EngineMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "immolens"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	simulations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "immolens_simulations_total",
		Help:        "Simulations by outcome.",
		ConstLabels: constLabels,
	}, []string{"outcome"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:        "immolens_simulation_duration_seconds",
		Help:        "End-to-end simulation latency.",
		Buckets:     []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		ConstLabels: constLabels,
	})
	stageDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        "immolens_stage_duration_seconds",
		Help:        "Latency of each engine stage.",
		Buckets:     []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05, 0.25},
		ConstLabels: constLabels,
	}, []string{"stage"})
	alerts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "immolens_alerts_total",
		Help:        "Alerts attached to successful simulations by severity.",
		ConstLabels: constLabels,
	}, []string{"severity"})
	regimes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "immolens_regime_selected_total",
		Help:        "Tax regime retained per simulation.",
		ConstLabels: constLabels,
	}, []string{"regime"})
	parameterSources := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "immolens_parameters_resolved_total",
		Help:        "Configuration snapshots used by simulations by source.",
		ConstLabels: constLabels,
	}, []string{"source"})
	score := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:        "immolens_investment_score",
		Help:        "Distribution of the 0-100 investment score.",
		Buckets:     prometheus.LinearBuckets(10, 10, 9),
		ConstLabels: constLabels,
	})

	registerer.MustRegister(simulations, duration, stageDuration, alerts, regimes, parameterSources, score)

	stageObservers := make(map[string]prometheus.Observer, len(engineStages))
	for _, stage := range engineStages {
		stageObservers[stage] = stageDuration.WithLabelValues(stage)
	}

	return &EngineMetrics{
		simulations:      simulations,
		duration:         duration,
		stageDuration:    stageDuration,
		alerts:           alerts,
		regimes:          regimes,
		parameterSources: parameterSources,
		score:            score,
		stageObservers:   stageObservers,
	}
}

func (m *EngineMetrics) IncSimulation(outcome string) {
	if m == nil {
		return
	}
	m.simulations.WithLabelValues(outcome).Inc()
}

func (m *EngineMetrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.duration.Observe(d.Seconds())
}

func (m *EngineMetrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	if observer, ok := m.stageObservers[stage]; ok {
		observer.Observe(d.Seconds())
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (m *EngineMetrics) AddAlerts(severity string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.alerts.WithLabelValues(severity).Add(float64(count))
}

func (m *EngineMetrics) IncRegime(regime string) {
	if m == nil || regime == "" {
		return
	}
	m.regimes.WithLabelValues(regime).Inc()
}

func (m *EngineMetrics) IncParameterSource(source string) {
	if m == nil || source == "" {
		return
	}
	m.parameterSources.WithLabelValues(source).Inc()
}

func (m *EngineMetrics) ObserveScore(score float64) {
	if m == nil {
		return
	}
	m.score.Observe(score)
}
