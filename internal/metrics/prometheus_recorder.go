package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry      *prom.Registry
	stageDuration *prom.HistogramVec
	stageResults  *prom.CounterVec
	runDuration   *prom.HistogramVec
	runOutcome    *prom.CounterVec
	invocations   *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the doccbuilder metrics.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "doccbuilder",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual pipeline stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "doccbuilder",
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		runDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "doccbuilder",
			Name:      "run_duration_seconds",
			Help:      "Total documentation run duration",
			Buckets:   prom.ExponentialBuckets(1, 2, 12),
		}, []string{"backend"}),
		runOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "doccbuilder",
			Name:      "run_outcomes_total",
			Help:      "Run outcomes by backend and result",
		}, []string{"backend", "result"}),
		invocations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "doccbuilder",
			Name:      "invocations_total",
			Help:      "External command invocations by command and result",
		}, []string{"command", "result"}),
	}
	reg.MustRegister(pr.stageDuration, pr.stageResults, pr.runDuration, pr.runOutcome, pr.invocations)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(backend string, d time.Duration) {
	p.runDuration.WithLabelValues(backend).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(backend string, result ResultLabel) {
	p.runOutcome.WithLabelValues(backend, string(result)).Inc()
}

func (p *PrometheusRecorder) IncInvocation(command string, result ResultLabel) {
	p.invocations.WithLabelValues(command, string(result)).Inc()
}

// Registry exposes the backing registry.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

// WriteTextfile writes all gathered metrics to path atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("write metrics file: %w", err)
	}
	return nil
}
