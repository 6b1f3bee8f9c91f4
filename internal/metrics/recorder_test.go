package metrics

import (
	"errors"
	"time"
)

type testRecorder struct {
	stageDurations map[string]int
	stageResults   map[string]map[ResultLabel]int
	runOutcomes    map[string]int
	invocations    map[string]int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{
		stageDurations: map[string]int{},
		stageResults:   map[string]map[ResultLabel]int{},
		runOutcomes:    map[string]int{},
		invocations:    map[string]int{},
	}
}

func (t *testRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	t.stageDurations[stage]++
}
func (t *testRecorder) IncStageResult(stage string, result ResultLabel) {
	m, ok := t.stageResults[stage]
	if !ok {
		m = map[ResultLabel]int{}
		t.stageResults[stage] = m
	}
	m[result]++
}
func (t *testRecorder) ObserveRunDuration(string, time.Duration) {}
func (t *testRecorder) IncRunOutcome(backend string, result ResultLabel) {
	t.runOutcomes[backend+"/"+string(result)]++
}
func (t *testRecorder) IncInvocation(command string, result ResultLabel) {
	t.invocations[command+"/"+string(result)]++
}

var _ Recorder = (*testRecorder)(nil)
var _ Recorder = NoopRecorder{}
var _ Recorder = (*PrometheusRecorder)(nil)

func exerciseRecorder(r Recorder) {
	r.ObserveStageDuration("extract", 10*time.Millisecond)
	r.IncStageResult("extract", ResultSuccess)
	r.IncRunOutcome("plugin", ResultFor(nil))
	r.IncInvocation("swift", ResultFor(errors.New("x")))
}
