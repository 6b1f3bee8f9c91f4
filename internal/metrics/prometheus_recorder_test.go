package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	exerciseRecorder(pr)
	pr.ObserveRunDuration("plugin", 2*time.Second)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	assert.True(t, names["doccbuilder_stage_duration_seconds"])
	assert.True(t, names["doccbuilder_invocations_total"])
	assert.True(t, names["doccbuilder_run_outcomes_total"])
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncInvocation("xcodebuild", ResultSuccess)

	path := filepath.Join(t.TempDir(), "doccbuilder.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `doccbuilder_invocations_total{command="xcodebuild",result="success"} 1`))
}

func TestTestRecorderCounts(t *testing.T) {
	r := newTestRecorder()
	exerciseRecorder(r)
	exerciseRecorder(NoopRecorder{})

	assert.Equal(t, 1, r.stageDurations["extract"])
	assert.Equal(t, 1, r.stageResults["extract"][ResultSuccess])
	assert.Equal(t, 1, r.runOutcomes["plugin/success"])
	assert.Equal(t, 1, r.invocations["swift/failed"])
}
