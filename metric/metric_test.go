package metric

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()

	require.NoError(t, m.Register(reg))
	assert.Error(t, m.Register(reg), "double registration is rejected")
}

func TestRecordHelpers(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	m.RecordEvaluation("wf", "ok")
	m.RecordEvaluation("wf", "ok")
	m.RecordEvaluation("wf", "error")
	m.RecordEvaluationDuration("wf", 150*time.Millisecond)
	m.RecordRows("wf", 7)
	m.RecordError("wf", "http_status")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EvaluationsTotal.WithLabelValues("wf", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EvaluationsTotal.WithLabelValues("wf", "error")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.RowsStreamed.WithLabelValues("wf")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ErrorsTotal.WithLabelValues("wf", "http_status")))
}
