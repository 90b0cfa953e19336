package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/pkg/metrics"
)

var errDown = errors.New("下游不可用")

func stateGauge(t *testing.T, name string) float64 {
	t.Helper()
	g, err := metrics.CircuitBreakerState.GetMetricWith(prometheus.Labels{"name": name})
	require.NoError(t, err)
	m := &dto.Metric{}
	require.NoError(t, g.Write(m))
	return m.GetGauge().GetValue()
}

// TestBreaker_ClosedState 测试关闭状态正常放行
func TestBreaker_ClosedState(t *testing.T) {
	b := New(DefaultConfig("test-closed"))

	for i := 0; i < 10; i++ {
		require.NoError(t, b.Execute(func() error { return nil }))
	}
	assert.Equal(t, gobreaker.StateClosed, b.State())
	assert.Equal(t, "test-closed", b.Name())
	assert.Equal(t, float64(gobreaker.StateClosed), stateGauge(t, "test-closed"))
}

// TestBreaker_Trip 测试连续失败后熔断
func TestBreaker_Trip(t *testing.T) {
	b := New(Config{Name: "test-trip", MaxRequests: 1, Timeout: time.Minute, FailureThreshold: 3})

	for i := 0; i < 3; i++ {
		err := b.Execute(func() error { return errDown })
		assert.ErrorIs(t, err, errDown)
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())
	assert.Equal(t, float64(gobreaker.StateOpen), stateGauge(t, "test-trip"))

	called := false
	err := b.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpen)
	assert.True(t, IsRejected(err))
	assert.False(t, called, "熔断时不应调用下游")
	assert.False(t, IsRejected(errDown))
}

// TestBreaker_Recover 测试超时后半开探测成功恢复
func TestBreaker_Recover(t *testing.T) {
	b := New(Config{Name: "test-recover", MaxRequests: 1, Timeout: 20 * time.Millisecond, FailureThreshold: 1})

	assert.ErrorIs(t, b.Execute(func() error { return errDown }), errDown)
	assert.Equal(t, gobreaker.StateOpen, b.State())

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, gobreaker.StateHalfOpen, b.State())

	require.NoError(t, b.Execute(func() error { return nil }))
	assert.Equal(t, gobreaker.StateClosed, b.State())
}
