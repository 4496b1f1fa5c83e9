package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.ObserveHTTPRequest("POST", "/api/v1/bookings", 201, 10*time.Millisecond)
	m.ObserveDBQuery("exec", time.Millisecond, errors.New("boom"))
	m.ObserveDBQuery("exec", time.Millisecond, nil)
	m.IncBookingOperation("create", "success")
	m.IncNotificationError("kafka")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("POST", "/api/v1/bookings", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("exec")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingOperations.WithLabelValues("create", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notificationErrors.WithLabelValues("kafka")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/", 200, time.Second)
		m.ObserveDBQuery("query", time.Second, nil)
		m.SetDBConnections(1, 1, 0)
		m.IncBookingOperation("respond", "failed")
		m.IncNotificationError("store")
	})
}
