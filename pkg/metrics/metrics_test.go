package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveAdmission(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.ObserveAdmission("HALL", "admitted")
	m.ObserveAdmission("HALL", "admitted")
	m.ObserveAdmission("HALL", "capacity_exceeded")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AdmissionsTotal.WithLabelValues("HALL", "admitted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AdmissionsTotal.WithLabelValues("HALL", "capacity_exceeded")))
}

func TestObserveNotification(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.ObserveNotification("BOOKING_CREATED", "dropped")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsTotal.WithLabelValues("BOOKING_CREATED", "dropped")))
}
