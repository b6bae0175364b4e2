package metrics

import (
	"testing"

	"orderhub/internal/domain/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.OrderCreated()
	r.OrderCreated()
	r.CartClearFailed()
	r.StatusChanged(model.OrderStatusPending, model.OrderStatusDelivered)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.ordersCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cartClearFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.statusTransitions.WithLabelValues("PENDING", "DELIVERED")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.statusTransitions.WithLabelValues("PENDING", "SHIPPED")))
}

func TestNewRecorder_DoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewRecorder(reg)

	assert.Panics(t, func() { NewRecorder(reg) })
}
