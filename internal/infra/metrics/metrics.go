package metrics

import (
	"orderhub/internal/domain/model"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "orderhub"

// Recorder は usecase.OrderMetrics の Prometheus 実装
type Recorder struct {
	ordersCreated     prometheus.Counter
	cartClearFailures prometheus.Counter
	statusTransitions *prometheus.CounterVec
}

// NewRecorder はカウンタを reg に登録する。
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Number of orders committed.",
		}),
		cartClearFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_clear_failures_total",
			Help:      "Number of post-order cart clears that failed.",
		}),
		statusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_transitions_total",
			Help:      "Number of order status changes by source and target status.",
		}, []string{"from", "to"}),
	}
	reg.MustRegister(r.ordersCreated, r.cartClearFailures, r.statusTransitions)
	return r
}

func (r *Recorder) OrderCreated() {
	r.ordersCreated.Inc()
}

func (r *Recorder) CartClearFailed() {
	r.cartClearFailures.Inc()
}

func (r *Recorder) StatusChanged(from, to model.OrderStatus) {
	r.statusTransitions.WithLabelValues(string(from), string(to)).Inc()
}
