package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"orderhub/internal/domain"
)

var (
	ordersCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orderhub",
		Name:      "orders_created_total",
		Help:      "Orders persisted, by distribution hub.",
	}, []string{"hub"})

	validationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orderhub",
		Name:      "order_validation_failures_total",
		Help:      "Rejected order requests, by error code.",
	}, []string{"code"})

	totalMismatches = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "orderhub",
		Name:      "order_total_mismatch_total",
		Help:      "Orders whose client total differs from the sum of item prices.",
	})
)

func OrderCreated(hubID int64) {
	ordersCreated.WithLabelValues(strconv.FormatInt(hubID, 10)).Inc()
}

func ValidationFailed(code domain.ErrorCode) {
	validationFailures.WithLabelValues(code.String()).Inc()
}

func TotalMismatch() {
	totalMismatches.Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
