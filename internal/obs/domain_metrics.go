package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// CheckoutPreviewTotal counts preview computations by outcome.
	CheckoutPreviewTotal *prometheus.CounterVec
	// CheckoutCommitTotal counts commit attempts by outcome. Tampered and
	// expired previews get their own result labels so forgery attempts
	// stand out on a dashboard.
	CheckoutCommitTotal *prometheus.CounterVec
	// CheckoutPreviewLatency records preview computation latency in milliseconds.
	CheckoutPreviewLatency prometheus.Histogram
	// CouponApplyTotal counts coupon evaluations by kind and result.
	CouponApplyTotal *prometheus.CounterVec
	// OrderCanceledTotal counts customer cancellations.
	OrderCanceledTotal prometheus.Counter
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		CheckoutPreviewTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_preview_total",
			Help:      "Count of checkout preview outcomes.",
		}, []string{"result"})
		CheckoutCommitTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_commit_total",
			Help:      "Count of checkout commit outcomes.",
		}, []string{"result"})
		CheckoutPreviewLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "checkout_preview_duration_ms",
			Help:      "Latency for checkout preview computations in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000},
		})
		CouponApplyTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coupon_apply_total",
			Help:      "Count of coupon evaluations by kind and result.",
		}, []string{"kind", "result"})
		OrderCanceledTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_canceled_total",
			Help:      "Number of orders canceled by customers.",
		})

		mustRegisterCollector(reg, CheckoutPreviewTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CheckoutPreviewTotal = v
			}
		})
		mustRegisterCollector(reg, CheckoutCommitTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CheckoutCommitTotal = v
			}
		})
		mustRegisterCollector(reg, CheckoutPreviewLatency, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Histogram); ok {
				CheckoutPreviewLatency = v
			}
		})
		mustRegisterCollector(reg, CouponApplyTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CouponApplyTotal = v
			}
		})
		mustRegisterCollector(reg, OrderCanceledTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				OrderCanceledTotal = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
