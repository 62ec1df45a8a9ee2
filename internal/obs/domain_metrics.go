package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// CheckoutTotal counts checkout attempts by outcome.
	CheckoutTotal *prometheus.CounterVec
	// InventoryConflictsTotal counts compare-and-swap misses on stock updates.
	InventoryConflictsTotal prometheus.Counter
	// PromotionRejectionsTotal counts promotion codes rejected during preview or checkout.
	PromotionRejectionsTotal *prometheus.CounterVec
	// InventoryAdjustmentsTotal counts merchant stock adjustments by reason.
	InventoryAdjustmentsTotal *prometheus.CounterVec
	// AuditFailuresTotal counts audit rows that could not be written.
	AuditFailuresTotal prometheus.Counter
	// EventPublishTotal counts domain event deliveries by topic and outcome.
	EventPublishTotal *prometheus.CounterVec
	// BreakerState reports 0=closed, 1=open, 2=half-open per guarded dependency.
	BreakerState *prometheus.GaugeVec
	// BreakerTransitionsTotal counts breaker state changes.
	BreakerTransitionsTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		CheckoutTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_total",
			Help:      "Count of checkout outcomes.",
		}, []string{"result"})
		InventoryConflictsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inventory_conflicts_total",
			Help:      "Number of inventory updates that lost a concurrent race.",
		})
		PromotionRejectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promotion_rejections_total",
			Help:      "Count of rejected promotion codes by reason.",
		}, []string{"reason"})
		InventoryAdjustmentsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inventory_adjustments_total",
			Help:      "Count of merchant inventory adjustments by reason.",
		}, []string{"reason"})
		AuditFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_write_failures_total",
			Help:      "Number of audit events dropped because the write failed.",
		})
		EventPublishTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_publish_total",
			Help:      "Count of domain event deliveries by topic and outcome.",
		}, []string{"topic", "result"})
		BreakerState = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "breaker_state",
			Help:      "Current breaker state: 0=closed,1=open,2=half-open.",
		}, []string{"target"})
		BreakerTransitionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "breaker_transition_total",
			Help:      "Count of breaker state transitions.",
		}, []string{"target", "from", "to"})

		mustRegisterCollector(reg, CheckoutTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CheckoutTotal = v
			}
		})
		mustRegisterCollector(reg, InventoryConflictsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				InventoryConflictsTotal = v
			}
		})
		mustRegisterCollector(reg, PromotionRejectionsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				PromotionRejectionsTotal = v
			}
		})
		mustRegisterCollector(reg, InventoryAdjustmentsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				InventoryAdjustmentsTotal = v
			}
		})
		mustRegisterCollector(reg, AuditFailuresTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				AuditFailuresTotal = v
			}
		})
		mustRegisterCollector(reg, EventPublishTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				EventPublishTotal = v
			}
		})
		mustRegisterCollector(reg, BreakerState, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.GaugeVec); ok {
				BreakerState = v
			}
		})
		mustRegisterCollector(reg, BreakerTransitionsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				BreakerTransitionsTotal = v
			}
		})
	})
}

// ObserveCheckout increments the checkout counter when metrics are registered.
func ObserveCheckout(result string) {
	if CheckoutTotal != nil {
		CheckoutTotal.WithLabelValues(result).Inc()
	}
}

// ObserveInventoryConflict increments the conflict counter when metrics are registered.
func ObserveInventoryConflict() {
	if InventoryConflictsTotal != nil {
		InventoryConflictsTotal.Inc()
	}
}

// ObservePromotionRejection records a rejected promotion code.
func ObservePromotionRejection(reason string) {
	if PromotionRejectionsTotal != nil {
		PromotionRejectionsTotal.WithLabelValues(reason).Inc()
	}
}

// ObserveInventoryAdjustment records a merchant adjustment.
func ObserveInventoryAdjustment(reason string) {
	if InventoryAdjustmentsTotal != nil {
		InventoryAdjustmentsTotal.WithLabelValues(reason).Inc()
	}
}

// ObserveAuditFailure records a dropped audit event.
func ObserveAuditFailure() {
	if AuditFailuresTotal != nil {
		AuditFailuresTotal.Inc()
	}
}

// ObserveEventPublish records a domain event delivery attempt.
func ObserveEventPublish(topic, result string) {
	if EventPublishTotal != nil {
		EventPublishTotal.WithLabelValues(topic, result).Inc()
	}
}

// ObserveBreaker records a breaker moving from one state to another.
func ObserveBreaker(target, from, to string, gauge float64) {
	if BreakerState != nil {
		BreakerState.WithLabelValues(target).Set(gauge)
	}
	if BreakerTransitionsTotal != nil && from != to {
		BreakerTransitionsTotal.WithLabelValues(target, from, to).Inc()
	}
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register metric: %w", err))
	}
}
