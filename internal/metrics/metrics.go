// Package metrics содержит счётчики prometheus для функций профиля.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Исходы сверки профиля.
const (
	OutcomeCreated       = "created"
	OutcomeUpdated       = "updated"
	OutcomeRaceRecovered = "race_recovered"
	OutcomeRaceFailed    = "race_failed"
	OutcomeRejected      = "rejected"
	OutcomeFailed        = "failed"
)

// Исходы обработки формы регистрации.
const (
	SignupIgnored        = "ignored"
	SignupCreated        = "created"
	SignupProviderFailed = "provider_failed"
	SignupPartialFailure = "partial_failure"
	SignupRejected       = "rejected"
)

// Metrics: набор счётчиков сервиса.
type Metrics struct {
	Reconciliations *prometheus.CounterVec
	Signups         *prometheus.CounterVec
	CacheLookups    *prometheus.CounterVec
}

// New создаёт счётчики и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Reconciliations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "profile_functions",
			Name:      "reconciliations_total",
			Help:      "Profile create-or-update outcomes.",
		}, []string{"outcome"}),
		Signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "profile_functions",
			Name:      "signup_submissions_total",
			Help:      "Signup form submission outcomes.",
		}, []string{"outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "profile_functions",
			Name:      "profile_cache_lookups_total",
			Help:      "Profile cache lookups by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.Reconciliations, m.Signups, m.CacheLookups)
	return m
}

// ObserveReconcile увеличивает счётчик исхода сверки.
func (m *Metrics) ObserveReconcile(outcome string) {
	m.Reconciliations.WithLabelValues(outcome).Inc()
}

// ObserveSignup увеличивает счётчик исхода регистрации.
func (m *Metrics) ObserveSignup(outcome string) {
	m.Signups.WithLabelValues(outcome).Inc()
}

// ObserveCache фиксирует попадание или промах кеша.
func (m *Metrics) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}
