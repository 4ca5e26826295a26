package metrics

import (
	"context"
	"net/http"

	"github.com/eisenwinter/tokenkeep/events"
	"github.com/eisenwinter/tokenkeep/events/event"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tokenkeep"

const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// Metrics holds the prometheus collectors of the service on its own registry
type Metrics struct {
	registry        *prometheus.Registry
	tokensIssued    *prometheus.CounterVec
	issueCollisions prometheus.Counter
	validations     *prometheus.CounterVec
	rateLimited     prometheus.Counter
	usersCreated    prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		tokensIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_issued_total",
			Help:      "Number of issued access tokens by grant type.",
		}, []string{"grant_type"}),
		issueCollisions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_issue_collisions_total",
			Help:      "Number of generated tokens that collided with a stored one.",
		}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_validations_total",
			Help:      "Number of bearer token checks by result.",
		}, []string{"result"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_requests_total",
			Help:      "Number of requests rejected by the rate limiter.",
		}),
		usersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_created_total",
			Help:      "Number of registered users.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.tokensIssued,
		m.issueCollisions,
		m.validations,
		m.rateLimited,
		m.usersCreated,
	)
	return m
}

// Handler serves the registry in the prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveValidation counts a bearer check, result is one of ResultValid, ResultInvalid or ResultError
func (m *Metrics) ObserveValidation(result string) {
	m.validations.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRateLimited() {
	m.rateLimited.Inc()
}

// Listeners returns the event listeners feeding the counters
func (m *Metrics) Listeners() []events.EventListener {
	return []events.EventListener{
		&tokenIssuedListener{m: m},
		&tokenIssueRetriedListener{m: m},
		&userCreatedListener{m: m},
	}
}

type tokenIssuedListener struct {
	m *Metrics
}

func (*tokenIssuedListener) ForEvent() events.EventName {
	return event.TokenIssuedEvent
}

func (l *tokenIssuedListener) Handle(_ context.Context, ev events.Event) error {
	e := ev.(*event.TokenIssued)
	grant := e.GrantType
	if grant == "" {
		grant = "unknown"
	}
	l.m.tokensIssued.WithLabelValues(grant).Inc()
	return nil
}

type tokenIssueRetriedListener struct {
	m *Metrics
}

func (*tokenIssueRetriedListener) ForEvent() events.EventName {
	return event.TokenIssueRetriedEvent
}

func (l *tokenIssueRetriedListener) Handle(_ context.Context, _ events.Event) error {
	l.m.issueCollisions.Inc()
	return nil
}

type userCreatedListener struct {
	m *Metrics
}

func (*userCreatedListener) ForEvent() events.EventName {
	return event.UserCreatedEvent
}

func (l *userCreatedListener) Handle(_ context.Context, _ events.Event) error {
	l.m.usersCreated.Inc()
	return nil
}
