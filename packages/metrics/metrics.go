package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/trustchain/trustchain/packages/ledger"
)

const namespace = "trustchain"

// Provider holds the node's collectors.
type Provider struct {
	webAPIRequests        *prometheus.CounterVec
	webAPIRequestDuration *prometheus.HistogramVec
	ledgerTransactions    *prometheus.CounterVec
	ledgerTxDuration      *prometheus.HistogramVec
	sealVerifications     *prometheus.CounterVec
	challenges            *prometheus.CounterVec
}

var _ ledger.Observer = &Provider{}

func NewProvider() *Provider {
	return &Provider{
		webAPIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webapi",
			Name:      "requests_total",
			Help:      "Number of handled web API requests.",
		}, []string{"operation", "status"}),
		webAPIRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "webapi",
			Name:      "request_duration_seconds",
			Help:      "Time spent handling web API requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "status"}),
		ledgerTransactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "transactions_total",
			Help:      "Number of contract transactions sent, by method and result.",
		}, []string{"method", "result"}),
		ledgerTxDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "transaction_duration_seconds",
			Help:      "Time from sending a contract transaction until its receipt.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"method"}),
		sealVerifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "seal",
			Name:      "verifications_total",
			Help:      "Number of dynamic seal verifications, by result.",
		}, []string{"result"}),
		challenges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "challenges_total",
			Help:      "Number of NFC challenge events.",
		}, []string{"event"}),
	}
}

// Register adds all collectors to reg.
func (p *Provider) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		p.webAPIRequests,
		p.webAPIRequestDuration,
		p.ledgerTransactions,
		p.ledgerTxDuration,
		p.sealVerifications,
		p.challenges,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}

	return nil
}

func (p *Provider) WebAPIRequest(operation string, status int, duration time.Duration) {
	labels := prometheus.Labels{"operation": operation, "status": strconv.Itoa(status)}
	p.webAPIRequests.With(labels).Inc()
	p.webAPIRequestDuration.With(labels).Observe(duration.Seconds())
}

func (p *Provider) ObserveTransaction(method string, err error, duration time.Duration) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	p.ledgerTransactions.WithLabelValues(method, result).Inc()
	p.ledgerTxDuration.WithLabelValues(method).Observe(duration.Seconds())
}

const (
	SealValid     = "valid"
	SealInvalid   = "invalid"
	SealMalformed = "malformed"
)

func (p *Provider) SealVerification(result string) {
	p.sealVerifications.WithLabelValues(result).Inc()
}

const (
	ChallengeIssued    = "issued"
	ChallengeAuthentic = "authentic"
	ChallengeRejected  = "rejected"
	ChallengeMissing   = "missing"
)

func (p *Provider) Challenge(event string) {
	p.challenges.WithLabelValues(event).Inc()
}
