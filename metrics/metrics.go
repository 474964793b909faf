// Package metrics exposes Prometheus counters for shard wallet operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics holds the wallet counters. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	Reconstructions *prometheus.CounterVec // shardwallet_reconstructions_total{result}
	Decryptions     *prometheus.CounterVec // shardwallet_decryptions_total{result}
	Signatures      *prometheus.CounterVec // shardwallet_signatures_total{chain}
}

// NewMetrics registers the wallet counters with registry, or with the default
// registerer when registry is nil.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	return &Metrics{
		Reconstructions: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "shardwallet_reconstructions_total",
			Help: "Total secret reconstructions by result",
		}, []string{"result"}),

		Decryptions: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "shardwallet_decryptions_total",
			Help: "Total shard decryptions by result",
		}, []string{"result"}),

		Signatures: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "shardwallet_signatures_total",
			Help: "Total signatures produced by chain",
		}, []string{"chain"}),
	}
}

func result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}

// ObserveReconstruction counts a reconstruction attempt.
func (m *Metrics) ObserveReconstruction(err error) {
	if m == nil {
		return
	}
	m.Reconstructions.WithLabelValues(result(err)).Inc()
}

// ObserveDecryption counts a shard decryption attempt.
func (m *Metrics) ObserveDecryption(err error) {
	if m == nil {
		return
	}
	m.Decryptions.WithLabelValues(result(err)).Inc()
}

// ObserveSignature counts a produced signature.
func (m *Metrics) ObserveSignature(chain string) {
	if m == nil {
		return
	}
	m.Signatures.WithLabelValues(chain).Inc()
}
