package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, c.Write(m))
	return m.GetCounter().GetValue()
}

func TestMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)

	m.ObserveReconstruction(nil)
	m.ObserveReconstruction(nil)
	m.ObserveReconstruction(errors.New("boom"))
	m.ObserveDecryption(errors.New("bad password"))
	m.ObserveSignature("polkadot")

	assert.Equal(t, 2.0, counterValue(t, m.Reconstructions.WithLabelValues(ResultSuccess)))
	assert.Equal(t, 1.0, counterValue(t, m.Reconstructions.WithLabelValues(ResultFailure)))
	assert.Equal(t, 1.0, counterValue(t, m.Decryptions.WithLabelValues(ResultFailure)))
	assert.Equal(t, 1.0, counterValue(t, m.Signatures.WithLabelValues("polkadot")))

	families, err := registry.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"shardwallet_reconstructions_total",
		"shardwallet_decryptions_total",
		"shardwallet_signatures_total",
	}, names)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveReconstruction(nil)
		m.ObserveDecryption(nil)
		m.ObserveSignature("ethereum")
	})
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	registry := prometheus.NewRegistry()
	NewMetrics(registry)
	assert.Panics(t, func() { NewMetrics(registry) })
}
