package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCollector(t *testing.T) {
	m := NewMetricsCollector(prometheus.NewRegistry())

	t.Run("toggles by kind and state", func(t *testing.T) {
		m.RecordToggle("favorite", "added")
		m.RecordToggle("favorite", "added")
		m.RecordToggle("offline", "removed")

		assert.Equal(t, 2.0, testutil.ToFloat64(m.togglesTotal.WithLabelValues("favorite", "added")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.togglesTotal.WithLabelValues("offline", "removed")))
	})

	t.Run("import counts", func(t *testing.T) {
		m.RecordImport(3, 2, time.Second)

		assert.Equal(t, 3.0, testutil.ToFloat64(m.parksImported.WithLabelValues("inserted")))
		assert.Equal(t, 2.0, testutil.ToFloat64(m.parksImported.WithLabelValues("updated")))
	})

	t.Run("cache lookups", func(t *testing.T) {
		m.RecordCacheLookup("trail", true)
		m.RecordCacheLookup("trail", false)
		m.RecordCacheLookup("trail", false)

		assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("trail", "hit")))
		assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("trail", "miss")))
	})

	t.Run("reviews", func(t *testing.T) {
		m.RecordReview()
		assert.Equal(t, 1.0, testutil.ToFloat64(m.reviewsTotal))
	})
}

func TestNewMetricsCollector_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetricsCollector(prometheus.NewRegistry())
		NewMetricsCollector(prometheus.NewRegistry())
	})
}
