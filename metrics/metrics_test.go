// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// #nosec G404
package metrics

import (
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func gather(t *testing.T) map[string]*dto.MetricFamily {
	metricFamilies, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	families := make(map[string]*dto.MetricFamily)
	for _, mf := range metricFamilies {
		families[mf.GetName()] = mf
	}
	return families
}

func TestNoopMetrics(t *testing.T) {
	metrics = defaultNoopMetrics()

	require.Nil(t, HTTPHandler())
	for _, a := range []any{
		Gauge("noopGauge"),
		GaugeVec("noopGaugeVec", nil),
		Counter("noopCounter"),
		CounterVec("noopCounterVec", nil),
		Histogram("noopHist", nil),
	} {
		require.IsType(t, &noopMeters{}, a)
	}
	// nothing breaks
	CounterVec("noopCounterVec", []string{"a"}).AddWithLabel(1, map[string]string{"nonsense": "x"})
}

func TestLazyLoading(t *testing.T) {
	metrics = defaultNoopMetrics()

	lazyGauge := LazyLoadGauge("lazyGauge")
	lazyGaugeVec := LazyLoadGaugeVec("lazyGaugeVec", []string{"kind"})
	lazyCounter := LazyLoadCounter("lazyCounter")
	lazyCounterVec := LazyLoadCounterVec("lazyCounterVec", []string{"kind"})
	lazyHistogram := LazyLoadHistogram("lazyHistogram", nil)

	// after initialization, newly created metrics become of the prometheus type
	InitializePrometheusMetrics()

	require.IsType(t, &promGaugeMeter{}, lazyGauge())
	require.IsType(t, &promGaugeVecMeter{}, lazyGaugeVec())
	require.IsType(t, &promCountMeter{}, lazyCounter())
	require.IsType(t, &promCountVecMeter{}, lazyCounterVec())
	require.IsType(t, &promHistogramMeter{}, lazyHistogram())

	// same instance is returned
	require.Same(t, lazyCounter(), lazyCounter())
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	count := Counter("test_count")
	countVec := CounterVec("test_count_vec", []string{"zeroOrOne"})
	gauge := Gauge("test_gauge")
	gaugeVec := GaugeVec("test_gauge_vec", []string{"zeroOrOne"})
	hist := Histogram("test_hist", BucketWeight)

	n := rand.N(100) + 2
	total := 0
	for i := range n {
		labels := map[string]string{"zeroOrOne": strconv.Itoa(i % 2)}
		Counter("test_count").Add(1)
		countVec.AddWithLabel(int64(i), labels)
		gaugeVec.AddWithLabel(int64(i), labels)
		hist.Observe(int64(i))
		total += i
	}
	gauge.Set(42)
	gaugeVec.SetWithLabel(7, map[string]string{"zeroOrOne": "0"})
	require.Same(t, count, Counter("test_count"))

	families := gather(t)

	require.Equal(t, float64(n), families["xode_metrics_test_count"].Metric[0].GetCounter().GetValue())
	require.Equal(t, float64(42), families["xode_metrics_test_gauge"].Metric[0].GetGauge().GetValue())
	require.Equal(t, float64(total), families["xode_metrics_test_hist"].Metric[0].GetHistogram().GetSampleSum())

	vec := families["xode_metrics_test_count_vec"].Metric
	require.Len(t, vec, 2)
	require.Equal(t, float64(total), vec[0].GetCounter().GetValue()+vec[1].GetCounter().GetValue())

	for _, m := range families["xode_metrics_test_gauge_vec"].Metric {
		if m.GetLabel()[0].GetValue() == "0" {
			require.Equal(t, float64(7), m.GetGauge().GetValue())
		}
	}

	server := httptest.NewServer(HTTPHandler())
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
