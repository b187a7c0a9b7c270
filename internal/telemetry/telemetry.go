// Package telemetry declares the Prometheus metrics exported by the quoter.
package telemetry

import "github.com/prometheus/client_golang/prometheus"

var (
	// cpswap_quotes_total
	//
	// counter of quote computations
	//
	// Has the following labels:
	// * outcome - ok, invalid_amount, pool_unavailable, invalid_slippage or error
	QuotesTotalMetricName = "cpswap_quotes_total"

	// cpswap_estimates_total
	//
	// counter of fallback estimates served in place of a quote
	EstimatesTotalMetricName = "cpswap_estimates_total"

	// cpswap_reserve_read_duration_seconds
	//
	// histogram of the time taken to read pool reserves from the chain
	ReserveReadDurationMetricName = "cpswap_reserve_read_duration_seconds"

	// cpswap_pair_token_cache_total
	//
	// counter of pair token lookups
	//
	// Has the following labels:
	// * result - hit or miss
	PairTokenCacheMetricName = "cpswap_pair_token_cache_total"

	QuotesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: QuotesTotalMetricName,
			Help: "Total number of quote computations by outcome",
		},
		[]string{"outcome"},
	)

	EstimatesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: EstimatesTotalMetricName,
			Help: "Total number of fallback estimates served when no pool quote was available",
		},
	)

	ReserveReadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    ReserveReadDurationMetricName,
			Help:    "Duration of pool reserve reads in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	PairTokenCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: PairTokenCacheMetricName,
			Help: "Total number of pair token lookups by cache result",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(QuotesTotal)
	prometheus.MustRegister(EstimatesTotal)
	prometheus.MustRegister(ReserveReadDuration)
	prometheus.MustRegister(PairTokenCache)
}
