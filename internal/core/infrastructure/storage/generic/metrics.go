package generic

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus 指标：用于观测堆缓存命中率与各操作耗时
var (
	cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storage_cache_lookups_total",
		Help: "Total number of heap cache lookups, partitioned by database and result.",
	}, []string{"db", "result"})
	operationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storage_operation_duration_seconds",
		Help:    "Duration of storage operations, partitioned by database and operation.",
		Buckets: prometheus.DefBuckets,
	}, []string{"db", "op"})
)

func init() {
	prometheus.MustRegister(
		cacheLookups,
		operationDuration,
	)
}
