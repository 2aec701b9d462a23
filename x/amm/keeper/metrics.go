package keeper

import (
	"sync"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AMMMetrics holds all Prometheus metrics for the amm module
type AMMMetrics struct {
	// Swap metrics
	SwapsTotal *prometheus.CounterVec
	SwapVolume *prometheus.CounterVec

	// Liquidity metrics
	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec
	PoolReserves     *prometheus.GaugeVec

	// Pool metrics
	PoolsTotal prometheus.Gauge
}

var (
	ammMetricsOnce sync.Once
	ammMetrics     *AMMMetrics
)

// NewAMMMetrics creates and registers amm metrics (singleton pattern)
func NewAMMMetrics() *AMMMetrics {
	ammMetricsOnce.Do(func() {
		ammMetrics = &AMMMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "swaps_total",
					Help:      "Total number of swaps attempted, by outcome",
				},
				[]string{"pool", "asset_in", "status"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in base units",
				},
				[]string{"pool", "asset_in"},
			),
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "liquidity_added_total",
					Help:      "Total number of liquidity provisions",
				},
				[]string{"pool"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "liquidity_removed_total",
					Help:      "Total number of liquidity withdrawals",
				},
				[]string{"pool"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "pool_reserves",
					Help:      "Current pool reserves, approximated as float",
				},
				[]string{"pool", "denom"},
			),
			PoolsTotal: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "pools_total",
					Help:      "Number of registered pools",
				},
			),
		}
	})
	return ammMetrics
}

// amountToFloat converts an amount for gauges and counters. Precision loss
// above 2^53 is acceptable for monitoring.
func amountToFloat(v math.Int) float64 {
	if v.IsNil() {
		return 0
	}
	f, _ := v.BigInt().Float64()
	return f
}
