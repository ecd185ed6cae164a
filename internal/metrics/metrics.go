// Package metrics exposes Prometheus collectors for the game and HTTP layer.
package metrics

import (
	"strconv" // Status code labels
	"time"    // Durations

	"github.com/prometheus/client_golang/prometheus"          // Prometheus collectors
	"github.com/prometheus/client_golang/prometheus/promauto" // Auto-registered collectors
)

var (
	roundStartTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baucua_round_start_total",
			Help: "Start requests by outcome (created, resumed, conflict, forbidden, bad_request, error)",
		},
		[]string{"outcome"},
	)

	betTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baucua_bet_requests_total",
			Help: "Bet requests by result and symbol",
		},
		[]string{"result", "symbol"},
	)

	betDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "baucua_bet_request_duration_ms",
			Help:    "Bet request duration in milliseconds",
			Buckets: prometheus.ExponentialBuckets(5, 2, 10),
		},
		[]string{"result"},
	)

	settleTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baucua_settlements_total",
			Help: "Round settlements by result",
		},
		[]string{"result"},
	)

	payoutTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "baucua_payout_chips_total",
			Help: "Chips credited by settlements",
		},
	)

	httpReqTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	httpReqDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_ms",
			Help:    "HTTP request duration in ms",
			Buckets: prometheus.ExponentialBuckets(5, 2, 10),
		},
		[]string{"path", "method"},
	)
)

// RecordRoundStart counts one start request by its outcome.
func RecordRoundStart(outcome string) {
	roundStartTotal.WithLabelValues(outcome).Inc()
}

// RecordBet records a bet call. result is "success" or anything else for failure.
func RecordBet(result, symbol string, started time.Time) {
	if result != "success" {
		result = "fail"
	}
	betTotal.WithLabelValues(result, symbol).Inc()
	betDuration.WithLabelValues(result).Observe(float64(time.Since(started).Milliseconds()))
}

// RecordSettlement records a settlement attempt and the chips it paid out.
func RecordSettlement(result string, paid int64) {
	settleTotal.WithLabelValues(result).Inc()
	if paid > 0 {
		payoutTotal.Add(float64(paid))
	}
}

// RecordHTTP records one finished request. path should be the route template.
func RecordHTTP(path, method string, status int, started time.Time) {
	httpReqDuration.WithLabelValues(path, method).Observe(float64(time.Since(started).Milliseconds()))
	httpReqTotal.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
}
