// Package metrics exposes simulation progress as Prometheus collectors.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus implements the simulation Recorder.
type Prometheus struct {
	ticks     *prometheus.CounterVec
	runs      *prometheus.CounterVec
	runTicks  *prometheus.HistogramVec
	routeLens *prometheus.GaugeVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Prometheus {
	factory := promauto.With(reg)
	return &Prometheus{
		// ticks counts every tick handed to an engine
		ticks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mouse_ticks_total",
			Help: "Total ticks handled by algorithm",
		}, []string{"algorithm"}),

		// runs counts completed runs, exploration and replays apart
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mouse_runs_total",
			Help: "Total completed runs by algorithm and phase",
		}, []string{"algorithm", "phase"}),

		runTicks: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mouse_run_ticks",
			Help:    "Ticks needed to complete a run",
			Buckets: prometheus.ExponentialBuckets(4, 2, 10), // 4 to 2048
		}, []string{"algorithm", "phase"}),

		routeLens: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mouse_victory_route_cells",
			Help: "Length of the latest victory route",
		}, []string{"algorithm"}),
	}
}

// Tick counts one handled tick.
func (p *Prometheus) Tick(algorithm string) {
	p.ticks.WithLabelValues(algorithm).Inc()
}

// RunCompleted records a finished run.
func (p *Prometheus) RunCompleted(algorithm string, run, ticks int) {
	phase := phase(run)
	p.runs.WithLabelValues(algorithm, phase).Inc()
	p.runTicks.WithLabelValues(algorithm, phase).Observe(float64(ticks))
}

// Route records the length of the victory route.
func (p *Prometheus) Route(algorithm string, cells int) {
	p.routeLens.WithLabelValues(algorithm).Set(float64(cells))
}

func phase(run int) string {
	if run == 0 {
		return "explore"
	}
	return "replay"
}

// RunLabel renders a run id for log lines.
func RunLabel(run int) string {
	return phase(run) + "#" + strconv.Itoa(run)
}
