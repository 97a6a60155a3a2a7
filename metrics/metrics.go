package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xh3b4sd/tracer"

	"github.com/xh3b4sd/clickrank"
)

// Recorder collects the metrics of a single batch run. Every recorder owns
// its registry, so that runs never share state.
type Recorder struct {
	reg *prometheus.Registry

	rows     *prometheus.CounterVec
	displays *prometheus.GaugeVec
	score    *prometheus.GaugeVec
	entries  prometheus.Gauge
}

func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clickrank_rows_total",
			Help: "Total prediction rows processed by command.",
		}, []string{"command"}),
		displays: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "clickrank_displays",
			Help: "Displays scored per time partition.",
		}, []string{"partition"}),
		score: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "clickrank_score",
			Help: "Mean reciprocal rank per time partition of the last scoring run.",
		}, []string{"partition"}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "clickrank_submission_entries",
			Help: "Displays written to the last submission.",
		}),
	}

	r.reg.MustRegister(
		r.rows,
		r.displays,
		r.score,
		r.entries,
	)

	return r
}

func (r *Recorder) Rows(cmd string, n int) {
	r.rows.WithLabelValues(cmd).Add(float64(n))
}

func (r *Recorder) Result(res clickrank.Result) {
	r.displays.WithLabelValues("present").Set(float64(res.PresentCount))
	r.displays.WithLabelValues("future").Set(float64(res.FutureCount))

	r.score.WithLabelValues("present").Set(res.Present)
	r.score.WithLabelValues("future").Set(res.Future)
	r.score.WithLabelValues("total").Set(res.Total)
}

func (r *Recorder) Entries(n int) {
	r.entries.Set(float64(n))
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.reg
}

// WriteFile writes all metrics in the text exposition format, suitable for
// the textfile collector of the node exporter.
func (r *Recorder) WriteFile(pat string) error {
	err := prometheus.WriteToTextfile(pat, r.reg)
	if err != nil {
		return tracer.Mask(err)
	}

	return nil
}
