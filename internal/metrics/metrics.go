package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/terraincognita07/stackcheck/internal/effects"
)

// Recorder counts engine activity. A nil *Recorder records nothing.
type Recorder struct {
	classifications   *prometheus.CounterVec
	recomputeDuration *prometheus.HistogramVec
	insightWrites     *prometheus.CounterVec
	skipSuggestions   *prometheus.CounterVec
}

func NewRecorder(registerer prometheus.Registerer) *Recorder {
	factory := promauto.With(registerer)
	return &Recorder{
		classifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stackcheck_effect_classifications_total",
			Help: "Effect results by policy, category and verdict.",
		}, []string{"policy", "category", "verdict"}),
		recomputeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stackcheck_recompute_duration_seconds",
			Help:    "Duration of full profile recomputes.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"result"}),
		insightWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stackcheck_insight_writes_total",
			Help: "Pattern insight upserts by stored status and result.",
		}, []string{"status", "result"}),
		skipSuggestions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stackcheck_skip_suggestions_total",
			Help: "Skip-day suggestions by reason.",
		}, []string{"reason"}),
	}
}

func (recorder *Recorder) ObserveResult(result effects.EffectResult) {
	if recorder == nil {
		return
	}
	recorder.classifications.WithLabelValues(result.Policy, string(result.Category), string(result.Verdict)).Inc()
}

func (recorder *Recorder) ObserveRecompute(elapsed time.Duration, err error) {
	if recorder == nil {
		return
	}
	recorder.recomputeDuration.WithLabelValues(outcome(err)).Observe(elapsed.Seconds())
}

func (recorder *Recorder) ObserveInsightWrite(status string, err error) {
	if recorder == nil {
		return
	}
	recorder.insightWrites.WithLabelValues(status, outcome(err)).Inc()
}

func (recorder *Recorder) ObserveSkipSuggestions(suggestions []effects.SkipSuggestion) {
	if recorder == nil {
		return
	}
	for _, suggestion := range suggestions {
		recorder.skipSuggestions.WithLabelValues(string(suggestion.Reason)).Inc()
	}
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
