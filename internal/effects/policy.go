package effects

import "math"

// Policy decides which magnitude the classifier compares against its
// minimum-impact threshold.
type Policy interface {
	Name() string
	Supports(metric Metric) bool
	Magnitude(comparison Comparison) float64
	MinImpact(thresholds Thresholds) float64
}

const (
	PolicyStandardizedEffect = "standardized_effect"
	PolicyRawMeanDelta       = "raw_mean_delta"
)

// StandardizedEffectPolicy judges effects in pooled standard deviation units.
// Generic metric analysis, persisted insights and skip scheduling use it.
type StandardizedEffectPolicy struct{}

func (StandardizedEffectPolicy) Name() string {
	return PolicyStandardizedEffect
}

func (StandardizedEffectPolicy) Supports(Metric) bool {
	return true
}

func (StandardizedEffectPolicy) Magnitude(comparison Comparison) float64 {
	return math.Abs(comparison.EffectSize)
}

func (StandardizedEffectPolicy) MinImpact(thresholds Thresholds) float64 {
	return thresholds.MinEffectSize
}

// RawMeanDeltaPolicy judges a single metric by the plain difference of group
// means, in scale points. Only the pain check uses it.
type RawMeanDeltaPolicy struct {
	Metric Metric
}

func NewPainCheckPolicy() RawMeanDeltaPolicy {
	return RawMeanDeltaPolicy{Metric: MetricPain}
}

func (policy RawMeanDeltaPolicy) Name() string {
	return PolicyRawMeanDelta
}

func (policy RawMeanDeltaPolicy) Supports(metric Metric) bool {
	return metric == policy.Metric
}

func (policy RawMeanDeltaPolicy) Magnitude(comparison Comparison) float64 {
	if comparison.DaysOn == 0 || comparison.DaysOff == 0 {
		return 0
	}
	return math.Abs(comparison.OnMean - comparison.OffMean)
}

func (policy RawMeanDeltaPolicy) MinImpact(thresholds Thresholds) float64 {
	return thresholds.MinRawDelta
}
