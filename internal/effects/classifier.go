package effects

import (
	"fmt"
	"math"
)

type Classifier struct {
	policy     Policy
	thresholds Thresholds
}

func NewClassifier(policy Policy, thresholds Thresholds) *Classifier {
	if policy == nil {
		policy = StandardizedEffectPolicy{}
	}
	return &Classifier{policy: policy, thresholds: thresholds}
}

func (classifier *Classifier) Policy() Policy {
	return classifier.policy
}

func (classifier *Classifier) Thresholds() Thresholds {
	return classifier.thresholds
}

// Analyze runs the comparator and classifies its output in one pass.
func (classifier *Classifier) Analyze(supplement Supplement, metric Metric, entries []Entry) (EffectResult, error) {
	if !classifier.policy.Supports(metric) {
		return EffectResult{}, fmt.Errorf("%w: %s does not handle %q", ErrUnsupportedMetric, classifier.policy.Name(), metric)
	}
	comparison, err := Compare(supplement, metric, entries, classifier.thresholds)
	if err != nil {
		return EffectResult{}, err
	}
	return classifier.Classify(comparison)
}

// Classify maps a comparison to exactly one category. Low-data conditions
// become categories, never errors.
func (classifier *Classifier) Classify(comparison Comparison) (EffectResult, error) {
	if _, err := ParseMetric(string(comparison.Metric)); err != nil {
		return EffectResult{}, err
	}
	if !classifier.policy.Supports(comparison.Metric) {
		return EffectResult{}, fmt.Errorf("%w: %s does not handle %q", ErrUnsupportedMetric, classifier.policy.Name(), comparison.Metric)
	}

	category, reason := classifier.categorize(comparison)
	direction := DirectionNeutral
	if category == CategoryWorks {
		direction = directionOf(comparison.OnMean - comparison.OffMean)
		if direction == DirectionNeutral {
			category = CategoryNoEffect
		}
	}
	verdict := deriveVerdict(comparison.Metric, category, reason, direction)

	result := EffectResult{
		SupplementID:   comparison.SupplementID,
		SupplementName: comparison.SupplementName,
		Metric:         comparison.Metric,
		Policy:         classifier.policy.Name(),
		Direction:      direction,
		EffectSize:     comparison.EffectSize,
		Magnitude:      math.Abs(comparison.EffectSize),
		Confidence:     comparison.Confidence,
		Category:       category,
		Verdict:        verdict,
		Reason:         reason,
		DaysOn:         comparison.DaysOn,
		DaysOff:        comparison.DaysOff,
		CleanDays:      comparison.CleanDays,
		NoisyDays:      comparison.NoisyDays,
		OnMean:         comparison.OnMean,
		OffMean:        comparison.OffMean,
	}
	result.SummarySentence = summarySentence(result, comparison, classifier.policy, classifier.thresholds)
	result.NextSteps = nextSteps(result, comparison)
	return result, nil
}

func (classifier *Classifier) categorize(comparison Comparison) (Category, Reason) {
	thresholds := classifier.thresholds

	if comparison.TotalDays() == 0 {
		return CategoryNeedsMoreData, ReasonNoData
	}
	if comparison.DaysOn == 0 || comparison.DaysOff == 0 {
		return CategoryNeedsMoreData, ReasonNoContrast
	}
	if comparison.RecentlyStarted {
		return CategoryNeedsMoreData, ReasonRecentlyStarted
	}
	if comparison.TotalDays() >= thresholds.MinCleanDays && comparison.NoisyRatio() > thresholds.MaxNoisyRatio {
		return CategoryInconsistent, ReasonNoisyWindow
	}
	if comparison.CleanDays < thresholds.MinCleanDays {
		return CategoryNeedsMoreData, ReasonInsufficientCleanDays
	}
	if comparison.DaysOn < thresholds.MinOnDays {
		return CategoryNeedsMoreData, ReasonInsufficientOnDays
	}
	if comparison.DaysOff < thresholds.MinOffDays {
		return CategoryNeedsMoreData, ReasonInsufficientOffDays
	}
	if classifier.policy.Magnitude(comparison) < classifier.policy.MinImpact(thresholds) {
		return CategoryNoEffect, ReasonNone
	}
	if comparison.Confidence >= thresholds.MinConfidence {
		return CategoryWorks, ReasonNone
	}
	return CategoryNeedsMoreData, ReasonUncertainDirection
}

func directionOf(delta float64) Direction {
	switch {
	case delta > 0:
		return DirectionPositive
	case delta < 0:
		return DirectionNegative
	default:
		return DirectionNeutral
	}
}
