package effects

import (
	"fmt"
	"math"
)

const (
	StrengthNegligible = "negligible"
	StrengthSmall      = "small"
	StrengthModerate   = "moderate"
	StrengthStrong     = "strong"

	ConfidenceLow      = "low"
	ConfidenceModerate = "moderate"
	ConfidenceHigh     = "high"
)

func StrengthLabel(effectSize float64) string {
	magnitude := math.Abs(effectSize)
	switch {
	case magnitude < 0.2:
		return StrengthNegligible
	case magnitude < 0.5:
		return StrengthSmall
	case magnitude < 0.8:
		return StrengthModerate
	default:
		return StrengthStrong
	}
}

func ConfidenceLabel(confidence float64) string {
	switch {
	case confidence < 0.6:
		return ConfidenceLow
	case confidence < 0.8:
		return ConfidenceModerate
	default:
		return ConfidenceHigh
	}
}

// PercentMagnitude reports |d| as a rounded percentage of a standard deviation.
func PercentMagnitude(effectSize float64) int {
	return int(math.Round(math.Abs(effectSize) * 100))
}

func summarySentence(result EffectResult, comparison Comparison, policy Policy, thresholds Thresholds) string {
	name := displayName(result)
	label := result.Metric.Label()

	switch result.Category {
	case CategoryWorks:
		movement := "higher"
		if result.Direction == DirectionNegative {
			movement = "lower"
		}
		return fmt.Sprintf(
			"On days you take %s your %s runs %s: a %s effect of about %d%% of a standard deviation, with %s confidence.",
			name, label, movement, StrengthLabel(result.EffectSize), PercentMagnitude(result.EffectSize), ConfidenceLabel(result.Confidence),
		)
	case CategoryNoEffect:
		if _, raw := policy.(RawMeanDeltaPolicy); raw {
			return fmt.Sprintf(
				"%s shows no meaningful change in %s: the on and off days differ by %.1f points, under the %.1f-point threshold.",
				name, label, policy.Magnitude(comparison), policy.MinImpact(thresholds),
			)
		}
		return fmt.Sprintf(
			"%s shows no meaningful change in %s: a %s effect of about %d%% of a standard deviation, with %s confidence.",
			name, label, StrengthLabel(result.EffectSize), PercentMagnitude(result.EffectSize), ConfidenceLabel(result.Confidence),
		)
	case CategoryInconsistent:
		return fmt.Sprintf(
			"%d of your last %d check-ins were noisy, so the %s signal for %s is not reliable yet.",
			comparison.NoisyDays, comparison.TotalDays(), label, name,
		)
	}

	switch result.Reason {
	case ReasonNoData:
		return fmt.Sprintf("No %s check-ins yet to judge %s.", label, name)
	case ReasonNoContrast:
		if result.DaysOff == 0 {
			return fmt.Sprintf("Every logged day was a %s day, so there is nothing to compare %s against.", name, label)
		}
		return fmt.Sprintf("No logged days on %s yet, so there is nothing to compare %s against.", name, label)
	case ReasonRecentlyStarted:
		return fmt.Sprintf("%s started too recently to judge its effect on %s.", name, label)
	case ReasonUncertainDirection:
		return fmt.Sprintf(
			"%s may be moving your %s, but the direction is not stable yet (%s confidence).",
			name, label, ConfidenceLabel(result.Confidence),
		)
	case ReasonInsufficientOnDays:
		return fmt.Sprintf("%d of %d on days logged for %s; keep going before judging %s.", result.DaysOn, thresholds.MinOnDays, name, label)
	case ReasonInsufficientOffDays:
		return fmt.Sprintf("%d of %d off days logged for %s; keep going before judging %s.", result.DaysOff, thresholds.MinOffDays, name, label)
	default:
		return fmt.Sprintf("%d of %d clean days logged for %s; keep going before judging %s.", result.CleanDays, thresholds.MinCleanDays, name, label)
	}
}

func nextSteps(result EffectResult, comparison Comparison) []string {
	switch result.Verdict {
	case VerdictConfirmed, VerdictProtective:
		return []string{"Keep taking it; retest at +60 days."}
	case VerdictHurting:
		return []string{
			fmt.Sprintf("Consider stopping it and watch whether your %s recovers.", result.Metric.Label()),
		}
	case VerdictNoEffect:
		steps := []string{"Consider stopping; reclaim the spend."}
		if comparison.MonthlyCost > 0 {
			steps = append(steps, fmt.Sprintf("Stopping saves about $%.2f a month.", comparison.MonthlyCost))
		}
		return steps
	case VerdictConfounded:
		return []string{"Repeat with 7-10 consecutive clean days."}
	}

	if result.Reason == ReasonRecentlyStarted {
		return []string{"Keep logging daily check-ins; the first comparison opens in a few days."}
	}
	return []string{"Skip a few days to create contrast, or import wearable history."}
}

func displayName(result EffectResult) string {
	if result.SupplementName != "" {
		return result.SupplementName
	}
	if result.SupplementID != "" {
		return result.SupplementID
	}
	return "this supplement"
}
