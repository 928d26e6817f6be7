package effects

import (
	"fmt"
	"sort"
	"time"
)

type TrialState string

const (
	TrialNeedsMoreData TrialState = "needs_more_data"
	TrialBuilding      TrialState = "building"
	TrialConclusive    TrialState = "conclusive"
)

type SkipReason string

const (
	SkipReasonNoOffDays           SkipReason = "no_off_days"
	SkipReasonInsufficientOffDays SkipReason = "insufficient_off_days"
	SkipReasonHighUncertainty     SkipReason = "high_uncertainty"
)

type SkipCandidate struct {
	SupplementID     string
	Name             string
	DaysOn           int
	DaysOff          int
	SkippedYesterday bool
	IsDirty          bool
	StartDate        time.Time
	State            TrialState
	HighUncertainty  bool
}

type SkipSuggestion struct {
	SupplementID string     `json:"supplementId"`
	Name         string     `json:"name"`
	Reason       SkipReason `json:"reason"`
}

// maxSkipSuggestions bounds the output whatever the thresholds say.
const maxSkipSuggestions = 2

type rankedSkip struct {
	suggestion SkipSuggestion
	tier       int
	daysOff    int
}

// SuggestSkips picks which supplements to withhold today purely to create
// off-day contrast. Ranking is stable: ties keep input order.
func SuggestSkips(candidates []SkipCandidate, today time.Time, thresholds Thresholds) ([]SkipSuggestion, error) {
	ranked := make([]rankedSkip, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.DaysOn < 0 || candidate.DaysOff < 0 {
			return nil, fmt.Errorf("%w: %s has negative day counts", ErrInvalidCandidate, candidate.SupplementID)
		}
		if !skipEligible(candidate, today, thresholds) {
			continue
		}
		tier, reason, ok := skipTier(candidate)
		if !ok {
			continue
		}
		ranked = append(ranked, rankedSkip{
			suggestion: SkipSuggestion{SupplementID: candidate.SupplementID, Name: candidate.Name, Reason: reason},
			tier:       tier,
			daysOff:    candidate.DaysOff,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].tier != ranked[j].tier {
			return ranked[i].tier > ranked[j].tier
		}
		return ranked[i].daysOff < ranked[j].daysOff
	})

	limit := thresholds.MaxSkipSuggestions
	if limit > maxSkipSuggestions {
		limit = maxSkipSuggestions
	}
	if limit < 0 {
		limit = 0
	}
	if limit > len(ranked) {
		limit = len(ranked)
	}
	suggestions := make([]SkipSuggestion, 0, limit)
	for _, item := range ranked[:limit] {
		suggestions = append(suggestions, item.suggestion)
	}
	return suggestions, nil
}

func skipEligible(candidate SkipCandidate, today time.Time, thresholds Thresholds) bool {
	if candidate.State != TrialNeedsMoreData && candidate.State != TrialBuilding {
		return false
	}
	if candidate.SkippedYesterday || candidate.IsDirty {
		return false
	}
	if candidate.StartDate.IsZero() {
		return false
	}
	return daysBetween(candidate.StartDate, today) >= thresholds.MinDaysSinceStart
}

func skipTier(candidate SkipCandidate) (int, SkipReason, bool) {
	switch {
	case candidate.DaysOff == 0:
		return 3, SkipReasonNoOffDays, true
	case candidate.DaysOff < 2:
		return 2, SkipReasonInsufficientOffDays, true
	case candidate.DaysOff < 4:
		return 1, SkipReasonInsufficientOffDays, true
	case candidate.HighUncertainty:
		return 2, SkipReasonHighUncertainty, true
	default:
		return 0, "", false
	}
}
