package effects

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipCandidate(t *testing.T, id string, daysOff int, start string) SkipCandidate {
	t.Helper()
	return SkipCandidate{
		SupplementID: id,
		Name:         id,
		DaysOn:       10,
		DaysOff:      daysOff,
		StartDate:    mustParseEffectsDay(t, start),
		State:        TrialNeedsMoreData,
	}
}

func TestSuggestSkipsPrioritizesMissingOffDays(t *testing.T) {
	today := mustParseEffectsDay(t, "2026-03-20")
	candidates := []SkipCandidate{
		skipCandidate(t, "zinc", 3, "2026-03-01"),
		skipCandidate(t, "omega", 0, "2026-03-01"),
		skipCandidate(t, "iron", 1, "2026-03-01"),
	}

	suggestions, err := SuggestSkips(candidates, today, DefaultThresholds())
	require.NoError(t, err)

	assert.Equal(t, []SkipSuggestion{
		{SupplementID: "omega", Name: "omega", Reason: SkipReasonNoOffDays},
		{SupplementID: "iron", Name: "iron", Reason: SkipReasonInsufficientOffDays},
	}, suggestions)
}

func TestSuggestSkipsExcludesRecentStarts(t *testing.T) {
	today := mustParseEffectsDay(t, "2026-03-20")
	candidates := []SkipCandidate{
		skipCandidate(t, "started-yesterday", 0, "2026-03-19"),
		skipCandidate(t, "started-today", 0, "2026-03-20"),
	}

	suggestions, err := SuggestSkips(candidates, today, DefaultThresholds())
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestSuggestSkipsTieBreaks(t *testing.T) {
	today := mustParseEffectsDay(t, "2026-03-20")
	first := skipCandidate(t, "first", 5, "2026-03-01")
	first.HighUncertainty = true
	second := skipCandidate(t, "second", 1, "2026-03-01")
	third := skipCandidate(t, "third", 1, "2026-03-01")

	suggestions, err := SuggestSkips([]SkipCandidate{first, second, third}, today, DefaultThresholds())
	require.NoError(t, err)

	require.Len(t, suggestions, 2)
	assert.Equal(t, "second", suggestions[0].SupplementID)
	assert.Equal(t, "third", suggestions[1].SupplementID)

	suggestions, err = SuggestSkips([]SkipCandidate{third, first, second}, today, DefaultThresholds())
	require.NoError(t, err)
	assert.Equal(t, "third", suggestions[0].SupplementID)
	assert.Equal(t, "second", suggestions[1].SupplementID)
}

func TestSuggestSkipsHighUncertaintyPromotion(t *testing.T) {
	today := mustParseEffectsDay(t, "2026-03-20")
	plenty := skipCandidate(t, "plenty", 6, "2026-03-01")
	uncertain := skipCandidate(t, "uncertain", 6, "2026-03-01")
	uncertain.State = TrialBuilding
	uncertain.HighUncertainty = true
	low := skipCandidate(t, "low", 3, "2026-03-01")

	suggestions, err := SuggestSkips([]SkipCandidate{plenty, low, uncertain}, today, DefaultThresholds())
	require.NoError(t, err)

	assert.Equal(t, []SkipSuggestion{
		{SupplementID: "uncertain", Name: "uncertain", Reason: SkipReasonHighUncertainty},
		{SupplementID: "low", Name: "low", Reason: SkipReasonInsufficientOffDays},
	}, suggestions)
}

func TestSuggestSkipsExclusions(t *testing.T) {
	today := mustParseEffectsDay(t, "2026-03-20")
	conclusive := skipCandidate(t, "conclusive", 0, "2026-03-01")
	conclusive.State = TrialConclusive
	yesterday := skipCandidate(t, "yesterday", 0, "2026-03-01")
	yesterday.SkippedYesterday = true
	dirty := skipCandidate(t, "dirty", 0, "2026-03-01")
	dirty.IsDirty = true
	unknownStart := skipCandidate(t, "unknown-start", 0, "2026-03-01")
	unknownStart.StartDate = time.Time{}

	suggestions, err := SuggestSkips([]SkipCandidate{conclusive, yesterday, dirty, unknownStart}, today, DefaultThresholds())
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestSuggestSkipsRejectsNegativeCounts(t *testing.T) {
	today := mustParseEffectsDay(t, "2026-03-20")
	broken := skipCandidate(t, "broken", -1, "2026-03-01")

	_, err := SuggestSkips([]SkipCandidate{broken}, today, DefaultThresholds())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCandidate))
}

func TestSuggestSkipsClampsConfiguredLimit(t *testing.T) {
	today := mustParseEffectsDay(t, "2026-03-20")
	candidates := []SkipCandidate{
		skipCandidate(t, "a", 0, "2026-03-01"),
		skipCandidate(t, "b", 0, "2026-03-01"),
		skipCandidate(t, "c", 0, "2026-03-01"),
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"above ceiling", 3, 2},
		{"negative", -1, 0},
		{"zero", 0, 0},
		{"one", 1, 1},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			thresholds := DefaultThresholds()
			thresholds.MaxSkipSuggestions = testCase.limit

			suggestions, err := SuggestSkips(candidates, today, thresholds)
			require.NoError(t, err)
			assert.Len(t, suggestions, testCase.want)
		})
	}
}

func TestSuggestSkipsCap(t *testing.T) {
	today := mustParseEffectsDay(t, "2026-03-20")
	states := []TrialState{TrialNeedsMoreData, TrialBuilding, TrialConclusive}
	rng := rand.New(rand.NewPCG(9, 99))

	for round := 0; round < 100; round++ {
		thresholds := DefaultThresholds()
		thresholds.MaxSkipSuggestions = rng.IntN(6) - 2
		count := 1 + rng.IntN(8)
		candidates := make([]SkipCandidate, 0, count)
		for i := 0; i < count; i++ {
			candidate := skipCandidate(t, string(rune('a'+i)), rng.IntN(7), "2026-03-01")
			candidate.State = states[rng.IntN(len(states))]
			candidate.SkippedYesterday = rng.IntN(3) == 0
			candidate.IsDirty = rng.IntN(4) == 0
			candidate.HighUncertainty = rng.IntN(2) == 0
			candidates = append(candidates, candidate)
		}
		byID := map[string]SkipCandidate{}
		for _, candidate := range candidates {
			byID[candidate.SupplementID] = candidate
		}

		suggestions, err := SuggestSkips(candidates, today, thresholds)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(suggestions), 2)
		for _, suggestion := range suggestions {
			assert.False(t, byID[suggestion.SupplementID].SkippedYesterday)
			assert.False(t, byID[suggestion.SupplementID].IsDirty)
		}
	}
}
