package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/stackcheck/internal/effects"
	"github.com/terraincognita07/stackcheck/internal/models"
)

type stubSkipRecorder struct {
	observed []effects.SkipSuggestion
}

func (stub *stubSkipRecorder) ObserveSkipSuggestions(suggestions []effects.SkipSuggestion) {
	stub.observed = append(stub.observed, suggestions...)
}

// takenEveryDay logs mood for count consecutive days with every supplement taken.
func takenEveryDay(t *testing.T, first string, count int, supplementIDs ...uuid.UUID) []models.DailyEntry {
	t.Helper()
	day := mustParseServiceDay(t, first)
	entries := make([]models.DailyEntry, 0, count)
	for index := 0; index < count; index++ {
		intake := make(map[string]string, len(supplementIDs))
		for _, id := range supplementIDs {
			intake[id.String()] = models.IntakeTaken
		}
		entries = append(entries, models.DailyEntry{
			ProfileID:        1,
			Date:             day.AddDate(0, 0, index),
			Mood:             floatPtr(float64(5 + index%3)),
			SupplementIntake: intake,
		})
	}
	return entries
}

func TestSkipServiceSuggestsSupplementWithoutOffDays(t *testing.T) {
	recorder := &stubSkipRecorder{}
	service := NewSkipService(
		&stubEntryReader{entries: takenEveryDay(t, "2026-03-01", 20, magnesiumID)},
		&stubSupplementReader{supplements: []models.Supplement{activeSupplement(t, magnesiumID, "Magnesium", "2026-03-01")}},
		effects.DefaultThresholds(),
		time.UTC,
		nil,
		recorder,
	)

	suggestions, err := service.SuggestSkips(context.Background(), 1, mustParseServiceDay(t, "2026-03-21"))
	if err != nil {
		t.Fatalf("suggest skips: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("expected one suggestion, got %#v", suggestions)
	}
	if suggestions[0].SupplementID != magnesiumID.String() || suggestions[0].Reason != effects.SkipReasonNoOffDays {
		t.Fatalf("unexpected suggestion %#v", suggestions[0])
	}
	if len(recorder.observed) != 1 {
		t.Fatalf("expected recorder to see one suggestion, got %d", len(recorder.observed))
	}
}

func TestSkipServiceExcludesNewStoppedAndConclusiveSupplements(t *testing.T) {
	stoppedID := uuid.MustParse("9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d")
	end := mustParseServiceDay(t, "2026-03-10")
	stopped := activeSupplement(t, stoppedID, "Zinc", "2026-02-01")
	stopped.Ranges[0].EndDate = &end

	entries := moodHistory(t, magnesiumID, "2026-03-01")
	for index := range entries {
		entries[index].SupplementIntake[omegaID.String()] = models.IntakeTaken
	}

	service := NewSkipService(
		&stubEntryReader{entries: entries},
		&stubSupplementReader{supplements: []models.Supplement{
			activeSupplement(t, magnesiumID, "Magnesium", "2026-01-01"),
			activeSupplement(t, omegaID, "Omega-3", "2026-03-14"),
			stopped,
		}},
		effects.DefaultThresholds(),
		time.UTC,
		nil,
		nil,
	)

	suggestions, err := service.SuggestSkips(context.Background(), 1, mustParseServiceDay(t, "2026-03-15"))
	if err != nil {
		t.Fatalf("suggest skips: %v", err)
	}
	if len(suggestions) != 0 {
		t.Fatalf("expected no suggestions, got %#v", suggestions)
	}
}

func TestSkipServiceWrapsLoadFailures(t *testing.T) {
	loadErr := errors.New("connection reset")
	service := NewSkipService(&stubEntryReader{}, &stubSupplementReader{listErr: loadErr}, effects.DefaultThresholds(), nil, nil, nil)

	_, err := service.SuggestSkips(context.Background(), 1, time.Now())
	if !errors.Is(err, ErrEffectHistoryLoadFailed) || !errors.Is(err, loadErr) {
		t.Fatalf("expected wrapped load failure, got %v", err)
	}
}

func TestBuildSkipCandidate(t *testing.T) {
	thresholds := effects.DefaultThresholds()
	classifier := effects.NewClassifier(effects.StandardizedEffectPolicy{}, thresholds)
	supplement := EngineSupplement(activeSupplement(t, magnesiumID, "Magnesium", "2026-01-01"), time.UTC)

	history := EngineEntries(takenEveryDay(t, "2026-03-01", 10, magnesiumID), time.UTC)
	history[9].Skipped = []string{magnesiumID.String()}
	today := mustParseServiceDay(t, "2026-03-11")

	candidate, err := BuildSkipCandidate(supplement, history, today, classifier)
	if err != nil {
		t.Fatalf("build candidate: %v", err)
	}
	if candidate.DaysOn != 9 || candidate.DaysOff != 1 {
		t.Fatalf("expected 9 on / 1 off, got %d/%d", candidate.DaysOn, candidate.DaysOff)
	}
	if !candidate.SkippedYesterday {
		t.Fatal("expected yesterday's skip to be detected")
	}
	if candidate.IsDirty {
		t.Fatal("expected clean recent window")
	}
	if candidate.State != effects.TrialNeedsMoreData {
		t.Fatalf("expected needs_more_data, got %s", candidate.State)
	}
	if !candidate.StartDate.Equal(mustParseServiceDay(t, "2026-01-01")) {
		t.Fatalf("unexpected start date %s", candidate.StartDate)
	}

	for index := 5; index < 10; index++ {
		history[index].Tags = []string{"travel"}
	}
	candidate, err = BuildSkipCandidate(supplement, history, today, classifier)
	if err != nil {
		t.Fatalf("build dirty candidate: %v", err)
	}
	if !candidate.IsDirty {
		t.Fatal("expected five noisy days out of seven to mark the window dirty")
	}
}

func TestBuildSkipCandidateConclusiveTrial(t *testing.T) {
	classifier := effects.NewClassifier(effects.StandardizedEffectPolicy{}, effects.DefaultThresholds())
	supplement := EngineSupplement(activeSupplement(t, magnesiumID, "Magnesium", "2026-01-01"), time.UTC)
	history := EngineEntries(moodHistory(t, magnesiumID, "2026-03-01"), time.UTC)

	candidate, err := BuildSkipCandidate(supplement, history, mustParseServiceDay(t, "2026-03-15"), classifier)
	if err != nil {
		t.Fatalf("build candidate: %v", err)
	}
	if candidate.State != effects.TrialConclusive {
		t.Fatalf("expected conclusive trial, got %s", candidate.State)
	}
}
