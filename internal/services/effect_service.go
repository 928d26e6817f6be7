package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/stackcheck/internal/effects"
	"github.com/terraincognita07/stackcheck/internal/logger"
	"github.com/terraincognita07/stackcheck/internal/models"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidSupplementID     = errors.New("invalid supplement id")
	ErrSupplementNotFound      = errors.New("supplement not found")
	ErrEffectHistoryLoadFailed = errors.New("effect history load failed")
	ErrInsightPersistFailed    = errors.New("insight persist failed")
	ErrInsightLoadFailed       = errors.New("insight load failed")
)

const DefaultEffectConcurrency = 4

type EffectEntryReader interface {
	ListByProfile(ctx context.Context, profileID uint) ([]models.DailyEntry, error)
}

type EffectSupplementReader interface {
	ListByProfile(ctx context.Context, profileID uint) ([]models.Supplement, error)
	FindByProfileAndID(ctx context.Context, profileID uint, supplementID uuid.UUID) (models.Supplement, bool, error)
}

type EffectInsightStore interface {
	Upsert(ctx context.Context, insight models.PatternInsight) error
	ListByProfile(ctx context.Context, profileID uint) ([]models.PatternInsight, error)
}

type EffectRecorder interface {
	ObserveResult(result effects.EffectResult)
	ObserveRecompute(elapsed time.Duration, err error)
	ObserveInsightWrite(status string, err error)
}

type EffectService struct {
	entries     EffectEntryReader
	supplements EffectSupplementReader
	insights    EffectInsightStore
	standard    *effects.Classifier
	painCheck   *effects.Classifier
	thresholds  effects.Thresholds
	concurrency int
	location    *time.Location
	log         *logger.Logger
	recorder    EffectRecorder
	now         func() time.Time
}

type RecomputeSummary struct {
	Results   []effects.EffectResult `json:"results"`
	Persisted int                    `json:"persisted"`
}

func NewEffectService(
	entries EffectEntryReader,
	supplements EffectSupplementReader,
	insights EffectInsightStore,
	thresholds effects.Thresholds,
	concurrency int,
	location *time.Location,
	log *logger.Logger,
	recorder EffectRecorder,
) *EffectService {
	if concurrency <= 0 {
		concurrency = DefaultEffectConcurrency
	}
	if location == nil {
		location = time.UTC
	}
	if log == nil {
		log = logger.NewNop()
	}
	if recorder == nil {
		recorder = noopEffectRecorder{}
	}
	return &EffectService{
		entries:     entries,
		supplements: supplements,
		insights:    insights,
		standard:    effects.NewClassifier(effects.StandardizedEffectPolicy{}, thresholds),
		painCheck:   effects.NewClassifier(effects.NewPainCheckPolicy(), thresholds),
		thresholds:  thresholds,
		concurrency: concurrency,
		location:    location,
		log:         log,
		recorder:    recorder,
		now:         time.Now,
	}
}

// AnalyzeSupplement classifies one supplement against the requested metrics,
// or every metric when none are given. Nothing is persisted.
func (service *EffectService) AnalyzeSupplement(ctx context.Context, profileID uint, rawSupplementID string, metrics []effects.Metric) ([]effects.EffectResult, error) {
	supplement, entries, err := service.loadSubject(ctx, profileID, rawSupplementID)
	if err != nil {
		return nil, err
	}
	if len(metrics) == 0 {
		metrics = effects.AllMetrics()
	}

	results := make([]effects.EffectResult, 0, len(metrics))
	for _, metric := range metrics {
		result, err := service.standard.Analyze(supplement, metric, entries)
		if err != nil {
			return nil, err
		}
		service.recorder.ObserveResult(result)
		results = append(results, result)
	}
	return results, nil
}

// PainCheck judges pain alone in raw scale points.
func (service *EffectService) PainCheck(ctx context.Context, profileID uint, rawSupplementID string) (effects.EffectResult, error) {
	supplement, entries, err := service.loadSubject(ctx, profileID, rawSupplementID)
	if err != nil {
		return effects.EffectResult{}, err
	}
	result, err := service.painCheck.Analyze(supplement, effects.MetricPain, entries)
	if err != nil {
		return effects.EffectResult{}, err
	}
	service.recorder.ObserveResult(result)
	return result, nil
}

func (service *EffectService) TrendShift(ctx context.Context, profileID uint, rawSupplementID string, metric effects.Metric) (effects.PrePostComparison, error) {
	supplement, entries, err := service.loadSubject(ctx, profileID, rawSupplementID)
	if err != nil {
		return effects.PrePostComparison{}, err
	}
	return effects.ComparePrePost(supplement, metric, entries, service.thresholds)
}

// RecomputeProfile classifies every supplement and metric for a profile,
// then upserts one insight per pair that has any data. Results come back in
// supplement name order, then metric order, regardless of scheduling.
func (service *EffectService) RecomputeProfile(ctx context.Context, profileID uint) (summary RecomputeSummary, err error) {
	started := service.now()
	defer func() {
		service.recorder.ObserveRecompute(service.now().Sub(started), err)
	}()

	supplementRows, err := service.supplements.ListByProfile(ctx, profileID)
	if err != nil {
		return RecomputeSummary{}, fmt.Errorf("%w: list supplements: %w", ErrEffectHistoryLoadFailed, err)
	}
	entryRows, err := service.entries.ListByProfile(ctx, profileID)
	if err != nil {
		return RecomputeSummary{}, fmt.Errorf("%w: list entries: %w", ErrEffectHistoryLoadFailed, err)
	}
	entries := EngineEntries(entryRows, service.location)

	type job struct {
		supplement effects.Supplement
		metric     effects.Metric
	}
	jobs := make([]job, 0, len(supplementRows)*len(effects.AllMetrics()))
	for _, row := range supplementRows {
		supplement := EngineSupplement(row, service.location)
		for _, metric := range effects.AllMetrics() {
			jobs = append(jobs, job{supplement: supplement, metric: metric})
		}
	}

	results := make([]effects.EffectResult, len(jobs))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(service.concurrency)
	for index, item := range jobs {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			result, err := service.standard.Analyze(item.supplement, item.metric, entries)
			if err != nil {
				return err
			}
			results[index] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return RecomputeSummary{}, err
	}

	summary.Results = results
	for _, result := range results {
		service.recorder.ObserveResult(result)
		if result.Reason == effects.ReasonNoData {
			continue
		}

		insight, err := InsightFromResult(profileID, result)
		if err != nil {
			return summary, err
		}
		writeErr := service.insights.Upsert(ctx, insight)
		service.recorder.ObserveInsightWrite(insight.Status, writeErr)
		if writeErr != nil {
			service.log.Error("persist pattern insight", "supplement_id", result.SupplementID, "metric", result.Metric, "error", writeErr)
			return summary, fmt.Errorf("%w: %w", ErrInsightPersistFailed, writeErr)
		}
		summary.Persisted++
	}

	service.log.Info("effects recomputed",
		"profile_id", profileID,
		"supplements", len(supplementRows),
		"results", len(results),
		"persisted", summary.Persisted,
	)
	return summary, nil
}

func (service *EffectService) ListInsights(ctx context.Context, profileID uint) ([]models.PatternInsight, error) {
	insights, err := service.insights.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInsightLoadFailed, err)
	}
	return insights, nil
}

// InsightFromResult narrows a result to the stored row. PreMean is the off
// group, PostMean the on group.
func InsightFromResult(profileID uint, result effects.EffectResult) (models.PatternInsight, error) {
	status, err := effects.ProjectStatus(result.Verdict)
	if err != nil {
		return models.PatternInsight{}, err
	}
	return models.PatternInsight{
		ProfileID:       profileID,
		SupplementID:    result.SupplementID,
		Metric:          string(result.Metric),
		EffectSize:      result.EffectSize,
		ConfidenceScore: result.Confidence,
		SampleSize:      result.DaysOn + result.DaysOff,
		Status:          string(status),
		PreMean:         result.OffMean,
		PostMean:        result.OnMean,
	}, nil
}

func (service *EffectService) loadSubject(ctx context.Context, profileID uint, rawSupplementID string) (effects.Supplement, []effects.Entry, error) {
	supplementID, err := uuid.Parse(strings.TrimSpace(rawSupplementID))
	if err != nil {
		return effects.Supplement{}, nil, ErrInvalidSupplementID
	}

	row, found, err := service.supplements.FindByProfileAndID(ctx, profileID, supplementID)
	if err != nil {
		return effects.Supplement{}, nil, fmt.Errorf("%w: find supplement: %w", ErrEffectHistoryLoadFailed, err)
	}
	if !found {
		return effects.Supplement{}, nil, ErrSupplementNotFound
	}

	entryRows, err := service.entries.ListByProfile(ctx, profileID)
	if err != nil {
		return effects.Supplement{}, nil, fmt.Errorf("%w: list entries: %w", ErrEffectHistoryLoadFailed, err)
	}
	return EngineSupplement(row, service.location), EngineEntries(entryRows, service.location), nil
}

type noopEffectRecorder struct{}

func (noopEffectRecorder) ObserveResult(effects.EffectResult) {}

func (noopEffectRecorder) ObserveRecompute(time.Duration, error) {}

func (noopEffectRecorder) ObserveInsightWrite(string, error) {}
