package effects

import (
	"sort"
	"time"
)

// Comparison is the raw on/off estimate for one supplement and metric,
// before any verdict is attached.
type Comparison struct {
	SupplementID    string    `json:"supplementId"`
	SupplementName  string    `json:"supplementName"`
	MonthlyCost     float64   `json:"monthlyCost"`
	Metric          Metric    `json:"metric"`
	OnValues        []float64 `json:"onValues"`
	OffValues       []float64 `json:"offValues"`
	DaysOn          int       `json:"daysOn"`
	DaysOff         int       `json:"daysOff"`
	CleanDays       int       `json:"cleanDays"`
	NoisyDays       int       `json:"noisyDays"`
	OnMean          float64   `json:"onMean"`
	OffMean         float64   `json:"offMean"`
	EffectSize      float64   `json:"effectSize"`
	Confidence      float64   `json:"confidence"`
	RecentlyStarted bool      `json:"recentlyStarted"`
}

func (comparison Comparison) TotalDays() int {
	return comparison.CleanDays + comparison.NoisyDays
}

func (comparison Comparison) NoisyRatio() float64 {
	total := comparison.TotalDays()
	if total == 0 {
		return 0
	}
	return float64(comparison.NoisyDays) / float64(total)
}

type PrePostComparison struct {
	Comparison
	Trend      TrendShift `json:"trend"`
	EpochStart time.Time  `json:"epochStart"`
}

// Compare partitions the clean history for one metric into on and off days
// and measures the difference between the two groups.
func Compare(supplement Supplement, metric Metric, entries []Entry, thresholds Thresholds) (Comparison, error) {
	if _, err := ParseMetric(string(metric)); err != nil {
		return Comparison{}, err
	}

	comparison := Comparison{
		SupplementID:   supplement.ID,
		SupplementName: supplement.Name,
		MonthlyCost:    supplement.MonthlyCost,
		Metric:         metric,
		OnValues:       []float64{},
		OffValues:      []float64{},
	}

	var lastDay time.Time
	for _, entry := range sortedByDate(entries) {
		value, ok := entry.MetricValue(metric)
		if !ok {
			continue
		}
		lastDay = entry.Date
		if thresholds.IsNoisy(entry) {
			comparison.NoisyDays++
			continue
		}
		if IsOnDay(supplement, entry) {
			comparison.OnValues = append(comparison.OnValues, value)
		} else {
			comparison.OffValues = append(comparison.OffValues, value)
		}
	}

	comparison.measure(thresholds.BootstrapSamples)

	epochStart := supplement.CurrentEpochStart()
	if !epochStart.IsZero() && !lastDay.IsZero() {
		comparison.RecentlyStarted = daysBetween(epochStart, lastDay) < thresholds.MinDaysSinceStart
	}

	return comparison, nil
}

// ComparePrePost treats days before the current epoch as the baseline and
// days from the epoch start onward as the treatment window.
func ComparePrePost(supplement Supplement, metric Metric, entries []Entry, thresholds Thresholds) (PrePostComparison, error) {
	if _, err := ParseMetric(string(metric)); err != nil {
		return PrePostComparison{}, err
	}

	epochStart := supplement.CurrentEpochStart()
	comparison := Comparison{
		SupplementID:   supplement.ID,
		SupplementName: supplement.Name,
		MonthlyCost:    supplement.MonthlyCost,
		Metric:         metric,
		OnValues:       []float64{},
		OffValues:      []float64{},
	}

	for _, entry := range sortedByDate(entries) {
		value, ok := entry.MetricValue(metric)
		if !ok {
			continue
		}
		if thresholds.IsNoisy(entry) {
			comparison.NoisyDays++
			continue
		}
		if !epochStart.IsZero() && !dateOnly(entry.Date).Before(epochStart) {
			comparison.OnValues = append(comparison.OnValues, value)
		} else {
			comparison.OffValues = append(comparison.OffValues, value)
		}
	}

	comparison.measure(thresholds.BootstrapSamples)

	return PrePostComparison{
		Comparison: comparison,
		Trend:      TrendBreak(comparison.OffValues, comparison.OnValues),
		EpochStart: epochStart,
	}, nil
}

// IsOnDay applies the intake precedence: explicit skip, then recorded intake,
// then the supplement's active ranges.
func IsOnDay(supplement Supplement, entry Entry) bool {
	if entry.skipped(supplement.ID) {
		return false
	}
	switch entry.Intake[supplement.ID] {
	case IntakeTaken:
		return true
	case IntakeOff:
		return false
	}
	return supplement.ActiveOn(entry.Date)
}

// CountDays partitions every clean day regardless of which metrics were logged.
func CountDays(supplement Supplement, entries []Entry, thresholds Thresholds) (int, int) {
	daysOn, daysOff := 0, 0
	for _, entry := range entries {
		if thresholds.IsNoisy(entry) {
			continue
		}
		if IsOnDay(supplement, entry) {
			daysOn++
		} else {
			daysOff++
		}
	}
	return daysOn, daysOff
}

func (comparison *Comparison) measure(bootstrapSamples int) {
	comparison.DaysOn = len(comparison.OnValues)
	comparison.DaysOff = len(comparison.OffValues)
	comparison.CleanDays = comparison.DaysOn + comparison.DaysOff
	comparison.OnMean = Mean(comparison.OnValues)
	comparison.OffMean = Mean(comparison.OffValues)
	comparison.EffectSize = CohenD(comparison.OnValues, comparison.OffValues)
	comparison.Confidence = BootstrapConfidence(comparison.OnValues, comparison.OffValues, bootstrapSamples)
}

func sortedByDate(entries []Entry) []Entry {
	sorted := make([]Entry, 0, len(entries))
	sorted = append(sorted, entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}
