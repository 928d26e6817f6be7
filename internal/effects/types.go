package effects

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	ErrUnknownMetric     = errors.New("unknown metric")
	ErrUnsupportedMetric = errors.New("metric not supported by classifier policy")
	ErrInvalidCandidate  = errors.New("invalid skip candidate")
	ErrUnknownVerdict    = errors.New("unknown verdict")
)

type Metric string

const (
	MetricPain         Metric = "pain"
	MetricMood         Metric = "mood"
	MetricSleepQuality Metric = "sleep_quality"
	MetricEnergy       Metric = "energy"
	MetricFocus        Metric = "focus"
)

func AllMetrics() []Metric {
	return []Metric{MetricPain, MetricMood, MetricSleepQuality, MetricEnergy, MetricFocus}
}

func ParseMetric(raw string) (Metric, error) {
	candidate := Metric(strings.ToLower(strings.TrimSpace(raw)))
	for _, metric := range AllMetrics() {
		if metric == candidate {
			return metric, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, raw)
}

// LowerIsBetter reports whether a decrease in the metric is an improvement.
func (metric Metric) LowerIsBetter() bool {
	return metric == MetricPain
}

func (metric Metric) Label() string {
	return strings.ReplaceAll(string(metric), "_", " ")
}

type IntakeState string

const (
	IntakeTaken IntakeState = "taken"
	IntakeOff   IntakeState = "off"
)

// Entry is one day of check-in data as the engine sees it.
type Entry struct {
	Date    time.Time
	Metrics map[Metric]float64
	Tags    []string
	Intake  map[string]IntakeState
	Skipped []string
}

func (entry Entry) MetricValue(metric Metric) (float64, bool) {
	value, ok := entry.Metrics[metric]
	return value, ok
}

func (entry Entry) skipped(supplementID string) bool {
	for _, id := range entry.Skipped {
		if id == supplementID {
			return true
		}
	}
	return false
}

type DateRange struct {
	Start time.Time
	End   *time.Time
}

type Supplement struct {
	ID          string
	Name        string
	Ranges      []DateRange
	MonthlyCost float64
}

func (supplement Supplement) ActiveOn(day time.Time) bool {
	target := dateOnly(day)
	for _, active := range supplement.Ranges {
		if target.Before(dateOnly(active.Start)) {
			continue
		}
		if active.End != nil && target.After(dateOnly(*active.End)) {
			continue
		}
		return true
	}
	return false
}

func (supplement Supplement) IsActive() bool {
	for _, active := range supplement.Ranges {
		if active.End == nil {
			return true
		}
	}
	return false
}

// CurrentEpochStart is the start of the most recent range; a restart opens a new epoch.
func (supplement Supplement) CurrentEpochStart() time.Time {
	var latest time.Time
	for _, active := range supplement.Ranges {
		if active.Start.After(latest) {
			latest = active.Start
		}
	}
	if latest.IsZero() {
		return latest
	}
	return dateOnly(latest)
}

type Category string

const (
	CategoryWorks         Category = "works"
	CategoryNoEffect      Category = "no_effect"
	CategoryInconsistent  Category = "inconsistent"
	CategoryNeedsMoreData Category = "needs_more_data"
)

type Direction string

const (
	DirectionPositive Direction = "positive"
	DirectionNegative Direction = "negative"
	DirectionNeutral  Direction = "neutral"
)

type Reason string

const (
	ReasonNone                  Reason = ""
	ReasonNoData                Reason = "no_data"
	ReasonNoContrast            Reason = "no_contrast"
	ReasonRecentlyStarted       Reason = "recently_started"
	ReasonNoisyWindow           Reason = "noisy_window"
	ReasonInsufficientCleanDays Reason = "insufficient_clean_days"
	ReasonInsufficientOnDays    Reason = "insufficient_on_days"
	ReasonInsufficientOffDays   Reason = "insufficient_off_days"
	ReasonUncertainDirection    Reason = "uncertain_direction"
)

type EffectResult struct {
	SupplementID    string    `json:"supplementId"`
	SupplementName  string    `json:"supplementName"`
	Metric          Metric    `json:"metric"`
	Policy          string    `json:"policy"`
	Direction       Direction `json:"direction"`
	EffectSize      float64   `json:"effectSize"`
	Magnitude       float64   `json:"magnitude"`
	Confidence      float64   `json:"confidence"`
	Category        Category  `json:"category"`
	Verdict         Verdict   `json:"verdict"`
	Reason          Reason    `json:"reason,omitempty"`
	DaysOn          int       `json:"daysOn"`
	DaysOff         int       `json:"daysOff"`
	CleanDays       int       `json:"cleanDays"`
	NoisyDays       int       `json:"noisyDays"`
	OnMean          float64   `json:"onMean"`
	OffMean         float64   `json:"offMean"`
	SummarySentence string    `json:"summarySentence"`
	NextSteps       []string  `json:"nextSteps"`
}

func dateOnly(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, value.Location())
}

func daysBetween(from time.Time, to time.Time) int {
	return int(math.Round(dateOnly(to).Sub(dateOnly(from)).Hours() / 24))
}
