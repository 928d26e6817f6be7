package effects

import "strings"

const DefaultBootstrapSamples = 500

// Thresholds holds every fixed constant the comparator, classifier and
// skip scheduler read. Products tune sensitivity here, not in algorithm code.
type Thresholds struct {
	MinCleanDays  int     `yaml:"min_clean_days" validate:"gte=2"`
	MinOnDays     int     `yaml:"min_on_days" validate:"gte=1"`
	MinOffDays    int     `yaml:"min_off_days" validate:"gte=1"`
	MinEffectSize float64 `yaml:"min_effect_size" validate:"gte=0"`
	MinRawDelta   float64 `yaml:"min_raw_delta" validate:"gte=0"`
	MinConfidence float64 `yaml:"min_confidence" validate:"gte=0,lte=1"`
	MaxNoisyRatio float64 `yaml:"max_noisy_ratio" validate:"gte=0,lte=1"`

	BootstrapSamples int `yaml:"bootstrap_samples" validate:"gte=1,lte=100000"`

	MinDaysSinceStart  int      `yaml:"min_days_since_start" validate:"gte=0"`
	MaxSkipSuggestions int      `yaml:"max_skip_suggestions" validate:"gte=0,lte=2"`
	DirtyWindowDays    int      `yaml:"dirty_window_days" validate:"gte=1"`
	DirtyNoisyRatio    float64  `yaml:"dirty_noisy_ratio" validate:"gte=0,lte=1"`
	NoisyTags          []string `yaml:"noisy_tags" validate:"dive,required"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		MinCleanDays:       14,
		MinOnDays:          7,
		MinOffDays:         4,
		MinEffectSize:      0.2,
		MinRawDelta:        1.0,
		MinConfidence:      0.7,
		MaxNoisyRatio:      0.4,
		BootstrapSamples:   DefaultBootstrapSamples,
		MinDaysSinceStart:  2,
		MaxSkipSuggestions: 2,
		DirtyWindowDays:    7,
		DirtyNoisyRatio:    0.5,
		NoisyTags:          []string{"alcohol", "travel", "illness", "sick", "stress", "jet_lag"},
	}
}

// IsNoisy reports whether any of the entry's tags marks the day as confounded.
// With no configured noisy tags, any tag at all counts.
func (thresholds Thresholds) IsNoisy(entry Entry) bool {
	for _, tag := range entry.Tags {
		normalized := strings.ToLower(strings.TrimSpace(tag))
		if normalized == "" {
			continue
		}
		if len(thresholds.NoisyTags) == 0 {
			return true
		}
		for _, noisy := range thresholds.NoisyTags {
			if normalized == strings.ToLower(strings.TrimSpace(noisy)) {
				return true
			}
		}
	}
	return false
}
