package effects

import "fmt"

type Verdict string

const (
	VerdictConfirmed    Verdict = "confirmed"
	VerdictHurting      Verdict = "hurting"
	VerdictNoEffect     Verdict = "no_effect"
	VerdictTesting      Verdict = "testing"
	VerdictInsufficient Verdict = "insufficient"
	VerdictProtective   Verdict = "protective"
	VerdictConfounded   Verdict = "confounded"
	VerdictLoading      Verdict = "loading"
)

type StoredStatus string

const (
	StoredStatusSignificant  StoredStatus = "significant"
	StoredStatusNegative     StoredStatus = "negative"
	StoredStatusInconclusive StoredStatus = "inconclusive"
)

// StoredStatusByVerdict narrows the internal vocabulary to what the insights
// table keeps. The projection is lossy and one-way.
var StoredStatusByVerdict = map[Verdict]StoredStatus{
	VerdictConfirmed:    StoredStatusSignificant,
	VerdictProtective:   StoredStatusSignificant,
	VerdictHurting:      StoredStatusNegative,
	VerdictNoEffect:     StoredStatusInconclusive,
	VerdictTesting:      StoredStatusInconclusive,
	VerdictInsufficient: StoredStatusInconclusive,
	VerdictConfounded:   StoredStatusInconclusive,
	VerdictLoading:      StoredStatusInconclusive,
}

func ProjectStatus(verdict Verdict) (StoredStatus, error) {
	status, ok := StoredStatusByVerdict[verdict]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownVerdict, verdict)
	}
	return status, nil
}

func deriveVerdict(metric Metric, category Category, reason Reason, direction Direction) Verdict {
	switch category {
	case CategoryWorks:
		beneficial := (direction == DirectionPositive) != metric.LowerIsBetter()
		switch {
		case !beneficial:
			return VerdictHurting
		case metric.LowerIsBetter():
			return VerdictProtective
		default:
			return VerdictConfirmed
		}
	case CategoryNoEffect:
		return VerdictNoEffect
	case CategoryInconsistent:
		return VerdictConfounded
	}

	switch reason {
	case ReasonNoData:
		return VerdictLoading
	case ReasonUncertainDirection:
		return VerdictTesting
	default:
		return VerdictInsufficient
	}
}
