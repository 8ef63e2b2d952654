package srs

import (
	"errors"
	"fmt"
)

// Quality is the recall grade a learner gives a card after seeing its back.
type Quality int

const (
	QualityForgot  Quality = 0 // complete blackout
	QualityWrong   Quality = 1 // wrong, but the answer looked familiar
	QualityAlmost  Quality = 2 // wrong, answer came back once revealed
	QualityHard    Quality = 3 // right with serious effort
	QualityGood    Quality = 4 // right after some hesitation
	QualityPerfect Quality = 5 // immediate recall
)

const (
	lowestQuality    = QualityForgot
	highestQuality   = QualityPerfect
	passingThreshold = QualityHard
)

var ErrInvalidQuality = errors.New("srs: quality must be between 0 and 5")

// Validate reports whether q is inside the 0-5 range.
func (q Quality) Validate() error {
	if q < lowestQuality || q > highestQuality {
		return fmt.Errorf("%w: got %d", ErrInvalidQuality, int(q))
	}
	return nil
}

// Passed reports whether the grade counts as a successful recall.
func (q Quality) Passed() bool {
	return q >= passingThreshold
}

func (q Quality) String() string {
	switch q {
	case QualityForgot:
		return "forgot"
	case QualityWrong:
		return "wrong"
	case QualityAlmost:
		return "almost"
	case QualityHard:
		return "hard"
	case QualityGood:
		return "good"
	case QualityPerfect:
		return "perfect"
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}
