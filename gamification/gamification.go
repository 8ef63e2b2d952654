// Package gamification awards experience points and tracks study streaks.
package gamification

import (
	"time"

	"github.com/andrewpaige1/revisa-api/srs"
)

var pointsByQuality = [...]int{
	srs.QualityForgot:  1,
	srs.QualityWrong:   1,
	srs.QualityAlmost:  1,
	srs.QualityHard:    5,
	srs.QualityGood:    8,
	srs.QualityPerfect: 10,
}

// Points returns the XP earned for one rating. Invalid grades earn nothing.
func Points(q srs.Quality) int {
	if q.Validate() != nil {
		return 0
	}
	return pointsByQuality[q]
}

// NextStreak returns the streak after studying at now, given the previous
// streak and the day of the last study. Days are calendar days in now's location.
func NextStreak(streak int, last *time.Time, now time.Time) int {
	if last == nil || streak <= 0 {
		return 1
	}
	gap := daysBetween(last.In(now.Location()), now)
	switch {
	case gap <= 0:
		return streak
	case gap == 1:
		return streak + 1
	default:
		return 1
	}
}

func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
