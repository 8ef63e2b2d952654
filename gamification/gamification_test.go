package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andrewpaige1/revisa-api/srs"
)

func TestPoints(t *testing.T) {
	assert.Equal(t, 1, Points(srs.QualityForgot))
	assert.Equal(t, 5, Points(srs.QualityHard))
	assert.Equal(t, 10, Points(srs.QualityPerfect))
	assert.Zero(t, Points(srs.Quality(7)))
	assert.Zero(t, Points(srs.Quality(-1)))

	for q := srs.QualityForgot; q < srs.QualityPerfect; q++ {
		assert.LessOrEqual(t, Points(q), Points(q+1))
	}
}

func TestNextStreak(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	now := time.Date(2026, 5, 10, 8, 0, 0, 0, loc)
	ptr := func(t time.Time) *time.Time { return &t }

	tests := []struct {
		name   string
		streak int
		last   *time.Time
		want   int
	}{
		{"first study", 0, nil, 1},
		{"same day", 4, ptr(now.Add(-2 * time.Hour)), 4},
		{"yesterday late", 4, ptr(time.Date(2026, 5, 9, 23, 30, 0, 0, loc)), 5},
		{"previous local day stored in utc", 2, ptr(time.Date(2026, 5, 10, 2, 0, 0, 0, time.UTC)), 3},
		{"missed a day", 9, ptr(now.AddDate(0, 0, -2)), 1},
		{"clock went backwards", 3, ptr(now.Add(24 * time.Hour)), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextStreak(tt.streak, tt.last, now))
		})
	}
}
