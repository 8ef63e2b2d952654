package srs

import (
	"fmt"
	"math"
	"time"
)

// Schedule is the review state attached to a card after its first rating.
type Schedule struct {
	DueAt        time.Time `json:"proxima_revisao"`
	IntervalDays float64   `json:"intervalo_dias"`
	Repetitions  int       `json:"repeticoes"`
	Ease         float64   `json:"fator_facilidade"`
	LastQuality  Quality   `json:"ultima_qualidade"`
	LastReview   time.Time `json:"ultima_revisao"`
}

// SchedulerConfig tunes a Scheduler. Zero values fall back to the defaults below.
type SchedulerConfig struct {
	InitialEase     float64
	MinEase         float64
	MaxIntervalDays float64
	// RelearnDelays holds the deferral for q0, q1 and q2.
	RelearnDelays [3]time.Duration
	// QualityFactors scales the base interval for q3, q4 and q5.
	QualityFactors [3]float64
}

const (
	DefaultInitialEase     = 2.5
	DefaultMinEase         = 1.3
	DefaultMaxIntervalDays = 3650.0

	// MaxRepresentableDays bounds every interval so that it still fits in a
	// time.Duration (about 106751 days).
	MaxRepresentableDays = 100000.0
)

var (
	DefaultRelearnDelays  = [3]time.Duration{0, time.Minute, 10 * time.Minute}
	DefaultQualityFactors = [3]float64{1.0, 1.3, 1.6}
)

// Scheduler turns a quality grade into the next Schedule of a card.
// It is a variant of SuperMemo-2: lapses come back within minutes, passes
// grow by the ease factor, and each passing grade lands strictly later than
// the grade below it.
type Scheduler struct {
	initialEase    float64
	minEase        float64
	maxInterval    float64
	relearnDelays  [3]time.Duration
	qualityFactors [3]float64
}

// NewScheduler validates cfg and fills in defaults.
func NewScheduler(cfg SchedulerConfig) (*Scheduler, error) {
	s := &Scheduler{
		initialEase:    cfg.InitialEase,
		minEase:        cfg.MinEase,
		maxInterval:    cfg.MaxIntervalDays,
		relearnDelays:  cfg.RelearnDelays,
		qualityFactors: cfg.QualityFactors,
	}
	if s.initialEase == 0 {
		s.initialEase = DefaultInitialEase
	}
	if s.minEase == 0 {
		s.minEase = DefaultMinEase
	}
	if s.maxInterval == 0 {
		s.maxInterval = DefaultMaxIntervalDays
	}
	if s.relearnDelays == [3]time.Duration{} {
		s.relearnDelays = DefaultRelearnDelays
	}
	if s.qualityFactors == [3]float64{} {
		s.qualityFactors = DefaultQualityFactors
	}

	if !finite(s.initialEase) || !finite(s.minEase) || !finite(s.maxInterval) {
		return nil, fmt.Errorf("srs: ease and maximum interval must be finite, got %v, %v, %v", s.initialEase, s.minEase, s.maxInterval)
	}
	if s.minEase <= 0 || s.initialEase < s.minEase {
		return nil, fmt.Errorf("srs: initial ease %.2f must be >= min ease %.2f > 0", s.initialEase, s.minEase)
	}
	if s.maxInterval < 1 {
		return nil, fmt.Errorf("srs: maximum interval %.2f must be at least one day", s.maxInterval)
	}
	for i := 1; i < len(s.relearnDelays); i++ {
		if s.relearnDelays[i] <= s.relearnDelays[i-1] {
			return nil, fmt.Errorf("srs: relearn delays must be strictly increasing: %v", s.relearnDelays)
		}
	}
	if s.relearnDelays[0] < 0 || s.relearnDelays[2] >= 24*time.Hour {
		return nil, fmt.Errorf("srs: relearn delays must stay within [0, 24h): %v", s.relearnDelays)
	}
	for i, f := range s.qualityFactors {
		if !finite(f) || f < 1 || (i > 0 && f <= s.qualityFactors[i-1]) {
			return nil, fmt.Errorf("srs: quality factors must be >= 1 and strictly increasing: %v", s.qualityFactors)
		}
	}
	if longest := s.maxInterval * s.qualityFactors[len(s.qualityFactors)-1]; longest > MaxRepresentableDays {
		return nil, fmt.Errorf("srs: maximum interval %.0f days times factor %.2f exceeds %.0f days",
			s.maxInterval, s.qualityFactors[len(s.qualityFactors)-1], MaxRepresentableDays)
	}
	return s, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// DefaultScheduler returns a Scheduler with the default configuration.
func DefaultScheduler() *Scheduler {
	s, err := NewScheduler(SchedulerConfig{})
	if err != nil {
		panic(err)
	}
	return s
}

// Next computes the schedule that follows prior after a rating of q at now.
// A nil prior means the card has never been reviewed.
func (s *Scheduler) Next(prior *Schedule, q Quality, now time.Time) (Schedule, error) {
	if err := q.Validate(); err != nil {
		return Schedule{}, err
	}

	ease := s.initialEase
	reps := 0
	interval := 0.0
	if prior != nil {
		ease = prior.Ease
		reps = prior.Repetitions
		interval = prior.IntervalDays
		if !finite(interval) || interval < 0 {
			interval = 0
		}
		if !finite(ease) {
			ease = s.initialEase
		}
		if ease < s.minEase {
			ease = s.minEase
		}
	}

	miss := float64(highestQuality - q)
	ease += 0.1 - miss*(0.08+miss*0.02)
	if ease < s.minEase {
		ease = s.minEase
	}

	next := Schedule{
		Ease:        ease,
		LastQuality: q,
		LastReview:  now,
	}

	if !q.Passed() {
		next.Repetitions = 0
		next.IntervalDays = 0
		next.DueAt = now.Add(s.relearnDelays[q])
		return next, nil
	}

	var base float64
	switch reps {
	case 0:
		base = 1
	case 1:
		base = 6
	default:
		base = math.Max(interval, 1) * ease
	}
	if base > s.maxInterval {
		base = s.maxInterval
	}

	next.Repetitions = reps + 1
	next.IntervalDays = base * s.qualityFactors[q-passingThreshold]
	next.DueAt = now.Add(days(next.IntervalDays))
	return next, nil
}

// days converts an interval to a Duration, clamped to [0, MaxRepresentableDays].
func days(d float64) time.Duration {
	d = math.Max(0, math.Min(d, MaxRepresentableDays))
	return time.Duration(d * float64(24*time.Hour))
}
