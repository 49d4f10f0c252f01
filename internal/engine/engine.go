package engine

import (
	"math"
	"sort"
)

// Mode selects how sub-scores are combined into a composite score.
type Mode int

const (
	// WeightedAverage combines unit-interval sub-scores with fixed weights.
	WeightedAverage Mode = iota
	// AdditivePoints accumulates signed point deltas into a clamped total.
	AdditivePoints
)

// Signal is one scored feature of the evaluated entity.
//
// In WeightedAverage mode Score is a sub-score clamped into [0,1] before
// weighting. In AdditivePoints mode Score is a signed delta and Weight is
// ignored.
type Signal struct {
	Name     string
	Score    float64
	Weight   float64
	Reasons  []string
	Warnings []string
}

// Config parametrizes one engine instance. The three production instances
// (matching, bot check, job verification) differ only in their Config and
// extractor sets.
type Config struct {
	Name string
	Mode Mode

	// Limit is the upper clamp bound of the composite score
	// (1 for match scores, 100 for risk scores).
	Limit float64

	// Threshold is the exact >= cutoff for Outcome.Met.
	Threshold float64

	// WarningLimit, when positive, unsets Met once the warning count
	// reaches it.
	WarningLimit int

	// StrengthMin marks signals at or above it as strengths.
	// Only meaningful in WeightedAverage mode.
	StrengthMin float64
}

// Outcome is the immutable result of a single evaluation.
type Outcome struct {
	Score     float64
	Met       bool
	Band      RiskBand
	Breakdown map[string]float64
	Reasons   []string
	Warnings  []string
	Strengths []string
}

// Evaluate combines the supplied signals according to the config.
// Signals with weight 0 never contribute in WeightedAverage mode.
func (c Config) Evaluate(signals []Signal) Outcome {
	out := Outcome{Breakdown: make(map[string]float64, len(signals))}

	var sum float64
	for _, s := range signals {
		switch c.Mode {
		case WeightedAverage:
			if s.Weight == 0 {
				continue
			}
			score := Clamp(s.Score, 0, 1)
			out.Breakdown[s.Name] = score
			sum += s.Weight * score
			if score >= c.StrengthMin && c.StrengthMin > 0 {
				out.Strengths = append(out.Strengths, s.Name)
			}
		case AdditivePoints:
			out.Breakdown[s.Name] = s.Score
			sum += s.Score
		}
		out.Reasons = append(out.Reasons, s.Reasons...)
		out.Warnings = append(out.Warnings, s.Warnings...)
	}

	switch c.Mode {
	case WeightedAverage:
		out.Score = Round2(Clamp(sum, 0, c.Limit))
	case AdditivePoints:
		out.Score = Clamp(sum, 0, c.Limit)
		out.Band = BandFor(out.Score)
	}

	out.Met = out.Score >= c.Threshold
	if c.WarningLimit > 0 && len(out.Warnings) >= c.WarningLimit {
		out.Met = false
	}

	sort.Strings(out.Strengths)

	return out
}

// Clamp bounds v into [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
