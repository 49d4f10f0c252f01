package matching

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/proconnect/trust-engine/internal/ai"
	"github.com/proconnect/trust-engine/internal/engine"
)

// matchConfig is the engine instance shared by every matcher. A composite at
// or above 0.6 classifies as a match; categories at or above 0.8 count as
// strengths.
var matchConfig = engine.Config{
	Name:        "matching",
	Mode:        engine.WeightedAverage,
	Limit:       1,
	Threshold:   0.6,
	StrengthMin: 0.8,
}

// Matcher evaluates candidate profiles against job requirements. The
// generator is optional; without it insights degrade to the fallback text.
type Matcher struct {
	generator ai.Generator
	logger    *zap.Logger
}

// NewMatcher creates a Matcher with the provided insight generator.
func NewMatcher(generator ai.Generator, logger *zap.Logger) *Matcher {
	return &Matcher{generator: generator, logger: logger}
}

// Evaluate computes the full match bundle for one profile/job pair.
func (m *Matcher) Evaluate(ctx context.Context, profile *Profile, job *Job) (*MatchResult, error) {
	if profile == nil {
		return nil, fmt.Errorf("profile is required")
	}
	if job == nil {
		return nil, fmt.Errorf("job is required")
	}

	outcome := matchConfig.Evaluate(extractSignals(profile, job))

	result := &MatchResult{
		Overall:   outcome.Score,
		Matched:   outcome.Met,
		Breakdown: outcome.Breakdown,
		Strengths: outcome.Strengths,
		Gaps:      identifyGaps(profile, job),
	}

	result.Insights = ai.Insights(ctx, m.generator, m.logger, insightPrompt(profile, job, outcome.Breakdown))

	if m.logger != nil {
		m.logger.Debug("match evaluated",
			zap.String("user_id", profile.UserID),
			zap.String("job_title", job.Title),
			zap.Float64("overall", result.Overall),
			zap.Bool("matched", result.Matched),
		)
	}

	return result, nil
}

// score runs the composite computation without the insight call. Used by the
// finder, which ranks many jobs per invocation.
func (m *Matcher) score(profile *Profile, job *Job) engine.Outcome {
	return matchConfig.Evaluate(extractSignals(profile, job))
}

// identifyGaps lists the negative findings: hard-required skills the
// candidate lacks and the experience shortfall in years.
func identifyGaps(profile *Profile, job *Job) []string {
	var gaps []string

	var missing []string
	for _, required := range job.RequiredSkills {
		if !required.Required {
			continue
		}
		if findSkill(profile.Skills, required.Name) == nil {
			missing = append(missing, required.Name)
		}
	}
	if len(missing) > 0 {
		gaps = append(gaps, "Missing skills: "+strings.Join(missing, ", "))
	}

	total := profile.TotalYears()
	if total < job.ExperienceYears.Min {
		shortfall := strconv.FormatFloat(job.ExperienceYears.Min-total, 'f', -1, 64)
		gaps = append(gaps, fmt.Sprintf("Need %s more years of experience", shortfall))
	}

	return gaps
}

func insightPrompt(profile *Profile, job *Job, breakdown map[string]float64) string {
	skillNames := make([]string, 0, len(profile.Skills))
	for _, skill := range profile.Skills {
		skillNames = append(skillNames, skill.Name)
	}

	degrees := make([]string, 0, len(profile.Education))
	for _, edu := range profile.Education {
		degrees = append(degrees, edu.Degree)
	}

	requiredNames := make([]string, 0, len(job.RequiredSkills))
	for _, required := range job.RequiredSkills {
		requiredNames = append(requiredNames, required.Name)
	}

	var scores strings.Builder
	for _, name := range []string{SignalSkills, SignalExperience, SignalEducation, SignalLocation, SignalSalary} {
		fmt.Fprintf(&scores, "- %s: %.2f\n", name, breakdown[name])
	}

	return fmt.Sprintf(`Analyze this job match and provide 2-3 concise insights:

Candidate Profile:
- Skills: %s
- Experience: %d roles
- Education: %s

Job Requirements:
- Required Skills: %s
- Experience: %s+ years

Match Scores:
%s
Provide actionable insights about this match.`,
		strings.Join(skillNames, ", "),
		len(profile.Experience),
		strings.Join(degrees, ", "),
		strings.Join(requiredNames, ", "),
		strconv.FormatFloat(job.ExperienceYears.Min, 'f', -1, 64),
		scores.String(),
	)
}
