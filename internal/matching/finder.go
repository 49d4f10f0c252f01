package matching

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/proconnect/trust-engine/internal/ai"
)

const (
	// similarTake is how many embedding-similar jobs go through detailed
	// scoring.
	similarTake = 20
	// matchesTake is the final result cap after threshold filtering.
	matchesTake = 10
)

type indexedJob struct {
	id     string
	job    *Job
	vector []float64
}

// Finder ranks a set of indexed jobs for a candidate. The candidate's
// preference text is embedded once, the closest jobs by cosine similarity go
// through the detailed composite, and everything at or above the match
// threshold survives.
type Finder struct {
	embedder ai.Embedder
	matcher  *Matcher
	logger   *zap.Logger
	jobs     []indexedJob
}

// NewFinder creates an empty Finder.
func NewFinder(embedder ai.Embedder, matcher *Matcher, logger *zap.Logger) *Finder {
	return &Finder{embedder: embedder, matcher: matcher, logger: logger}
}

// IndexJob embeds the job's descriptive text and adds it to the index.
func (f *Finder) IndexJob(ctx context.Context, id string, job *Job) error {
	if f.embedder == nil {
		return fmt.Errorf("embedder is required")
	}
	if job == nil {
		return fmt.Errorf("job is required")
	}

	vector, err := f.embedder.Embed(ctx, jobText(job))
	if err != nil {
		return fmt.Errorf("embed job %s: %w", id, err)
	}

	f.jobs = append(f.jobs, indexedJob{id: id, job: job, vector: vector})
	return nil
}

// Len returns the number of indexed jobs.
func (f *Finder) Len() int { return len(f.jobs) }

// FindMatches returns the candidate's best matches, sorted descending by
// score and truncated to the top 10. An embedding failure here propagates:
// no match result can be computed without it.
func (f *Finder) FindMatches(ctx context.Context, profile *Profile) ([]Match, error) {
	if profile == nil {
		return nil, fmt.Errorf("profile is required")
	}
	if f.embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}

	vector, err := f.embedder.Embed(ctx, preferenceText(profile))
	if err != nil {
		return nil, fmt.Errorf("embed preferences: %w", err)
	}

	candidates := f.closest(vector, similarTake)

	matches := make([]Match, 0, len(candidates))
	for _, candidate := range candidates {
		outcome := f.matcher.score(profile, candidate.job)
		if !outcome.Met {
			continue
		}

		reasons := make([]string, 0, len(outcome.Strengths))
		for _, strength := range outcome.Strengths {
			reasons = append(reasons, fmt.Sprintf("Strong %s match", strength))
		}

		matches = append(matches, Match{
			JobID:     candidate.id,
			Score:     outcome.Score,
			Reasons:   reasons,
			Strengths: outcome.Strengths,
			Gaps:      identifyGaps(profile, candidate.job),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > matchesTake {
		matches = matches[:matchesTake]
	}

	if f.logger != nil {
		f.logger.Info("match search completed",
			zap.String("user_id", profile.UserID),
			zap.Int("indexed_jobs", len(f.jobs)),
			zap.Int("matches", len(matches)),
		)
	}

	return matches, nil
}

func (f *Finder) closest(vector []float64, take int) []indexedJob {
	type scored struct {
		job indexedJob
		sim float64
	}

	ranked := make([]scored, 0, len(f.jobs))
	for _, job := range f.jobs {
		ranked = append(ranked, scored{job: job, sim: cosineSimilarity(vector, job.vector)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].sim > ranked[j].sim
	})
	if len(ranked) > take {
		ranked = ranked[:take]
	}

	out := make([]indexedJob, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.job)
	}
	return out
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func preferenceText(profile *Profile) string {
	prefs := profile.Preferences
	return fmt.Sprintf("Looking for: %s\nLocation: %s\nIndustries: %s\nRemote: %t",
		strings.Join(prefs.JobTypes, ", "),
		strings.Join(prefs.Locations, ", "),
		strings.Join(prefs.Industries, ", "),
		prefs.Remote,
	)
}

func jobText(job *Job) string {
	skills := make([]string, 0, len(job.RequiredSkills))
	for _, required := range job.RequiredSkills {
		skills = append(skills, required.Name)
	}
	return fmt.Sprintf("Title: %s\nSkills: %s\nLocation: %s\nRemote: %t",
		job.Title,
		strings.Join(skills, ", "),
		job.Location,
		job.Remote,
	)
}
