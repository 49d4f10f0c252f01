package matching

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type stubEmbedder struct {
	vector []float64
	err    error
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	return s.vector, s.err
}

func strongJob() *Job {
	return &Job{
		Title:          "Backend Engineer",
		RequiredSkills: []RequiredSkill{{Name: "Go", Level: 3, Required: true}},
		Remote:         true,
	}
}

func weakJob() *Job {
	return &Job{
		Title:           "Quant Researcher",
		RequiredSkills:  []RequiredSkill{{Name: "C++", Level: 5, Required: true}},
		ExperienceYears: ExperienceYears{Min: 10},
		Education:       EducationRequirement{Level: "phd"},
		Location:        "Chicago",
	}
}

func finderProfile() *Profile {
	return &Profile{
		UserID:     "u-1",
		Skills:     []Skill{{Name: "Go", Level: 4}},
		Experience: []Experience{{Duration: 4}},
		Preferences: Preferences{
			Remote:    true,
			Locations: []string{"Amsterdam"},
		},
	}
}

func TestFindMatchesFiltersAndSorts(t *testing.T) {
	embedder := &stubEmbedder{vector: []float64{1, 0, 0}}
	finder := NewFinder(embedder, NewMatcher(nil, nil), nil)

	ctx := context.Background()
	mediocre := strongJob()
	mediocre.Remote = false
	mediocre.Location = "Berlin"

	if err := finder.IndexJob(ctx, "weak", weakJob()); err != nil {
		t.Fatalf("index weak: %v", err)
	}
	if err := finder.IndexJob(ctx, "mediocre", mediocre); err != nil {
		t.Fatalf("index mediocre: %v", err)
	}
	if err := finder.IndexJob(ctx, "strong", strongJob()); err != nil {
		t.Fatalf("index strong: %v", err)
	}
	if finder.Len() != 3 {
		t.Fatalf("expected 3 indexed jobs, got %d", finder.Len())
	}

	matches, err := finder.FindMatches(ctx, finderProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(matches) != 2 {
		t.Fatalf("expected the weak job filtered out, got %v", matches)
	}
	if matches[0].JobID != "strong" || matches[1].JobID != "mediocre" {
		t.Fatalf("expected descending score order, got %s then %s", matches[0].JobID, matches[1].JobID)
	}
	if matches[0].Score < matches[1].Score {
		t.Fatalf("scores out of order: %v then %v", matches[0].Score, matches[1].Score)
	}
}

func TestFindMatchesReasonsFromStrengths(t *testing.T) {
	finder := NewFinder(&stubEmbedder{vector: []float64{1}}, NewMatcher(nil, nil), nil)

	ctx := context.Background()
	if err := finder.IndexJob(ctx, "j-1", strongJob()); err != nil {
		t.Fatalf("index: %v", err)
	}

	matches, err := finder.FindMatches(ctx, finderProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}

	found := false
	for _, reason := range matches[0].Reasons {
		if reason == "Strong skills match" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a strength-derived reason, got %v", matches[0].Reasons)
	}
}

func TestFindMatchesCapsResults(t *testing.T) {
	finder := NewFinder(&stubEmbedder{vector: []float64{1}}, NewMatcher(nil, nil), nil)

	ctx := context.Background()
	for i := 0; i < matchesTake+5; i++ {
		if err := finder.IndexJob(ctx, fmt.Sprintf("j-%d", i), strongJob()); err != nil {
			t.Fatalf("index: %v", err)
		}
	}

	matches, err := finder.FindMatches(ctx, finderProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != matchesTake {
		t.Fatalf("expected cap at %d, got %d", matchesTake, len(matches))
	}
}

func TestFindMatchesEmbedFailurePropagates(t *testing.T) {
	finder := NewFinder(&stubEmbedder{err: errors.New("embedding service down")}, NewMatcher(nil, nil), nil)

	if _, err := finder.FindMatches(context.Background(), finderProfile()); err == nil {
		t.Fatalf("expected embedding failure to propagate")
	}
}

func TestCosineSimilarity(t *testing.T) {
	if sim := cosineSimilarity([]float64{1, 0}, []float64{1, 0}); sim != 1 {
		t.Fatalf("expected identical vectors to score 1, got %v", sim)
	}
	if sim := cosineSimilarity([]float64{1, 0}, []float64{0, 1}); sim != 0 {
		t.Fatalf("expected orthogonal vectors to score 0, got %v", sim)
	}
	if sim := cosineSimilarity([]float64{1, 0}, []float64{1}); sim != 0 {
		t.Fatalf("expected mismatched lengths to score 0, got %v", sim)
	}
	if sim := cosineSimilarity(nil, nil); sim != 0 {
		t.Fatalf("expected empty vectors to score 0, got %v", sim)
	}
}
