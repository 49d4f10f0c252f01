// Package ai defines the enrichment adapter contracts consumed by the
// scoring engines. Implementations are network-backed and fallible; the
// engines inject them as capabilities so scoring logic stays testable with
// deterministic fakes.
package ai

import "context"

// Generator produces free text for a prompt.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Embedder converts text into an embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// CompanyOpinion is the model's judgement about a company name.
type CompanyOpinion struct {
	Legitimate bool
	Confidence float64
	Reason     string
}

// ContentOpinion is the model's judgement about posted content.
type ContentOpinion struct {
	Authentic bool
	Score     float64
	Issues    []string
}
