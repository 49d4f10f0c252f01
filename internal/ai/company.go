package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/proconnect/trust-engine/internal/logger"
)

// responsePreviewLimit bounds how much of a malformed model response ends up
// in error messages.
const responsePreviewLimit = 120

const companyPromptTemplate = `Is "%s" a legitimate company? Consider:
1. Is this a known company name?
2. Does it sound like a real company?
3. Are there any obvious red flags?

Respond with JSON: { "legitimate": true/false, "confidence": 0-1, "reason": "brief explanation" }`

// AssessCompany asks the generator whether a company name looks legitimate.
func AssessCompany(ctx context.Context, g Generator, name string) (*CompanyOpinion, error) {
	if g == nil {
		return nil, fmt.Errorf("generator is required")
	}

	raw, err := g.GenerateContent(ctx, fmt.Sprintf(companyPromptTemplate, name))
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return nil, fmt.Errorf("parse company opinion from %q: %w", logger.TruncateForLog(raw, responsePreviewLimit), err)
	}

	confidence := coerceFloat(data["confidence"])
	if math.IsNaN(confidence) {
		confidence = 0
	}

	return &CompanyOpinion{
		Legitimate: coerceBool(data["legitimate"]),
		Confidence: confidence,
		Reason:     coerceString(data["reason"]),
	}, nil
}

const contentPromptTemplate = `Analyze this job posting for authenticity:
Title: %s
Company: %s
Description: %s

Check for:
1. AI-generated or template content
2. Inconsistencies
3. Professionalism
4. Specific vs generic language

Respond with JSON: { "authentic": true/false, "issues": ["issue1", "issue2"], "score": 0-100 }`

const maxDescriptionRunes = 500

// AssessContent asks the generator whether posted content reads as
// authentic.
func AssessContent(ctx context.Context, g Generator, title, company, description string) (*ContentOpinion, error) {
	if g == nil {
		return nil, fmt.Errorf("generator is required")
	}

	runes := []rune(strings.TrimSpace(description))
	if len(runes) > maxDescriptionRunes {
		runes = runes[:maxDescriptionRunes]
	}

	prompt := fmt.Sprintf(contentPromptTemplate, title, company, string(runes))

	raw, err := g.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return nil, fmt.Errorf("parse content opinion from %q: %w", logger.TruncateForLog(raw, responsePreviewLimit), err)
	}

	score := coerceFloat(data["score"])
	if math.IsNaN(score) {
		score = 0
	}

	return &ContentOpinion{
		Authentic: coerceBool(data["authentic"]),
		Score:     score,
		Issues:    coerceStrings(data["issues"]),
	}, nil
}
