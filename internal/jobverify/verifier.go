package jobverify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/proconnect/trust-engine/internal/ai"
	"github.com/proconnect/trust-engine/internal/engine"
)

// verifyConfig is the engine instance: additive points clamped to [0,100],
// verified at >=60 with fewer than 3 warnings.
var verifyConfig = engine.Config{
	Name:         "job-verification",
	Mode:         engine.AdditivePoints,
	Limit:        100,
	Threshold:    60,
	WarningLimit: 3,
}

// Verifier evaluates job postings. The company verifier and generator are
// injected capabilities; a nil generator degrades the content signal to
// neutral.
type Verifier struct {
	company   *CompanyVerifier
	generator ai.Generator
	logger    *zap.Logger
	now       func() time.Time
}

// NewVerifier creates a Verifier.
func NewVerifier(company *CompanyVerifier, generator ai.Generator, logger *zap.Logger) *Verifier {
	return &Verifier{
		company:   company,
		generator: generator,
		logger:    logger,
		now:       time.Now,
	}
}

// VerifyPosting scores one posting submitted by the given poster account.
func (v *Verifier) VerifyPosting(ctx context.Context, posting *Posting, poster *Poster) (*Result, error) {
	if posting == nil {
		return nil, fmt.Errorf("posting is required")
	}
	if err := posting.Validate(); err != nil {
		return nil, err
	}

	exists, companyData := false, (*CompanyData)(nil)
	if v.company != nil {
		exists, companyData = v.company.Verify(ctx, posting.Company, posting.CompanyURL)
	}

	signals := []engine.Signal{
		companySignal(exists),
		ghostSignal(posting, v.now()),
		posterSignal(poster, posting.Company),
		v.contentSignal(ctx, posting),
		scamSignal(posting),
		salarySignal(posting),
	}

	outcome := verifyConfig.Evaluate(signals)

	result := &Result{
		IsVerified: outcome.Met,
		Score:      outcome.Score,
		Reasons:    outcome.Reasons,
		Warnings:   outcome.Warnings,
		Company:    companyData,
		Breakdown:  outcome.Breakdown,
	}

	if v.logger != nil {
		v.logger.Info("job posting verification completed",
			zap.String("company", posting.Company),
			zap.String("title", posting.Title),
			zap.Bool("is_verified", result.IsVerified),
			zap.Float64("score", result.Score),
		)
	}

	return result, nil
}

// contentSignal asks the text model whether the posting reads as authentic.
// An adapter failure degrades this signal to neutral instead of failing the
// evaluation.
func (v *Verifier) contentSignal(ctx context.Context, p *Posting) engine.Signal {
	signal := engine.Signal{Name: SignalContent}

	if v.generator == nil {
		return signal
	}

	opinion, err := ai.AssessContent(ctx, v.generator, p.Title, p.Company, p.Description)
	if err != nil {
		if v.logger != nil {
			v.logger.Warn("content analysis failed",
				zap.String("title", p.Title),
				zap.Error(err),
			)
		}
		return signal
	}

	if opinion.Authentic && opinion.Score > 70 {
		signal.Score = 15
		signal.Reasons = []string{"Job content appears authentic"}
		return signal
	}

	signal.Score = -15
	if len(opinion.Issues) > 0 {
		signal.Warnings = opinion.Issues
	} else {
		signal.Warnings = []string{"Content appears inauthentic"}
	}

	return signal
}
