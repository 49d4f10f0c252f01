package ai

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// FallbackInsight is returned when the insight generation call fails. The
// failure degrades to this placeholder instead of failing the evaluation.
const FallbackInsight = "Match analysis in progress"

// Insights asks the generator for free-text insights and splits the
// response into lines. It never returns an error: any failure is logged and
// replaced with a single fallback string.
func Insights(ctx context.Context, g Generator, logger *zap.Logger, prompt string) []string {
	if g == nil {
		return []string{FallbackInsight}
	}

	raw, err := g.GenerateContent(ctx, prompt)
	if err != nil {
		if logger != nil {
			logger.Warn("insight generation failed", zap.Error(err))
		}
		return []string{FallbackInsight}
	}

	var insights []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		insights = append(insights, line)
	}

	if len(insights) == 0 {
		return []string{FallbackInsight}
	}
	return insights
}
