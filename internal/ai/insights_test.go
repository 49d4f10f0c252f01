package ai

import (
	"context"
	"errors"
	"testing"
)

func TestInsightsSplitsLines(t *testing.T) {
	gen := &stubGenerator{response: "First insight\n\n  Second insight  \n"}

	insights := Insights(context.Background(), gen, nil, "prompt")
	if len(insights) != 2 || insights[0] != "First insight" || insights[1] != "Second insight" {
		t.Fatalf("unexpected insights: %v", insights)
	}
}

func TestInsightsFallback(t *testing.T) {
	if got := Insights(context.Background(), nil, nil, "prompt"); len(got) != 1 || got[0] != FallbackInsight {
		t.Fatalf("expected fallback for nil generator, got %v", got)
	}

	failing := &stubGenerator{err: errors.New("timeout")}
	if got := Insights(context.Background(), failing, nil, "prompt"); len(got) != 1 || got[0] != FallbackInsight {
		t.Fatalf("expected fallback on error, got %v", got)
	}

	empty := &stubGenerator{response: "  \n \n"}
	if got := Insights(context.Background(), empty, nil, "prompt"); len(got) != 1 || got[0] != FallbackInsight {
		t.Fatalf("expected fallback on blank response, got %v", got)
	}
}
