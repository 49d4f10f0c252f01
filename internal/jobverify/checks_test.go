package jobverify

import (
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func legitimatePosting() *Posting {
	return &Posting{
		Title:   "Senior Backend Engineer",
		Company: "Acme Robotics",
		Description: "We are looking for a senior backend engineer to own our order " +
			"processing pipeline, written in Go and deployed on Kubernetes. You will " +
			"design APIs, review code, and mentor two mid-level engineers.",
		Requirements:  "5+ years building distributed systems, production Go experience, PostgreSQL",
		SalaryMin:     130000,
		SalaryMax:     180000,
		ExperienceMin: 5,
		ContactEmail:  "jobs@acmerobotics.com",
	}
}

func legitimatePoster() *Poster {
	return &Poster{
		AccountID:     "acct-1",
		Email:         "recruiting@acmerobotics.com",
		EmailVerified: true,
		TrustScore:    0.9,
		Role:          "recruiter",
	}
}

func TestCompanySignal(t *testing.T) {
	verified := companySignal(true)
	if verified.Score != 30 || len(verified.Warnings) != 0 {
		t.Fatalf("expected verified company to score 30 with no warnings, got %v", verified)
	}

	failed := companySignal(false)
	if failed.Score != 0 || len(failed.Warnings) != 1 {
		t.Fatalf("expected failed verification to warn, got %v", failed)
	}
	if len(failed.Reasons) != 1 || failed.Reasons[0] != "Company could not be verified" {
		t.Fatalf("expected the failure reason recorded, got %v", failed.Reasons)
	}
}

func TestGhostIndicators(t *testing.T) {
	ghost := &Posting{
		Title:   "Rockstar Ninja Developer",
		Company: "Mystery Corp",
		Description: "We need a rockstar ninja guru for our fast-paced environment. " +
			"Competitive salary and the chance to wear many hats await the right candidate " +
			"who thrives on ambiguity and excitement.",
		Requirements: "Be great",
	}

	indicators := ghostIndicators(ghost, testNow)
	if len(indicators) != 3 {
		t.Fatalf("expected 3 indicators, got %v", indicators)
	}
}

func TestGhostIndicatorsLongDuration(t *testing.T) {
	p := legitimatePosting()
	expires := testNow.Add(120 * 24 * time.Hour)
	p.ExpiresAt = &expires

	indicators := ghostIndicators(p, testNow)
	if len(indicators) != 1 || !strings.Contains(indicators[0], "duration") {
		t.Fatalf("expected the long-duration indicator, got %v", indicators)
	}
}

func TestGhostSignal(t *testing.T) {
	clean := ghostSignal(legitimatePosting(), testNow)
	if clean.Score != 20 {
		t.Fatalf("expected clean posting bonus 20, got %v (%v)", clean.Score, clean.Warnings)
	}

	ghost := &Posting{
		Title:       "Opportunity",
		Company:     "Mystery Corp",
		Description: strings.Repeat("An exciting opportunity awaits the right candidate. ", 3),
	}
	signal := ghostSignal(ghost, testNow)
	// vague requirements plus no contact information
	if signal.Score != -20 || len(signal.Warnings) != 2 {
		t.Fatalf("expected ghost penalty with 2 warnings, got %v (%v)", signal.Score, signal.Warnings)
	}
}

func TestPosterWarnings(t *testing.T) {
	if warnings := posterWarnings(nil, "Acme"); len(warnings) != 1 {
		t.Fatalf("expected single not-found warning, got %v", warnings)
	}

	if warnings := posterWarnings(legitimatePoster(), "Acme Robotics"); len(warnings) != 0 {
		t.Fatalf("expected no warnings for a legitimate recruiter, got %v", warnings)
	}

	bad := &Poster{
		Email:      "somebody@yahoo.com",
		TrustScore: 0.2,
		Role:       "job_seeker",
	}
	warnings := posterWarnings(bad, "Acme Robotics")
	// unverified email, low trust, wrong role, mismatched domain
	if len(warnings) != 4 {
		t.Fatalf("expected 4 warnings, got %v", warnings)
	}
}

func TestPosterWarningsFreeMailExempt(t *testing.T) {
	poster := legitimatePoster()
	poster.Email = "recruiter@gmail.com"

	if warnings := posterWarnings(poster, "Acme Robotics"); len(warnings) != 0 {
		t.Fatalf("expected free-mail domain to be exempt, got %v", warnings)
	}
}

func TestPosterWarningsMultipleCompanies(t *testing.T) {
	poster := legitimatePoster()
	poster.Email = ""
	poster.PostedCompanies = []string{"Acme", "Globex", "Initech", "Umbrella", "Hooli", "Vandelay"}

	warnings := posterWarnings(poster, "Acme Robotics")
	if len(warnings) != 1 || !strings.Contains(warnings[0], "multiple unrelated companies") {
		t.Fatalf("expected the multiple-companies warning, got %v", warnings)
	}
}

func TestPosterSignal(t *testing.T) {
	if signal := posterSignal(legitimatePoster(), "Acme Robotics"); signal.Score != 25 {
		t.Fatalf("expected legitimate poster bonus 25, got %v", signal.Score)
	}

	bad := &Poster{TrustScore: 0.2, Role: "job_seeker"}
	if signal := posterSignal(bad, "Acme Robotics"); signal.Score != -10 {
		t.Fatalf("expected bad poster penalty -10, got %v", signal.Score)
	}
}

func TestScamSignal(t *testing.T) {
	if signal := scamSignal(legitimatePosting()); signal.Score != 10 {
		t.Fatalf("expected clean posting bonus 10, got %v (%v)", signal.Score, signal.Warnings)
	}

	scam := &Posting{
		Title:   "Work From Home",
		Company: "X",
		Description: "Make money from home with unlimited earning potential! " +
			"No experience necessary, just a small processing fee to get started.",
		SalaryMin:    150000,
		ContactEmail: "getrichquick@gmail.com",
	}

	signal := scamSignal(scam)
	if signal.Score != -30 {
		t.Fatalf("expected scam penalty -30, got %v", signal.Score)
	}
	// 4 phrases, entry-level salary, short company name, personal email
	if len(signal.Warnings) != 7 {
		t.Fatalf("expected 7 indicators, got %v", signal.Warnings)
	}
}

func TestSalarySignal(t *testing.T) {
	tests := []struct {
		name    string
		posting Posting
		want    float64
	}{
		{"incomplete range skipped", Posting{SalaryMin: 90000}, 0},
		{"sane senior range", Posting{SalaryMin: 130000, SalaryMax: 180000, ExperienceMin: 6}, 0},
		{"inverted range", Posting{SalaryMin: 90000, SalaryMax: 80000, ExperienceMin: 6}, -10},
		{"too wide", Posting{SalaryMin: 40000, SalaryMax: 130000, ExperienceMin: 2}, -10},
		{"below market entry", Posting{SalaryMin: 15000, SalaryMax: 30000, ExperienceMin: 0}, -10},
		{"above market entry", Posting{SalaryMin: 90000, SalaryMax: 200000, ExperienceMin: 1}, -10},
	}

	for _, tt := range tests {
		if signal := salarySignal(&tt.posting); signal.Score != tt.want {
			t.Fatalf("%s: expected %v, got %v (%v)", tt.name, tt.want, signal.Score, signal.Warnings)
		}
	}
}
