package jobverify

import (
	"fmt"
	"strings"
	"time"

	"github.com/proconnect/trust-engine/internal/engine"
)

const (
	SignalCompany = "company"
	SignalGhost   = "ghost_job"
	SignalPoster  = "poster"
	SignalContent = "content"
	SignalScam    = "scam_patterns"
	SignalSalary  = "salary"
)

var genericPhrases = []string{
	"rockstar", "ninja", "guru", "wizard",
	"competitive salary", "great benefits",
	"fast-paced environment", "wear many hats",
}

var scamPhrases = []string{
	"no experience necessary",
	"make money from home",
	"unlimited earning potential",
	"be your own boss",
	"work from anywhere",
	"passive income",
	"get rich",
	"mlm", "multi-level marketing",
	"upfront payment",
	"processing fee",
	"training fee",
}

var personalEmailDomains = map[string]bool{
	"gmail.com":   true,
	"yahoo.com":   true,
	"hotmail.com": true,
	"outlook.com": true,
}

// freeMailDomains are exempt from the poster email/company domain check;
// they carry no company affiliation either way.
var freeMailDomains = map[string]bool{
	"gmail.com":   true,
	"outlook.com": true,
}

// salaryBand is a market salary range for an experience band.
type salaryBand struct {
	min, max float64
}

var marketRates = map[string]salaryBand{
	"entry":  {min: 40000, max: 80000},
	"mid":    {min: 70000, max: 130000},
	"senior": {min: 120000, max: 250000},
}

func companySignal(exists bool) engine.Signal {
	signal := engine.Signal{Name: SignalCompany}
	if exists {
		signal.Score = 30
		signal.Reasons = []string{"Company verified"}
	} else {
		signal.Reasons = []string{"Company could not be verified"}
		signal.Warnings = []string{"Company verification failed - manual review required"}
	}
	return signal
}

// ghostIndicators collects ghost-job heuristics; two or more flag the
// posting.
func ghostIndicators(p *Posting, now time.Time) []string {
	var indicators []string

	if len(strings.TrimSpace(p.Requirements)) < 50 {
		indicators = append(indicators, "Vague or missing job requirements")
	}

	if p.ExperienceMin == 0 && p.SalaryMax > 200000 {
		indicators = append(indicators, "Unrealistic salary for entry-level position")
	}

	descLower := strings.ToLower(p.Description)
	generic := 0
	for _, phrase := range genericPhrases {
		if strings.Contains(descLower, phrase) {
			generic++
		}
	}
	if generic >= 3 {
		indicators = append(indicators, "Excessive use of generic phrases")
	}

	if p.ContactEmail == "" && p.CompanyURL == "" {
		indicators = append(indicators, "No contact information provided")
	}

	if p.ExpiresAt != nil {
		if p.ExpiresAt.Sub(now) > 90*24*time.Hour {
			indicators = append(indicators, "Unusually long posting duration")
		}
	}

	return indicators
}

func ghostSignal(p *Posting, now time.Time) engine.Signal {
	signal := engine.Signal{Name: SignalGhost}

	indicators := ghostIndicators(p, now)
	if len(indicators) >= 2 {
		signal.Score = -20
		signal.Warnings = indicators
	} else {
		signal.Score = 20
		signal.Reasons = []string{"No ghost job indicators found"}
	}

	return signal
}

// posterWarnings collects legitimacy findings about the posting account.
// Fewer than two findings counts as legitimate.
func posterWarnings(poster *Poster, companyName string) []string {
	var warnings []string

	if poster == nil {
		return []string{"Poster account not found"}
	}

	if !poster.EmailVerified {
		warnings = append(warnings, "Poster email not verified")
	}

	if poster.TrustScore < 0.5 {
		warnings = append(warnings, "Low poster trust score")
	}

	if strings.EqualFold(poster.Role, "job_seeker") {
		warnings = append(warnings, "Job posted by non-recruiter account")
	}

	if len(poster.PostedCompanies) > 5 {
		unique := make(map[string]bool)
		for _, company := range poster.PostedCompanies {
			unique[strings.ToLower(company)] = true
		}
		if len(unique) > 3 {
			warnings = append(warnings, "User posting for multiple unrelated companies")
		}
	}

	if poster.Email != "" && companyName != "" {
		if _, domain, ok := strings.Cut(poster.Email, "@"); ok {
			companyDomain := strings.ReplaceAll(strings.ToLower(companyName), " ", "")
			if !strings.Contains(domain, companyDomain) && !freeMailDomains[strings.ToLower(domain)] {
				warnings = append(warnings, "Email domain does not match company")
			}
		}
	}

	return warnings
}

func posterSignal(poster *Poster, companyName string) engine.Signal {
	signal := engine.Signal{Name: SignalPoster}

	warnings := posterWarnings(poster, companyName)
	if len(warnings) < 2 {
		signal.Score = 25
		signal.Reasons = []string{"Poster verified as legitimate recruiter"}
	} else {
		signal.Score = -10
		signal.Warnings = warnings
	}

	return signal
}

// scamSignal matches the description and contact details against known scam
// patterns.
func scamSignal(p *Posting) engine.Signal {
	signal := engine.Signal{Name: SignalScam}

	var indicators []string
	description := strings.ToLower(p.Description)

	for _, phrase := range scamPhrases {
		if strings.Contains(description, phrase) {
			indicators = append(indicators, fmt.Sprintf("Scam phrase detected: %q", phrase))
		}
	}

	if p.SalaryMin > 100000 && p.ExperienceMin == 0 {
		indicators = append(indicators, "Unrealistic salary for entry-level position")
	}

	if len(strings.TrimSpace(p.Company)) < 3 {
		indicators = append(indicators, "Missing or invalid company name")
	}

	if p.ContactEmail != "" {
		if _, domain, ok := strings.Cut(p.ContactEmail, "@"); ok {
			if personalEmailDomains[strings.ToLower(domain)] {
				indicators = append(indicators, "Personal email address used for business")
			}
		}
	}

	if len(indicators) > 0 {
		signal.Score = -30
		signal.Warnings = indicators
	} else {
		signal.Score = 10
		signal.Reasons = []string{"No scam indicators detected"}
	}

	return signal
}

// salarySignal sanity-checks the stated range structurally and against
// market rates for the posting's experience band. Only complete ranges are
// checked.
func salarySignal(p *Posting) engine.Signal {
	signal := engine.Signal{Name: SignalSalary}

	if p.SalaryMin == 0 || p.SalaryMax == 0 {
		return signal
	}

	var issues []string

	if p.SalaryMax < p.SalaryMin {
		issues = append(issues, "Maximum salary less than minimum")
	}
	if p.SalaryMax > p.SalaryMin*3 {
		issues = append(issues, "Salary range too wide")
	}

	band := "senior"
	switch {
	case p.ExperienceMin < 2:
		band = "entry"
	case p.ExperienceMin < 5:
		band = "mid"
	}
	market := marketRates[band]

	if p.SalaryMin < market.min*0.5 {
		issues = append(issues, "Salary significantly below market rate")
	}
	if p.SalaryMax > market.max*2 {
		issues = append(issues, "Salary significantly above market rate")
	}

	if len(issues) > 0 {
		signal.Score = -10
		signal.Warnings = issues
	}

	return signal
}
