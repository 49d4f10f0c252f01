// Package jobverify scores job postings for authenticity: company
// existence, ghost-job heuristics, poster legitimacy, content authenticity,
// scam patterns, and salary sanity.
package jobverify

import (
	"fmt"
	"strings"
	"time"
)

// Posting is a validated job posting record.
type Posting struct {
	Title            string     `json:"title"`
	Company          string     `json:"company"`
	CompanyURL       string     `json:"company_url,omitempty"`
	Location         string     `json:"location,omitempty"`
	Remote           bool       `json:"remote"`
	Hybrid           bool       `json:"hybrid,omitempty"`
	Description      string     `json:"description"`
	Requirements     string     `json:"requirements,omitempty"`
	Responsibilities string     `json:"responsibilities,omitempty"`
	Benefits         string     `json:"benefits,omitempty"`
	SalaryMin        float64    `json:"salary_min,omitempty"`
	SalaryMax        float64    `json:"salary_max,omitempty"`
	SalaryCurrency   string     `json:"salary_currency,omitempty"`
	ExperienceMin    float64    `json:"experience_min"`
	ExperienceMax    float64    `json:"experience_max,omitempty"`
	ContactEmail     string     `json:"contact_email,omitempty"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
}

// Validate rejects malformed postings before any scoring.
func (p *Posting) Validate() error {
	if len(strings.TrimSpace(p.Title)) < 3 {
		return fmt.Errorf("posting title must be at least 3 characters")
	}
	if len(strings.TrimSpace(p.Description)) < 100 {
		return fmt.Errorf("posting description must be at least 100 characters")
	}
	if p.SalaryMin < 0 || p.SalaryMax < 0 {
		return fmt.Errorf("salary bounds must not be negative")
	}
	if p.ExperienceMin < 0 {
		return fmt.Errorf("experience_min must not be negative")
	}
	return nil
}

// Poster is the account record of whoever submitted the posting, supplied
// by the caller (account storage is an external collaborator).
type Poster struct {
	AccountID       string   `json:"account_id"`
	Email           string   `json:"email"`
	EmailVerified   bool     `json:"email_verified"`
	TrustScore      float64  `json:"trust_score"`
	Role            string   `json:"role"`
	PostedCompanies []string `json:"posted_companies,omitempty"`
}

// CompanyData is the resolved company record when a verification path
// succeeded.
type CompanyData struct {
	Name     string `json:"name"`
	Website  string `json:"website,omitempty"`
	Industry string `json:"industry,omitempty"`
	Verified bool   `json:"verified"`
}

// Result is the caller-facing bundle for one posting evaluation.
type Result struct {
	IsVerified bool               `json:"is_verified"`
	Score      float64            `json:"score"`
	Reasons    []string           `json:"reasons,omitempty"`
	Warnings   []string           `json:"warnings,omitempty"`
	Company    *CompanyData       `json:"company,omitempty"`
	Breakdown  map[string]float64 `json:"breakdown"`
}
