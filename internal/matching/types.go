// Package matching scores candidate profiles against job requirements using
// a fixed-weight composite over five signal categories.
package matching

// Skill is one candidate skill with a self- or platform-assessed level.
type Skill struct {
	Name     string `json:"name" mapstructure:"name"`
	Level    int    `json:"level" mapstructure:"level"`
	Verified bool   `json:"verified" mapstructure:"verified"`
}

// Experience is one prior role. Duration is in years.
type Experience struct {
	Title       string  `json:"title" mapstructure:"title"`
	Company     string  `json:"company" mapstructure:"company"`
	Duration    float64 `json:"duration" mapstructure:"duration"`
	Description string  `json:"description,omitempty" mapstructure:"description"`
}

// Education is one completed degree.
type Education struct {
	Degree string `json:"degree" mapstructure:"degree"`
	Field  string `json:"field" mapstructure:"field"`
	School string `json:"school" mapstructure:"school"`
}

// Preferences captures what the candidate is looking for.
type Preferences struct {
	JobTypes   []string `json:"job_types" mapstructure:"job_types"`
	Locations  []string `json:"locations" mapstructure:"locations"`
	Remote     bool     `json:"remote" mapstructure:"remote"`
	SalaryMin  float64  `json:"salary_min,omitempty" mapstructure:"salary_min"`
	Industries []string `json:"industries" mapstructure:"industries"`
}

// Profile is a validated candidate record.
type Profile struct {
	UserID      string       `json:"user_id" mapstructure:"user_id"`
	Skills      []Skill      `json:"skills" mapstructure:"skills"`
	Experience  []Experience `json:"experience" mapstructure:"experience"`
	Education   []Education  `json:"education" mapstructure:"education"`
	Preferences Preferences  `json:"preferences" mapstructure:"preferences"`
}

// TotalYears sums the duration of all recorded roles.
func (p *Profile) TotalYears() float64 {
	var total float64
	for _, exp := range p.Experience {
		total += exp.Duration
	}
	return total
}

// RequiredSkill is one skill the job asks for. Level 0 means unspecified.
type RequiredSkill struct {
	Name     string `json:"name" mapstructure:"name"`
	Level    int    `json:"level,omitempty" mapstructure:"level"`
	Required bool   `json:"required" mapstructure:"required"`
}

// ExperienceYears bounds the asked-for experience. Max 0 means unbounded.
type ExperienceYears struct {
	Min float64 `json:"min" mapstructure:"min"`
	Max float64 `json:"max,omitempty" mapstructure:"max"`
}

// EducationRequirement names the minimum degree level, if any.
type EducationRequirement struct {
	Level  string   `json:"level,omitempty" mapstructure:"level"`
	Fields []string `json:"fields,omitempty" mapstructure:"fields"`
}

// SalaryRange is the offered salary band.
type SalaryRange struct {
	Min      float64 `json:"min,omitempty" mapstructure:"min"`
	Max      float64 `json:"max,omitempty" mapstructure:"max"`
	Currency string  `json:"currency" mapstructure:"currency"`
}

// Job is a validated job requirements record.
type Job struct {
	Title           string               `json:"title" mapstructure:"title"`
	RequiredSkills  []RequiredSkill      `json:"required_skills" mapstructure:"required_skills"`
	ExperienceYears ExperienceYears      `json:"experience_years" mapstructure:"experience_years"`
	Education       EducationRequirement `json:"education" mapstructure:"education"`
	Location        string               `json:"location,omitempty" mapstructure:"location"`
	Remote          bool                 `json:"remote" mapstructure:"remote"`
	Salary          *SalaryRange         `json:"salary,omitempty" mapstructure:"salary"`
}

// MatchResult is the caller-facing bundle for one profile/job evaluation.
type MatchResult struct {
	Overall   float64            `json:"overall"`
	Matched   bool               `json:"matched"`
	Breakdown map[string]float64 `json:"breakdown"`
	Insights  []string           `json:"insights,omitempty"`
	Strengths []string           `json:"strengths,omitempty"`
	Gaps      []string           `json:"gaps,omitempty"`
}

// Match is one ranked entry returned by the finder.
type Match struct {
	JobID     string   `json:"job_id"`
	Score     float64  `json:"score"`
	Reasons   []string `json:"reasons,omitempty"`
	Strengths []string `json:"strengths,omitempty"`
	Gaps      []string `json:"gaps,omitempty"`
}
