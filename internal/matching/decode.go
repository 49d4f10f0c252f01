package matching

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// DecodeProfile shapes a loosely typed record into a Profile. Malformed or
// out-of-range records are rejected here, before any scoring happens.
func DecodeProfile(raw map[string]any) (*Profile, error) {
	var profile Profile
	if err := mapstructure.Decode(raw, &profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	if strings.TrimSpace(profile.UserID) == "" {
		return nil, fmt.Errorf("profile user_id is required")
	}

	for _, skill := range profile.Skills {
		if strings.TrimSpace(skill.Name) == "" {
			return nil, fmt.Errorf("profile skill name is required")
		}
		if skill.Level < 1 || skill.Level > 5 {
			return nil, fmt.Errorf("profile skill %q level %d is out of range [1,5]", skill.Name, skill.Level)
		}
	}

	for _, exp := range profile.Experience {
		if exp.Duration < 0 {
			return nil, fmt.Errorf("experience duration must not be negative")
		}
	}

	return &profile, nil
}

// DecodeJob shapes a loosely typed record into a Job.
func DecodeJob(raw map[string]any) (*Job, error) {
	var job Job
	if err := mapstructure.Decode(raw, &job); err != nil {
		return nil, fmt.Errorf("decode job: %w", err)
	}

	if strings.TrimSpace(job.Title) == "" {
		return nil, fmt.Errorf("job title is required")
	}

	for _, skill := range job.RequiredSkills {
		if strings.TrimSpace(skill.Name) == "" {
			return nil, fmt.Errorf("required skill name is required")
		}
		if skill.Level < 0 || skill.Level > 5 {
			return nil, fmt.Errorf("required skill %q level %d is out of range [0,5]", skill.Name, skill.Level)
		}
	}

	if job.ExperienceYears.Min < 0 {
		return nil, fmt.Errorf("experience_years.min must not be negative")
	}
	if job.ExperienceYears.Max > 0 && job.ExperienceYears.Max < job.ExperienceYears.Min {
		return nil, fmt.Errorf("experience_years.max must not be below min")
	}

	if job.Salary != nil {
		if job.Salary.Min < 0 || job.Salary.Max < 0 {
			return nil, fmt.Errorf("salary bounds must not be negative")
		}
	}

	return &job, nil
}
