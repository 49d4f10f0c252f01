package matching

import (
	"math"
	"strings"

	"github.com/proconnect/trust-engine/internal/engine"
)

// Fixed category weights. They sum to 1.0 so the composite stays in [0,1].
const (
	weightSkills     = 0.35
	weightExperience = 0.25
	weightEducation  = 0.15
	weightLocation   = 0.15
	weightSalary     = 0.10
)

const (
	SignalSkills     = "skills"
	SignalExperience = "experience"
	SignalEducation  = "education"
	SignalLocation   = "location"
	SignalSalary     = "salary"
)

// educationLevels orders degrees for the ordinal comparison. Unknown degree
// names rank at 0.
var educationLevels = map[string]int{
	"high_school": 1,
	"associate":   2,
	"bachelor":    3,
	"master":      4,
	"phd":         5,
}

const verifiedSkillBonus = 1.2

// skillsSignal scores coverage of the job's required skills. Hard
// requirements weigh twice as much as optional ones, matched skills scale by
// level ratio with a bonus for verified skills, and unmatched optional
// skills still earn partial credit. An empty requirement list is vacuously
// satisfied.
func skillsSignal(profile *Profile, job *Job) engine.Signal {
	signal := engine.Signal{Name: SignalSkills, Weight: weightSkills}

	if len(job.RequiredSkills) == 0 {
		signal.Score = 1
		return signal
	}

	var matchScore, totalWeight float64
	for _, required := range job.RequiredSkills {
		weight := 1.0
		if required.Required {
			weight = 2.0
		}
		totalWeight += weight

		candidate := findSkill(profile.Skills, required.Name)
		if candidate == nil {
			if !required.Required {
				matchScore += weight * 0.3
			}
			continue
		}

		levelMatch := 1.0
		if required.Level > 0 {
			levelMatch = math.Min(float64(candidate.Level)/float64(required.Level), 1)
		}
		bonus := 1.0
		if candidate.Verified {
			bonus = verifiedSkillBonus
		}
		matchScore += weight * levelMatch * bonus
	}

	signal.Score = math.Min(matchScore/totalWeight, 1)
	return signal
}

func findSkill(skills []Skill, name string) *Skill {
	for i := range skills {
		if strings.EqualFold(skills[i].Name, name) {
			return &skills[i]
		}
	}
	return nil
}

// experienceSignal scores total years against the asked-for band. Falling
// short scales down with a 0.8 ceiling; exceeding 1.5x the stated maximum
// takes an overqualification penalty.
func experienceSignal(profile *Profile, job *Job) engine.Signal {
	signal := engine.Signal{Name: SignalExperience, Weight: weightExperience}

	total := profile.TotalYears()
	req := job.ExperienceYears

	switch {
	case req.Min > 0 && total < req.Min:
		signal.Score = math.Max(0, total/req.Min*0.8)
	case req.Max > 0 && total > req.Max*1.5:
		signal.Score = 0.7
	default:
		signal.Score = 1
	}

	return signal
}

// educationSignal compares the candidate's highest degree against the
// required level on the ordinal scale. An absent requirement scores full
// credit.
func educationSignal(profile *Profile, job *Job) engine.Signal {
	signal := engine.Signal{Name: SignalEducation, Weight: weightEducation}

	required := educationLevels[strings.ToLower(job.Education.Level)]
	if required == 0 {
		signal.Score = 1
		return signal
	}

	highest := 0
	for _, edu := range profile.Education {
		if level := educationLevels[strings.ToLower(edu.Degree)]; level > highest {
			highest = level
		}
	}

	if highest >= required {
		signal.Score = 1
	} else {
		signal.Score = float64(highest) / float64(required) * 0.8
	}

	return signal
}

// locationSignal scores location compatibility: remote-for-remote or a
// missing job location is full credit, a preferred location containing the
// job's location is full credit, anything else bottoms out at 0.3.
func locationSignal(profile *Profile, job *Job) engine.Signal {
	signal := engine.Signal{Name: SignalLocation, Weight: weightLocation}

	if job.Remote && profile.Preferences.Remote {
		signal.Score = 1
		return signal
	}
	if job.Location == "" {
		signal.Score = 1
		return signal
	}

	jobLocation := strings.ToLower(job.Location)
	for _, loc := range profile.Preferences.Locations {
		if strings.Contains(strings.ToLower(loc), jobLocation) {
			signal.Score = 1
			return signal
		}
	}

	signal.Score = 0.3
	return signal
}

// salarySignal scores the candidate's salary expectation against the
// offered band in three tiers. Absent expectation or band is full credit.
func salarySignal(profile *Profile, job *Job) engine.Signal {
	signal := engine.Signal{Name: SignalSalary, Weight: weightSalary}

	expectation := profile.Preferences.SalaryMin
	if job.Salary == nil || expectation == 0 {
		signal.Score = 1
		return signal
	}

	switch {
	case job.Salary.Max > 0 && expectation <= job.Salary.Max:
		signal.Score = 1
	case job.Salary.Min > 0 && expectation > job.Salary.Min*1.2:
		signal.Score = 0.5
	default:
		signal.Score = 0.8
	}

	return signal
}

// extractSignals runs all five category extractors.
func extractSignals(profile *Profile, job *Job) []engine.Signal {
	return []engine.Signal{
		skillsSignal(profile, job),
		experienceSignal(profile, job),
		educationSignal(profile, job),
		locationSignal(profile, job),
		salarySignal(profile, job),
	}
}
