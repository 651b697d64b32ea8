// Package profile models the respondent context used to personalize
// recommendations. A profile parameterizes prompt construction only; it
// never alters scoring.
package profile

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// UsageFrequency describes how often the respondent already uses AI tools.
type UsageFrequency string

const (
	UsageNever   UsageFrequency = "never"
	UsageMonthly UsageFrequency = "monthly"
	UsageWeekly  UsageFrequency = "weekly"
	UsageDaily   UsageFrequency = "daily"
)

// Track is the career track encoded in a job level.
type Track string

const (
	TrackIC      Track = "ic"
	TrackManager Track = "manager"
)

// Tier buckets the seniority rung for tone calibration.
type Tier string

const (
	TierJunior Tier = "junior"
	TierMid    Tier = "mid"
	TierSenior Tier = "senior"
)

// Profile is the respondent's role context, immutable once the assessment
// starts.
type Profile struct {
	JobTitle         string         `json:"jobTitle" koanf:"job_title"`
	Team             string         `json:"team" koanf:"team"`
	SubDepartment    string         `json:"subDepartment,omitempty" koanf:"sub_department"`
	JobLevel         string         `json:"jobLevel" koanf:"job_level"`
	AIUsageFrequency UsageFrequency `json:"aiUsageFrequency" koanf:"ai_usage_frequency"`
	ToolsUsed        []string       `json:"toolsUsed" koanf:"tools_used"`
	PrimaryWorkFocus string         `json:"primaryWorkFocus" koanf:"primary_work_focus"`
}

// IsZero reports whether no field has been filled in yet.
func (p *Profile) IsZero() bool {
	return p.JobTitle == "" && p.Team == "" && p.SubDepartment == "" &&
		p.JobLevel == "" && p.AIUsageFrequency == "" &&
		len(p.ToolsUsed) == 0 && p.PrimaryWorkFocus == ""
}

// Validate reports the first missing or malformed required field. Input
// errors are surfaced synchronously before the assessment starts and block
// progression until corrected.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.JobTitle) == "" {
		return fmt.Errorf("job title is required")
	}
	if strings.TrimSpace(p.Team) == "" {
		return fmt.Errorf("team is required")
	}
	if _, err := ParseJobLevel(p.JobLevel); err != nil {
		return err
	}
	switch p.AIUsageFrequency {
	case UsageNever, UsageMonthly, UsageWeekly, UsageDaily:
	case "":
		return fmt.Errorf("AI usage frequency is required")
	default:
		return fmt.Errorf("unknown AI usage frequency %q", p.AIUsageFrequency)
	}
	return nil
}

// JobLevel is the decoded form of a coded rung like "P3" or "M4".
type JobLevel struct {
	Track Track
	Rung  int
}

// Tier buckets the rung: 1-2 junior, 3-4 mid, 5+ senior.
func (l JobLevel) Tier() Tier {
	switch {
	case l.Rung <= 2:
		return TierJunior
	case l.Rung <= 4:
		return TierMid
	default:
		return TierSenior
	}
}

// ParseJobLevel decodes a coded job level: a track letter (P for the
// individual-contributor ladder, M for the management ladder) followed by a
// numeric rung.
func ParseJobLevel(code string) (JobLevel, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return JobLevel{}, fmt.Errorf("job level is required")
	}
	if len(code) < 2 || !unicode.IsLetter(rune(code[0])) {
		return JobLevel{}, fmt.Errorf("malformed job level %q", code)
	}

	var track Track
	switch code[0] {
	case 'P':
		track = TrackIC
	case 'M':
		track = TrackManager
	default:
		return JobLevel{}, fmt.Errorf("unknown job level track %q", string(code[0]))
	}

	rung, err := strconv.Atoi(code[1:])
	if err != nil || rung < 1 {
		return JobLevel{}, fmt.Errorf("malformed job level %q", code)
	}
	return JobLevel{Track: track, Rung: rung}, nil
}
