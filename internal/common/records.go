package common

import (
	"fmt"
	"time"
)

// Record is implemented by every analysis result the client stores
type Record interface {
	Kind() Category
	RecordID() string
	Headline() string
}

// ResumeAnalysis is a resume match or upload result
type ResumeAnalysis struct {
	ID            string    `json:"id"`
	RecruiterID   string    `json:"recruiter_id,omitempty"`
	CandidateID   string    `json:"candidate_id,omitempty"`
	JobID         string    `json:"job_id,omitempty"`
	CandidateName string    `json:"candidate_name,omitempty"`
	FileName      string    `json:"file_name,omitempty"`
	MatchScore    float64   `json:"match_score"`
	SkillsScore   float64   `json:"skills_score,omitempty"`
	ExpScore      float64   `json:"experience_score,omitempty"`
	Summary       string    `json:"summary,omitempty"`
	Strengths     []string  `json:"strengths,omitempty"`
	Gaps          []string  `json:"gaps,omitempty"`
	Suggestions   []string  `json:"suggestions,omitempty"`
	Model         string    `json:"model,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
}

func (r ResumeAnalysis) Kind() Category   { return CategoryResume }
func (r ResumeAnalysis) RecordID() string { return r.ID }

func (r ResumeAnalysis) Headline() string {
	name := r.CandidateName
	if name == "" {
		name = r.FileName
	}
	if name == "" {
		name = "resume"
	}
	return fmt.Sprintf("%s (match %.0f%%)", name, r.MatchScore)
}

// InterviewAnalysis is a processed interview result
type InterviewAnalysis struct {
	ID           string    `json:"id"`
	InterviewID  string    `json:"interview_id,omitempty"`
	RecruiterID  string    `json:"recruiter_id,omitempty"`
	CandidateID  string    `json:"candidate_id,omitempty"`
	JobID        string    `json:"job_id,omitempty"`
	OverallScore float64   `json:"overall_score"`
	TechScore    float64   `json:"technical_score,omitempty"`
	CommScore    float64   `json:"communication_score,omitempty"`
	Summary      string    `json:"summary,omitempty"`
	Strengths    []string  `json:"strengths,omitempty"`
	Concerns     []string  `json:"concerns,omitempty"`
	Suggestions  []string  `json:"suggestions,omitempty"`
	Model        string    `json:"model,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

func (r InterviewAnalysis) Kind() Category   { return CategoryInterview }
func (r InterviewAnalysis) RecordID() string { return r.ID }

func (r InterviewAnalysis) Headline() string {
	id := r.InterviewID
	if id == "" {
		id = r.ID
	}
	return fmt.Sprintf("interview %s (score %.0f%%)", id, r.OverallScore)
}

// ChatSummary is a summarized candidate conversation
type ChatSummary struct {
	ID           string    `json:"id"`
	RecruiterID  string    `json:"recruiter_id,omitempty"`
	CandidateID  string    `json:"candidate_id,omitempty"`
	Summary      string    `json:"summary"`
	KeyPoints    []string  `json:"key_points,omitempty"`
	ActionItems  []string  `json:"action_items,omitempty"`
	MessageCount int       `json:"message_count,omitempty"`
	Model        string    `json:"model,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

func (r ChatSummary) Kind() Category   { return CategoryChat }
func (r ChatSummary) RecordID() string { return r.ID }

func (r ChatSummary) Headline() string {
	if r.MessageCount > 0 {
		return fmt.Sprintf("chat summary (%d messages)", r.MessageCount)
	}
	return "chat summary"
}

// FlaggedTerm is a single biased phrase found in a text
type FlaggedTerm struct {
	Term       string `json:"term"`
	Category   string `json:"category,omitempty"`
	Severity   string `json:"severity,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// BiasDetection is a bias analysis report for a job text
type BiasDetection struct {
	ID           string        `json:"id"`
	RecruiterID  string        `json:"recruiter_id,omitempty"`
	JobID        string        `json:"job_id,omitempty"`
	Score        float64       `json:"score"`
	Report       string        `json:"report,omitempty"`
	FlaggedTerms []FlaggedTerm `json:"flagged_terms,omitempty"`
	Suggestions  []string      `json:"suggestions,omitempty"`
	Model        string        `json:"model,omitempty"`
	CreatedAt    time.Time     `json:"created_at,omitempty"`
}

func (r BiasDetection) Kind() Category   { return CategoryBias }
func (r BiasDetection) RecordID() string { return r.ID }

func (r BiasDetection) Headline() string {
	return fmt.Sprintf("bias report (%d flagged, score %.0f%%)", len(r.FlaggedTerms), r.Score)
}
