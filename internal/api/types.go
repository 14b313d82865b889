package api

import (
	"io"

	"github.com/yildizm/TalentTrack/internal/common"
)

// LoginRequest carries recruiter credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MatchRequest asks the backend to rank resumes against a job
type MatchRequest struct {
	JobID          string   `json:"job_id,omitempty"`
	JobTitle       string   `json:"job_title,omitempty"`
	JobDescription string   `json:"job_description"`
	RequiredSkills []string `json:"required_skills,omitempty"`
	CandidateIDs   []string `json:"candidate_ids,omitempty"`
}

// InterviewTextRequest submits an interview transcript for analysis
type InterviewTextRequest struct {
	InterviewID string `json:"interview_id,omitempty"`
	CandidateID string `json:"candidate_id,omitempty"`
	JobID       string `json:"job_id,omitempty"`
	Transcript  string `json:"transcript"`
}

// ChatSummaryRequest submits a conversation for summarization
type ChatSummaryRequest struct {
	CandidateID string               `json:"candidate_id,omitempty"`
	Messages    []common.ChatMessage `json:"messages"`
}

// BiasRequest submits a job text for bias analysis
type BiasRequest struct {
	JobID string `json:"job_id,omitempty"`
	Text  string `json:"text"`
}

// Upload is one file attached to a multipart request
type Upload struct {
	Name    string
	Content io.Reader
}

// AudioUpload carries an interview recording and its ownership refs
type AudioUpload struct {
	File        Upload
	CandidateID string
	JobID       string
}

// Response envelopes. Each operation's success value lives in a single
// named field of the response body.

type loginResponse struct {
	Token string      `json:"token"`
	User  common.User `json:"user"`
}

type matchResponse struct {
	Matches []common.ResumeAnalysis `json:"matches"`
}

type uploadResponse struct {
	Report common.ResumeAnalysis `json:"report"`
}

type audioSubmitResponse struct {
	InterviewID string `json:"interview_id"`
}

type interviewSummaryResponse struct {
	Summary common.InterviewAnalysis `json:"summary"`
}

type chatSummaryResponse struct {
	Summary common.ChatSummary `json:"summary"`
}

type biasResponse struct {
	Report common.BiasDetection `json:"report"`
}

// ErrorResponse is the backend's failure envelope
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail optionally carries a human-readable message
type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
