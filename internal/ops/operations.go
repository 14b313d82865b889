package ops

import "time"

// Operation names one of the client's asynchronous backend calls
type Operation string

const (
	OpLogin            Operation = "login"
	OpResumeMatch      Operation = "resume_match"
	OpResumeUpload     Operation = "resume_upload"
	OpInterviewAudio   Operation = "interview_audio"
	OpInterviewSummary Operation = "interview_summary"
	OpInterviewText    Operation = "interview_text"
	OpChatSummary      Operation = "chat_summary"
	OpBiasAnalysis     Operation = "bias_analysis"
)

// String returns the operation name
func (o Operation) String() string {
	return string(o)
}

// Phase is one of the three states an operation passes through
type Phase string

const (
	PhasePending   Phase = "pending"
	PhaseFulfilled Phase = "fulfilled"
	PhaseRejected  Phase = "rejected"
)

// Outcome is the tagged lifecycle event emitted for every phase an
// operation enters. Err is set only for rejected outcomes; Elapsed is
// zero for pending ones.
type Outcome struct {
	Op      Operation
	Phase   Phase
	Err     string
	Elapsed time.Duration
}

// Fallback returns the fixed message stored when a failed operation
// carries no server-extracted message
func Fallback(op Operation) string {
	switch op {
	case OpLogin:
		return "login failed"
	case OpResumeMatch:
		return "failed to match resumes"
	case OpResumeUpload:
		return "failed to upload resumes"
	case OpInterviewAudio:
		return "failed to process interview audio"
	case OpInterviewSummary:
		return "failed to fetch interview summary"
	case OpInterviewText:
		return "failed to process interview transcript"
	case OpChatSummary:
		return "failed to summarize chat"
	case OpBiasAnalysis:
		return "failed to analyze bias"
	default:
		return "operation failed"
	}
}
