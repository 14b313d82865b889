package store

import (
	"sync"

	"github.com/yildizm/TalentTrack/internal/common"
)

// SessionState is the authenticated-recruiter slice of client state
type SessionState struct {
	Authenticated bool        `json:"authenticated"`
	User          common.User `json:"user,omitempty"`
	Token         string      `json:"-"`
	Loading       bool        `json:"loading"`
	Err           string      `json:"error,omitempty"`
}

// Status is the loading/error pair a result collection carries
type Status struct {
	Loading bool
	Err     string
}

// Store holds the session and the four analysis result collections.
// Collections are append-only and updated independently; every
// transition is one of set-loading, clear-and-store-error, or
// append-result-and-set-current. Reads return copies.
type Store struct {
	mu sync.RWMutex

	session SessionState

	resumes       []common.ResumeAnalysis
	currentResume int
	resumeStatus  Status

	interviews       []common.InterviewAnalysis
	currentInterview int
	interviewStatus  Status

	chats       []common.ChatSummary
	currentChat int
	chatStatus  Status

	biases      []common.BiasDetection
	currentBias int
	biasStatus  Status
}

// New creates an empty store with no current records
func New() *Store {
	return &Store{
		currentResume:    -1,
		currentInterview: -1,
		currentChat:      -1,
		currentBias:      -1,
	}
}

// Session transitions

func (s *Store) SetSessionLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Loading = true
	s.session.Err = ""
}

func (s *Store) SetSessionError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Loading = false
	s.session.Err = msg
}

// SetSession stores a successful authentication
func (s *Store) SetSession(user common.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Authenticated = true
	s.session.User = user
	s.session.Token = token
	s.session.Loading = false
}

// Logout clears the session back to the signed-out zero state
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = SessionState{}
}

// DismissError clears the session's stored error
func (s *Store) DismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Err = ""
}

// Session returns a copy of the session state
func (s *Store) Session() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Resume analyses

func (s *Store) SetResumeLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumeStatus = Status{Loading: true}
}

func (s *Store) SetResumeError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumeStatus = Status{Err: msg}
}

// AppendResumeAnalysis appends rec and makes it the current record
func (s *Store) AppendResumeAnalysis(rec common.ResumeAnalysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumes = append(s.resumes, rec)
	s.currentResume = len(s.resumes) - 1
	s.resumeStatus.Loading = false
}

// ResumeAnalyses returns a copy of the resume collection
func (s *Store) ResumeAnalyses() []common.ResumeAnalysis {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]common.ResumeAnalysis, len(s.resumes))
	copy(out, s.resumes)
	return out
}

// CurrentResumeAnalysis returns the most recently produced resume record
func (s *Store) CurrentResumeAnalysis() (common.ResumeAnalysis, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentResume < 0 || s.currentResume >= len(s.resumes) {
		return common.ResumeAnalysis{}, false
	}
	return s.resumes[s.currentResume], true
}

func (s *Store) ResumeStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resumeStatus
}

// Interview analyses

func (s *Store) SetInterviewLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interviewStatus = Status{Loading: true}
}

func (s *Store) SetInterviewError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interviewStatus = Status{Err: msg}
}

// AppendInterviewAnalysis appends rec and makes it the current record
func (s *Store) AppendInterviewAnalysis(rec common.InterviewAnalysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interviews = append(s.interviews, rec)
	s.currentInterview = len(s.interviews) - 1
	s.interviewStatus.Loading = false
}

// InterviewAnalyses returns a copy of the interview collection
func (s *Store) InterviewAnalyses() []common.InterviewAnalysis {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]common.InterviewAnalysis, len(s.interviews))
	copy(out, s.interviews)
	return out
}

// CurrentInterviewAnalysis returns the most recently produced interview record
func (s *Store) CurrentInterviewAnalysis() (common.InterviewAnalysis, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentInterview < 0 || s.currentInterview >= len(s.interviews) {
		return common.InterviewAnalysis{}, false
	}
	return s.interviews[s.currentInterview], true
}

func (s *Store) InterviewStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.interviewStatus
}

// Chat summaries

func (s *Store) SetChatLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatStatus = Status{Loading: true}
}

func (s *Store) SetChatError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatStatus = Status{Err: msg}
}

// AppendChatSummary appends rec and makes it the current record
func (s *Store) AppendChatSummary(rec common.ChatSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats = append(s.chats, rec)
	s.currentChat = len(s.chats) - 1
	s.chatStatus.Loading = false
}

// ChatSummaries returns a copy of the chat summary collection
func (s *Store) ChatSummaries() []common.ChatSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]common.ChatSummary, len(s.chats))
	copy(out, s.chats)
	return out
}

// CurrentChatSummary returns the most recently produced chat summary
func (s *Store) CurrentChatSummary() (common.ChatSummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentChat < 0 || s.currentChat >= len(s.chats) {
		return common.ChatSummary{}, false
	}
	return s.chats[s.currentChat], true
}

func (s *Store) ChatStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chatStatus
}

// Bias detections

func (s *Store) SetBiasLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.biasStatus = Status{Loading: true}
}

func (s *Store) SetBiasError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.biasStatus = Status{Err: msg}
}

// AppendBiasDetection appends rec and makes it the current record
func (s *Store) AppendBiasDetection(rec common.BiasDetection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.biases = append(s.biases, rec)
	s.currentBias = len(s.biases) - 1
	s.biasStatus.Loading = false
}

// BiasDetections returns a copy of the bias detection collection
func (s *Store) BiasDetections() []common.BiasDetection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]common.BiasDetection, len(s.biases))
	copy(out, s.biases)
	return out
}

// CurrentBiasDetection returns the most recently produced bias report
func (s *Store) CurrentBiasDetection() (common.BiasDetection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentBias < 0 || s.currentBias >= len(s.biases) {
		return common.BiasDetection{}, false
	}
	return s.biases[s.currentBias], true
}

func (s *Store) BiasStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.biasStatus
}

// Counts returns the record count per category
func (s *Store) Counts() map[common.Category]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[common.Category]int{
		common.CategoryResume:    len(s.resumes),
		common.CategoryInterview: len(s.interviews),
		common.CategoryChat:      len(s.chats),
		common.CategoryBias:      len(s.biases),
	}
}

// AnyLoading reports whether any operation is in flight
func (s *Store) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Loading ||
		s.resumeStatus.Loading ||
		s.interviewStatus.Loading ||
		s.chatStatus.Loading ||
		s.biasStatus.Loading
}
