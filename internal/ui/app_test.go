package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yildizm/TalentTrack/internal/api"
	"github.com/yildizm/TalentTrack/internal/common"
	"github.com/yildizm/TalentTrack/internal/config"
	"github.com/yildizm/TalentTrack/internal/ops"
	"github.com/yildizm/TalentTrack/internal/store"
)

// stubService satisfies the backend interface with inert responses
type stubService struct{}

func (stubService) Login(context.Context, api.LoginRequest) (string, common.User, error) {
	return "token", common.User{}, nil
}

func (stubService) MatchResumes(context.Context, api.MatchRequest) (common.ResumeAnalysis, error) {
	return common.ResumeAnalysis{}, nil
}

func (stubService) UploadResumes(context.Context, []api.Upload) (common.ResumeAnalysis, error) {
	return common.ResumeAnalysis{}, nil
}

func (stubService) SubmitInterviewAudio(context.Context, api.AudioUpload) (string, error) {
	return "", nil
}

func (stubService) GetInterviewSummary(context.Context, string) (common.InterviewAnalysis, error) {
	return common.InterviewAnalysis{}, nil
}

func (stubService) ProcessInterviewText(context.Context, api.InterviewTextRequest) (common.InterviewAnalysis, error) {
	return common.InterviewAnalysis{}, nil
}

func (stubService) SummarizeChat(context.Context, api.ChatSummaryRequest) (common.ChatSummary, error) {
	return common.ChatSummary{}, nil
}

func (stubService) AnalyzeBias(context.Context, api.BiasRequest) (common.BiasDetection, error) {
	return common.BiasDetection{}, nil
}

func (stubService) SetToken(string) {}

func newTestModel(t *testing.T) (*Model, *store.Store) {
	t.Helper()
	st := store.New()
	dispatcher := ops.New(stubService{}, st)
	return NewModel(dispatcher, st, config.DefaultConfig()), st
}

func TestRenderLoginViewShowsSessionError(t *testing.T) {
	m, st := newTestModel(t)

	st.SetSessionError("invalid credentials")

	out := m.renderLoginView()
	if !strings.Contains(out, "invalid credentials") {
		t.Errorf("login view does not show the session error:\n%s", out)
	}
}

func TestRenderLoginViewWithoutError(t *testing.T) {
	m, _ := newTestModel(t)

	out := m.renderLoginView()
	if !strings.Contains(out, "Email") || !strings.Contains(out, "Password") {
		t.Errorf("login view missing credential fields:\n%s", out)
	}
}

func TestDispatchCandidateReportsUnreadableResume(t *testing.T) {
	m, st := newTestModel(t)

	path := filepath.Join(t.TempDir(), "resume.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4\nminimal"), 0o600); err != nil {
		t.Fatal(err)
	}

	m.candidateForm.Open()
	if err := m.candidateForm.AttachResume(path); err != nil {
		t.Fatalf("attach failed: %v", err)
	}

	// Attachment was valid, but the file vanishes before dispatch
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	cmd := m.dispatchCandidate(common.Candidate{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Position: "Backend Engineer",
	})

	if cmd != nil {
		t.Error("expected no dispatch for an unreadable resume")
	}
	if st.ResumeStatus().Err == "" {
		t.Error("unreadable resume left no error in the store")
	}
	if m.statusLine == "" {
		t.Error("unreadable resume left the status line empty")
	}
}
