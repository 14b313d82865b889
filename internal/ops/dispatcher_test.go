package ops

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/yildizm/TalentTrack/internal/api"
	"github.com/yildizm/TalentTrack/internal/common"
	"github.com/yildizm/TalentTrack/internal/history"
	"github.com/yildizm/TalentTrack/internal/monitor"
	"github.com/yildizm/TalentTrack/internal/store"
)

// fakeService scripts backend responses and records the calls made
type fakeService struct {
	mu    sync.Mutex
	calls []string
	token string

	loginFn       func(api.LoginRequest) (string, common.User, error)
	matchFn       func(api.MatchRequest) (common.ResumeAnalysis, error)
	uploadFn      func([]api.Upload) (common.ResumeAnalysis, error)
	submitAudioFn func(api.AudioUpload) (string, error)
	summaryFn     func(string) (common.InterviewAnalysis, error)
	textFn        func(api.InterviewTextRequest) (common.InterviewAnalysis, error)
	chatFn        func(api.ChatSummaryRequest) (common.ChatSummary, error)
	biasFn        func(api.BiasRequest) (common.BiasDetection, error)
}

func (f *fakeService) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeService) callList() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeService) Login(_ context.Context, req api.LoginRequest) (string, common.User, error) {
	f.record("login")
	if f.loginFn != nil {
		return f.loginFn(req)
	}
	return "token", common.User{}, nil
}

func (f *fakeService) MatchResumes(_ context.Context, req api.MatchRequest) (common.ResumeAnalysis, error) {
	f.record("match")
	if f.matchFn != nil {
		return f.matchFn(req)
	}
	return common.ResumeAnalysis{}, nil
}

func (f *fakeService) UploadResumes(_ context.Context, files []api.Upload) (common.ResumeAnalysis, error) {
	f.record("upload")
	if f.uploadFn != nil {
		return f.uploadFn(files)
	}
	return common.ResumeAnalysis{}, nil
}

func (f *fakeService) SubmitInterviewAudio(_ context.Context, req api.AudioUpload) (string, error) {
	f.record("submit-audio")
	if f.submitAudioFn != nil {
		return f.submitAudioFn(req)
	}
	return "iv-1", nil
}

func (f *fakeService) GetInterviewSummary(_ context.Context, interviewID string) (common.InterviewAnalysis, error) {
	f.record("get-summary")
	if f.summaryFn != nil {
		return f.summaryFn(interviewID)
	}
	return common.InterviewAnalysis{}, nil
}

func (f *fakeService) ProcessInterviewText(_ context.Context, req api.InterviewTextRequest) (common.InterviewAnalysis, error) {
	f.record("text")
	if f.textFn != nil {
		return f.textFn(req)
	}
	return common.InterviewAnalysis{}, nil
}

func (f *fakeService) SummarizeChat(_ context.Context, req api.ChatSummaryRequest) (common.ChatSummary, error) {
	f.record("chat")
	if f.chatFn != nil {
		return f.chatFn(req)
	}
	return common.ChatSummary{}, nil
}

func (f *fakeService) AnalyzeBias(_ context.Context, req api.BiasRequest) (common.BiasDetection, error) {
	f.record("bias")
	if f.biasFn != nil {
		return f.biasFn(req)
	}
	return common.BiasDetection{}, nil
}

func (f *fakeService) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeService) currentToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func TestDispatcher_FulfilledAppendsAndSetsCurrent(t *testing.T) {
	st := store.New()
	svc := &fakeService{}

	var loadingDuringCall bool
	svc.matchFn = func(api.MatchRequest) (common.ResumeAnalysis, error) {
		loadingDuringCall = st.ResumeStatus().Loading
		return common.ResumeAnalysis{ID: "ra-1", CandidateName: "Jane", MatchScore: 87}, nil
	}

	d := New(svc, st)

	rec, err := d.MatchResumes(context.Background(), api.MatchRequest{JobDescription: "Go engineer"})
	if err != nil {
		t.Fatalf("MatchResumes() error = %v", err)
	}

	if !loadingDuringCall {
		t.Error("Expected loading flag set while the call was in flight")
	}
	if rec.ID != "ra-1" {
		t.Errorf("Expected returned record ra-1, got %s", rec.ID)
	}

	if got := len(st.ResumeAnalyses()); got != 1 {
		t.Fatalf("Expected exactly 1 appended record, got %d", got)
	}
	current, ok := st.CurrentResumeAnalysis()
	if !ok || current.ID != "ra-1" {
		t.Errorf("Expected current record ra-1, got %+v ok=%v", current, ok)
	}
	if status := st.ResumeStatus(); status.Loading || status.Err != "" {
		t.Errorf("Expected clean status after fulfillment, got %+v", status)
	}
}

func TestDispatcher_RejectedStoresExtractedMessage(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "server message extracted",
			err:     &api.Error{Op: "match resumes", StatusCode: 400, Message: "job description is too short"},
			wantMsg: "job description is too short",
		},
		{
			name:    "envelope without message falls back",
			err:     &api.Error{Op: "match resumes", StatusCode: 500},
			wantMsg: "failed to match resumes",
		},
		{
			name:    "unexpected error falls back",
			err:     errors.New("dial tcp: connection refused"),
			wantMsg: "failed to match resumes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.New()
			svc := &fakeService{
				matchFn: func(api.MatchRequest) (common.ResumeAnalysis, error) {
					return common.ResumeAnalysis{}, tt.err
				},
			}
			d := New(svc, st)

			if _, err := d.MatchResumes(context.Background(), api.MatchRequest{}); err == nil {
				t.Fatal("Expected error from rejected operation")
			}

			status := st.ResumeStatus()
			if status.Loading {
				t.Error("Expected loading cleared after rejection")
			}
			if status.Err != tt.wantMsg {
				t.Errorf("Expected stored message %q, got %q", tt.wantMsg, status.Err)
			}
			if got := len(st.ResumeAnalyses()); got != 0 {
				t.Errorf("Rejected operation must leave the collection unchanged, got %d records", got)
			}
		})
	}
}

func TestDispatcher_CompositeAudio(t *testing.T) {
	t.Run("both calls succeed", func(t *testing.T) {
		st := store.New()
		svc := &fakeService{
			submitAudioFn: func(api.AudioUpload) (string, error) { return "iv-9", nil },
			summaryFn: func(id string) (common.InterviewAnalysis, error) {
				if id != "iv-9" {
					t.Errorf("Expected summary fetch for iv-9, got %s", id)
				}
				return common.InterviewAnalysis{ID: "ia-1", OverallScore: 78}, nil
			},
		}
		d := New(svc, st)

		rec, err := d.ProcessInterviewAudio(context.Background(), api.AudioUpload{})
		if err != nil {
			t.Fatalf("ProcessInterviewAudio() error = %v", err)
		}
		if rec.ID != "ia-1" {
			t.Errorf("Expected record ia-1, got %s", rec.ID)
		}

		wantCalls := []string{"submit-audio", "get-summary"}
		calls := svc.callList()
		if len(calls) != len(wantCalls) {
			t.Fatalf("Expected calls %v, got %v", wantCalls, calls)
		}
		for i := range wantCalls {
			if calls[i] != wantCalls[i] {
				t.Errorf("Call %d: expected %s, got %s", i, wantCalls[i], calls[i])
			}
		}

		if got := len(st.InterviewAnalyses()); got != 1 {
			t.Errorf("Expected 1 interview record, got %d", got)
		}
	})

	t.Run("second call failure rejects the whole operation", func(t *testing.T) {
		st := store.New()
		svc := &fakeService{
			submitAudioFn: func(api.AudioUpload) (string, error) { return "iv-9", nil },
			summaryFn: func(string) (common.InterviewAnalysis, error) {
				return common.InterviewAnalysis{}, &api.Error{Op: "fetch interview summary", StatusCode: 500, Message: "transcription backend unavailable"}
			},
		}
		d := New(svc, st)

		if _, err := d.ProcessInterviewAudio(context.Background(), api.AudioUpload{}); err == nil {
			t.Fatal("Expected rejection when the summary fetch fails")
		}

		if got := len(st.InterviewAnalyses()); got != 0 {
			t.Errorf("Expected no record stored, got %d", got)
		}
		if msg := st.InterviewStatus().Err; msg != "transcription backend unavailable" {
			t.Errorf("Expected second call's message stored, got %q", msg)
		}
	})

	t.Run("first call failure skips the summary fetch", func(t *testing.T) {
		st := store.New()
		svc := &fakeService{
			submitAudioFn: func(api.AudioUpload) (string, error) {
				return "", errors.New("connection reset")
			},
		}
		d := New(svc, st)

		if _, err := d.ProcessInterviewAudio(context.Background(), api.AudioUpload{}); err == nil {
			t.Fatal("Expected rejection when the upload fails")
		}

		for _, call := range svc.callList() {
			if call == "get-summary" {
				t.Error("Summary fetch must not run after a failed upload")
			}
		}
		if msg := st.InterviewStatus().Err; msg != "failed to process interview audio" {
			t.Errorf("Expected composite fallback message, got %q", msg)
		}
	})
}

func TestDispatcher_Login(t *testing.T) {
	t.Run("fulfilled", func(t *testing.T) {
		st := store.New()
		svc := &fakeService{
			loginFn: func(req api.LoginRequest) (string, common.User, error) {
				return "tok-1", common.User{ID: "u-1", Email: req.Email}, nil
			},
		}
		d := New(svc, st)

		user, err := d.Login(context.Background(), api.LoginRequest{Email: "dana@example.com", Password: "pw"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if user.ID != "u-1" {
			t.Errorf("Expected user u-1, got %s", user.ID)
		}

		sess := st.Session()
		if !sess.Authenticated || sess.Token != "tok-1" {
			t.Errorf("Expected authenticated session with token, got %+v", sess)
		}
		if svc.currentToken() != "tok-1" {
			t.Errorf("Expected token pushed to the service, got %q", svc.currentToken())
		}
	})

	t.Run("rejected", func(t *testing.T) {
		st := store.New()
		svc := &fakeService{
			loginFn: func(api.LoginRequest) (string, common.User, error) {
				return "", common.User{}, &api.Error{Op: "login", StatusCode: 401, Message: "invalid credentials"}
			},
		}
		d := New(svc, st)

		if _, err := d.Login(context.Background(), api.LoginRequest{}); err == nil {
			t.Fatal("Expected login rejection")
		}

		sess := st.Session()
		if sess.Authenticated {
			t.Error("Failed login must not authenticate the session")
		}
		if sess.Err != "invalid credentials" {
			t.Errorf("Expected stored message, got %q", sess.Err)
		}
	})
}

func TestDispatcher_OutcomeChannel(t *testing.T) {
	st := store.New()
	svc := &fakeService{
		chatFn: func(api.ChatSummaryRequest) (common.ChatSummary, error) {
			return common.ChatSummary{ID: "cs-1"}, nil
		},
	}
	d := New(svc, st)
	outcomes := d.Subscribe(4)

	if _, err := d.SummarizeChat(context.Background(), api.ChatSummaryRequest{}); err != nil {
		t.Fatalf("SummarizeChat() error = %v", err)
	}

	want := []Phase{PhasePending, PhaseFulfilled}
	for i, phase := range want {
		select {
		case o := <-outcomes:
			if o.Op != OpChatSummary {
				t.Errorf("Outcome %d: expected op %s, got %s", i, OpChatSummary, o.Op)
			}
			if o.Phase != phase {
				t.Errorf("Outcome %d: expected phase %s, got %s", i, phase, o.Phase)
			}
			if phase == PhaseRejected && o.Err == "" {
				t.Error("Rejected outcome must carry a message")
			}
		case <-time.After(time.Second):
			t.Fatalf("Timed out waiting for outcome %d", i)
		}
	}
}

func TestDispatcher_RejectedOutcomeCarriesMessage(t *testing.T) {
	st := store.New()
	svc := &fakeService{
		biasFn: func(api.BiasRequest) (common.BiasDetection, error) {
			return common.BiasDetection{}, errors.New("boom")
		},
	}
	d := New(svc, st)
	outcomes := d.Subscribe(4)

	if _, err := d.AnalyzeBias(context.Background(), api.BiasRequest{}); err == nil {
		t.Fatal("Expected rejection")
	}

	<-outcomes // pending
	select {
	case o := <-outcomes:
		if o.Phase != PhaseRejected {
			t.Errorf("Expected rejected phase, got %s", o.Phase)
		}
		if o.Err != "failed to analyze bias" {
			t.Errorf("Expected fallback message, got %q", o.Err)
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for rejected outcome")
	}
}

func TestDispatcher_RecordsMetricsAndHistory(t *testing.T) {
	st := store.New()
	svc := &fakeService{
		textFn: func(api.InterviewTextRequest) (common.InterviewAnalysis, error) {
			return common.InterviewAnalysis{ID: "ia-7", OverallScore: 90}, nil
		},
		biasFn: func(api.BiasRequest) (common.BiasDetection, error) {
			return common.BiasDetection{}, errors.New("boom")
		},
	}

	collector := monitor.New()
	archive, err := history.New(filepath.Join(t.TempDir(), "history.jsonl"))
	if err != nil {
		t.Fatalf("Failed to create history store: %v", err)
	}

	d := New(svc, st)
	d.SetCollector(collector)
	d.SetHistory(archive)

	if _, err := d.ProcessInterviewText(context.Background(), api.InterviewTextRequest{Transcript: "hello"}); err != nil {
		t.Fatalf("ProcessInterviewText() error = %v", err)
	}
	if _, err := d.AnalyzeBias(context.Background(), api.BiasRequest{}); err == nil {
		t.Fatal("Expected bias rejection")
	}

	report := collector.Snapshot()
	if report.TotalCalls != 2 {
		t.Errorf("Expected 2 recorded calls, got %d", report.TotalCalls)
	}
	if report.TotalFailures != 1 {
		t.Errorf("Expected 1 recorded failure, got %d", report.TotalFailures)
	}

	entries, err := archive.List(nil)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected only the fulfilled result archived, got %d entries", len(entries))
	}
	if entries[0].RecordID != "ia-7" {
		t.Errorf("Expected archived record ia-7, got %s", entries[0].RecordID)
	}
}

func TestDispatcher_SettlementFollowsResponseOrder(t *testing.T) {
	st := store.New()

	release := make(chan struct{})
	svc := &fakeService{
		matchFn: func(api.MatchRequest) (common.ResumeAnalysis, error) {
			<-release
			return common.ResumeAnalysis{ID: "ra-slow"}, nil
		},
		uploadFn: func([]api.Upload) (common.ResumeAnalysis, error) {
			return common.ResumeAnalysis{ID: "ra-fast"}, nil
		},
	}
	d := New(svc, st)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = d.MatchResumes(context.Background(), api.MatchRequest{})
	}()

	if _, err := d.UploadResumes(context.Background(), nil); err != nil {
		t.Fatalf("UploadResumes() error = %v", err)
	}
	close(release)
	wg.Wait()

	// Both fulfilled: updates applied in response-arrival order, the
	// slower dispatch lands last and holds the current pointer.
	analyses := st.ResumeAnalyses()
	if len(analyses) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(analyses))
	}
	if analyses[0].ID != "ra-fast" || analyses[1].ID != "ra-slow" {
		t.Errorf("Expected arrival order ra-fast, ra-slow; got %s, %s", analyses[0].ID, analyses[1].ID)
	}
	current, _ := st.CurrentResumeAnalysis()
	if current.ID != "ra-slow" {
		t.Errorf("Expected current ra-slow, got %s", current.ID)
	}
}
