package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yildizm/TalentTrack/internal/common"
)

const testToken = "test-session-token"

func testConfig(baseURL string) *Config {
	return &Config{
		BaseURL:   baseURL,
		Timeout:   30 * time.Second,
		UserAgent: DefaultUserAgent,
	}
}

func TestClient_New(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "nil config uses defaults",
			config:  nil,
			wantErr: false,
		},
		{
			name:    "valid config",
			config:  testConfig("http://localhost:9000"),
			wantErr: false,
		},
		{
			name: "invalid base URL",
			config: &Config{
				BaseURL: "http://[::1]:namedport",
				Timeout: 30 * time.Second,
			},
			wantErr: true,
		},
		{
			name: "missing base URL",
			config: &Config{
				Timeout: 30 * time.Second,
			},
			wantErr: true,
		},
		{
			name: "zero timeout",
			config: &Config{
				BaseURL: DefaultBaseURL,
			},
			wantErr: true,
		},
		{
			name: "rate limit without burst",
			config: &Config{
				BaseURL:        DefaultBaseURL,
				Timeout:        30 * time.Second,
				RequestsPerSec: 5,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && client == nil {
				t.Error("New() returned nil client without error")
			}
		})
	}
}

func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/auth/login" {
			t.Errorf("Expected /api/v1/auth/login, got %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Errorf("Expected no Authorization header before login, got %s", auth)
		}

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if req.Email != "recruiter@example.com" {
			t.Errorf("Expected recruiter@example.com, got %s", req.Email)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(loginResponse{
			Token: testToken,
			User:  common.User{ID: "u-1", Name: "Dana", Email: req.Email},
		})
	}))
	defer server.Close()

	client, err := New(testConfig(server.URL))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	token, user, err := client.Login(context.Background(), LoginRequest{
		Email:    "recruiter@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if token != testToken {
		t.Errorf("Expected token %s, got %s", testToken, token)
	}
	if user.ID != "u-1" {
		t.Errorf("Expected user u-1, got %s", user.ID)
	}
}

func TestClient_LoginMissingToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":"u-1"}}`))
	}))
	defer server.Close()

	client, err := New(testConfig(server.URL))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	if _, _, err := client.Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "x"}); err == nil {
		t.Error("Expected error for response without token")
	}
}

func TestClient_MatchResumes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/resumes/match" {
			t.Errorf("Expected /api/v1/resumes/match, got %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer "+testToken {
			t.Errorf("Expected Bearer %s, got %s", testToken, auth)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(matchResponse{
			Matches: []common.ResumeAnalysis{
				{CandidateName: "Jane Doe", MatchScore: 87},
				{CandidateName: "Joe Bloggs", MatchScore: 61},
			},
		})
	}))
	defer server.Close()

	client, err := New(testConfig(server.URL))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	client.SetToken(testToken)

	rec, err := client.MatchResumes(context.Background(), MatchRequest{JobDescription: "Senior Go engineer"})
	if err != nil {
		t.Fatalf("MatchResumes() error = %v", err)
	}

	if rec.CandidateName != "Jane Doe" {
		t.Errorf("Expected best match Jane Doe, got %s", rec.CandidateName)
	}
	if rec.ID == "" {
		t.Error("Expected backfilled record ID")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("Expected backfilled timestamp")
	}
}

func TestClient_MatchResumesEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(matchResponse{})
	}))
	defer server.Close()

	client, err := New(testConfig(server.URL))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	_, err = client.MatchResumes(context.Background(), MatchRequest{JobDescription: "any"})
	if err == nil {
		t.Fatal("Expected error for empty match list")
	}

	if msg := UserMessage(err, "fallback"); msg != "no matches returned" {
		t.Errorf("Expected 'no matches returned', got %q", msg)
	}
}

func TestClient_UploadResumes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/resumes/upload" {
			t.Errorf("Expected /api/v1/resumes/upload, got %s", r.URL.Path)
		}
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("Expected multipart content type, got %s", r.Header.Get("Content-Type"))
		}

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("Failed to parse multipart form: %v", err)
		}

		files := r.MultipartForm.File["resumes"]
		if len(files) != 2 {
			t.Errorf("Expected 2 resume files, got %d", len(files))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(uploadResponse{
			Report: common.ResumeAnalysis{ID: "ra-9", MatchScore: 74, Summary: "2 resumes processed"},
		})
	}))
	defer server.Close()

	client, err := New(testConfig(server.URL))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	files := []Upload{
		{Name: "jane.pdf", Content: strings.NewReader("%PDF-1.4 jane")},
		{Name: "joe.pdf", Content: strings.NewReader("%PDF-1.4 joe")},
	}

	rec, err := client.UploadResumes(context.Background(), files)
	if err != nil {
		t.Fatalf("UploadResumes() error = %v", err)
	}

	if rec.ID != "ra-9" {
		t.Errorf("Expected report ra-9, got %s", rec.ID)
	}
}

func TestClient_UploadResumesNoFiles(t *testing.T) {
	client, err := New(testConfig("http://localhost:9000"))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	if _, err := client.UploadResumes(context.Background(), nil); err == nil {
		t.Error("Expected error for upload without files")
	}
}

func TestClient_InterviewAudioFlow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "POST" && r.URL.Path == "/api/v1/interviews/audio":
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Fatalf("Failed to parse multipart form: %v", err)
			}
			if got := r.FormValue("candidate_id"); got != "c-7" {
				t.Errorf("Expected candidate_id c-7, got %s", got)
			}
			if len(r.MultipartForm.File["audio"]) != 1 {
				t.Errorf("Expected 1 audio file, got %d", len(r.MultipartForm.File["audio"]))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(audioSubmitResponse{InterviewID: "iv-42"})

		case r.Method == "GET" && r.URL.Path == "/api/v1/interviews/iv-42/summary":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(interviewSummaryResponse{
				Summary: common.InterviewAnalysis{ID: "ia-1", OverallScore: 82, Summary: "strong candidate"},
			})

		default:
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client, err := New(testConfig(server.URL))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	id, err := client.SubmitInterviewAudio(context.Background(), AudioUpload{
		File:        Upload{Name: "interview.mp3", Content: strings.NewReader("audio-bytes")},
		CandidateID: "c-7",
	})
	if err != nil {
		t.Fatalf("SubmitInterviewAudio() error = %v", err)
	}
	if id != "iv-42" {
		t.Errorf("Expected interview iv-42, got %s", id)
	}

	rec, err := client.GetInterviewSummary(context.Background(), id)
	if err != nil {
		t.Fatalf("GetInterviewSummary() error = %v", err)
	}
	if rec.OverallScore != 82 {
		t.Errorf("Expected score 82, got %.0f", rec.OverallScore)
	}
	if rec.InterviewID != "iv-42" {
		t.Errorf("Expected interview ID backfill iv-42, got %s", rec.InterviewID)
	}
}

func TestClient_SummarizeChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/chats/summarize" {
			t.Errorf("Expected /api/v1/chats/summarize, got %s", r.URL.Path)
		}

		var req ChatSummaryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if len(req.Messages) != 2 {
			t.Errorf("Expected 2 messages, got %d", len(req.Messages))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatSummaryResponse{
			Summary: common.ChatSummary{Summary: "candidate prefers remote work"},
		})
	}))
	defer server.Close()

	client, err := New(testConfig(server.URL))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	rec, err := client.SummarizeChat(context.Background(), ChatSummaryRequest{
		Messages: []common.ChatMessage{
			{Sender: "recruiter", Text: "Are you open to relocation?"},
			{Sender: "candidate", Text: "I would prefer remote."},
		},
	})
	if err != nil {
		t.Fatalf("SummarizeChat() error = %v", err)
	}

	if rec.Summary != "candidate prefers remote work" {
		t.Errorf("Unexpected summary: %q", rec.Summary)
	}
	if rec.MessageCount != 2 {
		t.Errorf("Expected message count backfill 2, got %d", rec.MessageCount)
	}
}

func TestClient_AnalyzeBias(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/bias/analyze" {
			t.Errorf("Expected /api/v1/bias/analyze, got %s", r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(biasResponse{
			Report: common.BiasDetection{
				Score:        64,
				FlaggedTerms: []common.FlaggedTerm{{Term: "rockstar", Suggestion: "skilled engineer"}},
			},
		})
	}))
	defer server.Close()

	client, err := New(testConfig(server.URL))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	rec, err := client.AnalyzeBias(context.Background(), BiasRequest{Text: "We need a rockstar"})
	if err != nil {
		t.Fatalf("AnalyzeBias() error = %v", err)
	}

	if len(rec.FlaggedTerms) != 1 || rec.FlaggedTerms[0].Term != "rockstar" {
		t.Errorf("Unexpected flagged terms: %+v", rec.FlaggedTerms)
	}
}

func TestClient_ErrorEnvelope(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		fallback    string
		wantMessage string
		wantAuthErr bool
	}{
		{
			name:        "nested message extracted",
			status:      http.StatusBadRequest,
			body:        `{"error":{"code":"invalid_job","message":"job description is too short"}}`,
			fallback:    "failed to match resumes",
			wantMessage: "job description is too short",
		},
		{
			name:        "envelope without message uses fallback",
			status:      http.StatusInternalServerError,
			body:        `{"error":{"code":"internal"}}`,
			fallback:    "failed to match resumes",
			wantMessage: "failed to match resumes",
		},
		{
			name:        "non-JSON body uses fallback",
			status:      http.StatusBadGateway,
			body:        "<html>bad gateway</html>",
			fallback:    "failed to match resumes",
			wantMessage: "failed to match resumes",
		},
		{
			name:        "empty body uses fallback",
			status:      http.StatusServiceUnavailable,
			body:        "",
			fallback:    "failed to match resumes",
			wantMessage: "failed to match resumes",
		},
		{
			name:        "unauthorized is detectable",
			status:      http.StatusUnauthorized,
			body:        `{"error":{"message":"token expired"}}`,
			fallback:    "failed to match resumes",
			wantMessage: "token expired",
			wantAuthErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, err := New(testConfig(server.URL))
			if err != nil {
				t.Fatalf("Failed to create client: %v", err)
			}

			_, err = client.MatchResumes(context.Background(), MatchRequest{JobDescription: "any"})
			if err == nil {
				t.Fatal("Expected error response")
			}

			if msg := UserMessage(err, tt.fallback); msg != tt.wantMessage {
				t.Errorf("UserMessage() = %q, want %q", msg, tt.wantMessage)
			}

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("Expected *api.Error, got %T", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, apiErr.StatusCode)
			}

			if IsAuthError(err) != tt.wantAuthErr {
				t.Errorf("IsAuthError() = %v, want %v", IsAuthError(err), tt.wantAuthErr)
			}
		})
	}
}

func TestClient_HealthCheck(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{name: "healthy", status: http.StatusOK, wantErr: false},
		{name: "unavailable", status: http.StatusServiceUnavailable, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/v1/health" {
					t.Errorf("Expected /api/v1/health, got %s", r.URL.Path)
				}
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client, err := New(testConfig(server.URL))
			if err != nil {
				t.Fatalf("Failed to create client: %v", err)
			}

			err = client.HealthCheck(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("HealthCheck() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback string
		want     string
	}{
		{
			name:     "api error with message",
			err:      newStatusError("match resumes", 400, "bad job id"),
			fallback: "failed to match resumes",
			want:     "bad job id",
		},
		{
			name:     "api error without message",
			err:      newStatusError("match resumes", 500, ""),
			fallback: "failed to match resumes",
			want:     "failed to match resumes",
		},
		{
			name:     "transport error",
			err:      newError("match resumes", errors.New("dial tcp: connection refused")),
			fallback: "failed to match resumes",
			want:     "failed to match resumes",
		},
		{
			name:     "plain error",
			err:      errors.New("something broke"),
			fallback: "failed to match resumes",
			want:     "failed to match resumes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err, tt.fallback); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
