package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/yildizm/TalentTrack/internal/common"
)

// maxErrorBody caps how much of a failure payload is read
const maxErrorBody = 4096

// Service is the backend surface the operation layer depends on
type Service interface {
	Login(ctx context.Context, req LoginRequest) (string, common.User, error)
	MatchResumes(ctx context.Context, req MatchRequest) (common.ResumeAnalysis, error)
	UploadResumes(ctx context.Context, files []Upload) (common.ResumeAnalysis, error)
	SubmitInterviewAudio(ctx context.Context, req AudioUpload) (string, error)
	GetInterviewSummary(ctx context.Context, interviewID string) (common.InterviewAnalysis, error)
	ProcessInterviewText(ctx context.Context, req InterviewTextRequest) (common.InterviewAnalysis, error)
	SummarizeChat(ctx context.Context, req ChatSummaryRequest) (common.ChatSummary, error)
	AnalyzeBias(ctx context.Context, req BiasRequest) (common.BiasDetection, error)
	SetToken(token string)
}

// Client talks to the TalentTracker backend REST API
type Client struct {
	config  *Config
	client  *http.Client
	baseURL *url.URL
	limiter *rate.Limiter

	mu    sync.RWMutex
	token string
}

var _ Service = (*Client)(nil)

func New(config *Config) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	var limiter *rate.Limiter
	if config.RequestsPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSec), config.Burst)
	}

	c := &Client{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		baseURL: baseURL,
		limiter: limiter,
		token:   config.Token,
	}

	return c, nil
}

// SetToken replaces the bearer token used on subsequent calls
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) bearerToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Login authenticates and returns the session token and user
func (c *Client) Login(ctx context.Context, req LoginRequest) (string, common.User, error) {
	const op = "login"

	var out loginResponse
	if err := c.postJSON(ctx, op, "/api/v1/auth/login", req, &out); err != nil {
		return "", common.User{}, err
	}

	if out.Token == "" {
		return "", common.User{}, newError(op, fmt.Errorf("response missing token"))
	}

	return out.Token, out.User, nil
}

// MatchResumes ranks stored resumes against a job and returns the best match
func (c *Client) MatchResumes(ctx context.Context, req MatchRequest) (common.ResumeAnalysis, error) {
	const op = "match resumes"

	var out matchResponse
	if err := c.postJSON(ctx, op, "/api/v1/resumes/match", req, &out); err != nil {
		return common.ResumeAnalysis{}, err
	}

	if len(out.Matches) == 0 {
		return common.ResumeAnalysis{}, newStatusError(op, 0, "no matches returned")
	}

	rec := out.Matches[0]
	ensureIdentity(&rec.ID, &rec.CreatedAt)
	return rec, nil
}

// UploadResumes submits resume files for analysis and returns the batch report
func (c *Client) UploadResumes(ctx context.Context, files []Upload) (common.ResumeAnalysis, error) {
	const op = "upload resumes"

	if len(files) == 0 {
		return common.ResumeAnalysis{}, newError(op, fmt.Errorf("no files to upload"))
	}

	var out uploadResponse
	if err := c.postMultipart(ctx, op, "/api/v1/resumes/upload", nil, "resumes", files, &out); err != nil {
		return common.ResumeAnalysis{}, err
	}

	rec := out.Report
	ensureIdentity(&rec.ID, &rec.CreatedAt)
	return rec, nil
}

// SubmitInterviewAudio uploads an interview recording and returns the
// interview ID assigned by the backend
func (c *Client) SubmitInterviewAudio(ctx context.Context, req AudioUpload) (string, error) {
	const op = "submit interview audio"

	if req.File.Content == nil {
		return "", newError(op, fmt.Errorf("no audio file to upload"))
	}

	fields := map[string]string{
		"candidate_id": req.CandidateID,
		"job_id":       req.JobID,
	}

	var out audioSubmitResponse
	if err := c.postMultipart(ctx, op, "/api/v1/interviews/audio", fields, "audio", []Upload{req.File}, &out); err != nil {
		return "", err
	}

	if out.InterviewID == "" {
		return "", newError(op, fmt.Errorf("response missing interview ID"))
	}

	return out.InterviewID, nil
}

// GetInterviewSummary fetches the analysis for a processed interview
func (c *Client) GetInterviewSummary(ctx context.Context, interviewID string) (common.InterviewAnalysis, error) {
	const op = "fetch interview summary"

	if interviewID == "" {
		return common.InterviewAnalysis{}, newError(op, fmt.Errorf("interview ID is required"))
	}

	var out interviewSummaryResponse
	if err := c.getJSON(ctx, op, &out, "api", "v1", "interviews", interviewID, "summary"); err != nil {
		return common.InterviewAnalysis{}, err
	}

	rec := out.Summary
	if rec.InterviewID == "" {
		rec.InterviewID = interviewID
	}
	ensureIdentity(&rec.ID, &rec.CreatedAt)
	return rec, nil
}

// ProcessInterviewText submits a transcript for analysis
func (c *Client) ProcessInterviewText(ctx context.Context, req InterviewTextRequest) (common.InterviewAnalysis, error) {
	const op = "process interview transcript"

	var out interviewSummaryResponse
	if err := c.postJSON(ctx, op, "/api/v1/interviews/text", req, &out); err != nil {
		return common.InterviewAnalysis{}, err
	}

	rec := out.Summary
	ensureIdentity(&rec.ID, &rec.CreatedAt)
	return rec, nil
}

// SummarizeChat submits a conversation for summarization
func (c *Client) SummarizeChat(ctx context.Context, req ChatSummaryRequest) (common.ChatSummary, error) {
	const op = "summarize chat"

	var out chatSummaryResponse
	if err := c.postJSON(ctx, op, "/api/v1/chats/summarize", req, &out); err != nil {
		return common.ChatSummary{}, err
	}

	rec := out.Summary
	if rec.MessageCount == 0 {
		rec.MessageCount = len(req.Messages)
	}
	ensureIdentity(&rec.ID, &rec.CreatedAt)
	return rec, nil
}

// AnalyzeBias submits a job text for bias analysis
func (c *Client) AnalyzeBias(ctx context.Context, req BiasRequest) (common.BiasDetection, error) {
	const op = "analyze bias"

	var out biasResponse
	if err := c.postJSON(ctx, op, "/api/v1/bias/analyze", req, &out); err != nil {
		return common.BiasDetection{}, err
	}

	rec := out.Report
	ensureIdentity(&rec.ID, &rec.CreatedAt)
	return rec, nil
}

// HealthCheck verifies the backend is reachable
func (c *Client) HealthCheck(ctx context.Context) error {
	const op = "health check"

	endpoint := c.baseURL.JoinPath("/api/v1/health")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), http.NoBody)
	if err != nil {
		return newError(op, err)
	}
	c.setHeaders(req, "")

	resp, err := c.client.Do(req)
	if err != nil {
		return newError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(op, resp)
	}

	return nil
}

func (c *Client) postJSON(ctx context.Context, op, path string, payload, out interface{}) error {
	endpoint := c.baseURL.JoinPath(path)

	body, err := json.Marshal(payload)
	if err != nil {
		return newError(op, fmt.Errorf("failed to marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return newError(op, fmt.Errorf("failed to create request: %w", err))
	}

	c.setHeaders(req, "application/json")

	return c.do(req, op, out)
}

func (c *Client) getJSON(ctx context.Context, op string, out interface{}, elem ...string) error {
	endpoint := c.baseURL.JoinPath(elem...)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), http.NoBody)
	if err != nil {
		return newError(op, fmt.Errorf("failed to create request: %w", err))
	}

	c.setHeaders(req, "")

	return c.do(req, op, out)
}

func (c *Client) postMultipart(ctx context.Context, op, path string, fields map[string]string, fileField string, files []Upload, out interface{}) error {
	endpoint := c.baseURL.JoinPath(path)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := w.WriteField(key, value); err != nil {
			return newError(op, fmt.Errorf("failed to write form field %s: %w", key, err))
		}
	}

	for _, file := range files {
		part, err := w.CreateFormFile(fileField, file.Name)
		if err != nil {
			return newError(op, fmt.Errorf("failed to create form file: %w", err))
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return newError(op, fmt.Errorf("failed to read %s: %w", file.Name, err))
		}
	}

	if err := w.Close(); err != nil {
		return newError(op, fmt.Errorf("failed to finalize multipart body: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(buf.Bytes()))
	if err != nil {
		return newError(op, fmt.Errorf("failed to create request: %w", err))
	}

	c.setHeaders(req, w.FormDataContentType())

	return c.do(req, op, out)
}

func (c *Client) do(req *http.Request, op string, out interface{}) error {
	if err := c.wait(req.Context()); err != nil {
		return newError(op, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return newError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.handleErrorResponse(op, resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return newError(op, fmt.Errorf("failed to decode response: %w", err))
	}

	return nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

func (c *Client) setHeaders(req *http.Request, contentType string) {
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)

	if token := c.bearerToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// handleErrorResponse extracts the message from the backend's error
// envelope; Message stays empty when the body has none so the caller's
// fallback applies.
func (c *Client) handleErrorResponse(op string, resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return newStatusError(op, resp.StatusCode, "")
	}

	var errorResp ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil {
		return newStatusError(op, resp.StatusCode, "")
	}

	return newStatusError(op, resp.StatusCode, errorResp.Error.Message)
}

// ensureIdentity backfills a record ID and timestamp when the server
// omits them, so collections and history always key cleanly.
func ensureIdentity(id *string, createdAt *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if createdAt.IsZero() {
		*createdAt = time.Now().UTC()
	}
}
