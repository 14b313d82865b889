package ops

import (
	"context"
	"sync"
	"time"

	"github.com/yildizm/TalentTrack/internal/api"
	"github.com/yildizm/TalentTrack/internal/common"
	"github.com/yildizm/TalentTrack/internal/history"
	"github.com/yildizm/TalentTrack/internal/logger"
	"github.com/yildizm/TalentTrack/internal/monitor"
	"github.com/yildizm/TalentTrack/internal/store"
)

// Dispatcher runs the client's asynchronous operations. Every dispatch
// is a single round trip through three phases: pending (loading set,
// prior error cleared), fulfilled (record appended and made current),
// or rejected (error message stored). There is no retry, no timeout
// beyond the transport's, and no single-flight enforcement here — that
// belongs to the submitting form.
type Dispatcher struct {
	service api.Service
	store   *store.Store

	logger    *logger.Logger
	collector *monitor.Collector
	archive   *history.Store

	mu   sync.RWMutex
	subs []chan Outcome
}

// New creates a dispatcher over the given backend service and store
func New(service api.Service, st *store.Store) *Dispatcher {
	return &Dispatcher{
		service: service,
		store:   st,
	}
}

// SetLogger attaches an optional component logger
func (d *Dispatcher) SetLogger(l *logger.Logger) {
	d.logger = l
}

// SetCollector attaches an optional metrics collector
func (d *Dispatcher) SetCollector(c *monitor.Collector) {
	d.collector = c
}

// SetHistory attaches an optional result archive
func (d *Dispatcher) SetHistory(h *history.Store) {
	d.archive = h
}

// Subscribe returns a channel receiving every phase outcome. Slow
// consumers miss outcomes rather than blocking a dispatch.
func (d *Dispatcher) Subscribe(buffer int) <-chan Outcome {
	ch := make(chan Outcome, buffer)
	d.mu.Lock()
	d.subs = append(d.subs, ch)
	d.mu.Unlock()
	return ch
}

func (d *Dispatcher) notify(o Outcome) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, ch := range d.subs {
		select {
		case ch <- o:
		default:
		}
	}
}

// Login authenticates the recruiter and stores the session
func (d *Dispatcher) Login(ctx context.Context, req api.LoginRequest) (common.User, error) {
	started := d.begin(OpLogin, d.store.SetSessionLoading)

	token, user, err := d.service.Login(ctx, req)
	if err != nil {
		d.reject(OpLogin, started, err, d.store.SetSessionError)
		return common.User{}, err
	}

	d.service.SetToken(token)
	d.fulfill(OpLogin, started, nil, func() {
		d.store.SetSession(user, token)
	})
	return user, nil
}

// MatchResumes ranks stored resumes against a job description
func (d *Dispatcher) MatchResumes(ctx context.Context, req api.MatchRequest) (common.ResumeAnalysis, error) {
	started := d.begin(OpResumeMatch, d.store.SetResumeLoading)

	rec, err := d.service.MatchResumes(ctx, req)
	if err != nil {
		d.reject(OpResumeMatch, started, err, d.store.SetResumeError)
		return common.ResumeAnalysis{}, err
	}

	d.fulfill(OpResumeMatch, started, rec, func() {
		d.store.AppendResumeAnalysis(rec)
	})
	return rec, nil
}

// UploadResumes submits resume files and stores the batch report
func (d *Dispatcher) UploadResumes(ctx context.Context, files []api.Upload) (common.ResumeAnalysis, error) {
	started := d.begin(OpResumeUpload, d.store.SetResumeLoading)

	rec, err := d.service.UploadResumes(ctx, files)
	if err != nil {
		d.reject(OpResumeUpload, started, err, d.store.SetResumeError)
		return common.ResumeAnalysis{}, err
	}

	d.fulfill(OpResumeUpload, started, rec, func() {
		d.store.AppendResumeAnalysis(rec)
	})
	return rec, nil
}

// ProcessInterviewAudio submits a recording and then fetches its
// summary. The operation fulfills only when both calls succeed; a
// failed summary fetch rejects the whole operation even though the
// upload went through, and nothing is rolled back.
func (d *Dispatcher) ProcessInterviewAudio(ctx context.Context, req api.AudioUpload) (common.InterviewAnalysis, error) {
	started := d.begin(OpInterviewAudio, d.store.SetInterviewLoading)

	interviewID, err := d.service.SubmitInterviewAudio(ctx, req)
	if err != nil {
		d.reject(OpInterviewAudio, started, err, d.store.SetInterviewError)
		return common.InterviewAnalysis{}, err
	}

	rec, err := d.service.GetInterviewSummary(ctx, interviewID)
	if err != nil {
		d.reject(OpInterviewAudio, started, err, d.store.SetInterviewError)
		return common.InterviewAnalysis{}, err
	}

	d.fulfill(OpInterviewAudio, started, rec, func() {
		d.store.AppendInterviewAnalysis(rec)
	})
	return rec, nil
}

// FetchInterviewSummary retrieves the analysis of a processed interview
func (d *Dispatcher) FetchInterviewSummary(ctx context.Context, interviewID string) (common.InterviewAnalysis, error) {
	started := d.begin(OpInterviewSummary, d.store.SetInterviewLoading)

	rec, err := d.service.GetInterviewSummary(ctx, interviewID)
	if err != nil {
		d.reject(OpInterviewSummary, started, err, d.store.SetInterviewError)
		return common.InterviewAnalysis{}, err
	}

	d.fulfill(OpInterviewSummary, started, rec, func() {
		d.store.AppendInterviewAnalysis(rec)
	})
	return rec, nil
}

// ProcessInterviewText submits an interview transcript for analysis
func (d *Dispatcher) ProcessInterviewText(ctx context.Context, req api.InterviewTextRequest) (common.InterviewAnalysis, error) {
	started := d.begin(OpInterviewText, d.store.SetInterviewLoading)

	rec, err := d.service.ProcessInterviewText(ctx, req)
	if err != nil {
		d.reject(OpInterviewText, started, err, d.store.SetInterviewError)
		return common.InterviewAnalysis{}, err
	}

	d.fulfill(OpInterviewText, started, rec, func() {
		d.store.AppendInterviewAnalysis(rec)
	})
	return rec, nil
}

// SummarizeChat submits a conversation for summarization
func (d *Dispatcher) SummarizeChat(ctx context.Context, req api.ChatSummaryRequest) (common.ChatSummary, error) {
	started := d.begin(OpChatSummary, d.store.SetChatLoading)

	rec, err := d.service.SummarizeChat(ctx, req)
	if err != nil {
		d.reject(OpChatSummary, started, err, d.store.SetChatError)
		return common.ChatSummary{}, err
	}

	d.fulfill(OpChatSummary, started, rec, func() {
		d.store.AppendChatSummary(rec)
	})
	return rec, nil
}

// AnalyzeBias submits a job text for bias analysis
func (d *Dispatcher) AnalyzeBias(ctx context.Context, req api.BiasRequest) (common.BiasDetection, error) {
	started := d.begin(OpBiasAnalysis, d.store.SetBiasLoading)

	rec, err := d.service.AnalyzeBias(ctx, req)
	if err != nil {
		d.reject(OpBiasAnalysis, started, err, d.store.SetBiasError)
		return common.BiasDetection{}, err
	}

	d.fulfill(OpBiasAnalysis, started, rec, func() {
		d.store.AppendBiasDetection(rec)
	})
	return rec, nil
}

func (d *Dispatcher) begin(op Operation, setLoading func()) time.Time {
	setLoading()
	if d.logger != nil {
		d.logger.Debug("dispatching %s", op)
	}
	d.notify(Outcome{Op: op, Phase: PhasePending})
	return time.Now()
}

func (d *Dispatcher) reject(op Operation, started time.Time, err error, setErr func(string)) {
	msg := api.UserMessage(err, Fallback(op))
	setErr(msg)

	elapsed := time.Since(started)
	if d.collector != nil {
		d.collector.RecordOperation(string(op), elapsed, err)
	}
	if d.logger != nil {
		d.logger.Error("%s rejected after %v: %s", op, elapsed.Round(time.Millisecond), msg)
	}
	d.notify(Outcome{Op: op, Phase: PhaseRejected, Err: msg, Elapsed: elapsed})
}

func (d *Dispatcher) fulfill(op Operation, started time.Time, rec common.Record, apply func()) {
	apply()

	elapsed := time.Since(started)
	if d.collector != nil {
		d.collector.RecordOperation(string(op), elapsed, nil)
	}
	if d.logger != nil {
		d.logger.Debug("%s fulfilled in %v", op, elapsed.Round(time.Millisecond))
	}

	// Archiving is best-effort; a failed write never fails the operation.
	if d.archive != nil && rec != nil {
		if entry, err := history.EntryFor(rec); err == nil {
			if err := d.archive.Append(entry); err != nil && d.logger != nil {
				d.logger.Warn("failed to archive %s result: %v", op, err)
			}
		}
	}

	d.notify(Outcome{Op: op, Phase: PhaseFulfilled, Elapsed: elapsed})
}
