package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/yildizm/TalentTrack/internal/api"
	"github.com/yildizm/TalentTrack/internal/config"
	"github.com/yildizm/TalentTrack/internal/formatter"
	"github.com/yildizm/TalentTrack/internal/history"
	"github.com/yildizm/TalentTrack/internal/logger"
	"github.com/yildizm/TalentTrack/internal/monitor"
	"github.com/yildizm/TalentTrack/internal/ops"
	"github.com/yildizm/TalentTrack/internal/session"
	"github.com/yildizm/TalentTrack/internal/store"
	"github.com/yildizm/TalentTrack/internal/ui"
)

// workspace bundles the client-side state one command invocation needs:
// the API client, the dispatcher, the state store, session persistence,
// the local archive and call statistics.
type workspace struct {
	cfg        *config.Config
	client     *api.Client
	store      *store.Store
	dispatcher *ops.Dispatcher
	session    *session.Manager
	archive    *history.Store
	collector  *monitor.Collector
	log        *logger.Logger
}

// newWorkspace wires a workspace from the loaded configuration. A saved
// session is restored when present; commands that need authentication
// call requireSession afterwards.
func newWorkspace() (*workspace, error) {
	cfg := GetGlobalConfig()

	apiCfg := &api.Config{
		BaseURL:        cfg.Server.BaseURL,
		Timeout:        cfg.Server.Timeout,
		Token:          cfg.Server.APIKey,
		UserAgent:      cfg.Server.UserAgent,
		RequestsPerSec: cfg.Server.RequestsPerSec,
		Burst:          cfg.Server.Burst,
	}

	log := logger.NewWithCallback("cli", isVerbose)
	sessions := session.NewManager(config.ExpandPath(cfg.Session.Path))

	st := store.New()
	if cfg.Session.AutoRestore {
		if saved, err := sessions.Load(); err == nil {
			apiCfg.Token = saved.Token
			st.SetSession(saved.User, saved.Token)
			log.Info("restored session for %s", saved.User.Email)
		} else if err != session.ErrNoSession {
			log.Warn("session not restored: %v", err)
		}
	}

	client, err := api.New(apiCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	collector := monitor.New()

	dispatcher := ops.New(client, st)
	dispatcher.SetLogger(log.WithComponent("dispatcher"))
	dispatcher.SetCollector(collector)

	ws := &workspace{
		cfg:        cfg,
		client:     client,
		store:      st,
		dispatcher: dispatcher,
		session:    sessions,
		collector:  collector,
		log:        log,
	}

	if cfg.History.Enabled {
		archive, err := history.New(config.ExpandPath(cfg.History.Path))
		if err != nil {
			return nil, fmt.Errorf("failed to open history archive: %w", err)
		}
		ws.archive = archive
		dispatcher.SetHistory(archive)
	}

	return ws, nil
}

// requireSession fails unless a session was restored or a static API
// key is configured
func (ws *workspace) requireSession() error {
	if ws.store.Session().Authenticated || ws.cfg.Server.APIKey != "" {
		return nil
	}
	return fmt.Errorf("not signed in: run 'talenttrack login' first")
}

// finish prints call statistics when requested
func (ws *workspace) finish() {
	if !showStats {
		return
	}
	report := ws.collector.Snapshot()
	out, err := formatter.NewTerminal(colorEnabled()).Format(&formatter.Report{Stats: &report})
	if err != nil {
		return
	}
	fmt.Fprintf(os.Stderr, "\n%s", out)
}

// colorEnabled resolves the effective color setting
func colorEnabled() bool {
	if noColor || ui.IsColorDisabled() {
		return false
	}
	return GetGlobalConfig().Output.ColorMode != "never"
}

// render writes a report to stdout in the selected output format
func render(report *formatter.Report) error {
	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = time.Now()
	}

	f, err := formatter.New(getOutputFormat(), colorEnabled())
	if err != nil {
		return err
	}

	out, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	_, err = os.Stdout.Write(append(out, '\n'))
	return err
}
