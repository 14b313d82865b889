package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yildizm/TalentTrack/internal/api"
	"github.com/yildizm/TalentTrack/internal/emoji"
	"github.com/yildizm/TalentTrack/internal/forms"
	"github.com/yildizm/TalentTrack/internal/ops"
)

func newWatchCommand() *cobra.Command {
	var (
		jobID  string
		settle time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [directory]",
		Short: "Watch an intake directory and upload new resumes",
		Long: `Monitor a directory for new resume files and upload each one as it
arrives. A file is uploaded once it has stopped changing for the
settle interval, so partially written files are not sent.

With no argument the configured intake directory is watched.
Press Ctrl+C to stop.`,
		Example: `  talenttrack watch
  talenttrack watch ~/Downloads/resumes --settle 5s`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := newWorkspace()
			if err != nil {
				return err
			}
			if err := ws.requireSession(); err != nil {
				return err
			}

			dir := ws.cfg.Watch.Directory
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" {
				return fmt.Errorf("no intake directory: pass one or set watch.directory in the config")
			}
			if jobID == "" {
				jobID = ws.cfg.Watch.JobID
			}
			if settle <= 0 {
				settle = ws.cfg.Watch.Settle
			}
			if settle <= 0 {
				settle = 2 * time.Second
			}

			watcher, cleanup, err := setupIntakeWatcher(dir)
			if err != nil {
				return err
			}
			defer cleanup()

			return runIntakeLoop(ws, watcher, dir, jobID, settle)
		},
	}

	cmd.Flags().StringVar(&jobID, "job", "", "job ID to match uploaded resumes against")
	cmd.Flags().DurationVar(&settle, "settle", 0, "quiet period before a file is uploaded")

	return cmd
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}

// setupIntakeWatcher creates a watcher on the intake directory
func setupIntakeWatcher(dir string) (*fsnotify.Watcher, func(), error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("intake directory not accessible: %w", err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("not a directory: %s", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(dir); err != nil {
		cleanupWatcher(watcher)
		return nil, nil, fmt.Errorf("failed to watch directory: %w", err)
	}

	return watcher, func() { cleanupWatcher(watcher) }, nil
}

// runIntakeLoop waits for new resume files to settle and uploads them
func runIntakeLoop(ws *workspace, watcher *fsnotify.Watcher, dir, jobID string, settle time.Duration) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	fmt.Printf("%s Watching %s (settle %s). Press Ctrl+C to stop.\n",
		emoji.GetEmoji("watch"), dir, settle)

	form := forms.NewResumeUploadForm(ws.cfg.Upload)
	pending := make(map[string]time.Time)

	ticker := time.NewTicker(settle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-signals:
			fmt.Printf("\n%s Stopped\n", emoji.GetEmoji("info"))
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				delete(pending, event.Name)
				continue
			}
			if !form.Accepts(event.Name) {
				if isVerbose() {
					fmt.Fprintf(os.Stderr, "ignoring %s\n", filepath.Base(event.Name))
				}
				continue
			}
			pending[event.Name] = time.Now()

		case <-ticker.C:
			for path, last := range pending {
				if time.Since(last) < settle {
					continue
				}
				delete(pending, path)
				uploadIntakeFile(ctx, ws, form, path, jobID)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			fmt.Fprintf(os.Stderr, "%s watch error: %v\n", emoji.GetEmoji("warning"), err)
		}
	}
}

// uploadIntakeFile uploads one settled resume and prints the result
func uploadIntakeFile(ctx context.Context, ws *workspace, form *forms.UploadForm, path, jobID string) {
	name := filepath.Base(path)

	form.Clear()
	if err := form.Select(path); err != nil {
		fmt.Printf("%s %s skipped: %v\n", emoji.GetEmoji("warning"), name, err)
		return
	}

	upload, err := api.OpenUpload(path)
	if err != nil {
		fmt.Printf("%s %s skipped: %v\n", emoji.GetEmoji("warning"), name, err)
		return
	}
	defer upload.Close()

	fmt.Printf("%s Uploading %s\n", emoji.GetEmoji("upload"), name)

	rec, err := ws.dispatcher.UploadResumes(ctx, []api.Upload{upload.Upload})
	if err != nil {
		fmt.Printf("%s %s failed: %s\n", emoji.GetEmoji("error"), name,
			api.UserMessage(err, ops.Fallback(ops.OpResumeUpload)))
		return
	}

	fmt.Printf("%s %s: %s\n", emoji.GetEmoji("success"), name, rec.Headline())

	if jobID != "" {
		match, err := ws.dispatcher.MatchResumes(ctx, api.MatchRequest{
			JobID:        jobID,
			CandidateIDs: []string{rec.RecordID()},
		})
		if err != nil {
			fmt.Printf("%s match failed: %s\n", emoji.GetEmoji("error"),
				api.UserMessage(err, ops.Fallback(ops.OpResumeMatch)))
			return
		}
		fmt.Printf("%s %s %s\n", emoji.GetEmoji("target"), createScoreBar(match.MatchScore), match.Headline())
	}
}
