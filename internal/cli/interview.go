package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yildizm/TalentTrack/internal/api"
	"github.com/yildizm/TalentTrack/internal/formatter"
	"github.com/yildizm/TalentTrack/internal/forms"
	"github.com/yildizm/TalentTrack/internal/ops"
)

func newInterviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interview",
		Short: "Process interview recordings and transcripts",
		Long: `Send interview material for analysis. Recordings are transcribed
and scored server side; existing transcripts are scored directly.`,
	}

	cmd.AddCommand(newInterviewAudioCommand())
	cmd.AddCommand(newInterviewTextCommand())
	cmd.AddCommand(newInterviewSummaryCommand())

	return cmd
}

func newInterviewAudioCommand() *cobra.Command {
	var candidateID, jobID string

	cmd := &cobra.Command{
		Use:   "audio <recording>",
		Short: "Upload an interview recording",
		Example: `  talenttrack interview audio calls/c-101-screen.mp3 --candidate c-101
  talenttrack interview audio onsite.wav --candidate c-204 --job backend-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := newWorkspace()
			if err != nil {
				return err
			}
			if err := ws.requireSession(); err != nil {
				return err
			}
			defer ws.finish()

			form := forms.NewAudioUploadForm(ws.cfg.Upload)
			if err := form.Select(args[0]); err != nil {
				return err
			}

			upload, err := api.OpenUpload(args[0])
			if err != nil {
				return err
			}
			defer upload.Close()

			req := api.AudioUpload{
				File:        upload.Upload,
				CandidateID: candidateID,
				JobID:       jobID,
			}
			if _, err := ws.dispatcher.ProcessInterviewAudio(cmd.Context(), req); err != nil {
				return fmt.Errorf("%s", api.UserMessage(err, ops.Fallback(ops.OpInterviewAudio)))
			}

			return renderInterviews(ws)
		},
	}

	cmd.Flags().StringVar(&candidateID, "candidate", "", "candidate ID the recording belongs to")
	cmd.Flags().StringVar(&jobID, "job", "", "job ID the interview was held for")

	return cmd
}

func newInterviewTextCommand() *cobra.Command {
	var interviewID, candidateID, jobID string

	cmd := &cobra.Command{
		Use:   "text <transcript>",
		Short: "Analyze an interview transcript file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := newWorkspace()
			if err != nil {
				return err
			}
			if err := ws.requireSession(); err != nil {
				return err
			}
			defer ws.finish()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read transcript: %w", err)
			}
			if len(data) == 0 {
				return fmt.Errorf("transcript file is empty: %s", args[0])
			}

			req := api.InterviewTextRequest{
				InterviewID: interviewID,
				CandidateID: candidateID,
				JobID:       jobID,
				Transcript:  string(data),
			}
			if _, err := ws.dispatcher.ProcessInterviewText(cmd.Context(), req); err != nil {
				return fmt.Errorf("%s", api.UserMessage(err, ops.Fallback(ops.OpInterviewText)))
			}

			return renderInterviews(ws)
		},
	}

	cmd.Flags().StringVar(&interviewID, "interview", "", "interview ID")
	cmd.Flags().StringVar(&candidateID, "candidate", "", "candidate ID")
	cmd.Flags().StringVar(&jobID, "job", "", "job ID")

	return cmd
}

func newInterviewSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <interview-id>",
		Short: "Fetch the stored analysis for an interview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := newWorkspace()
			if err != nil {
				return err
			}
			if err := ws.requireSession(); err != nil {
				return err
			}
			defer ws.finish()

			if _, err := ws.dispatcher.FetchInterviewSummary(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("%s", api.UserMessage(err, ops.Fallback(ops.OpInterviewSummary)))
			}

			return renderInterviews(ws)
		},
	}
}

func renderInterviews(ws *workspace) error {
	sess := ws.store.Session()
	return render(&formatter.Report{
		User:       &sess.User,
		Interviews: ws.store.InterviewAnalyses(),
	})
}
