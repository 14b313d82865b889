package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yildizm/TalentTrack/internal/api"
	"github.com/yildizm/TalentTrack/internal/formatter"
	"github.com/yildizm/TalentTrack/internal/ops"
	"github.com/yildizm/TalentTrack/internal/positions"
)

func newBiasCommand() *cobra.Command {
	var (
		jobID        string
		positionName string
		textFile     string
	)

	cmd := &cobra.Command{
		Use:   "bias [text]",
		Short: "Check a job text for biased language",
		Long: `Send a job description or other hiring text to the bias detection
endpoint. Flagged terms come back with suggested replacements.

The text may be given inline, read from a file with --file, taken from
a named position profile, or piped on stdin.`,
		Example: `  talenttrack bias "Looking for a young and energetic rockstar"
  talenttrack bias --file openings/backend.txt
  talenttrack bias --position backend-engineer`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := newWorkspace()
			if err != nil {
				return err
			}
			if err := ws.requireSession(); err != nil {
				return err
			}
			defer ws.finish()

			var text string
			switch {
			case len(args) == 1:
				text = args[0]
			case textFile != "":
				data, err := os.ReadFile(textFile)
				if err != nil {
					return fmt.Errorf("failed to read text: %w", err)
				}
				text = string(data)
			case positionName != "":
				pos, err := positions.NewLoader(ws.cfg.Positions).Find(positionName)
				if err != nil {
					return err
				}
				text = pos.Description
				if jobID == "" {
					jobID = pos.JobID
				}
			default:
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				text = string(data)
			}

			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("no text to analyze")
			}

			req := api.BiasRequest{JobID: jobID, Text: text}
			if _, err := ws.dispatcher.AnalyzeBias(cmd.Context(), req); err != nil {
				return fmt.Errorf("%s", api.UserMessage(err, ops.Fallback(ops.OpBiasAnalysis)))
			}

			sess := ws.store.Session()
			return render(&formatter.Report{
				User:   &sess.User,
				Biases: ws.store.BiasDetections(),
			})
		},
	}

	cmd.Flags().StringVar(&jobID, "job", "", "job ID the text belongs to")
	cmd.Flags().StringVarP(&positionName, "position", "P", "", "analyze a named position profile")
	cmd.Flags().StringVarP(&textFile, "file", "f", "", "read the text from a file")

	return cmd
}
