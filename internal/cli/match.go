package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yildizm/TalentTrack/internal/api"
	"github.com/yildizm/TalentTrack/internal/formatter"
	"github.com/yildizm/TalentTrack/internal/ops"
	"github.com/yildizm/TalentTrack/internal/positions"
)

func newMatchCommand() *cobra.Command {
	var (
		positionName string
		jobFile      string
		jobTitle     string
		jobDesc      string
		skills       []string
		candidates   []string
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Rank candidates against a position",
		Long: `Send a position profile to the matching endpoint and print the
ranked candidate scores.

The position may come from a named profile (built in or configured),
from a YAML file, or from --title/--description/--skills directly.`,
		Example: `  # Use a named position profile
  talenttrack match --position backend-engineer --candidate c-101 --candidate c-102

  # Load the position from a file
  talenttrack match --job openings/staff-engineer.yaml

  # Describe the position inline
  talenttrack match --title "Data Analyst" --description "SQL heavy reporting role" --skills sql,python`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := newWorkspace()
			if err != nil {
				return err
			}
			if err := ws.requireSession(); err != nil {
				return err
			}
			defer ws.finish()

			req := api.MatchRequest{
				JobTitle:       jobTitle,
				JobDescription: jobDesc,
				RequiredSkills: skills,
				CandidateIDs:   candidates,
			}

			switch {
			case positionName != "":
				pos, err := positions.NewLoader(ws.cfg.Positions).Find(positionName)
				if err != nil {
					return err
				}
				applyPosition(&req, pos)
			case jobFile != "":
				loaded, err := positions.LoadFromFile(jobFile)
				if err != nil {
					return err
				}
				if len(loaded) == 0 {
					return fmt.Errorf("no positions found in %s", jobFile)
				}
				applyPosition(&req, loaded[0])
			}

			if strings.TrimSpace(req.JobDescription) == "" {
				return fmt.Errorf("no position given: use --position, --job or --description")
			}

			if _, err := ws.dispatcher.MatchResumes(cmd.Context(), req); err != nil {
				return fmt.Errorf("%s", api.UserMessage(err, ops.Fallback(ops.OpResumeMatch)))
			}

			sess := ws.store.Session()
			return render(&formatter.Report{
				User:    &sess.User,
				Resumes: ws.store.ResumeAnalyses(),
			})
		},
	}

	cmd.Flags().StringVarP(&positionName, "position", "P", "", "named position profile")
	cmd.Flags().StringVarP(&jobFile, "job", "j", "", "position profile YAML file")
	cmd.Flags().StringVar(&jobTitle, "title", "", "position title")
	cmd.Flags().StringVar(&jobDesc, "description", "", "position description")
	cmd.Flags().StringSliceVar(&skills, "skills", nil, "required skills (comma separated)")
	cmd.Flags().StringArrayVar(&candidates, "candidate", nil, "candidate ID to rank (repeatable)")

	return cmd
}

// applyPosition fills request fields from a profile without clobbering
// explicit flag values
func applyPosition(req *api.MatchRequest, pos *positions.Position) {
	if req.JobID == "" {
		req.JobID = pos.JobID
	}
	if req.JobTitle == "" {
		req.JobTitle = pos.Title
	}
	if req.JobDescription == "" {
		req.JobDescription = pos.Description
	}
	if len(req.RequiredSkills) == 0 {
		req.RequiredSkills = pos.RequiredSkills
	}
}
