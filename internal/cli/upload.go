package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yildizm/TalentTrack/internal/api"
	"github.com/yildizm/TalentTrack/internal/emoji"
	"github.com/yildizm/TalentTrack/internal/formatter"
	"github.com/yildizm/TalentTrack/internal/forms"
	"github.com/yildizm/TalentTrack/internal/ops"
)

func newUploadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <resume>...",
		Short: "Upload resume files for matching",
		Long: `Upload one or more resume files. The backend extracts each
candidate profile and returns match analyses for the current openings.

Files are checked locally against the configured size limit and
accepted extensions before anything is sent.`,
		Example: `  talenttrack upload resumes/jane-doe.pdf
  talenttrack upload intake/*.pdf --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := newWorkspace()
			if err != nil {
				return err
			}
			if err := ws.requireSession(); err != nil {
				return err
			}
			defer ws.finish()

			form := forms.NewResumeUploadForm(ws.cfg.Upload)
			for _, path := range args {
				if err := form.Select(path); err != nil {
					return err
				}
			}

			uploads, err := api.OpenUploads(form.Selected())
			if err != nil {
				return err
			}
			defer api.CloseUploads(uploads)

			files := make([]api.Upload, len(uploads))
			for i, u := range uploads {
				files[i] = u.Upload
			}

			if isVerbose() {
				fmt.Printf("%s Uploading %d file(s)\n", emoji.GetEmoji("upload"), len(files))
			}

			if _, err := ws.dispatcher.UploadResumes(cmd.Context(), files); err != nil {
				return fmt.Errorf("%s", api.UserMessage(err, ops.Fallback(ops.OpResumeUpload)))
			}

			sess := ws.store.Session()
			return render(&formatter.Report{
				User:    &sess.User,
				Resumes: ws.store.ResumeAnalyses(),
			})
		},
	}

	return cmd
}
