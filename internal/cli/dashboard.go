package cli

import (
	"github.com/spf13/cobra"

	"github.com/yildizm/TalentTrack/internal/ui"
)

func newDashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Open the interactive recruiting dashboard",
		Long: `Open the full-screen dashboard. Sign in, add candidates, chat with
the summarizer and browse analysis results without leaving the
terminal.

Keys: arrows navigate, enter selects, esc goes back, q quits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := newWorkspace()
			if err != nil {
				return err
			}
			return ui.Run(ws.dispatcher, ws.store, ws.cfg)
		},
	}
}
