package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yildizm/TalentTrack/internal/api"
	"github.com/yildizm/TalentTrack/internal/formatter"
	"github.com/yildizm/TalentTrack/internal/ops"
	"github.com/yildizm/TalentTrack/internal/transcript"
)

func newSummarizeCommand() *cobra.Command {
	var candidateID string

	cmd := &cobra.Command{
		Use:   "summarize [conversation]",
		Short: "Summarize a candidate conversation",
		Long: `Summarize a chat conversation with a candidate. The conversation
is read from the given file, or from stdin when no file is named.

Both the JSON message format and plain "Sender: text" dialog lines are
accepted; the format is detected from the content.`,
		Example: `  talenttrack summarize chats/c-101.json --candidate c-101
  cat thread.txt | talenttrack summarize`,
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

			var data []byte
			if len(args) == 1 {
				data, err = os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("failed to read conversation: %w", err)
				}
			} else {
				data, err = io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
			}

			messages, err := transcript.ParseAuto(data)
			if err != nil {
				return err
			}

			req := api.ChatSummaryRequest{
				CandidateID: candidateID,
				Messages:    messages,
			}
			if _, err := ws.dispatcher.SummarizeChat(cmd.Context(), req); err != nil {
				return fmt.Errorf("%s", api.UserMessage(err, ops.Fallback(ops.OpChatSummary)))
			}

			sess := ws.store.Session()
			return render(&formatter.Report{
				User:  &sess.User,
				Chats: ws.store.ChatSummaries(),
			})
		},
	}

	cmd.Flags().StringVar(&candidateID, "candidate", "", "candidate ID the conversation belongs to")

	return cmd
}
