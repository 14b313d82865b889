package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/yildizm/TalentTrack/internal/common"
	"github.com/yildizm/TalentTrack/internal/emoji"
	"github.com/yildizm/TalentTrack/internal/formatter"
	"github.com/yildizm/TalentTrack/internal/history"
)

func newHistoryCommand() *cobra.Command {
	var (
		category string
		search   string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse past analysis results",
		Long: `List results saved to the local archive. Every fulfilled analysis
is appended there, so past matches, interview scores, chat summaries
and bias reports survive between runs.`,
		Example: `  talenttrack history
  talenttrack history --category resume --limit 5
  talenttrack history --search "golang" --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := newWorkspace()
			if err != nil {
				return err
			}
			if ws.archive == nil {
				return fmt.Errorf("history is disabled in the configuration")
			}

			filter := &history.FilterOptions{Search: search, Limit: limit}
			if category != "" {
				cat, ok := common.ParseCategory(category)
				if !ok {
					return fmt.Errorf("unknown category: %s (must be one of: resume, interview, chat, bias)", category)
				}
				filter.Category = cat
			}

			entries, err := ws.archive.List(filter)
			if err != nil {
				return err
			}

			return render(&formatter.Report{History: entries})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only one category (resume, interview, chat, bias)")
	cmd.Flags().StringVar(&search, "search", "", "only entries whose headline contains this text")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of entries (0 for all)")

	cmd.AddCommand(newHistoryStatsCommand())
	cmd.AddCommand(newHistoryClearCommand())

	return cmd
}

func newHistoryStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show archive entry counts per category",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := newWorkspace()
			if err != nil {
				return err
			}
			if ws.archive == nil {
				return fmt.Errorf("history is disabled in the configuration")
			}

			counts, err := ws.archive.Counts()
			if err != nil {
				return err
			}

			cats := make([]common.Category, 0, len(counts))
			total := 0
			for cat, n := range counts {
				cats = append(cats, cat)
				total += n
			}
			sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })

			fmt.Printf("%s Archive: %s\n", emoji.GetEmoji("history"), ws.archive.Path())
			for _, cat := range cats {
				fmt.Printf("  %s %-10s %d\n", categoryEmoji(cat), cat, counts[cat])
			}
			fmt.Printf("  %s %-10s %d\n", emoji.GetEmoji("number"), "total", total)
			return nil
		},
	}
}

func newHistoryClearCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all archived results",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := newWorkspace()
			if err != nil {
				return err
			}
			if ws.archive == nil {
				return fmt.Errorf("history is disabled in the configuration")
			}

			if !yes {
				fmt.Printf("Delete all entries in %s? [y/N] ", ws.archive.Path())
				var answer string
				if _, err := fmt.Scanln(&answer); err != nil || (answer != "y" && answer != "Y") {
					fmt.Println("Aborted")
					return nil
				}
			}

			if err := ws.archive.Clear(); err != nil {
				return err
			}
			fmt.Printf("%s History cleared\n", emoji.GetEmoji("success"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
