package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yildizm/TalentTrack/internal/positions"
)

func newPositionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "positions",
		Short: "Manage position profiles",
		Long: `List and inspect position profiles. Profiles from configured
directories are merged over the built-in set; a profile with the same
name replaces the built-in one.`,
	}

	cmd.AddCommand(newPositionsListCommand())
	cmd.AddCommand(newPositionsShowCommand())

	return cmd
}

func newPositionsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available position profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetGlobalConfig()
			loaded, err := positions.NewLoader(cfg.Positions).Load()
			if err != nil {
				return err
			}

			fmt.Printf("%s %d position profile(s)\n\n", GetEmoji("target"), len(loaded))
			for _, pos := range loaded {
				fmt.Printf("  %-20s %s\n", pos.Name, pos.Title)
			}
			return nil
		},
	}
}

func newPositionsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one position profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetGlobalConfig()
			pos, err := positions.NewLoader(cfg.Positions).Find(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s %s\n\n", GetEmoji("target"), pos.Title)
			fmt.Printf("Name:        %s\n", pos.Name)
			if pos.JobID != "" {
				fmt.Printf("Job ID:      %s\n", pos.JobID)
			}
			if len(pos.RequiredSkills) > 0 {
				fmt.Printf("Skills:      %s\n", strings.Join(pos.RequiredSkills, ", "))
			}
			if len(pos.Tags) > 0 {
				fmt.Printf("Tags:        %s\n", strings.Join(pos.Tags, ", "))
			}
			fmt.Printf("\n%s\n", strings.TrimSpace(pos.Description))
			return nil
		},
	}
}
