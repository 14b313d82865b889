package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/yildizm/TalentTrack/internal/config"
	"github.com/yildizm/TalentTrack/internal/emoji"
)

var (
	cfgFile   string
	serverURL string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string
	showStats bool
)

// globalConfig is the merged configuration loaded once per invocation
var globalConfig *config.Config

// GetGlobalConfig returns the loaded configuration, falling back to
// defaults when loading has not happened yet
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

// SetGlobalConfig replaces the loaded configuration (used by tests)
func SetGlobalConfig(cfg *config.Config) {
	globalConfig = cfg
}

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "talenttrack",
		Short: "Recruiting workspace for the TalentTracker backend",
		Long: `TalentTrack is a command-line client for the TalentTracker recruiting
backend. It signs recruiters in, matches and uploads resumes, processes
interview recordings and transcripts, summarizes candidate chats, and
checks job descriptions for biased language.

Every analysis runs asynchronously against the backend; results are
shown when they settle and archived locally for later review.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)

			loader := config.NewLoader()
			cfg, err := loader.LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if !cmd.Flag("output").Changed && cfg.Output.DefaultFormat != "" {
				outputFmt = cfg.Output.DefaultFormat
			}
			if cfg.Output.Verbose {
				verbose = true
			}
			if serverURL != "" {
				cfg.Server.BaseURL = serverURL
			}
			globalConfig = cfg
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "backend base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "terminal", "output format (terminal, json, markdown, csv)")
	rootCmd.PersistentFlags().BoolVar(&showStats, "stats", false, "print client call statistics after the command")

	// Add subcommands
	rootCmd.AddCommand(newLoginCommand())
	rootCmd.AddCommand(newLogoutCommand())
	rootCmd.AddCommand(newMatchCommand())
	rootCmd.AddCommand(newUploadCommand())
	rootCmd.AddCommand(newInterviewCommand())
	rootCmd.AddCommand(newSummarizeCommand())
	rootCmd.AddCommand(newBiasCommand())
	rootCmd.AddCommand(newDashboardCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newPositionsCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			fmt.Printf("TalentTrack %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// Global helpers
func isVerbose() bool {
	return verbose
}

func getOutputFormat() string {
	return outputFmt
}

func isEmojiDisabled() bool {
	return noEmoji
}
