package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"nextup/internal/config"
	"nextup/internal/logging"
	"nextup/internal/task"
)

// Global flag values accessible to all subcommands.
var (
	flagVerbose bool
	flagQuiet   bool
	flagConfig  string
	flagFile    string
	flagNoColor bool
)

// rootCmd is the base command for nextup.
var rootCmd = &cobra.Command{
	Use:   "nextup",
	Short: "Priority task scheduler that knows what to work on next",
	Long: `nextup is a single-user task scheduler. Tasks carry a priority
(lower = more urgent), a due date, and optional prerequisite tasks.
Everything lives in one local JSON file, and nextup always knows the
answer to "what should I work on next?": the most urgent task whose
prerequisites are all done.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	// When invoked with no subcommand, start the interactive menu.
	// Help is still available via `nextup --help` / `nextup -h`.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(cmd, args)
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Check env vars for flags not explicitly set on command line.
		if !cmd.Flags().Changed("verbose") && os.Getenv("NEXTUP_VERBOSE") != "" {
			flagVerbose = true
		}
		if !cmd.Flags().Changed("quiet") && os.Getenv("NEXTUP_QUIET") != "" {
			flagQuiet = true
		}
		if !cmd.Flags().Changed("no-color") && (os.Getenv("NO_COLOR") != "" || os.Getenv("NEXTUP_NO_COLOR") != "") {
			flagNoColor = true
		}

		// Initialize logging.
		jsonFormat := os.Getenv("NEXTUP_LOG_FORMAT") == "json"
		logging.Setup(flagVerbose, flagQuiet, jsonFormat)

		// Handle --no-color: disable colored output.
		if flagNoColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose (debug) output (env: NEXTUP_VERBOSE)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress all output except errors (env: NEXTUP_QUIET)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to nextup.toml config file")
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Path to the task store file (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output (env: NEXTUP_NO_COLOR, NO_COLOR)")
}

// Execute runs the root command and returns the exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// loadContext resolves the configuration and opens the task manager
// against the effective store path: --file beats the config file, which
// beats the built-in default.
func loadContext() (*config.Config, *task.Manager, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}

	path := flagFile
	if path == "" {
		path = cfg.Store.Path
	}

	mgr, err := task.NewManager(task.NewStore(path))
	if err != nil {
		return nil, nil, err
	}
	return cfg, mgr, nil
}
