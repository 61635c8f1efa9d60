package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/ariel-frischer/tgit/internal/build"
	clierrors "github.com/ariel-frischer/tgit/internal/errors"
	gitrepo "github.com/ariel-frischer/tgit/internal/git"
	"github.com/spf13/cobra"
)

// Command groups shown in help output.
const (
	GroupChangelog = "changelog"
	GroupSetup     = "setup"
)

var (
	configFileFlag string
	debugFlag      bool
	verboseFlag    bool
)

var rootCmd = &cobra.Command{
	Use:   "tgit",
	Short: "Generate changelogs from conventional commits",
	Long: `tgit reads a git repository's history, keeps the commits whose subject follows
the conventional-commit format, and renders them as a markdown changelog grouped
by change type, with links to the hosting web UI when the remote is recognized.

Configuration is loaded with the following priority (highest to lowest):
  1. Command-line flags
  2. Environment variables (TGIT_*, "__" separates nesting)
  3. --config file
  4. Project config (<repo>/.tgit/config.yml)
  5. User config (~/.config/tgit/config.yml)
  6. Built-in defaults`,
	Example: `  # Changelog for the latest release of the current repository
  tgit changelog

  # Explicit range
  tgit changelog --from v1.0.0 --to v1.1.0

  # Several repositories at once
  tgit changelog ./api ./web`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureDebugLogging(cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupChangelog, Title: "Changelog Commands:"},
		&cobra.Group{ID: GroupSetup, Title: "Configuration & Info:"},
	)

	rootCmd.Version = build.Version
	rootCmd.SetVersionTemplate(build.Info() + "\n")

	rootCmd.PersistentFlags().StringVar(&configFileFlag, "config", "", "Config file (overrides project and user config)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print git operations and resolution steps to stderr")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Print every extracted commit to stderr")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.New(clierrors.Argument, err.Error(),
			fmt.Sprintf("Run '%s --help' for the available flags", cmd.CommandPath()),
		).WithUsage(cmd.UseLine())
	})
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// printError writes err in the structured CLI format. Exit-only errors were
// already reported by the command that returned them.
func printError(w io.Writer, err error) {
	if _, ok := err.(*ExitError); ok {
		return
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		clierrors.FprintError(w, cliErr)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

// debugf is the active debug logger, nil unless --debug is set.
var debugf func(format string, args ...any)

func configureDebugLogging(w io.Writer) {
	if !debugFlag {
		debugf = nil
		gitrepo.SetDebugLogger(nil)
		return
	}
	lw := &lockedWriter{w: w}
	debugf = func(format string, args ...any) {
		fmt.Fprintf(lw, "[debug] "+format+"\n", args...)
	}
	gitrepo.SetDebugLogger(debugf)
}

// lockedWriter serializes writes from concurrent generations.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
