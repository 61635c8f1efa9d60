package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/ariel-frischer/tgit/internal/changelog"
	"github.com/ariel-frischer/tgit/internal/config"
	clierrors "github.com/ariel-frischer/tgit/internal/errors"
	gitrepo "github.com/ariel-frischer/tgit/internal/git"
	"github.com/ariel-frischer/tgit/internal/progress"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxParallelRepos bounds concurrent generations when several paths are given.
const maxParallelRepos = 4

var (
	changelogFromFlag   string
	changelogToFlag     string
	changelogFormatFlag string
	changelogRemoteFlag string
	changelogEmojiFlag  bool
	changelogPlainFlag  bool
)

var changelogCmd = &cobra.Command{
	Use:   "changelog [path...]",
	Short: "Generate a changelog from conventional commits",
	Long: `Generate a changelog for the commits between two refs.

Without --from, the range starts at the latest tag (or the root commit when the
repository has no tags). Without --to, it ends at HEAD. When HEAD is itself
tagged and --from is not given, the range moves back one release so the output
describes the release that was just tagged.

Commits whose subject does not follow the conventional-commit format are left
out. Links to the hosting web UI are generated when the remote URL is an
ssh (git@host:ns/repo.git) or https (https://host/ns/repo.git) URL.`,
	Example: `  tgit changelog                         # latest release of the current repository
  tgit changelog -f v1.0.0 -t v1.1.0     # explicit range
  tgit changelog --format yaml           # structured output
  tgit changelog --format terminal       # colored preview
  tgit changelog ../other-repo           # another repository`,
	RunE: runChangelog,
}

func init() {
	changelogCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(changelogCmd)

	changelogCmd.Flags().StringVarP(&changelogFromFlag, "from", "f", "", "Start of the range (tag, branch or hash, exclusive)")
	changelogCmd.Flags().StringVarP(&changelogToFlag, "to", "t", "", "End of the range (tag, branch or hash, inclusive; default HEAD)")
	changelogCmd.Flags().StringVar(&changelogFormatFlag, "format", "", "Output format: markdown, yaml or terminal (default from config)")
	changelogCmd.Flags().StringVar(&changelogRemoteFlag, "remote", "", "Remote used for links (default from config, origin)")
	changelogCmd.Flags().BoolVar(&changelogEmojiFlag, "emoji", false, "Prefix section titles with emoji shortcodes")
	changelogCmd.Flags().BoolVar(&changelogPlainFlag, "plain", false, "Plain terminal output (no colors)")
}

// repoChangelog is the outcome of one repository's generation.
type repoChangelog struct {
	path   string
	cfg    *config.Configuration
	result *changelog.Result
	err    error
}

func runChangelog(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	overrides := changelogOverrides(cmd)
	if f, ok := overrides["changelog.format"]; ok {
		if _, err := config.ParseValue("changelog.format", f); err != nil {
			return clierrors.InvalidFlagValue("format", f, config.Formats)
		}
	}

	stderr := cmd.ErrOrStderr()
	sp := progress.NewSpinner(stderr, terminalCapabilities(stderr), "Reading history...")
	if !debugFlag {
		sp.Start()
	}

	outcomes := make([]*repoChangelog, len(paths))
	var done atomic.Int32
	g := new(errgroup.Group)
	g.SetLimit(maxParallelRepos)
	for i, path := range paths {
		g.Go(func() error {
			outcomes[i] = generateChangelog(path, overrides)
			if n := done.Add(1); len(paths) > 1 {
				sp.UpdateMessage(fmt.Sprintf("Reading history (%d/%d repositories)...", n, len(paths)))
			}
			return nil
		})
	}
	_ = g.Wait()

	// Nothing is written unless every repository succeeded.
	for _, o := range outcomes {
		if o.err != nil {
			sp.Stop("", false)
			return o.err
		}
	}
	sp.Stop("", true)

	out := cmd.OutOrStdout()
	for i, o := range outcomes {
		reportWarnings(stderr, o, len(paths) > 1)
		if verboseFlag {
			printCommits(stderr, o.result)
		}
		if i > 0 {
			if err := writeSeparator(out, o.cfg.Changelog.Format); err != nil {
				return err
			}
		}
		if err := writeDocument(out, o.result.Document, o.cfg); err != nil {
			return clierrors.OutputFailed(err)
		}
	}

	return nil
}

// changelogOverrides turns explicitly set flags into config overrides.
func changelogOverrides(cmd *cobra.Command) map[string]string {
	overrides := make(map[string]string)
	if cmd.Flags().Changed("format") {
		overrides["changelog.format"] = changelogFormatFlag
	}
	if cmd.Flags().Changed("remote") {
		overrides["changelog.remote"] = changelogRemoteFlag
	}
	if cmd.Flags().Changed("emoji") {
		overrides["changelog.section_emoji"] = fmt.Sprintf("%t", changelogEmojiFlag)
	}
	return overrides
}

// generateChangelog loads the repository's configuration and runs the generator.
// Every failure is returned as a CLIError.
func generateChangelog(path string, overrides map[string]string) *repoChangelog {
	o := &repoChangelog{path: path}

	root, err := gitrepo.RepositoryRoot(path)
	if err != nil {
		o.err = repositoryError(path, err)
		return o
	}

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectDir: root,
		ConfigFile: configFileFlag,
		Overrides:  overrides,
	})
	if err != nil {
		o.err = configError(err)
		return o
	}
	o.cfg = cfg

	repo, err := gitrepo.Open(root, gitrepo.OpenOptions{MinAbbrev: cfg.Changelog.HashLength})
	if err != nil {
		o.err = repositoryError(path, err)
		return o
	}

	gen := changelog.NewGenerator(repo)
	gen.Types = cfg.TypeTable()
	gen.Logf = debugf

	result, err := gen.Generate(changelog.Options{
		From:       changelogFromFlag,
		To:         changelogToFlag,
		RemoteName: cfg.Changelog.Remote,
	})
	if err != nil {
		o.err = generationError(path, err)
		return o
	}
	if debugf != nil {
		debugf("[changelog] %s: %d commits in %d sections", path, result.Document.CommitCount(), len(result.Document.Sections))
	}
	o.result = result
	return o
}

func repositoryError(path string, err error) error {
	if errors.Is(err, gitrepo.ErrNotRepository) {
		return clierrors.NotGitRepository(path, err)
	}
	return clierrors.GenerationFailed(path, err)
}

func configError(err error) error {
	if configFileFlag != "" && errors.Is(err, os.ErrNotExist) {
		return clierrors.ConfigFileNotFound(configFileFlag)
	}
	return clierrors.ConfigLoadError(err)
}

func generationError(path string, err error) error {
	var ambiguous *changelog.AmbiguousHistoryError
	if errors.As(err, &ambiguous) {
		return clierrors.AmbiguousHistory(ambiguous.Roots, err)
	}

	var refErr *changelog.RefResolutionError
	if errors.As(err, &refErr) {
		if refErr.Ref == changelog.HeadRef && changelogToFlag == "" {
			return clierrors.EmptyRepository(path)
		}
		return clierrors.UnknownRef(refErr.Ref, err)
	}

	return clierrors.GenerationFailed(path, err)
}

func reportWarnings(w io.Writer, o *repoChangelog, withPath bool) {
	context := ""
	if withPath {
		context = o.path
	}
	for _, warning := range o.result.Warnings {
		clierrors.FprintWarning(w, context, warning.Message)
	}
}

func printCommits(w io.Writer, r *changelog.Result) {
	for _, c := range r.Commits() {
		fmt.Fprintf(w, "%s\n\n", c.String())
	}
}

func writeSeparator(w io.Writer, format string) error {
	sep := "\n"
	if format == "yaml" {
		sep = "---\n"
	}
	_, err := io.WriteString(w, sep)
	return err
}

func writeDocument(w io.Writer, d *changelog.Document, cfg *config.Configuration) error {
	switch cfg.Changelog.Format {
	case "yaml":
		return changelog.WriteYAML(d, w)
	case "terminal":
		caps := terminalCapabilities(w)
		return changelog.FormatTerminal(d, w, changelog.FormatOptions{
			Plain:    changelogPlainFlag || !caps.SupportsColor,
			MaxWidth: caps.Width,
		})
	default:
		return changelog.RenderMarkdown(d, w, changelog.RenderOptions{SectionEmoji: cfg.Changelog.SectionEmoji})
	}
}

// terminalCapabilities inspects w when it is a real file, otherwise reports
// a non-interactive writer.
func terminalCapabilities(w io.Writer) progress.TerminalCapabilities {
	f, ok := w.(*os.File)
	if !ok {
		return progress.TerminalCapabilities{}
	}
	return progress.Detect(f)
}
