package cli

import (
	"fmt"
	"io"

	"github.com/ariel-frischer/tgit/internal/config"
	gitrepo "github.com/ariel-frischer/tgit/internal/git"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect tgit configuration",
	Long: `Inspect tgit configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (TGIT_*, e.g. TGIT_CHANGELOG__HASH_LENGTH=10)
  2. --config file
  3. Project config (<repo>/.tgit/config.yml or config.json)
  4. User config (~/.config/tgit/config.yml or config.json)
  5. Built-in defaults`,
	Example: `  # Show the effective configuration for the current repository
  tgit config show

  # List all scalar keys
  tgit config keys

  # Print a commented starting config
  tgit config template > .tgit/config.yml`,
}

var configShowCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Show the effective configuration as YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) == 1 {
			path = args[0]
		}
		return runConfigShow(cmd.OutOrStdout(), path)
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List configuration keys with defaults",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printConfigKeys(cmd.OutOrStdout())
	},
}

var configTemplateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print a commented default configuration",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), config.GetDefaultConfigTemplate())
	},
}

func init() {
	configCmd.GroupID = GroupSetup
	configCmd.AddCommand(configShowCmd, configKeysCmd, configTemplateCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(w io.Writer, path string) error {
	projectDir := path
	if root, err := gitrepo.RepositoryRoot(path); err == nil {
		projectDir = root
	}

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectDir: projectDir,
		ConfigFile: configFileFlag,
	})
	if err != nil {
		return configError(err)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	return enc.Close()
}

func printConfigKeys(w io.Writer) {
	for _, key := range config.Keys {
		fmt.Fprintf(w, "%-26s %-24s default: %-10v %s\n", key.Name, key.TypeName(), key.Default, key.Help)
	}
	fmt.Fprintf(w, "%-26s %-24s %s\n", "commit.types", "list", "Extra commit types: [{type, emoji, title}]")
}
