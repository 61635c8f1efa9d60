package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# tgit configuration
# Place in ~/.config/tgit/config.yml or <repo>/.tgit/config.yml.
# See 'tgit config keys' for all options.

changelog:
  hash_length: 7                      # Minimum abbreviated hash length (4-40)
  section_emoji: false                # Prefix section titles with emoji shortcodes
  remote: origin                      # Remote used for compare and commit links
  format: markdown                    # Default output: markdown | yaml | terminal

commit:
  types: []                           # Extra commit types, rendered after the built-ins
  # types:
  #   - type: build
  #     emoji: ":construction_worker:"
  #     title: Builds
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	defaults := make(map[string]interface{}, len(Keys)+1)
	for _, key := range Keys {
		defaults[key.Name] = key.Default
	}
	defaults["commit.types"] = []interface{}{}
	return defaults
}

// defaultFormat is the output format used when nothing is configured.
const defaultFormat = "markdown"

// Formats lists the accepted output formats.
var Formats = []string{defaultFormat, "yaml", "terminal"}
