package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/kilovim/internal/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the kilovim configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a commented default config file",
	Long: `Write a config file with every option at its default value.

The file goes to .kilovim/config.yaml unless a path is given. An existing
file is left alone unless --force is set.

Examples:
  # Project-local config
  kilovim config init

  # User config
  kilovim config init ~/.config/kilovim/config.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := localConfigPath
		if len(args) > 0 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.WriteDefaultConfig(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one option in the config file",
	Long: `Change one option and save the config file, keeping its comments.

Keys:
  editor.indent_width   1..16
  editor.smart_indent   true|false
  log.debug             true|false
  log.level             debug|info|warn|error
  log.path              file path

The file written is the one in use (see --config), or .kilovim/config.yaml
when none was found.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if configErr != nil {
			return fmt.Errorf("reading config: %w", configErr)
		}
		updated := cfg
		if err := applySetting(&updated, args[0], args[1]); err != nil {
			return err
		}
		if err := config.Validate(updated); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		path := viper.ConfigFileUsed()
		if path == "" {
			path = localConfigPath
		}
		if err := config.Save(path, updated); err != nil {
			return fmt.Errorf("saving %s: %w", path, err)
		}
		cfg = updated
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (%s)\n", args[0], args[1], path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if configErr != nil {
			return fmt.Errorf("reading config: %w", configErr)
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		if path := viper.ConfigFileUsed(); path != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", path)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configSetCmd, configShowCmd)

	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing file")
}

// applySetting parses value for key into cfg.
func applySetting(cfg *config.Config, key, value string) error {
	switch key {
	case "editor.indent_width":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		cfg.Editor.IndentWidth = n
	case "editor.smart_indent":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		cfg.Editor.SmartIndent = b
	case "log.debug":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		cfg.Log.Debug = b
	case "log.level":
		cfg.Log.Level = value
	case "log.path":
		cfg.Log.Path = value
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}
