package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/kilovim/internal/app"
	"github.com/zjrosen/kilovim/internal/config"
	"github.com/zjrosen/kilovim/internal/editor"
	"github.com/zjrosen/kilovim/internal/log"
	"github.com/zjrosen/kilovim/internal/textfile"
	"github.com/zjrosen/kilovim/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// typed text in the buffer.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

// localConfigPath is checked before the user config and is where
// `config init` writes by default.
const localConfigPath = ".kilovim/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
	configErr error
)

var rootCmd = &cobra.Command{
	Use:   "kilovim [file]",
	Short: "A small modal text editor",
	Long: `kilovim is a vi-style modal editor for plain text and markdown.

Normal mode moves and edits with counts and operators (3dd, dw, caw, >>),
Insert mode types text, V and v select lines or characters, and :w, :x,
:q and :q! save and quit. Long lines wrap at the terminal width.

Examples:
  # Open or create a file
  kilovim notes.md

  # Start with an empty, unnamed buffer
  kilovim

  # Write a debug log to kilovim.log
  kilovim --debug notes.md`,
	Version:      version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runEditor,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/kilovim/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log (also KILOVIM_DEBUG=1)")
	rootCmd.Flags().Int("indent-width", 0,
		"spaces per indent level for >> and << (overrides config)")
	rootCmd.Flags().Bool("no-smart-indent", false,
		"start with smart indent disabled")

	_ = viper.BindPFlag("editor.indent_width", rootCmd.Flags().Lookup("indent-width"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("editor.indent_width", defaults.Editor.IndentWidth)
	viper.SetDefault("editor.smart_indent", defaults.Editor.SmartIndent)
	viper.SetDefault("log.debug", defaults.Log.Debug)
	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.path", defaults.Log.Path)

	viper.SetEnvPrefix("kilovim")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .kilovim/config.yaml (current directory)
		// 2. ~/.config/kilovim/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "kilovim"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			configErr = err
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil && configErr == nil {
		configErr = err
	}
}

func runEditor(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return fmt.Errorf("reading config: %w", configErr)
	}
	if noSmart, _ := cmd.Flags().GetBool("no-smart-indent"); noSmart {
		cfg.Editor.SmartIndent = false
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cleanup, err := initLogging(cfg.Log)
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer cleanup()

	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	store := textfile.NewOS()
	engine, err := newEngine(store, cfg.Editor, name)
	if err != nil {
		return err
	}

	var opts []app.Option
	if name != "" {
		w, changes, err := watchFile(name)
		if err != nil {
			// editing still works without change detection
			log.Warn(log.CatFile, "file watch unavailable", "name", name, "error", err)
		} else {
			defer func() { _ = w.Stop() }()
			opts = append(opts, app.WithFileWatch(changes, func() bool {
				return engine.Filename() == name && store.ChangedOnDisk(name)
			}))
		}
	}

	p := tea.NewProgram(app.New(engine, opts...), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// initLogging enables the file logger when requested by flag, environment
// or config. The returned cleanup is always safe to call.
func initLogging(lc config.LogConfig) (func(), error) {
	debug := os.Getenv("KILOVIM_DEBUG") != "" || debugFlag || lc.Debug
	if !debug {
		log.SetEnabled(false)
		return func() {}, nil
	}

	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	logPath := os.Getenv("KILOVIM_LOG")
	if logPath == "" {
		logPath = lc.Path
	}
	cleanup, err := log.InitWithTeaLog(logPath, "kilovim")
	if err != nil {
		return nil, err
	}
	log.SetMinLevel(level)
	log.Info(log.CatConfig, "kilovim starting", "version", version, "logPath", logPath, "session", log.Session())
	return cleanup, nil
}

// newEngine builds an editor over the named file. A missing file opens as an
// empty document that will be created on the first write.
func newEngine(store *textfile.Store, ec config.EditorConfig, name string) (*editor.Engine, error) {
	e := editor.New(editor.Config{
		IndentWidth: ec.IndentWidth,
		SmartIndent: ec.SmartIndent,
		Filename:    name,
		Store:       store,
	})
	if name == "" {
		return e, nil
	}

	lines, err := store.Load(name)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	e.LoadText(lines)
	if !store.Exists(name) {
		e.SetStatus("%q [New]", name)
	} else {
		e.SetStatus("%q %dL", name, len(lines))
	}
	return e, nil
}

// watchFile starts a watcher on name's directory.
func watchFile(name string) (*watcher.Watcher, <-chan struct{}, error) {
	w, err := watcher.New(watcher.DefaultConfig(name))
	if err != nil {
		return nil, nil, err
	}
	changes, err := w.Start()
	if err != nil {
		_ = w.Stop()
		return nil, nil, err
	}
	return w, changes, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
