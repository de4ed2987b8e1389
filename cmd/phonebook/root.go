// Root command for the phonebook CLI.
package main

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/phonebook/internal/logging"
	"github.com/mesh-intelligence/phonebook/internal/paths"
	"github.com/mesh-intelligence/phonebook/internal/render"
	"github.com/mesh-intelligence/phonebook/pkg/phonebook"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// memoryLocation selects a throwaway in-memory store.
const memoryLocation = ":memory:"

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	location  string
	jsonMode  bool
	noColor   bool
}

// app is the state shared by one CLI invocation.
type app struct {
	flags     rootFlags
	cfg       *viper.Viper
	configDir string
	logger    *slog.Logger
	closeLog  func() error
}

// newRootCmd creates the top-level "phonebook" command with global flags
// and all subcommands registered. Running it without a subcommand starts
// the interactive shell. The returned func closes the log file, if any,
// once the command has run.
func newRootCmd() (*cobra.Command, func() error) {
	a := &app{
		cfg:      newViper(),
		logger:   slog.New(slog.DiscardHandler),
		closeLog: func() error { return nil },
	}

	root := &cobra.Command{
		Use:     "phonebook",
		Short:   "A personal phone book",
		Long:    "phonebook stores names with a mobile and a work number in SQLite or a flat text file.\nRun without a command to start the interactive shell.",
		Version: phonebook.Version,
		Args:    cobra.NoArgs,
		// Errors are reported by run with an exit code.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runShell,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	pf.StringVar(&a.flags.location, "location", "", `store file; ":memory:" for a throwaway store`)
	pf.String("backend", "", "storage backend: sqlite or flatfile (default: sqlite)")
	pf.String("log-level", "", "log level: debug, info, warn or error (default: warn)")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output as JSON")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "disable colored output")

	// Flags override config.yaml and environment when set.
	_ = a.cfg.BindPFlag(cfgKeyBackend, pf.Lookup("backend"))
	_ = a.cfg.BindPFlag(cfgKeyLogLevel, pf.Lookup("log-level"))

	root.AddCommand(
		a.newVersionCmd(),
		a.newInitCmd(),
		a.newConfigCmd(),
		a.newShowCmd(),
		a.newGetCmd(),
		a.newAddCmd(),
		a.newModifyCmd(),
		a.newRemoveCmd(),
		a.newImportCmd(),
		a.newExportCmd(),
		a.newShellCmd(),
	)
	return root, func() error { return a.closeLog() }
}

// setup resolves the config directory, loads config.yaml, and builds the
// logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if a.flags.noColor {
		render.DisableColor()
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	a.configDir = configDir

	if err := loadConfig(a.cfg, configDir); err != nil {
		return err
	}

	logger, closeLog := logging.Open(logging.Options{
		Level:  a.cfg.GetString(cfgKeyLogLevel),
		Format: a.cfg.GetString(cfgKeyLogFormat),
		File:   a.cfg.GetString(cfgKeyLogFile),
		Output: cmd.ErrOrStderr(),
	})
	a.logger = logger.With("run_id", newRunID())
	a.closeLog = closeLog

	a.logger.Debug("configuration loaded",
		"config_dir", configDir,
		"config_file", a.cfg.ConfigFileUsed(),
		"backend", a.backend())
	return nil
}

// newRunID returns a UUID v7 identifying this invocation in logs.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

func (a *app) backend() string {
	return a.cfg.GetString(cfgKeyBackend)
}

// storeConfig resolves the backend and location following the precedence
// flag > config.yaml > environment > platform default.
func (a *app) storeConfig() (types.Config, string, error) {
	backend := a.backend()
	cfg := types.Config{Backend: backend}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, "", userError(fmt.Errorf("backend %q: %w", backend, err))
	}

	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, "", fmt.Errorf("resolve data dir: %w", err)
	}
	location, err := paths.ResolveLocation(a.flags.location, a.cfg.GetString(cfgKeyLocation), dataDir, phonebook.DefaultFileName(backend))
	if err != nil {
		return types.Config{}, "", fmt.Errorf("resolve location: %w", err)
	}
	cfg.Location = location
	return cfg, dataDir, nil
}

// openStore opens the configured store. The caller must Close it.
func (a *app) openStore() (types.Store, error) {
	cfg, _, err := a.storeConfig()
	if err != nil {
		return nil, err
	}
	store, err := phonebook.Open(cfg, a.logger)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("store opened", "backend", cfg.Backend, "location", cfg.Location)
	return store, nil
}

// withStore opens the store, runs fn, and closes the store.
func (a *app) withStore(fn func(types.Store) error) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			a.logger.Warn("closing store", "error", cerr)
		}
	}()
	return fn(store)
}
