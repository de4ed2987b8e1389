// Init command writes config.yaml and creates the store.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/phonebook/internal/render"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the phone book",
		Long: `Init writes config.yaml to the config directory if it does not exist,
then opens the configured store, creating its directory and schema.

The --backend, --data-dir, and --location flags given to init are recorded
in the new config.yaml.

Example:
  phonebook init
  phonebook init --backend flatfile --data-dir ~/phonebook`,
		Args: cobra.NoArgs,
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	cfg, dataDir, err := a.storeConfig()
	if err != nil {
		return err
	}

	// Record resolved paths so later runs from another directory use the
	// same store.
	file := configFile{Backend: cfg.Backend}
	if a.flags.dataDir != "" {
		file.DataDir = dataDir
	}
	switch {
	case a.flags.location == memoryLocation:
		file.Location = memoryLocation
	case a.flags.location != "":
		file.Location = cfg.Location
	}

	written, err := writeConfigIfMissing(a.configDir, file)
	if err != nil {
		return err
	}

	err = a.withStore(func(types.Store) error { return nil })
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	configPath := filepath.Join(a.configDir, configFileExt)
	if written {
		render.Success(out, "Wrote %s", configPath)
	} else {
		fmt.Fprintf(out, "Using %s\n", configPath)
	}
	location := cfg.Location
	if location == "" {
		location = "(in memory)"
	}
	fmt.Fprintf(out, "Backend:   %s\n", cfg.Backend)
	fmt.Fprintf(out, "Data dir:  %s\n", dataDir)
	fmt.Fprintf(out, "Location:  %s\n", location)
	render.Success(out, "Phone book initialized")
	return nil
}
