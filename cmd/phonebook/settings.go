// Config command prints the effective settings.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// settings is the effective configuration after flags, config.yaml,
// environment, and defaults are applied.
type settings struct {
	ConfigDir  string `yaml:"config_dir" json:"config_dir"`
	ConfigFile string `yaml:"config_file,omitempty" json:"config_file,omitempty"`
	Backend    string `yaml:"backend" json:"backend"`
	DataDir    string `yaml:"data_dir" json:"data_dir"`
	Location   string `yaml:"location" json:"location"`
	LogLevel   string `yaml:"log_level" json:"log_level"`
	LogFormat  string `yaml:"log_format" json:"log_format"`
}

func (a *app) newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  a.runConfig,
	}
}

func (a *app) runConfig(cmd *cobra.Command, args []string) error {
	cfg, dataDir, err := a.storeConfig()
	if err != nil {
		return err
	}
	location := cfg.Location
	if location == "" {
		location = memoryLocation
	}
	s := settings{
		ConfigDir:  a.configDir,
		ConfigFile: a.cfg.ConfigFileUsed(),
		Backend:    cfg.Backend,
		DataDir:    dataDir,
		Location:   location,
		LogLevel:   a.cfg.GetString(cfgKeyLogLevel),
		LogFormat:  a.cfg.GetString(cfgKeyLogFormat),
	}

	var out []byte
	if a.flags.jsonMode {
		out, err = json.MarshalIndent(s, "", "  ")
		out = append(out, '\n')
	} else {
		out, err = yaml.Marshal(&s)
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
