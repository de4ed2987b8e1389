package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/phonebook/internal/shell"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

func (a *app) newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Long: `Shell reads commands from standard input until "exit" or end of input:
` + shell.Menu + `.

Running phonebook without a command starts the shell.`,
		Args: cobra.NoArgs,
		RunE: a.runShell,
	}
}

func (a *app) runShell(cmd *cobra.Command, args []string) error {
	return a.withStore(func(store types.Store) error {
		return shell.New(store, cmd.InOrStdin(), cmd.OutOrStdout(), a.logger).Run()
	})
}
