// Show and get commands read entries.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/phonebook/internal/render"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

func (a *app) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "show",
		Aliases: []string{"list"},
		Short:   "List all entries",
		Long: `Show prints every entry ordered by name.

Example:
  phonebook show
  phonebook list --json`,
		Args: cobra.NoArgs,
		RunE: a.runShow,
	}
}

func (a *app) runShow(cmd *cobra.Command, args []string) error {
	return a.withStore(func(store types.Store) error {
		pb, err := store.ReadAll()
		if err != nil {
			return err
		}
		if a.flags.jsonMode {
			return render.JSON(cmd.OutOrStdout(), pb)
		}
		return render.Table(cmd.OutOrStdout(), pb)
	})
}

func (a *app) newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Print one entry",
		Long: `Get prints the numbers stored for name. Names are case-sensitive.

Example:
  phonebook get Arnold
  phonebook get Arnold --json`,
		Args: cobra.ExactArgs(1),
		RunE: a.runGet,
	}
}

func (a *app) runGet(cmd *cobra.Command, args []string) error {
	name := args[0]
	return a.withStore(func(store types.Store) error {
		e, ok, err := store.ReadOne(name)
		if err != nil {
			return err
		}
		if !ok {
			return userError(fmt.Errorf("name %q not found", name))
		}
		if a.flags.jsonMode {
			return render.EntryJSON(cmd.OutOrStdout(), name, e)
		}
		return render.Table(cmd.OutOrStdout(), types.PhoneBook{name: e})
	})
}
