// Add, modify, and remove commands change single entries.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/phonebook/internal/render"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

func (a *app) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <mobile> <work>",
		Short: "Add a new entry",
		Long: `Add stores a new entry. It refuses a name that already exists; use
modify to change an existing entry.

Example:
  phonebook add Arnold 0100 0200`,
		Args: cobra.ExactArgs(3),
		RunE: a.runAdd,
	}
}

func (a *app) runAdd(cmd *cobra.Command, args []string) error {
	name, e := args[0], types.Entry{Mobile: args[1], Work: args[2]}
	return a.withStore(func(store types.Store) error {
		_, exists, err := store.ReadOne(name)
		if err != nil {
			return err
		}
		if exists {
			return userError(fmt.Errorf("name %q already exists", name))
		}
		if err := store.WriteOne(name, e); err != nil {
			return err
		}
		a.logger.Info("entry added", "name", name)
		render.Success(cmd.OutOrStdout(), "Added %q", name)
		return nil
	})
}

func (a *app) newModifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modify <name> <mobile> <work>",
		Short: "Replace the numbers of an existing entry",
		Long: `Modify replaces both numbers of an existing entry. A name that is not
in the phone book is reported and left absent.

Example:
  phonebook modify Arnold 0111 0222`,
		Args: cobra.ExactArgs(3),
		RunE: a.runModify,
	}
}

func (a *app) runModify(cmd *cobra.Command, args []string) error {
	name, e := args[0], types.Entry{Mobile: args[1], Work: args[2]}
	return a.withStore(func(store types.Store) error {
		_, exists, err := store.ReadOne(name)
		if err != nil {
			return err
		}
		if !exists {
			render.Notice(cmd.OutOrStdout(), "Name %q not found", name)
			return nil
		}
		if err := store.WriteOne(name, e); err != nil {
			return err
		}
		a.logger.Info("entry modified", "name", name)
		render.Success(cmd.OutOrStdout(), "Modified %q", name)
		return nil
	})
}

func (a *app) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove an entry",
		Args:    cobra.ExactArgs(1),
		RunE:    a.runRemove,
	}
}

func (a *app) runRemove(cmd *cobra.Command, args []string) error {
	name := args[0]
	return a.withStore(func(store types.Store) error {
		_, exists, err := store.ReadOne(name)
		if err != nil {
			return err
		}
		if !exists {
			render.Notice(cmd.OutOrStdout(), "Name %q not found", name)
			return nil
		}
		if err := store.RemoveOne(name); err != nil {
			return err
		}
		a.logger.Info("entry removed", "name", name)
		render.Success(cmd.OutOrStdout(), "Removed %q", name)
		return nil
	})
}
