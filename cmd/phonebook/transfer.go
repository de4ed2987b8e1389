// Import and export commands move whole phone books between the store and
// flat files.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/phonebook/internal/flatfile"
	"github.com/mesh-intelligence/phonebook/internal/render"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

var errEmptyPath = errors.New("file path is empty")

func (a *app) newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the phone book with the entries of a flat file",
		Long: `Import reads a file of "name: mobile: work" lines and replaces the
whole phone book with its entries in one atomic write.

Example:
  phonebook import contacts.txt`,
		Args: cobra.ExactArgs(1),
		RunE: a.runImport,
	}
}

func (a *app) runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	if path == "" {
		return userError(errEmptyPath)
	}
	// A missing file would read as an empty book and wipe the store.
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return userError(fmt.Errorf("import file %s does not exist", path))
	}

	pb, err := readFlatFile(path, a.logger)
	if err != nil {
		return err
	}

	return a.withStore(func(store types.Store) error {
		if err := store.WriteAll(pb); err != nil {
			return err
		}
		a.logger.Info("phone book imported", "file", path, "entries", len(pb))
		render.Success(cmd.OutOrStdout(), "Imported %d entries from %s", len(pb), path)
		return nil
	})
}

func (a *app) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the phone book to a flat file",
		Long: `Export writes every entry as "name: mobile: work" lines, ordered by
name, replacing the file atomically.

Example:
  phonebook export contacts.txt`,
		Args: cobra.ExactArgs(1),
		RunE: a.runExport,
	}
}

func (a *app) runExport(cmd *cobra.Command, args []string) error {
	path := args[0]
	// An empty path would open an in-memory flat file and write nothing.
	if path == "" {
		return userError(errEmptyPath)
	}
	var pb types.PhoneBook
	err := a.withStore(func(store types.Store) error {
		var err error
		pb, err = store.ReadAll()
		return err
	})
	if err != nil {
		return err
	}

	file, err := flatfile.Open(path, a.logger)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := file.WriteAll(pb); err != nil {
		return err
	}
	a.logger.Info("phone book exported", "file", path, "entries", len(pb))
	render.Success(cmd.OutOrStdout(), "Exported %d entries to %s", len(pb), path)
	return nil
}

// readFlatFile loads every entry of the flat file at path.
func readFlatFile(path string, logger *slog.Logger) (types.PhoneBook, error) {
	file, err := flatfile.Open(path, logger)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return file.ReadAll()
}
