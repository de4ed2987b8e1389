// Package shell implements the interactive phone book loop: read a command,
// run it against the store, print the result, repeat until exit or EOF.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mesh-intelligence/phonebook/internal/render"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// Menu lists the commands the loop accepts.
const Menu = "show, add, remove, modify, exit"

// User-facing messages.
const (
	msgChoose        = "Please enter one of these commands:"
	msgTryAgain      = "try again"
	msgNameExists    = "The name already exists."
	msgNameMissing   = "The name doesn't exist."
	msgAdded         = "Entry added successfully"
	msgRemoved       = "Entry removed successfully"
	msgModified      = "Entry modified successfully"
	promptName       = "Please enter a name"
	promptRemoveName = "Please enter a name to remove"
	promptModifyName = "Please enter a name to modify"
	promptMobile     = "Please enter a mobile number"
	promptWork       = "Please enter a work number"
	promptNewMobile  = "Please enter the new mobile number"
	promptNewWork    = "Please enter the new work number"
)

// errEOF ends the loop when input runs out mid-command.
var errEOF = errors.New("end of input")

// Shell runs commands read from in against a store.
type Shell struct {
	store    types.Store
	in       *bufio.Scanner
	out      io.Writer
	logger   *slog.Logger
	commands map[string]func() error
}

// New returns a Shell reading from in and writing to out. A nil logger uses
// slog.Default.
func New(store types.Store, in io.Reader, out io.Writer, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Shell{
		store:  store,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger.With("component", "shell"),
	}
	s.commands = map[string]func() error{
		"show":   s.show,
		"add":    s.add,
		"remove": s.remove,
		"modify": s.modify,
	}
	return s
}

// Run loops until the user enters "exit" or input ends. A store failure is
// reported and ends only the current command. Run returns an error only if
// reading input fails.
func (s *Shell) Run() error {
	for {
		fmt.Fprintln(s.out, msgChoose)
		command, err := s.ask(Menu)
		if errors.Is(err, errEOF) {
			return s.in.Err()
		}

		if command == "exit" {
			return nil
		}
		run, ok := s.commands[command]
		if !ok {
			fmt.Fprintln(s.out, msgTryAgain)
			continue
		}

		err = run()
		switch {
		case err == nil:
		case errors.Is(err, errEOF):
			return s.in.Err()
		default:
			s.logger.Error("command failed", "command", command, "error", err, "kind", types.KindOf(err))
			render.Failure(s.out, "%s failed: %v", command, err)
		}
	}
}

func (s *Shell) show() error {
	pb, err := s.store.ReadAll()
	if err != nil {
		return err
	}
	return render.Table(s.out, pb)
}

func (s *Shell) add() error {
	name, err := s.ask(promptName)
	if err != nil {
		return err
	}
	if _, ok, err := s.store.ReadOne(name); err != nil {
		return err
	} else if ok {
		render.Notice(s.out, msgNameExists)
		return nil
	}

	e, err := s.askEntry(promptMobile, promptWork)
	if err != nil {
		return err
	}
	if err := s.store.WriteOne(name, e); err != nil {
		return err
	}
	render.Success(s.out, msgAdded)
	return nil
}

func (s *Shell) remove() error {
	name, err := s.ask(promptRemoveName)
	if err != nil {
		return err
	}
	if _, ok, err := s.store.ReadOne(name); err != nil {
		return err
	} else if !ok {
		render.Notice(s.out, "The phone book doesn't contain %q.", name)
		return nil
	}

	if err := s.store.RemoveOne(name); err != nil {
		return err
	}
	render.Success(s.out, msgRemoved)
	return nil
}

func (s *Shell) modify() error {
	name, err := s.ask(promptModifyName)
	if err != nil {
		return err
	}
	if _, ok, err := s.store.ReadOne(name); err != nil {
		return err
	} else if !ok {
		render.Notice(s.out, msgNameMissing)
		return nil
	}

	e, err := s.askEntry(promptNewMobile, promptNewWork)
	if err != nil {
		return err
	}
	if err := s.store.WriteOne(name, e); err != nil {
		return err
	}
	render.Success(s.out, msgModified)
	return nil
}

// ask prints prompt and returns the next trimmed input line.
func (s *Shell) ask(prompt string) (string, error) {
	render.Prompt(s.out, prompt)
	if !s.in.Scan() {
		return "", errEOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Shell) askEntry(mobilePrompt, workPrompt string) (types.Entry, error) {
	mobile, err := s.ask(mobilePrompt)
	if err != nil {
		return types.Entry{}, err
	}
	work, err := s.ask(workPrompt)
	if err != nil {
		return types.Entry{}, err
	}
	return types.Entry{Mobile: mobile, Work: work}, nil
}
