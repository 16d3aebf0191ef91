// Package shell provides the line-oriented interactive loop behind
// neo interactive.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/peterh/liner"
)

// Prompt is printed before every line.
const Prompt = "neo> "

// Runner executes one command line split into arguments.
type Runner func(ctx context.Context, args []string) error

// Shell reads commands and dispatches them to a Runner until exit or EOF.
type Shell struct {
	run      Runner
	commands []string
	history  string
	out      io.Writer
}

// New creates a shell. commands feeds tab completion.
func New(run Runner, commands []string, out io.Writer) *Shell {
	return &Shell{
		run:      run,
		commands: commands,
		history:  defaultHistoryPath(),
		out:      out,
	}
}

// WithHistory sets the history file. An empty path disables persistence.
func (s *Shell) WithHistory(path string) *Shell {
	s.history = path
	return s
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".neo_history")
}

// Run drives the loop on the terminal using liner.
func (s *Shell) Run(ctx context.Context) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(s.complete)

	if s.history != "" {
		if f, err := os.Open(s.history); err == nil {
			_, _ = line.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(s.history); err == nil {
				_, _ = line.WriteHistory(f)
				f.Close()
			}
		}()
	}

	return s.loop(ctx, func() (string, error) {
		input, err := line.Prompt(Prompt)
		if err == nil && strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		return input, err
	})
}

// loop is the terminal-independent core of Run. read returns io.EOF or
// liner.ErrPromptAborted to stop.
func (s *Shell) loop(ctx context.Context, read func() (string, error)) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		input, err := read()
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return err
		}

		args := strings.Fields(input)
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "exit", "quit":
			return nil
		case "help", "?":
			s.help()
			continue
		}

		if err := s.run(ctx, args); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

func (s *Shell) help() {
	fmt.Fprintln(s.out, "Commands:")
	for _, c := range s.commands {
		fmt.Fprintf(s.out, "  %s\n", c)
	}
	fmt.Fprintln(s.out, "  help")
	fmt.Fprintln(s.out, "  exit")
	fmt.Fprintln(s.out, "Run '<command> --help' for a command's flags.")
}

func (s *Shell) complete(line string) []string {
	var out []string
	for _, c := range slices.Concat(s.commands, []string{"help", "exit"}) {
		if strings.HasPrefix(c, line) {
			out = append(out, c)
		}
	}
	return out
}
