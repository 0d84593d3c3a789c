// Package shell runs the numbered text menu.
//
// It plays the role an HTTP router plays in a web service: handlers are
// registered against a menu key with Handle, and Run dispatches each choice
// to the matching HandlerFunc. The shell owns all console I/O concerns:
// printing the menu, prompting, and trimming raw input. Handlers turn the
// trimmed text into typed arguments and call the registry.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	rule    = "========================================"
	goodbye = "Exiting Student Management System. Goodbye!"
)

// Prompter asks the user for one value.
// Ask returns the answer with surrounding whitespace removed, or io.EOF when
// input has ended.
type Prompter interface {
	Ask(label string) (string, error)
}

// HandlerFunc runs one menu option. Operation failures are reported to out
// and are NOT returned; a returned error (typically io.EOF from the
// Prompter) stops the shell.
type HandlerFunc func(in Prompter, out io.Writer) error

type entry struct {
	key     string
	title   string
	handler HandlerFunc
}

// Shell is the menu loop. It implements Prompter for its handlers.
type Shell struct {
	scanner *bufio.Scanner
	out     io.Writer
	title   string
	entries []entry
}

// New returns a shell reading answers from in and writing to out.
func New(title string, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		scanner: bufio.NewScanner(in),
		out:     out,
		title:   title,
	}
}

// Handle registers h under key. Entries are listed in registration order;
// key "0" is reserved for Exit.
func (s *Shell) Handle(key, title string, h HandlerFunc) {
	s.entries = append(s.entries, entry{key: key, title: title, handler: h})
}

// Ask prints "Enter <label>: " and reads one trimmed line.
func (s *Shell) Ask(label string) (string, error) {
	return s.read("Enter " + label + ": ")
}

func (s *Shell) read(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", fmt.Errorf("shell: read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.scanner.Text()), nil
}

// Run shows the menu until the user picks 0, input ends, or ctx is
// cancelled. Ending input is a normal exit and returns nil.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.printMenu()
		choice, err := s.read("Select Option: ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out, "\n"+goodbye)
			return nil
		}
		if err != nil {
			return err
		}

		if choice == "0" {
			fmt.Fprintln(s.out, goodbye)
			return nil
		}

		e, ok := s.lookup(choice)
		if !ok {
			fmt.Fprintln(s.out, "Invalid option. Please try again.")
			continue
		}

		if err := e.handler(s, s.out); err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out, "\n"+goodbye)
				return nil
			}
			return err
		}
	}
}

func (s *Shell) lookup(key string) (entry, bool) {
	for _, e := range s.entries {
		if e.key == key {
			return e, true
		}
	}
	return entry{}, false
}

func (s *Shell) printMenu() {
	fmt.Fprintln(s.out, "\n"+rule)
	fmt.Fprintln(s.out, "   "+s.title)
	fmt.Fprintln(s.out, rule)
	for _, e := range s.entries {
		fmt.Fprintf(s.out, "%s. %s\n", e.key, e.title)
	}
	fmt.Fprintln(s.out, "0. Exit")
	fmt.Fprintln(s.out, rule)
}
