// Package prompt asks the user which CSV column holds the URLs to resolve.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ErrNoAnswer is returned when input ends before a valid column was chosen.
var ErrNoAnswer = errors.New("no column selected")

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// SelectColumn lists header on out and reads column numbers from in until a
// valid index is entered.
func SelectColumn(in io.Reader, out io.Writer, header []string) (int, error) {
	if len(header) == 0 {
		return 0, errors.New("header has no columns")
	}

	if _, err := fmt.Fprintln(out, "Available columns:"); err != nil {
		return 0, fmt.Errorf("could not write prompt: %w", err)
	}
	for i, col := range header {
		if _, err := fmt.Fprintf(out, "%d: %s\n", i, col); err != nil {
			return 0, fmt.Errorf("could not write prompt: %w", err)
		}
	}

	scanner := bufio.NewScanner(in)
	for {
		if _, err := fmt.Fprint(out, "Enter the number of the column containing the URLs to unshorten: "); err != nil {
			return 0, fmt.Errorf("could not write prompt: %w", err)
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, fmt.Errorf("could not read answer: %w", err)
			}

			return 0, ErrNoAnswer
		}

		idx, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		switch {
		case err != nil:
			_, _ = fmt.Fprintln(out, "Please enter a valid number.")
		case idx < 0 || idx >= len(header):
			_, _ = fmt.Fprintln(out, "Invalid selection. Please choose a number from the list.")
		default:
			return idx, nil
		}
	}
}
