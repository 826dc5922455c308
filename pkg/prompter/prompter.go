package prompter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter reads answers from in and writes questions to out
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a prompter over the given streams
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

var std = New(os.Stdin, os.Stdout)

// IsInteractive reports whether stdin is a terminal
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func (p *Prompter) readLine() (string, error) {
	input, err := p.in.ReadString('\n')
	if err != nil && !(err == io.EOF && input != "") {
		return "", err
	}
	return strings.TrimRight(input, "\r\n"), nil
}

// String prompts for a string input
func (p *Prompter) String(label string) (string, error) {
	fmt.Fprint(p.out, label)
	input, err := p.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// StringDefault prompts for a string, returning def when the answer is empty
func (p *Prompter) StringDefault(label, def string) (string, error) {
	if def != "" {
		label = fmt.Sprintf("%s[%s] ", label, def)
	}
	input, err := p.String(label)
	if err != nil {
		return "", err
	}
	if input == "" {
		return def, nil
	}
	return input, nil
}

// Int prompts for a whole number, returning def when the answer is empty
func (p *Prompter) Int(label string, def int) (int, error) {
	input, err := p.StringDefault(label, fmt.Sprint(def))
	if err != nil {
		return 0, err
	}
	var n int
	if _, err := fmt.Sscanf(input, "%d", &n); err != nil {
		return 0, fmt.Errorf("not a number: %q", input)
	}
	return n, nil
}

// Confirm prompts for yes/no confirmation
func (p *Prompter) Confirm(label string) (bool, error) {
	fmt.Fprint(p.out, label+" (y/n) ")
	input, err := p.readLine()
	if err != nil {
		return false, err
	}

	response := strings.TrimSpace(strings.ToLower(input))
	return response == "y" || response == "yes", nil
}

// Select prompts the user to select from options and returns its index
func (p *Prompter) Select(label string, options []string) (int, error) {
	fmt.Fprintln(p.out, label)
	for i, opt := range options {
		fmt.Fprintf(p.out, "%d) %s\n", i+1, opt)
	}

	fmt.Fprint(p.out, "Select option: ")
	input, err := p.readLine()
	if err != nil {
		return -1, err
	}

	var selection int
	if _, err := fmt.Sscanf(strings.TrimSpace(input), "%d", &selection); err != nil {
		return -1, err
	}

	if selection < 1 || selection > len(options) {
		return -1, fmt.Errorf("invalid selection")
	}

	return selection - 1, nil
}

// Lines prompts for a list, one entry per line, ended by an empty line or
// after maxLines entries
func (p *Prompter) Lines(label string, maxLines int) ([]string, error) {
	fmt.Fprintf(p.out, "%s (empty line to finish):\n", label)

	var lines []string
	for len(lines) < maxLines {
		line, err := p.readLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		lines = append(lines, line)
	}

	return lines, nil
}

// PromptString prompts user for a string input
func PromptString(label string) (string, error) {
	return std.String(label)
}

// PromptConfirm prompts user for yes/no confirmation
func PromptConfirm(label string) (bool, error) {
	return std.Confirm(label)
}

// PromptSelect prompts user to select from options
func PromptSelect(label string, options []string) (int, error) {
	return std.Select(label, options)
}

// Default returns the prompter bound to stdin and stdout
func Default() *Prompter {
	return std
}
