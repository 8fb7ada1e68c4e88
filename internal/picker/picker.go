// Package picker runs the interactive fuzzy finder: entries go in on
// stdin, chosen lines come back on stdout, and a small set of custom
// keybindings is reported alongside the selection.
package picker

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Event says what the user did besides (or instead of) selecting lines.
type Event int

const (
	EventSelect     Event = iota // plain selection, append to queue
	EventCancel                  // aborted, nothing chosen
	EventReload                  // refresh the list bypassing the cache
	EventClearCache              // update the library and drop all caches
	EventReplace                 // selection chosen, replace the queue
	EventModeSwitch              // re-launch in Result.Mode
)

// Result is the outcome of one picker run.
type Result struct {
	Event Event
	Mode  string   // target mode for EventModeSwitch
	Lines []string // chosen entries for EventSelect/EventReplace
}

// expectKeys maps finder keybindings to events. Mode-switch keys carry
// the target mode name.
var expectKeys = map[string]Result{
	"ctrl-r": {Event: EventReload},
	"ctrl-u": {Event: EventClearCache},
	"ctrl-p": {Event: EventReplace},
	"ctrl-a": {Event: EventModeSwitch, Mode: "artist"},
	"ctrl-d": {Event: EventModeSwitch, Mode: "directory"},
	"ctrl-b": {Event: EventModeSwitch, Mode: "artist-album"},
	"ctrl-n": {Event: EventModeSwitch, Mode: "new"},
}

type Picker struct {
	command string
	options []string

	stdin  io.Reader
	stdout io.Writer
}

func New(command string, options []string) *Picker {
	return &Picker{
		command: command,
		options: options,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
	}
}

// Pick presents entries and blocks until the user selects, aborts, or
// hits one of the custom keybindings. When the finder binary is not on
// PATH it falls back to a numbered prompt.
func (p *Picker) Pick(entries []string, prompt string) (Result, error) {
	if _, err := exec.LookPath(p.command); err != nil {
		return p.pickWithPrompt(entries, prompt)
	}
	return p.pickWithFinder(entries, prompt)
}

func (p *Picker) pickWithFinder(entries []string, prompt string) (Result, error) {
	keys := make([]string, 0, len(expectKeys))
	for k := range expectKeys {
		keys = append(keys, k)
	}

	args := []string{
		"--multi",
		"--no-sort",
		"--prompt", prompt + "> ",
		"--expect", strings.Join(keys, ","),
	}
	args = append(args, p.options...)

	cmd := exec.Command(p.command, args...)
	cmd.Stderr = os.Stderr

	in, err := cmd.StdinPipe()
	if err != nil {
		return Result{}, err
	}
	out, err := cmd.StdoutPipe()
	if err != nil {
		return Result{}, err
	}

	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("run %s: %w", p.command, err)
	}

	go func() {
		defer in.Close()
		for _, e := range entries {
			fmt.Fprintln(in, e)
		}
	}()

	output, _ := io.ReadAll(out)
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		// 130 is abort (ESC/ctrl-c), 1 is "no match"; both mean no
		// selection was made.
		if errors.As(err, &exitErr) && (exitErr.ExitCode() == 130 || exitErr.ExitCode() == 1) {
			return parseFinderOutput(string(output)), nil
		}
		return Result{}, fmt.Errorf("run %s: %w", p.command, err)
	}

	return parseFinderOutput(string(output)), nil
}

// parseFinderOutput decodes --expect style output: the first line is the
// key that ended the run (empty for plain enter), the rest are the
// chosen entries.
func parseFinderOutput(output string) Result {
	output = strings.TrimRight(output, "\n")
	if output == "" {
		return Result{Event: EventCancel}
	}

	lines := strings.Split(output, "\n")
	key, rest := lines[0], lines[1:]

	res, bound := expectKeys[key]
	if !bound {
		// Plain enter: the key line is empty, everything else is the
		// selection.
		if len(rest) == 0 {
			return Result{Event: EventCancel}
		}
		return Result{Event: EventSelect, Lines: rest}
	}

	res.Lines = rest
	if len(rest) == 0 && (res.Event == EventSelect || res.Event == EventReplace) {
		return Result{Event: EventCancel}
	}
	return res
}

// pickWithPrompt is the degraded path when the finder is missing: print a
// numbered list and read comma-separated indices.
func (p *Picker) pickWithPrompt(entries []string, prompt string) (Result, error) {
	for i, e := range entries {
		fmt.Fprintf(p.stdout, "%4d. %s\n", i+1, e)
	}
	fmt.Fprintf(p.stdout, "%s (numbers, comma-separated, blank to cancel): ", prompt)

	line, err := bufio.NewReader(p.stdin).ReadString('\n')
	if err != nil && line == "" {
		return Result{Event: EventCancel}, nil
	}

	var chosen []string
	for _, field := range strings.Split(strings.TrimSpace(line), ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil || n < 1 || n > len(entries) {
			return Result{}, fmt.Errorf("invalid selection %q", field)
		}
		chosen = append(chosen, entries[n-1])
	}

	if len(chosen) == 0 {
		return Result{Event: EventCancel}, nil
	}
	return Result{Event: EventSelect, Lines: chosen}, nil
}
