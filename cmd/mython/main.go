package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/mython-lang/mython/mython"
)

var cliErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, cliErrorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "repl":
		return replCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	checkOnly := fs.Bool("check", false, "only lex and parse the script without executing")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("mython run: script path required")
	}
	if len(remaining) > 1 {
		return errors.New("mython run: exactly one script path expected")
	}
	input, err := os.ReadFile(remaining[0])
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	if *checkOnly {
		return mython.Check(bytes.NewReader(input))
	}
	return mython.Run(bytes.NewReader(input), os.Stdout)
}

func replCommand(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	plain := fs.Bool("plain", false, "use the line-mode REPL instead of the full-screen one")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return errors.New("mython repl: unexpected arguments")
	}
	if *plain || !isInteractive() {
		return runPlainREPL()
	}
	return runREPL()
}

func isInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run [-check] <script>")
	fmt.Fprintln(os.Stderr, "    execute a Mython script (-check only lexes and parses)")
	fmt.Fprintln(os.Stderr, "  repl [-plain]")
	fmt.Fprintln(os.Stderr, "    start an interactive session (-plain uses line mode)")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
