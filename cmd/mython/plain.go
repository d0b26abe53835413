package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mython-lang/mython/mython"
	"github.com/peterh/liner"
)

// runPlainREPL serves dumb terminals and piped input. Piped input is just a
// program: read it whole and execute.
func runPlainREPL() error {
	if !isInteractive() {
		return mython.Run(os.Stdin, os.Stdout)
	}

	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	historyPath := replHistoryPath()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	session := mython.NewSession(os.Stdout)
	var pending []string

	for {
		prompt := "mython> "
		if len(pending) > 0 {
			prompt = "...... "
		}
		input, err := state.Prompt(prompt)
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Println()
				pending = nil
				continue
			case errors.Is(err, io.EOF):
				fmt.Println()
				return nil
			default:
				return fmt.Errorf("read input: %w", err)
			}
		}

		trimmed := strings.TrimSpace(input)
		switch {
		case len(pending) == 0 && trimmed == "":
			continue
		case len(pending) == 0 && !opensBlock(input):
			evalPlainSnippet(session, state, input)
		case trimmed != "":
			pending = append(pending, input)
		default:
			// Blank line closes the buffered block.
			src := strings.Join(pending, "\n")
			pending = nil
			evalPlainSnippet(session, state, src)
		}
	}
}

func evalPlainSnippet(session *mython.Session, state *liner.State, src string) {
	state.AppendHistory(src)
	val, err := session.Eval(src + "\n")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	if val.IsNone() {
		return
	}
	text, err := session.Render(val)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(text)
}

func replHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mython_history")
}
