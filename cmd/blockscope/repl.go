package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"blockscope/internal/session"
)

const (
	promptMain  = "bs> "
	promptCont  = "... "
	historyFile = ".blockscope_history"
)

func runREPL(parse session.Parse, stdout, stderr io.Writer) int {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintln(stdout, "blockscope repl, :quit to exit")
	return replLoop(ln.Prompt, parse, stdout, stderr, func(src string) {
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	})
}

// replLoop parses one balanced input at a time, each in a fresh session.
func replLoop(
	prompt func(string) (string, error),
	parse session.Parse,
	stdout, stderr io.Writer,
	remember func(string),
) int {
	for {
		src, ok := readBalanced(prompt, promptMain, promptCont)
		if !ok {
			fmt.Fprintln(stdout)
			return 0
		}

		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		if trimmed == ":quit" {
			return 0
		}

		if _, err := parse(src, stdout); err != nil {
			printError(stderr, "<repl>", src, err)
		}
		remember(src)
	}
}

// readBalanced keeps prompting while more braces are open than closed.
// It reports false at end of input.
func readBalanced(prompt func(string) (string, error), first, cont string) (string, bool) {
	var b strings.Builder
	depth := 0

	for {
		p := first
		if b.Len() > 0 {
			p = cont
		}
		line, err := prompt(p)
		if errors.Is(err, io.EOF) {
			if b.Len() > 0 {
				// hand the unfinished block to the parser so it reports it
				return b.String(), true
			}
			return "", false
		}
		if err != nil {
			// aborted with Ctrl-C: drop the pending input
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth <= 0 {
			return b.String(), true
		}
	}
}
