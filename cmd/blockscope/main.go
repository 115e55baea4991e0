package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/reusee/e5"

	"blockscope/internal/configs"
	"blockscope/internal/diag"
	"blockscope/internal/session"
)

const usage = `Usage: blockscope [-config file.cue]... [-debug] <file | ->
       blockscope [-config file.cue]... [-debug] tokens <file | ->
       blockscope [-config file.cue]... [-debug] repl

Parses nested declaration blocks and prints every resolved use as name:type.
`

var (
	exitFn = os.Exit
	replFn = runREPL
	wrap   = e5.Wrap.With(e5.WrapStacktrace)
)

func main() {
	exitFn(runCLI(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	configPaths []string
	debug       bool
	command     string
	path        string
}

func parseArgs(args []string) (options, error) {
	var opts options
	var rest []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-config":
			if i+1 >= len(args) {
				return opts, errors.New("-config needs a file")
			}
			i++
			opts.configPaths = append(opts.configPaths, args[i])
		case "-debug":
			opts.debug = true
		case "-h", "-help", "--help":
			return opts, errUsage
		default:
			rest = append(rest, args[i])
		}
	}

	switch {
	case len(rest) == 1 && rest[0] == "repl":
		opts.command = "repl"
	case len(rest) == 2 && rest[0] == "tokens":
		opts.command = "tokens"
		opts.path = rest[1]
	case len(rest) == 1:
		opts.command = "parse"
		opts.path = rest[0]
	default:
		return opts, errUsage
	}
	return opts, nil
}

var errUsage = errors.New("usage")

func runCLI(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args)
	if err != nil {
		if err != errUsage {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		fmt.Fprint(stderr, usage)
		return 1
	}

	settings, err := configs.NewLoader(opts.configPaths, configs.Schema).Settings()
	if err != nil {
		fmt.Fprintf(stderr, "Config error: %v\n", err)
		return 1
	}
	if opts.debug {
		settings.LogLevel = slog.LevelDebug
	}

	code := 0
	session.NewScope(settings, stderr).Call(func(
		parse session.Parse,
		tokenize session.Tokenize,
	) {
		if opts.command == "repl" {
			code = replFn(parse, stdout, stderr)
			return
		}

		name, source, err := readSource(opts.path, stdin)
		if err != nil {
			fmt.Fprintf(stderr, "Error reading input: %v\n", err)
			code = 1
			return
		}

		if opts.command == "tokens" {
			err = tokenize(source, stdout)
		} else {
			_, err = parse(source, stdout)
		}
		if err != nil {
			printError(stderr, name, source, err)
			code = 1
		}
	})
	return code
}

// readSource reads path, or stdin when path is "-".
func readSource(path string, stdin io.Reader) (name, source string, err error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "<stdin>", "", wrap(err)
		}
		return "<stdin>", string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return path, "", wrap(err)
	}
	return path, string(data), nil
}

func printError(w io.Writer, name, source string, err error) {
	msg := diag.Render(source, name, err)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprint(w, "Error: "+msg)
}
