package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kacper-wojtaszczyk/jackfruit/staging-go/internal/cli"
	"github.com/kacper-wojtaszczyk/jackfruit/staging-go/internal/exitcode"
	"github.com/kacper-wojtaszczyk/jackfruit/staging-go/internal/stage"
)

func main() {
	verbose := flag.Bool("v", false, "Write JSON logs to stderr")
	flag.Parse()

	slog.SetDefault(cli.NewLogger(os.Stderr, *verbose))

	os.Exit(run(stage.NewStager(), os.Stdin, os.Stdout, os.Stderr))
}

// run stages the file: URI read from stdin and prints the new URI.
func run(stager *stage.Stager, stdin io.Reader, stdout, stderr io.Writer) int {
	line, err := cli.ReadLine(stdin)
	if err != nil && !errors.Is(err, cli.ErrNoInput) {
		slog.Error("failed to read stdin", "error", err)
		fmt.Fprintf(stderr, "Failed to read input: %v\n", err)
		return exitcode.InputError
	}

	uri, err := stager.Stage(line)
	if err != nil {
		slog.Error("staging failed", "input", line, "error", err)
		fmt.Fprintln(stderr, err)
		return exitCodeFor(err)
	}

	fmt.Fprint(stdout, uri)
	return exitcode.Success
}

func exitCodeFor(err error) int {
	var (
		schemeErr *stage.SchemeError
		pathErr   *stage.PathError
	)
	switch {
	case errors.As(err, &schemeErr):
		return exitcode.InvalidScheme
	case errors.As(err, &pathErr):
		return exitcode.PathNotFound
	default:
		return exitcode.MoveError
	}
}
