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
	"github.com/kacper-wojtaszczyk/jackfruit/staging-go/internal/pathdate"
)

func main() {
	verbose := flag.Bool("v", false, "Write JSON logs to stderr")
	flag.Parse()

	slog.SetDefault(cli.NewLogger(os.Stderr, *verbose))

	os.Exit(run(os.Stdin, os.Stdout, os.Stderr))
}

// run reads one path from stdin and prints its dated destination.
func run(stdin io.Reader, stdout, stderr io.Writer) int {
	line, err := cli.ReadLine(stdin)
	if err != nil {
		slog.Error("failed to read stdin", "error", err)
		fmt.Fprintf(stderr, "Failed to read input: %v\n", err)
		return exitcode.InputError
	}

	dest, err := pathdate.Destination(line)
	if errors.Is(err, pathdate.ErrNoDate) {
		slog.Error("no date in filename", "input", line)
		fmt.Fprintf(stderr, "No date found in filename: '%s'\n", pathdate.Base(line))
		return exitcode.NoDate
	}
	if err != nil {
		slog.Error("failed to build destination", "input", line, "error", err)
		fmt.Fprintf(stderr, "%v\n", err)
		return exitcode.InputError
	}

	slog.Debug("destination resolved", "input", line, "destination", dest)
	fmt.Fprint(stdout, dest)
	return exitcode.Success
}
