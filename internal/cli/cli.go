// Package cli holds the stdin/stderr plumbing shared by the line-oriented
// commands.
package cli

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"strings"
)

// ErrNoInput is returned when stdin closes before any byte is read.
var ErrNoInput = errors.New("no input on stdin")

// ReadLine reads a single line from r and drops its terminator ("\n" or
// "\r\n"). Other whitespace is kept.
func ReadLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if line == "" {
		return "", ErrNoInput
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

// NewLogger returns a JSON logger on w when verbose is set, and a logger
// that drops everything otherwise. Commands that own stdout and promise a
// single diagnostic line on stderr stay quiet unless asked.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
