package script

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single script run.
const DefaultTimeout = 60 * time.Second

// Runner executes stage and destination scripts. A script receives one line
// on stdin and answers with one line on stdout.
type Runner struct {
	timeout time.Duration

	// waitDelay bounds how long Wait blocks on pipes held open by orphaned
	// children after the script itself was killed.
	waitDelay time.Duration
}

// NewRunner creates a Runner. A non-positive timeout uses DefaultTimeout.
func NewRunner(timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{
		timeout:   timeout,
		waitDelay: 2 * time.Second,
	}
}

// Resolve runs command with line on stdin and returns its trimmed stdout.
func (r *Runner) Resolve(ctx context.Context, command, line string) (string, error) {
	out, err := r.run(ctx, command, line)
	if err != nil {
		return "", &ScriptError{Script: command, Err: err}
	}
	return out, nil
}

func (r *Runner) run(ctx context.Context, command, line string) (string, error) {
	args := SplitArgs(command)
	if len(args) == 0 {
		return "", errors.New("empty command")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = strings.NewReader(line + "\n")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = r.waitDelay

	slog.InfoContext(ctx, "launching script", "script", command, "stdin", line)

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", fmt.Errorf("script killed: %w", ctxErr)
	}
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			slog.ErrorContext(ctx, "script exited with non-zero exit code",
				"script", command, "code", ee.ExitCode(), "stdout", stdout.String(), "stderr", stderr.String())
			return "", &exitError{Code: ee.ExitCode(), Stderr: strings.TrimSpace(stderr.String())}
		}
		return "", err
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return "", ErrEmptyOutput
	}

	slog.DebugContext(ctx, "script finished", "script", command, "stdout", out)
	return out, nil
}
