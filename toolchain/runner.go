package toolchain

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

// Runner starts a command and returns everything it wrote to stdout and stderr.
// A non-nil error means the command could not be started at all; a command that
// starts and then exits with a non-zero status is not an error.
type Runner interface {
	Run(ctx context.Context, argv []string) ([]byte, error)
}

// waitDelay bounds how long output is still collected after the context is done.
const waitDelay = time.Second

// ExecRunner runs commands as subprocesses.
type ExecRunner struct {
	// Timeout bounds each run. Zero waits for the command to finish however long it takes.
	Timeout time.Duration
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, argv []string) ([]byte, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader("")
	cmd.Stdout = &out
	cmd.Stderr = &out
	// Children of the assembler may keep the output open after it was killed.
	cmd.WaitDelay = waitDelay
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	// The exit status is irrelevant, only the output is inspected.
	_ = cmd.Wait()
	return out.Bytes(), nil
}
