package gyp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/daedaleanai/gypconf/log"
	"github.com/kballard/go-shellquote"
)

// Generator runs GYP with a complete argument list and returns its exit status.
// An error means GYP could not be run at all.
type Generator interface {
	Generate(ctx context.Context, args []string) (int, error)
}

// ExecGenerator runs GYP as a subprocess.
type ExecGenerator struct {
	// Command is the GYP invocation the arguments are appended to.
	Command []string
	Dir     string
	Stdout  io.Writer
	Stderr  io.Writer
}

// DefaultGeneratorCommand runs the GYP copy bundled in the project tree.
func DefaultGeneratorCommand(root string) []string {
	return []string{"python", filepath.Join(root, "build", "gyp", "gyp_main.py")}
}

// NewExecGenerator returns a generator running `command` in `root`.
// An empty command selects DefaultGeneratorCommand.
func NewExecGenerator(root, command string) (*ExecGenerator, error) {
	argv, err := shellquote.Split(command)
	if err != nil {
		return nil, fmt.Errorf("invalid generator command '%s': %w", command, err)
	}
	if len(argv) == 0 {
		argv = DefaultGeneratorCommand(root)
	}
	return &ExecGenerator{
		Command: argv,
		Dir:     root,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}, nil
}

// Generate implements Generator.
func (g *ExecGenerator) Generate(ctx context.Context, args []string) (int, error) {
	if len(g.Command) == 0 {
		return -1, errors.New("no generator command configured")
	}
	argv := append(append([]string{}, g.Command[1:]...), args...)
	log.Debug("Running generator: '%s %s'\n", g.Command[0], strings.Join(argv, " "))

	cmd := exec.CommandContext(ctx, g.Command[0], argv...)
	cmd.Dir = g.Dir
	cmd.Stdout = g.Stdout
	cmd.Stderr = g.Stderr
	err := cmd.Run()

	// A generator killed by a signal has no exit status.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() != -1 {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, err
	}
	return 0, nil
}
