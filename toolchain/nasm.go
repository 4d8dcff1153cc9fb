// Package toolchain detects the assembler required by the OpenSSL build.
package toolchain

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/kballard/go-shellquote"
)

// UnknownVersion is reported when no usable assembler was detected.
const UnknownVersion = "0.0"

// DefaultAssembler is the command probed when none is configured.
const DefaultAssembler = "nasm"

const missingAssemblerWarning = `No acceptable ASM compiler found!
Please make sure you have installed NASM from https://www.nasm.us
and refer BUILDING.md.`

var nasmVersionRegexp = regexp.MustCompile(`^NASM version ([2-9]\.[0-9][0-9]+)`)

// Result is the outcome of a single probe.
type Result struct {
	// Version is "major.minor", or UnknownVersion.
	Version string
	// Warnings are meant to be shown to the operator.
	Warnings []string
}

// Detected reports whether a usable assembler version was found.
func (r Result) Detected() bool {
	return r.Version != UnknownVersion
}

// Prober runs the assembler to find out its version.
type Prober struct {
	Runner Runner
}

// NewProber returns a Prober that runs commands as subprocesses.
func NewProber(runner Runner) *Prober {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Prober{Runner: runner}
}

// Probe runs `command -v` and parses the reported NASM version.
// The command may contain arguments and is split like a shell would.
func (p *Prober) Probe(ctx context.Context, command string) Result {
	argv, err := shellquote.Split(command)
	if err == nil && len(argv) == 0 {
		err = fmt.Errorf("empty assembler command")
	}
	if err == nil {
		var out []byte
		out, err = p.Runner.Run(ctx, append(argv, "-v"))
		if err == nil {
			return Result{Version: ParseVersion(out)}
		}
	}
	return Result{
		Version:  UnknownVersion,
		Warnings: []string{missingAssemblerWarning},
	}
}

// ParseVersion extracts "major.minor" from the output of `nasm -v`.
// Bytes that are not valid UTF-8 are tolerated.
func ParseVersion(out []byte) string {
	text := strings.ToValidUTF8(string(out), "�")
	match := nasmVersionRegexp.FindStringSubmatch(text)
	if match == nil {
		return UnknownVersion
	}
	return match[1]
}
