// Package configure runs one configuration: it assembles the GYP command line and runs GYP.
package configure

import (
	"context"
	"fmt"

	"github.com/daedaleanai/gypconf/gyp"
	"github.com/daedaleanai/gypconf/options"
	"github.com/daedaleanai/gypconf/toolchain"
)

// Prober detects the assembler version.
type Prober interface {
	Probe(ctx context.Context, command string) toolchain.Result
}

// GeneratorError is returned when GYP ran and exited with a non-zero status.
type GeneratorError struct {
	Code int
}

func (e *GeneratorError) Error() string {
	return fmt.Sprintf("Error running GYP (exit status %d)", e.Code)
}

// Plan is the result of assembling the generator command line.
type Plan struct {
	Options options.BuildOptions
	Probe   toolchain.Result
	Args    []string
}

// Configurer wires the prober, the argument assembler and the generator together.
type Configurer struct {
	Paths     gyp.Paths
	Assembler string
	Prober    Prober
	Stager    gyp.Stager
	Generator gyp.Generator
}

// Arguments assembles the full generator command line: buildsystem arguments first, defines second.
// The returned plan carries the probe result even when an error is returned, so its warnings
// can still be reported.
func (c *Configurer) Arguments(ctx context.Context, opts options.BuildOptions) (Plan, error) {
	plan := Plan{Options: opts}

	buildsystem, err := gyp.BuildsystemArgs(opts, c.Paths, c.Stager)
	if err != nil {
		return plan, err
	}

	assembler := c.Assembler
	if assembler == "" {
		assembler = toolchain.DefaultAssembler
	}
	plan.Probe = c.Prober.Probe(ctx, assembler)

	defines, err := gyp.DefineArgs(opts, plan.Probe)
	if err != nil {
		return plan, err
	}

	plan.Args = make([]string, 0, len(buildsystem)+len(defines))
	plan.Args = append(plan.Args, buildsystem...)
	plan.Args = append(plan.Args, defines...)
	return plan, nil
}

// Run assembles the command line and runs the generator with it.
// A non-zero generator status is returned as *GeneratorError.
func (c *Configurer) Run(ctx context.Context, opts options.BuildOptions) (Plan, error) {
	plan, err := c.Arguments(ctx, opts)
	if err != nil {
		return plan, err
	}

	rc, err := c.Generator.Generate(ctx, plan.Args)
	if err != nil {
		return plan, fmt.Errorf("running GYP: %w", err)
	}
	if rc != 0 {
		return plan, &GeneratorError{Code: rc}
	}
	return plan, nil
}
