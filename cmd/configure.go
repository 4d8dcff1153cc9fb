package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/daedaleanai/gypconf/configure"
	"github.com/daedaleanai/gypconf/gyp"
	"github.com/daedaleanai/gypconf/log"
	"github.com/daedaleanai/gypconf/manifest"
	"github.com/daedaleanai/gypconf/subproject"
	"github.com/daedaleanai/gypconf/toolchain"

	"github.com/spf13/cobra"
)

var configureCmd = &cobra.Command{
	Use:   "configure [--target-arch ARCH] [--toolchain VERSION]",
	Args:  cobra.NoArgs,
	Short: "Generates the Visual Studio project files",
	Long: `Generates the Visual Studio project files for the selected architecture into
out/<arch>. NASM must be installed. The exit status of GYP is passed through.`,
	Run: runConfigure,
}

func init() {
	addBuildFlags(configureCmd)
	rootCmd.AddCommand(configureCmd)
}

// quietGenerator hides the generator output behind a spinner and only shows it if GYP fails.
type quietGenerator struct {
	generator gyp.Generator
	output    *bytes.Buffer
	stderr    io.Writer
}

func (g quietGenerator) Generate(ctx context.Context, args []string) (int, error) {
	log.Spinner.Suffix = " Running GYP..."
	log.Spinner.Start()
	rc, err := g.generator.Generate(ctx, args)
	log.Spinner.Stop()
	if rc != 0 || err != nil {
		if _, copyErr := io.Copy(g.stderr, g.output); copyErr != nil {
			log.Debug("Failed to show the GYP output: %s.\n", copyErr)
		}
	}
	return rc, err
}

func newConfigurer(s settings) *configure.Configurer {
	generator, err := gyp.NewExecGenerator(s.paths.Root, s.generator)
	if err != nil {
		log.Fatal("%s.\n", err)
	}

	c := &configure.Configurer{
		Paths:     s.paths,
		Assembler: s.assembler,
		Prober:    toolchain.NewProber(toolchain.ExecRunner{Timeout: s.probeTimeout}),
		Stager:    gyp.FileStager{},
		Generator: generator,
	}
	if log.Interactive() && !log.Verbose() {
		output := &bytes.Buffer{}
		generator.Stdout = output
		generator.Stderr = output
		c.Generator = quietGenerator{generator: generator, output: output, stderr: os.Stderr}
	}
	return c
}

func reportProbe(res toolchain.Result) {
	for _, warning := range res.Warnings {
		log.Warning("%s\n", warning)
	}
	if res.Detected() {
		log.Debug("Detected NASM %s.\n", res.Version)
	}
}

func openSubprojects(s settings) []subproject.Subproject {
	sps, err := subproject.OpenAll(s.paths.CurlRoot, s.paths.Libssh2Root)
	if err != nil {
		log.Fatal("%s.\n", err)
	}
	for _, sp := range sps {
		if sp.Kind == subproject.Missing {
			log.Warning("Sub-project '%s' is missing. Check out '%s' before building.\n", sp.Name, sp.Path)
		}
	}
	return sps
}

func writeManifest(s settings, plan configure.Plan, sps []subproject.Subproject) {
	states, err := subproject.States(sps)
	if err != nil {
		log.Warning("Not recording the configuration: %s.\n", err)
		return
	}
	path := filepath.Join(s.paths.ArchOutputDir(plan.Options.Arch()), manifest.FileName)
	if err := manifest.Write(path, manifest.Generate(gypconfVersion, plan, states)); err != nil {
		log.Warning("Failed to write '%s': %s.\n", path, err)
		return
	}
	log.Debug("Configuration recorded in '%s'.\n", path)
}

// exitConfigure terminates with the exit status of GYP if it failed, and with 1 otherwise.
func exitConfigure(err error) {
	var genErr *configure.GeneratorError
	if errors.As(err, &genErr) {
		log.Exit(genErr.Code, "Error running GYP\n")
		return
	}
	log.Fatal("%s.\n", err)
}

func runConfigure(cmd *cobra.Command, args []string) {
	s := mustLoadSettings(cmd)
	log.Log("Configuring '%s' for %s.\n", s.paths.Root, s.options.Arch())
	sps := openSubprojects(s)

	plan, err := newConfigurer(s).Run(context.Background(), s.options)
	reportProbe(plan.Probe)
	if err != nil {
		exitConfigure(err)
		return
	}

	writeManifest(s, plan, sps)
	log.Success("Project files written to '%s'.\n", s.paths.ArchOutputDir(s.options.Arch()))
}
