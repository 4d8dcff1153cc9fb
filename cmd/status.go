package cmd

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/daedaleanai/gypconf/log"
	"github.com/daedaleanai/gypconf/manifest"
	"github.com/daedaleanai/gypconf/options"
	"github.com/daedaleanai/gypconf/subproject"
	"github.com/daedaleanai/gypconf/util"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Args:  cobra.NoArgs,
	Short: "Prints a status report of the project, its sub-projects and configurations",
	Long: `Prints a status report of the project, its sub-projects and configurations.
For every architecture that has been configured, the recorded configuration is
compared with the current state of the sub-projects.`,
	Run: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	s := mustLoadSettings(cmd)
	log.Log("Project: '%s'\n", s.paths.Root)
	log.IndentationLevel = 1
	for _, p := range []string{s.paths.ProjectFile, s.paths.CommonGypi, s.paths.ConfigHeaderSrc} {
		if util.FileExists(p) {
			log.Log("%s\n", p)
		} else {
			log.Error("%s is missing.\n", p)
		}
	}

	log.IndentationLevel = 0
	log.Log("\nSub-projects:\n")
	log.IndentationLevel = 1
	sps, err := subproject.OpenAll(s.paths.CurlRoot, s.paths.Libssh2Root)
	if err != nil {
		log.Fatal("%s.\n", err)
	}
	states, err := subproject.States(sps)
	if err != nil {
		log.Fatal("%s.\n", err)
	}
	for _, state := range states {
		switch {
		case state.Kind == subproject.Missing.String():
			log.Error("%s: missing.\n", state.Name)
		case state.Hash == "":
			log.Log("%s: %s.\n", state.Name, state.Kind)
		case state.Dirty:
			log.Warning("%s: %s, has uncommited changes.\n", state.Name, state.Hash)
		default:
			log.Log("%s: %s.\n", state.Name, state.Hash)
		}
	}

	for _, arch := range options.Archs {
		log.IndentationLevel = 0
		path := filepath.Join(s.paths.ArchOutputDir(arch), manifest.FileName)
		recorded, err := manifest.Read(path)
		if errors.Is(err, os.ErrNotExist) {
			log.Log("\n%s: not configured.\n", arch)
			continue
		}
		if err != nil {
			log.Error("\n%s: %s.\n", arch, err)
			continue
		}

		log.Log("\n%s: configured with toolchain '%s' and NASM %s.\n", arch, recorded.Toolchain, recorded.NasmVersion)
		log.IndentationLevel = 1
		current := recorded
		current.Subprojects = states
		diff := manifest.Diff(current, recorded)
		if !diff.Differ {
			log.Success("Up to date.\n")
			continue
		}
		for _, change := range diff.Changes {
			log.Warning("%s.\n", change)
		}
		log.Log("Run 'gypconf configure --target-arch %s' to regenerate.\n", arch)
	}
	log.IndentationLevel = 0
}
