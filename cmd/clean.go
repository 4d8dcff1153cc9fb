package cmd

import (
	"os"

	"github.com/daedaleanai/gypconf/log"

	"github.com/spf13/cobra"
)

var cleanAll bool

var cleanCmd = &cobra.Command{
	Use:   "clean [--target-arch ARCH] [--all]",
	Args:  cobra.NoArgs,
	Short: "Removes generated project files",
	Long:  `Removes the generated project files of one architecture, or of all architectures with --all.`,
	Run:   runClean,
}

func init() {
	addBuildFlags(cleanCmd)
	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "Remove the output directories of all architectures")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) {
	s := mustLoadSettings(cmd)
	dir := s.paths.ArchOutputDir(s.options.Arch())
	if cleanAll {
		dir = s.paths.OutputDir
	}
	log.Debug("Removing directory '%s'.\n", dir)
	if err := os.RemoveAll(dir); err != nil {
		log.Fatal("Failed to remove '%s': %s.\n", dir, err)
	}
	log.Success("Removed '%s'.\n", dir)
}
