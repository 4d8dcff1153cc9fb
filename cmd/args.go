package cmd

import (
	"context"
	"fmt"

	"github.com/daedaleanai/gypconf/log"
	"github.com/kballard/go-shellquote"

	"github.com/spf13/cobra"
)

var argsOnePerLine bool

var argsCmd = &cobra.Command{
	Use:   "args [--target-arch ARCH] [--toolchain VERSION]",
	Args:  cobra.NoArgs,
	Short: "Prints the GYP command line without running GYP",
	Long: `Prints the GYP command line without running GYP. The libssh2 configuration
header is staged and NASM is probed exactly as for 'configure'.`,
	Run: runArgs,
}

func init() {
	addBuildFlags(argsCmd)
	argsCmd.Flags().BoolVar(&argsOnePerLine, "lines", false, "Print one argument per line")
	rootCmd.AddCommand(argsCmd)
}

func runArgs(cmd *cobra.Command, args []string) {
	s := mustLoadSettings(cmd)

	plan, err := newConfigurer(s).Arguments(context.Background(), s.options)
	reportProbe(plan.Probe)
	if err != nil {
		log.Fatal("%s.\n", err)
	}

	if argsOnePerLine {
		for _, arg := range plan.Args {
			fmt.Println(arg)
		}
		return
	}
	fmt.Println(shellquote.Join(plan.Args...))
}
