package cmd

import (
	"context"
	"fmt"

	"github.com/daedaleanai/gypconf/log"
	"github.com/daedaleanai/gypconf/toolchain"

	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Args:  cobra.NoArgs,
	Short: "Prints the detected NASM version",
	Long: `Prints the detected NASM version. Exits with a non-zero status if no usable
NASM was found. The assembler command can be set with GYPCONF_NASM or 'nasm'
in the configuration file.`,
	Run: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) {
	s := loadSettings(cmd, false)
	log.Debug("Probing '%s'.\n", s.assembler)

	prober := toolchain.NewProber(toolchain.ExecRunner{Timeout: s.probeTimeout})
	res := prober.Probe(context.Background(), s.assembler)
	reportProbe(res)
	if !res.Detected() {
		log.Fatal("nasm not found.\n")
	}
	fmt.Println(res.Version)
}
