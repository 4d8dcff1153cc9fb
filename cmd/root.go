package cmd

import (
	"os"

	"github.com/daedaleanai/gypconf/log"
	"github.com/joho/godotenv"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "gypconf",
	Short: "Configures the curl and libssh2 GYP build",
	Long: `gypconf translates build options (target architecture, MSVS toolchain) into
the command line for GYP, checks that NASM is usable, and runs GYP to generate
the Visual Studio project files for curl and libssh2.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetVerbose(verbose)
		// Variables already set in the environment take precedence over .env.
		if err := godotenv.Load(); err == nil {
			log.Debug("Loaded environment from '.env'.\n")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output")
	rootCmd.PersistentFlags().String(rootFlagName, "", "Project root directory. Defaults to the closest directory containing curl.gyp")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if rootCmd.Execute() != nil {
		os.Exit(1)
	}
}
