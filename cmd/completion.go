package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Prints a shell completion script for gypconf",
	Long: `Prints a shell completion script for gypconf. Besides commands and flags, the
script completes the values of --target-arch (ia32, x64) and --toolchain (the
supported MSVS versions and auto).

Bash, for the current shell:

  $ source <(gypconf completion bash)

Bash, for every session (Linux):

  $ gypconf completion bash > /etc/bash_completion.d/gypconf

Zsh needs compinit enabled in ~/.zshrc, then:

  $ gypconf completion zsh > "${fpath[1]}/_gypconf"

Fish:

  $ gypconf completion fish > ~/.config/fish/completions/gypconf.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			cmd.Root().GenFishCompletion(os.Stdout, true)
		}
	},
	Hidden: true,
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
