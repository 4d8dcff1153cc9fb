package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/daedaleanai/gypconf/config"
	"github.com/daedaleanai/gypconf/gyp"
	"github.com/daedaleanai/gypconf/log"
	"github.com/daedaleanai/gypconf/options"
	"github.com/daedaleanai/gypconf/toolchain"
	"github.com/daedaleanai/gypconf/util"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "GYPCONF"

const (
	rootFlagName       = "root"
	targetArchFlagName = "target-arch"
	toolchainFlagName  = "toolchain"
	nasmKey            = "nasm"
	generatorKey       = "generator"
	probeTimeoutKey    = "probe-timeout"
)

// settings are the resolved inputs of a command.
type settings struct {
	paths        gyp.Paths
	options      options.BuildOptions
	assembler    string
	generator    string
	probeTimeout time.Duration
}

func addBuildFlags(cmd *cobra.Command) {
	archs := make([]string, 0, len(options.Archs))
	for _, a := range options.Archs {
		archs = append(archs, string(a))
	}
	toolchains := make([]string, 0, len(options.Toolchains))
	for _, tc := range options.Toolchains {
		toolchains = append(toolchains, string(tc))
	}

	cmd.Flags().String(targetArchFlagName, "",
		fmt.Sprintf("CPU architecture to build for ('%s'). Defaults to the host architecture (%s)", strings.Join(archs, "', '"), options.HostArch()))
	cmd.Flags().String(toolchainFlagName, string(options.ToolchainAuto),
		fmt.Sprintf("MSVS toolchain to build for ('%s')", strings.Join(toolchains, "', '")))

	cmd.RegisterFlagCompletionFunc(targetArchFlagName, func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return archs, cobra.ShellCompDirectiveNoFileComp
	})
	cmd.RegisterFlagCompletionFunc(toolchainFlagName, func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return toolchains, cobra.ShellCompDirectiveNoFileComp
	})
}

// newViper layers command line flags over GYPCONF_* environment variables over the
// configuration file.
func newViper(cmd *cobra.Command, cfg config.Config) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(nasmKey, toolchain.DefaultAssembler)
	defaults := map[string]string{
		targetArchFlagName: cfg.TargetArch,
		toolchainFlagName:  cfg.Toolchain,
		nasmKey:            cfg.Nasm,
		generatorKey:       cfg.Generator,
		probeTimeoutKey:    cfg.ProbeTimeout,
	}
	for key, value := range defaults {
		if value != "" {
			v.SetDefault(key, value)
		}
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	return v, nil
}

// resolveSettings validates the layered values. The project root is only looked up if `needRoot`.
func resolveSettings(v *viper.Viper, needRoot bool) (settings, error) {
	var s settings

	// Options are validated before anything else happens.
	opts, err := options.New(v.GetString(targetArchFlagName), v.GetString(toolchainFlagName))
	if err != nil {
		return s, err
	}
	s.options = opts

	if timeout := v.GetString(probeTimeoutKey); timeout != "" {
		if s.probeTimeout, err = time.ParseDuration(timeout); err != nil {
			return s, fmt.Errorf("invalid %s '%s': %w", probeTimeoutKey, timeout, err)
		}
	}

	s.assembler = v.GetString(nasmKey)
	s.generator = v.GetString(generatorKey)

	root := v.GetString(rootFlagName)
	if root == "" {
		if !needRoot {
			return s, nil
		}
		if root, err = util.GetProjectRoot(); err != nil {
			return s, err
		}
	}
	if s.paths, err = gyp.NewPaths(root); err != nil {
		return s, err
	}
	return s, nil
}

func mustLoadSettings(cmd *cobra.Command) settings {
	return loadSettings(cmd, true)
}

func loadSettings(cmd *cobra.Command, needRoot bool) settings {
	v, err := newViper(cmd, config.GetConfig())
	if err != nil {
		log.Fatal("Failed to read flags: %s.\n", err)
	}
	s, err := resolveSettings(v, needRoot)
	if err != nil {
		log.Fatal("%s.\n", err)
	}
	if s.paths.Root != "" {
		log.Debug("Project root: %s.\n", s.paths.Root)
	}
	log.Debug("Options: target_arch=%s toolchain=%s.\n", s.options.Arch(), s.options.Toolchain)
	return s
}
