package gyp

import (
	"errors"
	"fmt"

	"github.com/daedaleanai/gypconf/options"
	"github.com/daedaleanai/gypconf/toolchain"
)

// ErrAssemblerNotFound is returned when no usable NASM was detected. The OpenSSL
// build cannot proceed without it.
var ErrAssemblerNotFound = errors.New("nasm not found")

// Define is a single -D variable passed to GYP.
type Define struct {
	Key   string
	Value string
}

// Args renders the define as generator arguments.
func (d Define) Args() []string {
	return []string{"-D", d.Key + "=" + d.Value}
}

// Defines returns the GYP variables for one configuration, in the order they are passed.
// Several dependency features are forced off; they are not configurable.
func Defines(opts options.BuildOptions, probe toolchain.Result) ([]Define, error) {
	if !probe.Detected() {
		return nil, fmt.Errorf("%w: detected version is %s", ErrAssemblerNotFound, probe.Version)
	}
	return []Define{
		{"experimental_quic", "0"},
		{"openssl_no_asm", "0"},
		{"nasm_version", probe.Version},
		{"debug_nghttp2", "0"},
		{"node_shared_openssl", "false"},
		{"target_arch", string(opts.Arch())},
		{"host_arch", string(opts.HostArch())},
		{"library", "static_library"},
	}, nil
}

// DefineArgs returns Defines rendered as generator arguments.
func DefineArgs(opts options.BuildOptions, probe toolchain.Result) ([]string, error) {
	defines, err := Defines(opts, probe)
	if err != nil {
		return nil, err
	}
	args := make([]string, 0, 2*len(defines))
	for _, d := range defines {
		args = append(args, d.Args()...)
	}
	return args, nil
}
