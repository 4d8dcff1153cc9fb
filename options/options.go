// Package options holds the user-facing build options and their validation.
package options

import (
	"fmt"
	"strings"
)

// Arch is a target CPU architecture as understood by the GYP files.
type Arch string

const (
	// ArchUnspecified means the host architecture is used.
	ArchUnspecified Arch = ""
	ArchIA32        Arch = "ia32"
	ArchX64         Arch = "x64"
)

// Toolchain is an MSVS version, or "auto" to let GYP choose.
type Toolchain string

// ToolchainAuto is the default toolchain hint.
const ToolchainAuto Toolchain = "auto"

// Archs lists the accepted architecture values.
var Archs = []Arch{ArchIA32, ArchX64}

// Toolchains lists the accepted toolchain values.
var Toolchains = []Toolchain{"2008", "2010", "2012", "2013", "2015", "2017", "2019", ToolchainAuto}

// BuildOptions is the user's intent for one configuration run.
type BuildOptions struct {
	TargetArch Arch
	Toolchain  Toolchain
}

// ParseArch validates an architecture value. The empty string selects the host architecture.
func ParseArch(s string) (Arch, error) {
	if s == "" {
		return ArchUnspecified, nil
	}
	for _, a := range Archs {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("invalid target architecture '%s' (choose from '%s')", s, joinArchs())
}

// ParseToolchain validates a toolchain value. The empty string selects "auto".
func ParseToolchain(s string) (Toolchain, error) {
	if s == "" {
		return ToolchainAuto, nil
	}
	for _, tc := range Toolchains {
		if string(tc) == s {
			return tc, nil
		}
	}
	return "", fmt.Errorf("invalid toolchain '%s' (choose from '%s')", s, joinToolchains())
}

// New validates raw option values and returns the resulting BuildOptions.
func New(arch, toolchain string) (BuildOptions, error) {
	a, err := ParseArch(arch)
	if err != nil {
		return BuildOptions{}, err
	}
	tc, err := ParseToolchain(toolchain)
	if err != nil {
		return BuildOptions{}, err
	}
	return BuildOptions{TargetArch: a, Toolchain: tc}, nil
}

// Arch returns the target architecture, falling back to the host architecture.
func (o BuildOptions) Arch() Arch {
	if o.TargetArch == ArchUnspecified {
		return HostArch()
	}
	return o.TargetArch
}

// HostArch returns the architecture passed to GYP as host_arch.
// It deliberately mirrors the target architecture rather than the machine
// gypconf runs on; the GYP files rely on both being equal.
func (o BuildOptions) HostArch() Arch {
	return o.Arch()
}

// HasToolchain reports whether an explicit MSVS version was requested.
func (o BuildOptions) HasToolchain() bool {
	return o.Toolchain != "" && o.Toolchain != ToolchainAuto
}

// HostArch returns the architecture of the machine gypconf runs on.
func HostArch() Arch {
	return archForMachine(machine())
}

func archForMachine(m string) Arch {
	if m == "i386" {
		return ArchIA32
	}
	return ArchX64
}

func joinArchs() string {
	s := make([]string, 0, len(Archs))
	for _, a := range Archs {
		s = append(s, string(a))
	}
	return strings.Join(s, "', '")
}

func joinToolchains() string {
	s := make([]string, 0, len(Toolchains))
	for _, tc := range Toolchains {
		s = append(s, string(tc))
	}
	return strings.Join(s, "', '")
}
