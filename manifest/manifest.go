// Package manifest records what a successful configuration was generated from.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/daedaleanai/gypconf/configure"
	"github.com/daedaleanai/gypconf/subproject"
	"github.com/daedaleanai/gypconf/util"
	"gopkg.in/yaml.v2"
)

// FileName is the name of the manifest inside an architecture's output directory.
const FileName = "gypconf.yaml"

type Manifest struct {
	GypconfVersion string             `yaml:"gypconf-version"`
	TargetArch     string             `yaml:"target-arch"`
	Toolchain      string             `yaml:"toolchain"`
	NasmVersion    string             `yaml:"nasm-version"`
	Subprojects    []subproject.State `yaml:"subprojects"`
	Arguments      []string           `yaml:"arguments"`
}

type DiffResult struct {
	Differ  bool
	Changes []string
}

// Generate describes the configuration in `plan`.
func Generate(version string, plan configure.Plan, subprojects []subproject.State) Manifest {
	return Manifest{
		GypconfVersion: version,
		TargetArch:     string(plan.Options.Arch()),
		Toolchain:      string(plan.Options.Toolchain),
		NasmVersion:    plan.Probe.Version,
		Subprojects:    subprojects,
		Arguments:      plan.Args,
	}
}

// Write stores the manifest at `path`, creating parent directories as needed.
func Write(path string, m Manifest) error {
	data, err := yaml.Marshal(&m)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), util.DirMode); err != nil {
		return err
	}
	return os.WriteFile(path, data, util.FileMode)
}

// Read loads the manifest at `path`.
func Read(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parsing manifest '%s': %w", path, err)
	}
	return m, nil
}

func findByName(name string, states []subproject.State) (subproject.State, bool) {
	for _, s := range states {
		if s.Name == name {
			return s, true
		}
	}
	return subproject.State{}, false
}

// Diff lists what differs between two manifests. Argument lists are compared as a whole.
func Diff(newManifest, oldManifest Manifest) DiffResult {
	result := DiffResult{}
	changed := func(format string, a ...interface{}) {
		result.Differ = true
		result.Changes = append(result.Changes, fmt.Sprintf(format, a...))
	}

	if newManifest.GypconfVersion != oldManifest.GypconfVersion {
		changed("gypconf version changed from %s to %s", oldManifest.GypconfVersion, newManifest.GypconfVersion)
	}
	if newManifest.TargetArch != oldManifest.TargetArch {
		changed("target architecture changed from %s to %s", oldManifest.TargetArch, newManifest.TargetArch)
	}
	if newManifest.Toolchain != oldManifest.Toolchain {
		changed("toolchain changed from %s to %s", oldManifest.Toolchain, newManifest.Toolchain)
	}
	if newManifest.NasmVersion != oldManifest.NasmVersion {
		changed("NASM version changed from %s to %s", oldManifest.NasmVersion, newManifest.NasmVersion)
	}

	for _, sp := range newManifest.Subprojects {
		old, found := findByName(sp.Name, oldManifest.Subprojects)
		switch {
		case !found:
			changed("sub-project '%s' was added", sp.Name)
		case sp.Kind != old.Kind:
			changed("sub-project '%s' changed from %s to %s", sp.Name, old.Kind, sp.Kind)
		case sp.Hash != old.Hash:
			changed("sub-project '%s' moved from %s to %s", sp.Name, shortHash(old.Hash), shortHash(sp.Hash))
		case sp.Dirty != old.Dirty:
			changed("sub-project '%s' uncommitted changes: %t -> %t", sp.Name, old.Dirty, sp.Dirty)
		}
	}
	for _, sp := range oldManifest.Subprojects {
		if _, found := findByName(sp.Name, newManifest.Subprojects); !found {
			changed("sub-project '%s' was removed", sp.Name)
		}
	}

	if !equalStrings(newManifest.Arguments, oldManifest.Arguments) {
		changed("generator arguments changed")
	}
	return result
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	if h == "" {
		return "<none>"
	}
	return h
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
