// Package gyp assembles the command line passed to the GYP meta-build generator.
package gyp

import (
	"path/filepath"

	"github.com/daedaleanai/gypconf/options"
)

const (
	outputDirName    = "out"
	curlDirName      = "curl"
	libssh2DirName   = "libssh2"
	commonIncludeGYP = "common.gypi"
	configHeaderName = "libssh2_config.h"
)

// Paths are the locations gypconf reads and writes, all derived from the project root.
type Paths struct {
	Root        string
	OutputDir   string
	CurlRoot    string
	Libssh2Root string
	ProjectFile string
	CommonGypi  string

	// ConfigHeaderSrc is the maintained libssh2 configuration header,
	// ConfigHeaderDst is where the libssh2 GYP file expects it.
	ConfigHeaderSrc string
	ConfigHeaderDst string
}

// NewPaths derives all paths from `root`. Nothing is checked on disk.
func NewPaths(root string) (Paths, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return Paths{}, err
	}
	libssh2Root := filepath.Join(root, libssh2DirName)
	return Paths{
		Root:            root,
		OutputDir:       filepath.Join(root, outputDirName),
		CurlRoot:        filepath.Join(root, curlDirName),
		Libssh2Root:     libssh2Root,
		ProjectFile:     filepath.Join(root, "curl.gyp"),
		CommonGypi:      filepath.Join(root, commonIncludeGYP),
		ConfigHeaderSrc: filepath.Join(root, "build", configHeaderName),
		ConfigHeaderDst: filepath.Join(libssh2Root, "include", configHeaderName),
	}, nil
}

// ArchOutputDir is the directory GYP writes the project files for `arch` into.
func (p Paths) ArchOutputDir(arch options.Arch) string {
	return filepath.Join(p.OutputDir, string(arch))
}
