package gyp

import (
	"errors"
	"fmt"
	"os"

	"github.com/daedaleanai/gypconf/log"
	"github.com/daedaleanai/gypconf/options"
	"github.com/daedaleanai/gypconf/util"
)

// ErrMissingConfigHeader is returned when the libssh2 configuration header cannot be staged
// because its source does not exist.
var ErrMissingConfigHeader = errors.New("libssh2 configuration header is missing")

// Stager puts a file in place before GYP runs.
type Stager interface {
	Stage(src, dst string) error
}

// FileStager copies files on disk, overwriting the destination.
type FileStager struct{}

// Stage implements Stager.
func (FileStager) Stage(src, dst string) error {
	if !util.FileExists(src) {
		return fmt.Errorf("%w: '%s' does not exist", ErrMissingConfigHeader, src)
	}
	log.Debug("Copying '%s' to '%s'.\n", src, dst)
	if err := util.CopyFile(src, dst); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMissingConfigHeader, err)
		}
		return err
	}
	return nil
}

// BuildsystemArgs returns the generator arguments selecting the project file, the MSVS backend
// and the output locations. It also stages the libssh2 configuration header, which the libssh2
// GYP file expects to exist at generation time.
func BuildsystemArgs(opts options.BuildOptions, paths Paths, stager Stager) ([]string, error) {
	outputDir := paths.ArchOutputDir(opts.Arch())

	args := []string{paths.ProjectFile}
	args = append(args, "-I", paths.CommonGypi)
	args = append(args, "-f", "msvs")
	if opts.HasToolchain() {
		args = append(args, "-G", "msvs_version="+string(opts.Toolchain))
	}
	args = append(args, "--depth="+paths.Root)
	args = append(args, "-G", "output_dir="+outputDir)
	args = append(args, "--generator-output="+outputDir)
	// Older GYP releases do not expose an absolute PRODUCT_DIR.
	args = append(args, "-D", "PRODUCT_DIR_ABS="+outputDir)

	if err := stager.Stage(paths.ConfigHeaderSrc, paths.ConfigHeaderDst); err != nil {
		return nil, fmt.Errorf("staging %s: %w", configHeaderName, err)
	}
	return args, nil
}
