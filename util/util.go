package util

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/otiai10/copy"
)

// FileMode is the default FileMode used when creating files.
const FileMode = 0664

// DirMode is the default FileMode used when creating directories.
const DirMode = 0775

// ProjectFileName is the name of the GYP file marking the project root.
const ProjectFileName = "curl.gyp"

// ErrNotInProject is returned when no project root can be found.
var ErrNotInProject = errors.New("not inside a gypconf project")

// FileExists checks whether some file exists.
func FileExists(file string) bool {
	stat, err := os.Stat(file)
	return err == nil && !stat.IsDir()
}

// DirExists checks whether some directory exists.
func DirExists(dir string) bool {
	stat, err := os.Stat(dir)
	return err == nil && stat.IsDir()
}

// CopyFile copies `src` to `dst`, replacing `dst` if it exists. Symbolic links are followed.
// The destination directory must exist.
func CopyFile(src, dst string) error {
	if dir := filepath.Dir(dst); !DirExists(dir) {
		return &os.PathError{Op: "copy", Path: dir, Err: os.ErrNotExist}
	}
	return copy.Copy(src, dst, copy.Options{
		OnSymlink: func(string) copy.SymlinkAction { return copy.Deep },
	})
}

func findProjectFile(p string) (string, bool) {
	for {
		if FileExists(filepath.Join(p, ProjectFileName)) {
			return p, true
		}
		parent := filepath.Dir(p)
		if parent == p {
			return "", false
		}
		p = parent
	}
}

func findGitRoot(p string) (string, bool) {
	repo, err := git.PlainOpenWithOptions(p, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return "", false
	}
	return worktree.Filesystem.Root(), true
}

// FindProjectRoot returns the closest directory at or above `start` that contains
// the project GYP file. If there is none, the root of the enclosing git worktree is used.
func FindProjectRoot(start string) (string, error) {
	start, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	if root, ok := findProjectFile(start); ok {
		return root, nil
	}
	if root, ok := findGitRoot(start); ok {
		return root, nil
	}
	return "", fmt.Errorf("%w: no %s found above '%s'", ErrNotInProject, ProjectFileName, start)
}

// GetProjectRoot returns the project root for the current working directory.
func GetProjectRoot() (string, error) {
	workingDir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindProjectRoot(workingDir)
}
