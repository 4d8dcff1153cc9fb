// Package subproject inspects the library checkouts bundled with the project.
package subproject

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/daedaleanai/gypconf/log"
	"github.com/daedaleanai/gypconf/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Kind describes how a sub-project is present on disk.
type Kind int

const (
	// Missing sub-projects have no directory.
	Missing Kind = iota
	// Vendored sub-projects are plain directories.
	Vendored
	// Git sub-projects are git checkouts or submodules.
	Git
)

func (k Kind) String() string {
	switch k {
	case Missing:
		return "missing"
	case Vendored:
		return "vendored"
	case Git:
		return "git"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Subproject is a library directory below the project root.
type Subproject struct {
	Name string
	Path string
	Kind Kind

	repo *git.Repository
}

// Open inspects the sub-project at `path`. A missing directory is not an error.
func Open(path string) (Subproject, error) {
	sp := Subproject{Name: filepath.Base(path), Path: path}
	if !util.DirExists(path) {
		log.Debug("Sub-project '%s' does not exist.\n", path)
		return sp, nil
	}

	repo, err := git.PlainOpen(path)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		log.Debug("Sub-project '%s' is not a git checkout.\n", path)
		sp.Kind = Vendored
		return sp, nil
	}
	if err != nil {
		return sp, fmt.Errorf("opening sub-project '%s': %w", sp.Name, err)
	}
	sp.Kind = Git
	sp.repo = repo
	return sp, nil
}

// Head returns the commit hash checked out, or the empty string if it is not a git checkout
// or has no commits yet.
func (sp Subproject) Head() (string, error) {
	if sp.repo == nil {
		return "", nil
	}
	head, err := sp.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD of '%s': %w", sp.Name, err)
	}
	return head.Hash().String(), nil
}

// IsDirty returns whether the checkout has any uncommited changes.
func (sp Subproject) IsDirty() (bool, error) {
	if sp.repo == nil {
		return false, nil
	}
	worktree, err := sp.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("failed to get worktree of '%s': %w", sp.Name, err)
	}
	status, err := worktree.Status()
	if err != nil {
		return false, fmt.Errorf("failed to get status of '%s': %w", sp.Name, err)
	}
	return !status.IsClean(), nil
}

// State summarises a sub-project.
type State struct {
	Name  string `yaml:"name"`
	Kind  string `yaml:"kind"`
	Hash  string `yaml:"hash,omitempty"`
	Dirty bool   `yaml:"dirty,omitempty"`
}

// State returns the current state of the sub-project.
func (sp Subproject) State() (State, error) {
	state := State{Name: sp.Name, Kind: sp.Kind.String()}
	var err error
	if state.Hash, err = sp.Head(); err != nil {
		return state, err
	}
	if state.Dirty, err = sp.IsDirty(); err != nil {
		return state, err
	}
	return state, nil
}

// OpenAll opens every path in order.
func OpenAll(paths ...string) ([]Subproject, error) {
	result := make([]Subproject, 0, len(paths))
	for _, p := range paths {
		sp, err := Open(p)
		if err != nil {
			return nil, err
		}
		result = append(result, sp)
	}
	return result, nil
}

// States returns the state of each sub-project.
func States(sps []Subproject) ([]State, error) {
	states := make([]State, 0, len(sps))
	for _, sp := range sps {
		state, err := sp.State()
		if err != nil {
			return nil, err
		}
		states = append(states, state)
	}
	return states, nil
}
