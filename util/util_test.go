package util

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
)

func writeFile(t *testing.T, p, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(p), DirMode); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(p), err)
	}
	if err := os.WriteFile(p, []byte(content), FileMode); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
}

func samePath(t *testing.T, got, want string) {
	t.Helper()
	g, err := filepath.EvalSymlinks(got)
	if err != nil {
		t.Fatalf("resolve %s: %v", got, err)
	}
	w, err := filepath.EvalSymlinks(want)
	if err != nil {
		t.Fatalf("resolve %s: %v", want, err)
	}
	if g != w {
		t.Fatalf("got '%s', want '%s'", got, want)
	}
}

func TestCopyFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.h")
	dst := filepath.Join(dir, "dst.h")
	writeFile(t, src, "#define NEW 1\n")
	writeFile(t, dst, "#define OLD 1\n/* a much longer stale header */\n")

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "#define NEW 1\n" {
		t.Fatalf("unexpected destination content %q", data)
	}
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := CopyFile(filepath.Join(dir, "missing.h"), filepath.Join(dir, "dst.h"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if FileExists(filepath.Join(dir, "dst.h")) {
		t.Fatal("destination must not be created when the source is missing")
	}
}

func TestCopyFileMissingDestinationDir(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.h")
	writeFile(t, src, "#define NEW 1\n")

	dst := filepath.Join(dir, "include", "dst.h")
	err := CopyFile(src, dst)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if DirExists(filepath.Dir(dst)) {
		t.Fatal("destination directory must not be created")
	}
}

func TestCopyFileFollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.h")
	writeFile(t, target, "#define LINKED 1\n")
	link := filepath.Join(dir, "link.h")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	dst := filepath.Join(dir, "dst.h")
	if err := CopyFile(link, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	info, err := os.Lstat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		t.Fatal("expected a regular file, got a symlink")
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "#define LINKED 1\n" {
		t.Fatalf("unexpected destination content %q", data)
	}
}

func TestFindProjectRootWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ProjectFileName), "{}")
	nested := filepath.Join(root, "curl", "lib", "vtls")
	if err := os.MkdirAll(nested, DirMode); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot: %v", err)
	}
	samePath(t, got, root)
}

func TestFindProjectRootFallsBackToGit(t *testing.T) {
	root := t.TempDir()
	if _, err := git.PlainInit(root, false); err != nil {
		t.Fatalf("git init: %v", err)
	}
	nested := filepath.Join(root, "build")
	if err := os.MkdirAll(nested, DirMode); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot: %v", err)
	}
	samePath(t, got, root)
}

func TestDirAndFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	writeFile(t, file, "")

	if !DirExists(dir) || DirExists(file) {
		t.Fatal("DirExists misreports")
	}
	if !FileExists(file) || FileExists(dir) {
		t.Fatal("FileExists misreports")
	}
}
