package toolchain

import (
	"context"
	"os/exec"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

type fakeRunner struct {
	out   []byte
	err   error
	calls [][]string
}

func (r *fakeRunner) Run(ctx context.Context, argv []string) ([]byte, error) {
	r.calls = append(r.calls, argv)
	return r.out, r.err
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		out  string
		want string
	}{
		{"NASM version 2.14.1\n", "2.14"},
		{"NASM version 2.16.01 compiled on Dec 21 2022\n", "2.16"},
		{"NASM version 2.100\n", "2.100"},
		{"NASM version 2.1\n", UnknownVersion},
		{"NASM version 1.99\n", UnknownVersion},
		{"  NASM version 2.14\n", UnknownVersion},
		{"YASM 1.3.0\n", UnknownVersion},
		{"", UnknownVersion},
		{"NASM version 2.15\xff\xfe\n", "2.15"},
	}
	for _, tt := range tests {
		if got := ParseVersion([]byte(tt.out)); got != tt.want {
			t.Errorf("ParseVersion(%q) = %q, want %q", tt.out, got, tt.want)
		}
	}
}

func TestProbeAppendsVersionFlag(t *testing.T) {
	r := &fakeRunner{out: []byte("NASM version 2.15.05\n")}
	res := NewProber(r).Probe(context.Background(), `"C:/Program Files/NASM/nasm.exe" -Xvc`)

	if res.Version != "2.15" || !res.Detected() {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings %v", res.Warnings)
	}
	want := [][]string{{"C:/Program Files/NASM/nasm.exe", "-Xvc", "-v"}}
	if !reflect.DeepEqual(r.calls, want) {
		t.Fatalf("calls = %q, want %q", r.calls, want)
	}
}

func TestProbeSpawnFailureWarns(t *testing.T) {
	r := &fakeRunner{err: exec.ErrNotFound}
	res := NewProber(r).Probe(context.Background(), "nasm")

	if res.Version != UnknownVersion || res.Detected() {
		t.Fatalf("expected sentinel version, got %+v", res)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", res.Warnings)
	}
}

func TestProbeUnparsableOutputDoesNotWarn(t *testing.T) {
	r := &fakeRunner{out: []byte("nasm: error: unrecognised option `-v'\n")}
	res := NewProber(r).Probe(context.Background(), "nasm")

	if res.Version != UnknownVersion {
		t.Fatalf("expected sentinel version, got %q", res.Version)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", res.Warnings)
	}
}

func TestProbeBadCommand(t *testing.T) {
	for _, command := range []string{"", "   ", `"unterminated`} {
		r := &fakeRunner{out: []byte("NASM version 2.14\n")}
		res := NewProber(r).Probe(context.Background(), command)
		if res.Detected() || len(res.Warnings) != 1 {
			t.Errorf("command %q: unexpected result %+v", command, res)
		}
		if len(r.calls) != 0 {
			t.Errorf("command %q: runner must not be called", command)
		}
	}
}

func TestProbeIsNotCached(t *testing.T) {
	r := &fakeRunner{out: []byte("NASM version 2.14\n")}
	p := NewProber(r)
	p.Probe(context.Background(), "nasm")
	r.out = []byte("NASM version 2.16\n")
	if got := p.Probe(context.Background(), "nasm").Version; got != "2.16" {
		t.Fatalf("second probe returned %q", got)
	}
	if len(r.calls) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(r.calls))
	}
}

func TestExecRunnerE2E(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found in PATH")
	}

	// sh receives the appended -v as $0 and ignores it.
	res := NewProber(nil).Probe(context.Background(), `sh -c 'echo "NASM version 2.15.05"; exit 3'`)
	if res.Version != "2.15" {
		t.Fatalf("unexpected result %+v", res)
	}

	res = NewProber(nil).Probe(context.Background(), `sh -c 'echo "NASM version 2.16.01" >&2'`)
	if res.Version != "2.16" {
		t.Fatalf("stderr output not captured: %+v", res)
	}
}

func TestExecRunnerTimeoutWithLingeringChild(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found in PATH")
	}

	// The background sleep inherits the output pipe and outlives its killed parent.
	start := time.Now()
	prober := NewProber(ExecRunner{Timeout: 200 * time.Millisecond})
	res := prober.Probe(context.Background(), `sh -c 'echo "NASM version 2.14.02"; sleep 10 & sleep 10'`)
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("probe took %s", elapsed)
	}
	if res.Version != "2.14" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestExecRunnerMissingBinary(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-nasm")
	_, err := ExecRunner{}.Run(context.Background(), []string{missing, "-v"})
	if err == nil {
		t.Fatal("expected spawn failure")
	}

	res := NewProber(ExecRunner{}).Probe(context.Background(), missing)
	if res.Detected() || len(res.Warnings) != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestExecRunnerEmptyCommand(t *testing.T) {
	if _, err := (ExecRunner{}).Run(context.Background(), nil); err == nil {
		t.Fatal("expected an error for an empty command")
	}
}
