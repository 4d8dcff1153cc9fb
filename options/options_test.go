package options

import "testing"

func TestParseArch(t *testing.T) {
	for _, s := range []string{"ia32", "x64"} {
		a, err := ParseArch(s)
		if err != nil {
			t.Fatalf("ParseArch(%q): %v", s, err)
		}
		if string(a) != s {
			t.Fatalf("ParseArch(%q) = %q", s, a)
		}
	}

	a, err := ParseArch("")
	if err != nil || a != ArchUnspecified {
		t.Fatalf("ParseArch(\"\") = %q, %v", a, err)
	}

	for _, s := range []string{"x86", "amd64", "X64", "arm64"} {
		if _, err := ParseArch(s); err == nil {
			t.Fatalf("ParseArch(%q) should fail", s)
		}
	}
}

func TestParseToolchain(t *testing.T) {
	for _, s := range []string{"2008", "2010", "2012", "2013", "2015", "2017", "2019", "auto"} {
		tc, err := ParseToolchain(s)
		if err != nil {
			t.Fatalf("ParseToolchain(%q): %v", s, err)
		}
		if string(tc) != s {
			t.Fatalf("ParseToolchain(%q) = %q", s, tc)
		}
	}

	tc, err := ParseToolchain("")
	if err != nil || tc != ToolchainAuto {
		t.Fatalf("ParseToolchain(\"\") = %q, %v", tc, err)
	}

	for _, s := range []string{"2022", "vs2019", "AUTO"} {
		if _, err := ParseToolchain(s); err == nil {
			t.Fatalf("ParseToolchain(%q) should fail", s)
		}
	}
}

func TestNewRejectsBeforeAccepting(t *testing.T) {
	if _, err := New("x64", "2021"); err == nil {
		t.Fatal("expected invalid toolchain to be rejected")
	}
	if _, err := New("mips", "2019"); err == nil {
		t.Fatal("expected invalid architecture to be rejected")
	}
	o, err := New("ia32", "2015")
	if err != nil {
		t.Fatal(err)
	}
	if o.TargetArch != ArchIA32 || o.Toolchain != "2015" {
		t.Fatalf("unexpected options %+v", o)
	}
}

func TestArchForMachine(t *testing.T) {
	tests := map[string]Arch{
		"i386":   ArchIA32,
		"i686":   ArchX64,
		"x86_64": ArchX64,
		"AMD64":  ArchX64,
		"x86":    ArchX64,
		"":       ArchX64,
	}
	for m, want := range tests {
		if got := archForMachine(m); got != want {
			t.Errorf("archForMachine(%q) = %q, want %q", m, got, want)
		}
	}
}

func TestResolvedArchitectures(t *testing.T) {
	for _, a := range []Arch{ArchIA32, ArchX64, ArchUnspecified} {
		o := BuildOptions{TargetArch: a, Toolchain: ToolchainAuto}
		want := a
		if a == ArchUnspecified {
			want = HostArch()
		}
		if got := o.Arch(); got != want {
			t.Errorf("Arch() for %q = %q, want %q", a, got, want)
		}
		if o.HostArch() != o.Arch() {
			t.Errorf("HostArch() for %q = %q, must mirror %q", a, o.HostArch(), o.Arch())
		}
	}
}

func TestHasToolchain(t *testing.T) {
	if (BuildOptions{Toolchain: ToolchainAuto}).HasToolchain() {
		t.Fatal("auto must not count as an explicit toolchain")
	}
	if (BuildOptions{}).HasToolchain() {
		t.Fatal("empty toolchain must not count as an explicit toolchain")
	}
	if !(BuildOptions{Toolchain: "2017"}).HasToolchain() {
		t.Fatal("2017 is an explicit toolchain")
	}
}
