//go:build unix

package options

import "golang.org/x/sys/unix"

// machine returns the hardware name reported by uname(2), e.g. "x86_64" or "i386".
func machine() string {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return ""
	}
	return unix.ByteSliceToString(u.Machine[:])
}
