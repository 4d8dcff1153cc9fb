//go:build !unix

package options

import "os"

// machine returns the processor architecture as reported by Windows, e.g. "AMD64" or "x86".
func machine() string {
	return os.Getenv("PROCESSOR_ARCHITECTURE")
}
