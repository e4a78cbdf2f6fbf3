package framework

import (
	"os/exec"
)

// SystemProbe reports whether a framework entry library is available on the
// host, using pkg-config when present. Hosts without pkg-config cannot be
// probed reliably, so the first candidate is accepted and the compiler is
// left to fail with its own diagnostics.
func SystemProbe(name string) bool {
	if _, err := exec.LookPath("pkg-config"); err != nil {
		return true
	}
	cmd := exec.Command("pkg-config", "--exists", name)
	return cmd.Run() == nil
}
