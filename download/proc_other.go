//go:build !unix

package download

import "os/exec"

// killProcessGroup is a no-op; cancellation kills only the direct child
func killProcessGroup(cmd *exec.Cmd) {}
