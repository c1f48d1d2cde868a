//go:build linux

package errors

import "golang.org/x/sys/unix"

func isTerminal(fd uintptr) bool {
	_, err := unix.IoctlGetTermios(int(fd), unix.TCGETS)
	return err == nil
}

func enableVirtualTerminal(uintptr) bool { return true }
