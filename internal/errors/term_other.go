//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly && !windows

package errors

func isTerminal(uintptr) bool { return false }

func enableVirtualTerminal(uintptr) bool { return false }
