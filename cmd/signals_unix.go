//go:build unix

package cmd

import (
	"os"
	"syscall"
)

var (
	toggleSignal os.Signal = syscall.SIGUSR1
	skipSignal   os.Signal = syscall.SIGUSR2
)
