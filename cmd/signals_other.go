//go:build !unix

package cmd

import "os"

// No user signals outside unix; the key bindings still work.
var (
	toggleSignal os.Signal
	skipSignal   os.Signal
)
