//go:build windows

package main

import (
	"os"

	"golang.org/x/term"
)

// listenForKeyboard reads key presses from the console in raw mode
func listenForKeyboard(k *keyActions) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		// Fall back to line-buffered input
		readKeys(os.Stdin, k)
		return
	}
	defer term.Restore(fd, oldState)

	readKeys(os.Stdin, k)
}
