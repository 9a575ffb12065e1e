//go:build !linux && !darwin && !windows

package main

import "os"

// listenForKeyboard reads line-buffered input where terminal modes are not supported
func listenForKeyboard(k *keyActions) {
	readKeys(os.Stdin, k)
}
