//go:build !windows

package terminal

import "os"

// device opens the POSIX controlling-terminal node.
type device struct{}

func (device) OpenInput() (*os.File, error) {
	return os.OpenFile("/dev/tty", os.O_RDONLY, 0)
}

func (device) OpenOutput() (*os.File, error) {
	return os.OpenFile("/dev/tty", os.O_WRONLY, 0)
}
