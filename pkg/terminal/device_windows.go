//go:build windows

package terminal

import "os"

// device opens the Windows console device.
type device struct{}

func (device) OpenInput() (*os.File, error) {
	return os.OpenFile("CONIN$", os.O_RDWR, 0)
}

func (device) OpenOutput() (*os.File, error) {
	return os.OpenFile("CONOUT$", os.O_RDWR, 0)
}
