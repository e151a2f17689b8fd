//go:build unix

package hostenv

import "golang.org/x/sys/unix"

func (h *systemHost) Access(path string) error {
	return unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK)
}
