//go:build windows

package hostenv

import "os"

// Windows has no faccessat; fall back to an existence check.
func (h *systemHost) Access(path string) error {
	_, err := os.Stat(path)
	return err
}
