//go:build windows

package utils

// Directory handles cannot be synced on Windows.
func isUnsupported(err error) bool {
	return err != nil
}
