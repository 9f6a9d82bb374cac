//go:build windows

package platform

import "golang.org/x/sys/windows"

// IsElevated reports whether the process runs with administrative rights.
func IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
