//go:build !windows

package platform

import "fmt"

func newWindowsInstaller(Options) (Installer, error) {
	return nil, fmt.Errorf("%w: windows backend requires a windows build", ErrUnsupportedPlatform)
}
