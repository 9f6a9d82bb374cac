//go:build windows

package platform

import (
	"fmt"
	"path/filepath"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const fontRegistryPath = `SOFTWARE\Microsoft\Windows NT\CurrentVersion\Fonts`

const (
	wmFontChange  = 0x001D
	hwndBroadcast = 0xffff
)

var (
	gdi32                 = windows.NewLazySystemDLL("gdi32.dll")
	user32                = windows.NewLazySystemDLL("user32.dll")
	procAddFontResource   = gdi32.NewProc("AddFontResourceW")
	procSendNotifyMessage = user32.NewProc("SendNotifyMessageW")
)

type windowsInstaller struct {
	*backend
	systemDir string
}

func newWindowsInstaller(opts Options) (Installer, error) {
	systemDir, err := windows.KnownFolderPath(windows.FOLDERID_Fonts, 0)
	if err != nil {
		return nil, fmt.Errorf("locating Windows fonts folder: %w", err)
	}

	dir := opts.FontDir
	if dir == "" {
		dir = systemDir
	}

	wi := &windowsInstaller{systemDir: systemDir}
	wi.backend = newBackend(dir, wi.registerFont, addFontResource)
	return wi, nil
}

// Windows needs nothing beyond the OS itself.
func (wi *windowsInstaller) CheckDependencies() DependencyStatus {
	return DependencyStatus{Available: true}
}

func (wi *windowsInstaller) InstallDependencies() bool {
	return true
}

// registerFont writes the font under HKLM. Fonts outside the system fonts
// folder are registered by full path.
func (wi *windowsInstaller) registerFont(displayName, fileName string) error {
	value := fileName
	if !strings.EqualFold(filepath.Clean(wi.store.dir), filepath.Clean(wi.systemDir)) {
		value = filepath.Join(wi.store.dir, fileName)
	}

	key, err := registry.OpenKey(registry.LOCAL_MACHINE, fontRegistryPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("opening font registry key: %w", err)
	}
	defer key.Close()

	if err := key.SetStringValue(displayName, value); err != nil {
		return fmt.Errorf("writing font registry value: %w", err)
	}
	return nil
}

// addFontResource loads the font into the running session and tells every
// top-level window that the font set changed.
func addFontResource(dst string) error {
	p, err := windows.UTF16PtrFromString(dst)
	if err != nil {
		return fmt.Errorf("encoding font path: %w", err)
	}

	added, _, callErr := procAddFontResource.Call(uintptr(unsafe.Pointer(p)))
	if added == 0 {
		return fmt.Errorf("AddFontResourceW: %w", callErr)
	}

	ok, _, callErr := procSendNotifyMessage.Call(hwndBroadcast, wmFontChange, 0, 0)
	if ok == 0 {
		return fmt.Errorf("SendNotifyMessageW: %w", callErr)
	}
	return nil
}
