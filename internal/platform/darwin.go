package platform

import (
	"fmt"
	"os"
	"time"
)

const darwinFontDir = "/Library/Fonts"

type darwinInstaller struct {
	*backend
	cmds commands
}

func newDarwinInstaller(opts Options) (Installer, error) {
	return newDarwinInstallerWith(opts, systemCommands), nil
}

func newDarwinInstallerWith(opts Options, cmds commands) *darwinInstaller {
	dir := opts.FontDir
	if dir == "" {
		dir = darwinFontDir
	}

	di := &darwinInstaller{cmds: cmds}
	di.backend = newBackend(dir, newCatalog(dir).register, di.refreshFontServer)
	return di
}

// macOS ships everything needed to install fonts.
func (di *darwinInstaller) CheckDependencies() DependencyStatus {
	return DependencyStatus{Available: true}
}

func (di *darwinInstaller) InstallDependencies() bool {
	return true
}

func (di *darwinInstaller) refreshFontServer(string) error {
	// macOS picks up new fonts on its own; touching the directory makes it
	// happen sooner.
	now := time.Now()
	if err := os.Chtimes(di.store.dir, now, now); err != nil {
		return fmt.Errorf("updating directory timestamp: %w", err)
	}

	// Older macOS versions need the font server restarted.
	if err := di.cmds.run("atsutil", "databases", "-remove"); err == nil {
		if err := di.cmds.run("atsutil", "server", "-shutdown"); err != nil {
			return fmt.Errorf("restarting font server: %w", err)
		}
	}

	return nil
}
