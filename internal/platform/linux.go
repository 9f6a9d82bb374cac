package platform

import (
	"fmt"
	"os/exec"

	"github.com/logandonley/fontsync/internal/logger"
)

const linuxFontDir = "/usr/local/share/fonts"

// commands is how backends reach external programs.
type commands struct {
	lookPath func(file string) (string, error)
	run      func(name string, args ...string) error
}

var systemCommands = commands{
	lookPath: exec.LookPath,
	run:      runCommand,
}

// packageManager installs fontconfig with a non-interactive invocation.
type packageManager struct {
	bin  string
	args []string
}

var linuxPackageManagers = []packageManager{
	{bin: "apt-get", args: []string{"install", "-y", "fontconfig"}},
	{bin: "dnf", args: []string{"install", "-y", "fontconfig"}},
	{bin: "yum", args: []string{"install", "-y", "fontconfig"}},
	{bin: "pacman", args: []string{"-S", "--noconfirm", "fontconfig"}},
	{bin: "zypper", args: []string{"--non-interactive", "install", "fontconfig"}},
	{bin: "apk", args: []string{"add", "fontconfig"}},
}

type linuxInstaller struct {
	*backend
	cmds commands
}

func newLinuxInstaller(opts Options) (Installer, error) {
	return newLinuxInstallerWith(opts, systemCommands), nil
}

func newLinuxInstallerWith(opts Options, cmds commands) *linuxInstaller {
	dir := opts.FontDir
	if dir == "" {
		dir = linuxFontDir
	}

	li := &linuxInstaller{cmds: cmds}
	li.backend = newBackend(dir, newCatalog(dir).register, li.refreshCache)
	return li
}

func (li *linuxInstaller) CheckDependencies() DependencyStatus {
	if _, err := li.cmds.lookPath("fc-cache"); err != nil {
		return DependencyStatus{
			Available: false,
			Message:   "fontconfig (fc-cache) was not found on PATH; it is needed to refresh the font cache",
		}
	}
	return DependencyStatus{Available: true}
}

func (li *linuxInstaller) InstallDependencies() bool {
	if li.CheckDependencies().Available {
		return true
	}

	for _, pm := range linuxPackageManagers {
		if _, err := li.cmds.lookPath(pm.bin); err != nil {
			continue
		}
		logger.Infof("Installing fontconfig with %s", pm.bin)
		if err := li.cmds.run(pm.bin, pm.args...); err != nil {
			logger.Errorf(err, "Error installing fontconfig with %s", pm.bin)
			return false
		}
		return li.CheckDependencies().Available
	}

	logger.Errorf(fmt.Errorf("no supported package manager found"), "Cannot install fontconfig")
	return false
}

func (li *linuxInstaller) refreshCache(string) error {
	return li.cmds.run("fc-cache", li.store.dir)
}

func runCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("running %s: %s: %w", name, output, err)
	}
	return nil
}
