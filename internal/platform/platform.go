package platform

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrUnsupportedPlatform is returned by New when no backend exists for the OS.
var ErrUnsupportedPlatform = errors.New("this platform has no supported installer")

// Outcome is the result of one InstallFont call.
type Outcome int

const (
	Success Outcome = iota
	AlreadyExists
	Failure
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case AlreadyExists:
		return "already exists"
	case Failure:
		return "failure"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// DependencyStatus reports whether a backend's system dependencies are present.
type DependencyStatus struct {
	Available bool
	Message   string // human-readable diagnostic, empty when available
}

// Installer is the capability every OS backend provides. Per-font problems
// are reported through Outcome values; none of these methods panic or
// return errors for a single font.
type Installer interface {
	// CheckDependencies probes the environment for required system
	// components. It has no side effects and may be called repeatedly.
	CheckDependencies() DependencyStatus

	// InstallDependencies installs whatever CheckDependencies found missing.
	// It returns true without doing anything when nothing is missing.
	InstallDependencies() bool

	// IsInstalled reports whether a font with the same file name already
	// exists in the OS font directory. The file at path is never opened.
	IsInstalled(path string) bool

	// InstallFont copies the font into the OS font directory, registers it
	// and notifies running applications. An existing destination file is
	// never overwritten.
	InstallFont(path string) Outcome
}

// Options configures backend construction.
type Options struct {
	// FontDir overrides the OS font directory.
	FontDir string
}

// New returns the backend for goos.
func New(goos string, opts Options) (Installer, error) {
	switch goos {
	case "linux":
		return newLinuxInstaller(opts)
	case "darwin":
		return newDarwinInstaller(opts)
	case "windows":
		return newWindowsInstaller(opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}

// NewNative returns the backend for the running OS.
func NewNative(opts Options) (Installer, error) {
	return New(runtime.GOOS, opts)
}
