package fontsync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/logandonley/fontsync/internal/config"
	"github.com/logandonley/fontsync/internal/logger"
	"github.com/logandonley/fontsync/internal/platform"
	"github.com/logandonley/fontsync/internal/prompt"
	"github.com/logandonley/fontsync/internal/repository"
)

// Fatal conditions. Each one stops the run before any font is installed.
var (
	ErrNotElevated          = errors.New("fontsync must be run with administrative privileges")
	ErrUnsupportedPlatform  = platform.ErrUnsupportedPlatform
	ErrDirectoryDeclined    = errors.New("font repository directory does not exist")
	ErrDependenciesDeclined = errors.New("dependencies are not installed; cannot continue")
	ErrDependencyInstall    = errors.New("installing dependencies failed")
	ErrRepositoryMissing    = errors.New("fonts directory not found; cannot install fonts")
	ErrCancelled            = errors.New("cancelled by user")
	ErrConflict             = repository.ErrConflict
)

// ErrInstallFailures is returned after a completed run with failed fonts,
// only when the configuration asks for it.
var ErrInstallFailures = errors.New("some fonts failed to install")

var (
	infoColor = color.New(color.FgGreen)
	warnColor = color.New(color.FgHiMagenta)
	failColor = color.New(color.FgRed)
)

// Orchestrator drives one sync-and-install run.
type Orchestrator struct {
	cfg          config.Config
	confirm      prompt.Confirmer
	syncer       repository.Syncer
	newInstaller func() (platform.Installer, error)
	isElevated   func() bool
	out          io.Writer
}

type Option func(*Orchestrator)

func WithConfirmer(c prompt.Confirmer) Option {
	return func(o *Orchestrator) { o.confirm = c }
}

func WithSyncer(s repository.Syncer) Option {
	return func(o *Orchestrator) { o.syncer = s }
}

// WithInstaller replaces backend selection with a fixed installer.
func WithInstaller(i platform.Installer) Option {
	return func(o *Orchestrator) {
		o.newInstaller = func() (platform.Installer, error) { return i, nil }
	}
}

// WithInstallerFactory replaces backend selection.
func WithInstallerFactory(f func() (platform.Installer, error)) Option {
	return func(o *Orchestrator) { o.newInstaller = f }
}

func WithPrivilegeCheck(f func() bool) Option {
	return func(o *Orchestrator) { o.isElevated = f }
}

func WithOutput(w io.Writer) Option {
	return func(o *Orchestrator) { o.out = w }
}

// New creates an orchestrator wired to the running system. Options replace
// individual collaborators.
func New(cfg config.Config, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cfg:     cfg,
		confirm: prompt.NewConsole(os.Stdin, os.Stdout),
		syncer:  repository.NewGitSyncer(cfg.RepositoryURL, cfg.CloneDepth, os.Stdout),
		newInstaller: func() (platform.Installer, error) {
			return platform.NewNative(platform.Options{FontDir: cfg.InstallDir})
		},
		isElevated: platform.IsElevated,
		out:        os.Stdout,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes the whole protocol. A nil error means the install loop ran
// to completion or there was nothing to install; per-font failures are only
// counted in the summary unless FailOnError is set.
func (o *Orchestrator) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	if !o.isElevated() {
		return summary, ErrNotElevated
	}

	repoDir, err := o.bootstrap()
	if err != nil {
		return summary, err
	}

	installer, err := o.newInstaller()
	if err != nil {
		return summary, fmt.Errorf("selecting platform installer: %w", err)
	}

	if err := o.ensureDependencies(installer); err != nil {
		return summary, err
	}

	if !o.cfg.SkipSync {
		if err := o.syncer.Sync(ctx, repoDir); err != nil {
			return summary, fmt.Errorf("synchronizing font repository: %w", err)
		}
	}

	session, err := o.plan(repoDir, installer)
	if err != nil {
		return summary, err
	}
	summary = session.Summary
	infoColor.Fprintf(o.out, "%d total fonts found in Google Font Library under selected licenses.\n", summary.Discovered)
	infoColor.Fprintf(o.out, "%d fonts already installed and skipped.\n", summary.AlreadyInstalled)

	total := len(session.Pending)
	if total == 0 {
		infoColor.Fprintln(o.out, "Nothing to install.")
		return summary, nil
	}

	if !o.cfg.Unattended && !o.confirm.Confirm(fmt.Sprintf("%d fonts will be installed. Continue?", total)) {
		return summary, ErrCancelled
	}

	o.installAll(installer, session)
	summary = session.Summary
	o.printSummary(summary)

	if o.cfg.FailOnError && summary.Failed > 0 {
		return summary, fmt.Errorf("%w: %d of %d", ErrInstallFailures, summary.Failed, total)
	}
	return summary, nil
}

// Scan discovers and filters candidates without installing anything.
func (o *Orchestrator) Scan() (*Session, error) {
	repoDir, _, err := o.cfg.ResolveRepositoryDir()
	if err != nil {
		return nil, err
	}
	if !dirExists(repoDir) {
		return nil, fmt.Errorf("%w: %s", ErrRepositoryMissing, repoDir)
	}

	installer, err := o.newInstaller()
	if err != nil {
		return nil, fmt.Errorf("selecting platform installer: %w", err)
	}
	return o.plan(repoDir, installer)
}

// bootstrap resolves the repository directory and makes sure it exists.
func (o *Orchestrator) bootstrap() (string, error) {
	repoDir, explicit, err := o.cfg.ResolveRepositoryDir()
	if err != nil {
		return "", err
	}
	logger.Debugf("Using font repository %s (explicit: %t)", repoDir, explicit)

	if dirExists(repoDir) {
		return repoDir, nil
	}
	if o.cfg.SkipSync {
		return "", fmt.Errorf("%w: %s", ErrRepositoryMissing, repoDir)
	}

	if !o.cfg.Unattended && !o.confirm.Confirm(fmt.Sprintf("Font folder %s does not exist. Create?", repoDir)) {
		return "", fmt.Errorf("%w: %s", ErrDirectoryDeclined, repoDir)
	}
	if err := os.MkdirAll(repoDir, 0755); err != nil {
		return "", fmt.Errorf("creating font repository directory: %w", err)
	}
	return repoDir, nil
}

func (o *Orchestrator) ensureDependencies(installer platform.Installer) error {
	status := installer.CheckDependencies()
	if status.Available {
		return nil
	}

	if status.Message != "" {
		warnColor.Fprintln(o.out, status.Message)
	}
	if !o.cfg.InstallDeps {
		if o.cfg.Unattended || !o.confirm.Confirm("You are missing dependencies. Would you like to install them?") {
			return ErrDependenciesDeclined
		}
	}

	if !installer.InstallDependencies() {
		return ErrDependencyInstall
	}
	infoColor.Fprintln(o.out, "Dependencies installed successfully.")
	return nil
}

// plan discovers candidates and drops the ones already installed. After it
// returns, IsInstalled is false for every pending candidate.
func (o *Orchestrator) plan(repoDir string, installer platform.Installer) (*Session, error) {
	candidates, err := Discover(repoDir, o.cfg.Categories())
	if err != nil {
		return nil, err
	}

	session := newSession(candidates)
	for _, c := range candidates {
		if installer.IsInstalled(c.Path) {
			session.Summary.AlreadyInstalled++
			continue
		}
		session.Pending = append(session.Pending, c)
	}
	return session, nil
}

// installAll installs pending candidates one at a time. No outcome stops
// the loop.
func (o *Orchestrator) installAll(installer platform.Installer, session *Session) {
	total := len(session.Pending)
	for i, c := range session.Pending {
		fmt.Fprintf(o.out, "Installing font %d of %d (%s)...\n", i+1, total, c.Name())

		outcome := installer.InstallFont(c.Path)
		session.record(outcome)

		switch outcome {
		case platform.Success:
			infoColor.Fprintln(o.out, "Install successful.")
		case platform.AlreadyExists:
			warnColor.Fprintln(o.out, "Font already exists.")
		default:
			failColor.Fprintln(o.out, "Install failed.")
		}
	}
}

func (o *Orchestrator) printSummary(s Summary) {
	fmt.Fprintf(o.out, "\nInstallation Summary:\n")
	infoColor.Fprintf(o.out, "Successfully installed: %d\n", s.Succeeded)
	if s.Existed > 0 {
		warnColor.Fprintf(o.out, "Skipped (already exists): %d\n", s.Existed)
	}
	if s.Failed > 0 {
		failColor.Fprintf(o.out, "Failed to install: %d\n", s.Failed)
	}
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
