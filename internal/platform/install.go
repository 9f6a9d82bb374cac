package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/logandonley/fontsync/internal/fontname"
	"github.com/logandonley/fontsync/internal/logger"
)

// backend holds the install protocol shared by every OS. The OS-specific
// parts are the registration store and the change notification.
type backend struct {
	store      fontStore
	register   func(displayName, fileName string) error
	notify     func(dst string) error
	deriveName func(path string) string
}

func newBackend(dir string, register func(string, string) error, notify func(string) error) *backend {
	return &backend{
		store:      fontStore{dir: dir},
		register:   register,
		notify:     notify,
		deriveName: fontname.DeriveName,
	}
}

func (b *backend) IsInstalled(path string) bool {
	return b.store.contains(path)
}

func (b *backend) InstallFont(path string) Outcome {
	if b.store.contains(path) {
		return AlreadyExists
	}

	logger.Debugf("Copying %s into %s", path, b.store.dir)
	dst, err := b.store.place(path)
	if errors.Is(err, os.ErrExist) {
		return AlreadyExists
	}
	if err != nil {
		logger.Errorf(err, "Error copying font %s", filepath.Base(path))
		return Failure
	}

	// The name comes from the installed copy, not the repository file.
	displayName := b.deriveName(dst)
	logger.Debugf("Registering %q -> %s", displayName, filepath.Base(dst))
	if err := b.register(displayName, filepath.Base(dst)); err != nil {
		logger.Errorf(err, "Error registering font %q", displayName)
		if rerr := b.store.remove(dst); rerr != nil {
			logger.Errorf(rerr, "Error rolling back copy of %s", filepath.Base(dst))
		}
		return Failure
	}

	logger.Debugf("Notifying system of new font %s", filepath.Base(dst))
	if err := b.safeNotify(dst); err != nil && logger.DebugEnabled() {
		logger.Debugf("Notify system failed: %v", err)
	}

	return Success
}

// safeNotify runs the best-effort notification. The font is already
// installed at this point, so nothing here can change the outcome.
func (b *backend) safeNotify(dst string) (err error) {
	if b.notify == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notification panicked: %v", r)
		}
	}()
	return b.notify(dst)
}
