// Package repository keeps the local mirror of the font repository up to date.
package repository

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-git/go-git/v5"
	"github.com/logandonley/fontsync/internal/logger"
)

// ErrConflict means the local mirror cannot be fast-forwarded to the remote.
// It is never resolved automatically.
var ErrConflict = errors.New("pull failed due to conflicts")

// Syncer brings dir in line with the remote repository.
type Syncer interface {
	Sync(ctx context.Context, dir string) error
}

// GitSyncer clones the repository when dir is not a git repository yet and
// pulls otherwise.
type GitSyncer struct {
	URL      string
	Depth    int       // 0 clones the full history
	Progress io.Writer // optional
}

func NewGitSyncer(url string, depth int, progress io.Writer) *GitSyncer {
	return &GitSyncer{URL: url, Depth: depth, Progress: progress}
}

func (s *GitSyncer) Sync(ctx context.Context, dir string) error {
	repo, err := git.PlainOpen(dir)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return s.clone(ctx, dir)
	}
	if err != nil {
		return fmt.Errorf("opening repository %s: %w", dir, err)
	}
	return s.pull(ctx, repo)
}

func (s *GitSyncer) clone(ctx context.Context, dir string) error {
	logger.Infof("Cloning %s into %s", s.URL, dir)
	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:      s.URL,
		Depth:    s.Depth,
		Progress: s.Progress,
	})
	if err != nil {
		return fmt.Errorf("cloning %s: %w", s.URL, err)
	}
	return nil
}

func (s *GitSyncer) pull(ctx context.Context, repo *git.Repository) error {
	logger.Infof("Pulling from %s", s.URL)
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("opening worktree: %w", err)
	}

	err = wt.PullContext(ctx, &git.PullOptions{
		RemoteName: git.DefaultRemoteName,
		Progress:   s.Progress,
	})
	switch {
	case err == nil, errors.Is(err, git.NoErrAlreadyUpToDate):
		return nil
	case errors.Is(err, git.ErrNonFastForwardUpdate), errors.Is(err, git.ErrUnstagedChanges):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	default:
		return fmt.Errorf("pulling %s: %w", s.URL, err)
	}
}
