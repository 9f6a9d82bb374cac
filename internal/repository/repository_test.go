package repository_test

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/logandonley/fontsync/internal/repository"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// commitFile writes name into the worktree of repo and commits it
func commitFile(repo *git.Repository, root, name, content string) {
	path := filepath.Join(root, name)
	Expect(os.MkdirAll(filepath.Dir(path), 0755)).To(Succeed())
	Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())

	wt, err := repo.Worktree()
	Expect(err).NotTo(HaveOccurred())
	_, err = wt.Add(name)
	Expect(err).NotTo(HaveOccurred())
	_, err = wt.Commit("add "+name, &git.CommitOptions{
		Author: &object.Signature{Name: "fontsync", Email: "fontsync@example.com", When: time.Now()},
	})
	Expect(err).NotTo(HaveOccurred())
}

var _ = Describe("GitSyncer", func() {
	var (
		tempDir   string
		originDir string
		mirrorDir string
		origin    *git.Repository
		syncer    *repository.GitSyncer
		ctx       context.Context
	)

	BeforeEach(func() {
		// The local file transport shells out to git-upload-pack.
		if _, err := exec.LookPath("git"); err != nil {
			Skip("git is not installed")
		}

		var err error
		tempDir, err = os.MkdirTemp("", "repository-test-*")
		Expect(err).NotTo(HaveOccurred())

		originDir = filepath.Join(tempDir, "origin")
		mirrorDir = filepath.Join(tempDir, "mirror")

		origin, err = git.PlainInit(originDir, false)
		Expect(err).NotTo(HaveOccurred())
		commitFile(origin, originDir, "apache/roboto/Roboto.ttf", "roboto")

		syncer = repository.NewGitSyncer(originDir, 0, nil)
		ctx = context.Background()
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
	})

	It("should clone when the directory does not exist", func() {
		Expect(syncer.Sync(ctx, mirrorDir)).To(Succeed())
		Expect(filepath.Join(mirrorDir, "apache", "roboto", "Roboto.ttf")).To(BeAnExistingFile())
	})

	It("should clone into an existing empty directory", func() {
		Expect(os.MkdirAll(mirrorDir, 0755)).To(Succeed())
		Expect(syncer.Sync(ctx, mirrorDir)).To(Succeed())
		Expect(filepath.Join(mirrorDir, "apache", "roboto", "Roboto.ttf")).To(BeAnExistingFile())
	})

	It("should treat an up-to-date mirror as synced", func() {
		Expect(syncer.Sync(ctx, mirrorDir)).To(Succeed())
		Expect(syncer.Sync(ctx, mirrorDir)).To(Succeed())
	})

	It("should pull new fonts into an existing mirror", func() {
		Expect(syncer.Sync(ctx, mirrorDir)).To(Succeed())
		commitFile(origin, originDir, "ofl/lato/Lato.ttf", "lato")

		Expect(syncer.Sync(ctx, mirrorDir)).To(Succeed())
		Expect(filepath.Join(mirrorDir, "ofl", "lato", "Lato.ttf")).To(BeAnExistingFile())
	})

	It("should report diverged histories as a conflict", func() {
		Expect(syncer.Sync(ctx, mirrorDir)).To(Succeed())

		mirror, err := git.PlainOpen(mirrorDir)
		Expect(err).NotTo(HaveOccurred())
		commitFile(mirror, mirrorDir, "ofl/local/Local.ttf", "local")
		commitFile(origin, originDir, "ofl/remote/Remote.ttf", "remote")

		err = syncer.Sync(ctx, mirrorDir)
		Expect(errors.Is(err, repository.ErrConflict)).To(BeTrue(), "got %v", err)
	})

	It("should surface clone failures", func() {
		syncer = repository.NewGitSyncer(filepath.Join(tempDir, "nowhere"), 0, nil)
		err := syncer.Sync(ctx, mirrorDir)
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, repository.ErrConflict)).To(BeFalse())
	})
})
