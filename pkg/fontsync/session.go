package fontsync

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/logandonley/fontsync/internal/logger"
	"github.com/logandonley/fontsync/internal/platform"
)

// FontExtension is the suffix of files picked up by discovery.
const FontExtension = ".ttf"

// Candidate is a font file found under a license category directory.
type Candidate struct {
	Path     string
	Category string
}

// Name is the file name the font is installed under.
func (c Candidate) Name() string {
	return filepath.Base(c.Path)
}

// Summary holds the running totals of one run.
type Summary struct {
	Discovered       int
	AlreadyInstalled int // filtered out before confirmation
	Succeeded        int
	Existed          int // reported AlreadyExists during the install loop
	Failed           int
}

// Session is the state of one run: its totals and the candidates left to
// install, in discovery order.
type Session struct {
	Summary Summary
	Pending []Candidate
}

func newSession(candidates []Candidate) *Session {
	return &Session{Summary: Summary{Discovered: len(candidates)}}
}

func (s *Session) record(outcome platform.Outcome) {
	switch outcome {
	case platform.Success:
		s.Summary.Succeeded++
	case platform.AlreadyExists:
		s.Summary.Existed++
	default:
		s.Summary.Failed++
	}
}

// Discover walks each category directory under root, in the order given, and
// returns every font file found. A missing category directory contributes
// nothing.
func Discover(root string, categories []string) ([]Candidate, error) {
	var candidates []Candidate

	for _, category := range categories {
		dir := filepath.Join(root, category)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			logger.Warnf("License directory %s does not exist, skipping", dir)
			continue
		}

		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if d.Name() == ".git" {
					return filepath.SkipDir
				}
				return nil
			}
			if isFontFile(d.Name()) {
				candidates = append(candidates, Candidate{Path: path, Category: category})
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", dir, err)
		}
	}

	return candidates, nil
}

func isFontFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), FontExtension)
}
