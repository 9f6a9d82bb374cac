// Package fontname derives the display name a font is registered under.
package fontname

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/logandonley/fontsync/internal/logger"
	"golang.org/x/image/font/sfnt"
)

// TrueTypeSuffix is appended to names derived from TrueType files.
const TrueTypeSuffix = " (TrueType)"

// DeriveName returns the embedded family name of the font at path, falling
// back to the file's base name when the file cannot be parsed or carries no
// family name. It never fails.
func DeriveName(path string) string {
	base := filepath.Base(path)

	family, err := familyName(path)
	if err != nil || family == "" {
		logger.Warnf("Unable to read the font name from %q, using the file name instead", path)
		if err != nil {
			logger.Debugf("font name lookup for %s: %v", path, err)
		}
		return base
	}

	if isTrueType(path) {
		return family + TrueTypeSuffix
	}
	return family
}

func familyName(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading font file: %w", err)
	}

	f, err := parse(path, data)
	if err != nil {
		return "", err
	}

	name, err := f.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		return "", fmt.Errorf("reading family name: %w", err)
	}
	return strings.TrimSpace(name), nil
}

func parse(path string, data []byte) (*sfnt.Font, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttc", ".otc":
		c, err := sfnt.ParseCollection(data)
		if err != nil {
			return nil, fmt.Errorf("parsing font collection: %w", err)
		}
		if c.NumFonts() == 0 {
			return nil, fmt.Errorf("empty font collection")
		}
		f, err := c.Font(0)
		if err != nil {
			return nil, fmt.Errorf("reading first font in collection: %w", err)
		}
		return f, nil
	default:
		f, err := sfnt.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing font: %w", err)
		}
		return f, nil
	}
}

func isTrueType(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".ttc":
		return true
	}
	return false
}
