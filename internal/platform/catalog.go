package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CatalogFile is the registration store kept in the font directory on
// systems without a font registry.
const CatalogFile = ".fontsync-catalog.yaml"

// catalog maps display names to font file names, like the Windows
// "Fonts" registry key.
type catalog struct {
	path string
}

type catalogDocument struct {
	Fonts map[string]string `yaml:"fonts"`
}

func newCatalog(fontDir string) catalog {
	return catalog{path: filepath.Join(fontDir, CatalogFile)}
}

func (c catalog) load() (map[string]string, error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if doc.Fonts == nil {
		doc.Fonts = map[string]string{}
	}
	return doc.Fonts, nil
}

// register records displayName -> fileName, replacing any previous value
// for the same display name.
func (c catalog) register(displayName, fileName string) error {
	fonts, err := c.load()
	if err != nil {
		return err
	}
	fonts[displayName] = fileName

	data, err := yaml.Marshal(catalogDocument{Fonts: fonts})
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing catalog: %w", err)
	}
	return nil
}
