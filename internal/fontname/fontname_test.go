package fontname_test

import (
	"os"
	"path/filepath"

	"github.com/logandonley/fontsync/internal/fontname"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/image/font/gofont/goregular"
)

var _ = Describe("DeriveName", func() {
	var tempDir string

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "fontname-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
	})

	write := func(name string, data []byte) string {
		path := filepath.Join(tempDir, name)
		Expect(os.WriteFile(path, data, 0644)).To(Succeed())
		return path
	}

	Context("with a parseable font", func() {
		It("should append the TrueType suffix to .ttf files", func() {
			path := write("GoRegular.ttf", goregular.TTF)
			Expect(fontname.DeriveName(path)).To(Equal("Go (TrueType)"))
		})

		It("should match the extension case-insensitively", func() {
			path := write("GoRegular.TTF", goregular.TTF)
			Expect(fontname.DeriveName(path)).To(Equal("Go (TrueType)"))
		})

		It("should not add a suffix for other formats", func() {
			path := write("GoRegular.otf", goregular.TTF)
			Expect(fontname.DeriveName(path)).To(Equal("Go"))
		})
	})

	Context("without parseable metadata", func() {
		It("should fall back to the base name including the extension", func() {
			path := write("Broken-Regular.ttf", []byte("fake ttf content"))
			Expect(fontname.DeriveName(path)).To(Equal("Broken-Regular.ttf"))
		})

		It("should fall back for an unreadable path", func() {
			path := filepath.Join(tempDir, "missing", "Nope.ttf")
			Expect(fontname.DeriveName(path)).To(Equal("Nope.ttf"))
		})

		It("should fall back for a collection that does not parse", func() {
			path := write("Family.ttc", []byte("ttcf garbage"))
			Expect(fontname.DeriveName(path)).To(Equal("Family.ttc"))
		})
	})
})
