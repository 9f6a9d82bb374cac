package fontsync_test

import (
	"os"
	"path/filepath"

	"github.com/logandonley/fontsync/pkg/fontsync"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Discover", func() {
	var root string

	BeforeEach(func() {
		var err error
		root, err = os.MkdirTemp("", "discover-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(root)
	})

	touch := func(rel string) {
		path := filepath.Join(root, rel)
		Expect(os.MkdirAll(filepath.Dir(path), 0755)).To(Succeed())
		Expect(os.WriteFile(path, nil, 0644)).To(Succeed())
	}

	names := func(candidates []fontsync.Candidate) []string {
		var result []string
		for _, c := range candidates {
			result = append(result, c.Category+"/"+c.Name())
		}
		return result
	}

	It("should walk nested directories in category order", func() {
		touch("ufl/ubuntu/Ubuntu-Regular.ttf")
		touch("ofl/lato/static/Lato-Bold.ttf")
		touch("ofl/lato/Lato-Regular.ttf")
		touch("apache/roboto/Roboto.ttf")

		candidates, err := fontsync.Discover(root, []string{"apache", "ofl", "ufl"})
		Expect(err).NotTo(HaveOccurred())
		Expect(names(candidates)).To(Equal([]string{
			"apache/Roboto.ttf",
			"ofl/Lato-Regular.ttf",
			"ofl/Lato-Bold.ttf",
			"ufl/Ubuntu-Regular.ttf",
		}))
	})

	It("should only pick up TrueType files", func() {
		touch("ofl/lato/Lato-Regular.TTF")
		touch("ofl/lato/METADATA.pb")
		touch("ofl/lato/OFL.txt")
		touch("ofl/lato/Lato.otf")

		candidates, err := fontsync.Discover(root, []string{"ofl"})
		Expect(err).NotTo(HaveOccurred())
		Expect(names(candidates)).To(Equal([]string{"ofl/Lato-Regular.TTF"}))
	})

	It("should ignore unselected and missing categories", func() {
		touch("apache/roboto/Roboto.ttf")
		touch("ofl/lato/Lato.ttf")

		candidates, err := fontsync.Discover(root, []string{"ofl", "ufl"})
		Expect(err).NotTo(HaveOccurred())
		Expect(names(candidates)).To(Equal([]string{"ofl/Lato.ttf"}))
	})

	It("should skip git metadata", func() {
		touch("ofl/.git/objects/Stray.ttf")
		touch("ofl/lato/Lato.ttf")

		candidates, err := fontsync.Discover(root, []string{"ofl"})
		Expect(err).NotTo(HaveOccurred())
		Expect(names(candidates)).To(Equal([]string{"ofl/Lato.ttf"}))
	})

	It("should return nothing when no categories are selected", func() {
		touch("apache/roboto/Roboto.ttf")
		candidates, err := fontsync.Discover(root, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(candidates).To(BeEmpty())
	})
})
