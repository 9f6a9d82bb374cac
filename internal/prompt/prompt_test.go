package prompt_test

import (
	"bytes"
	"strings"

	"github.com/logandonley/fontsync/internal/prompt"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Console", func() {
	var out *bytes.Buffer

	BeforeEach(func() {
		out = new(bytes.Buffer)
	})

	DescribeTable("answers",
		func(input string, expected bool) {
			console := prompt.NewConsole(strings.NewReader(input), out)
			Expect(console.Confirm("Continue?")).To(Equal(expected))
		},
		Entry("y", "y\n", true),
		Entry("YES with spaces", "  YES \n", true),
		Entry("yes without newline", "yes", true),
		Entry("n", "n\n", false),
		Entry("anything else", "sure\n", false),
		Entry("empty line", "\n", false),
		Entry("end of input", "", false),
	)

	It("should print the question", func() {
		console := prompt.NewConsole(strings.NewReader("y\n"), out)
		console.Confirm("12 fonts will be installed. Continue?")
		Expect(out.String()).To(ContainSubstring("12 fonts will be installed. Continue? (Y/N)"))
	})

	It("should read consecutive answers from the same input", func() {
		console := prompt.NewConsole(strings.NewReader("y\nn\n"), out)
		Expect(console.Confirm("first?")).To(BeTrue())
		Expect(console.Confirm("second?")).To(BeFalse())
	})

	It("should answer fixed confirmers without input", func() {
		Expect(prompt.Always(true).Confirm("anything")).To(BeTrue())
		Expect(prompt.Always(false).Confirm("anything")).To(BeFalse())
	})
})
