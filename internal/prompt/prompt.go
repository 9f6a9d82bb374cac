// Package prompt asks the operator yes/no questions.
package prompt

import (
	"bufio"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Confirmer asks a yes/no question and reports whether the answer was yes.
type Confirmer interface {
	Confirm(question string) bool
}

// Func adapts a plain function to Confirmer.
type Func func(question string) bool

func (f Func) Confirm(question string) bool {
	return f(question)
}

// Always answers every question with answer, without asking.
func Always(answer bool) Confirmer {
	return Func(func(string) bool { return answer })
}

// Console reads answers line by line from in and writes questions to out.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

var questionColor = color.New(color.FgYellow, color.Bold)

// Confirm accepts "y" or "yes" in any case. Anything else, including end of
// input, is a no.
func (c *Console) Confirm(question string) bool {
	questionColor.Fprintf(c.out, "%s (Y/N) ", question)

	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return IsYes(line)
}

func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
