package cmdlog

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/jwalton/gchalk"
)

// Console prints pretty stuff to the terminal
type Console struct {
	out       io.Writer
	emojis    bool
	indention int
}

// NewConsole returns a new Console writing to stdout
func NewConsole() *Console {
	emojis := runtime.GOOS != "windows"

	// disable color for CI
	if os.Getenv("CI") != "" {
		emojis = false
		gchalk.SetLevel(gchalk.LevelNone)
	}
	return &Console{out: os.Stdout, emojis: emojis}
}

// helper for indention
func (c *Console) println(a string) {
	fmt.Fprintln(c.out, strings.Repeat(" ", c.indention)+a)
}

func (c *Console) sprintEmoji(e string) string {
	if c.emojis {
		return e + " "
	}
	return ""
}

// DisableColors turns off all colored output
func (c *Console) DisableColors() {
	c.emojis = false
	gchalk.SetLevel(gchalk.LevelNone)
}

// Headline prints a cyan bold line
func (c *Console) Headline(s string) {
	fmt.Fprintln(c.out, gchalk.WithCyan().Bold(s))
}

// Info prints a "normal" line
func (c *Console) Info(s string) {
	c.println(s)
}

// Success prints a green line
func (c *Console) Success(s string) {
	c.println(c.sprintEmoji("✅") + gchalk.Green(s))
}

// Warn prints a warning
func (c *Console) Warn(s string) {
	c.println(c.sprintEmoji("⚠️ ") + gchalk.WithYellow().Bold(s))
}

// Indented returns a copy of the console that indents every line by n spaces
func (c *Console) Indented(n int) *Console {
	cp := *c
	cp.indention += n
	return &cp
}
