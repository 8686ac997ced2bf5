package cmdlog

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// MaybeSpinner is a spinner that can also just log text
type MaybeSpinner struct {
	Spin    bool
	Spinner *spinner.Spinner
	out     io.Writer
}

// Start might start the spinner. Without spinning msg is printed once.
func (m *MaybeSpinner) Start(msg string) {
	m.Spinner.Suffix = " " + msg
	if m.Spin {
		m.Spinner.Start()
	} else if msg != "" {
		fmt.Fprintln(m.out, msg)
	}
}

// Stop will stop the spinner
func (m *MaybeSpinner) Stop() {
	m.Spinner.Stop()
}

// Update will update the spinner text
func (m *MaybeSpinner) Update(t string) {
	m.Spinner.Suffix = " " + t

	if !m.Spin {
		fmt.Fprintln(m.out, t)
	}
}

// NewMaybeSpinner will return a new MaybeSpinner writing to stdout
func NewMaybeSpinner(spin bool) *MaybeSpinner {
	return newMaybeSpinner(spin, os.Stdout)
}

func newMaybeSpinner(spin bool, out io.Writer) *MaybeSpinner {
	s := &MaybeSpinner{
		Spin:    spin,
		Spinner: spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(out)),
		out:     out,
	}
	s.Spinner.Prefix = " "
	return s
}
