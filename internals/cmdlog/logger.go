package cmdlog

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger receives advisory outcomes: things that went wrong but
// do not fail the operation (a skipped migration, a dropped progress event …)
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
}

// New returns a structured logger writing to w
func New(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "rls-installer",
		ReportTimestamp: verbose,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	// no colors for CI
	if os.Getenv("CI") != "" {
		logger.SetFormatter(log.LogfmtFormatter)
	}
	return logger
}

type discard struct{}

func (discard) Debug(msg interface{}, keyvals ...interface{}) {}
func (discard) Warn(msg interface{}, keyvals ...interface{})  {}

// Discard drops everything
var Discard Logger = discard{}

// OrDiscard returns l or Discard if l is nil
func OrDiscard(l Logger) Logger {
	if l == nil {
		return Discard
	}
	return l
}
