package diag

import "dwislpy/common"

// Log levels gate how much of the compiler's chatter reaches the terminal.
const (
	LogLevelSilent = iota
	LogLevelError
	LogLevelWarn
	LogLevelVerbose
)

// Context is the per-invocation diagnostic sink shared by the scanner,
// parser, checker, and driver for one source file. The toolchain is
// single-threaded (spec §5), so unlike the teacher's logger this needs no
// mutex.
type Context struct {
	SourcePath string
	LogLevel   int

	errorCount   int
	warningCount int
}

// NewContext creates a diagnostic context for the given source file.
func NewContext(sourcePath string, logLevel int) *Context {
	return &Context{SourcePath: sourcePath, LogLevel: logLevel}
}

// ShouldProceed reports whether no error has been recorded yet.
func (c *Context) ShouldProceed() bool {
	return c.errorCount == 0
}

// Error records and displays a compile error at the given location.
func (c *Context) Error(locn common.Locn, message string) {
	c.errorCount++
	if c.LogLevel > LogLevelSilent {
		displayMessage(c.SourcePath, locn, message, true, c.LogLevel >= LogLevelVerbose)
	}
}

// Warning records and displays a compile warning at the given location.
func (c *Context) Warning(locn common.Locn, message string) {
	c.warningCount++
	if c.LogLevel >= LogLevelWarn {
		displayMessage(c.SourcePath, locn, message, false, c.LogLevel >= LogLevelVerbose)
	}
}

// Report folds a *diag.Error (as returned by the interpreter) into the
// context's usual error display.
func (c *Context) Report(err error) {
	if de, ok := err.(*Error); ok {
		c.Error(de.Locn, de.Message)
		return
	}
	c.Error(common.Locn{Source: c.SourcePath}, err.Error())
}
