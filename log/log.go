package log

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// IndentationLevel controls the amount of indentation of log messages.
var IndentationLevel = 0

// Spinner is shown on stderr while long-running subprocesses execute.
var Spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))

var errorOccured = false

var logger = &logrus.Logger{
	Out:       os.Stderr,
	Formatter: &Formatter{Colors: isatty.IsTerminal(os.Stderr.Fd())},
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.InfoLevel,
	ExitFunc:  os.Exit,
}

// SetVerbose controls whether debug messages are being printed.
func SetVerbose(verbose bool) {
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

// Verbose reports whether debug messages are being printed.
func Verbose() bool {
	return logger.IsLevelEnabled(logrus.DebugLevel)
}

// Interactive reports whether stderr is attached to a terminal.
func Interactive() bool {
	return isatty.IsTerminal(os.Stderr.Fd())
}

// ErrorOccured reports whether any errors have occured.
func ErrorOccured() bool {
	return errorOccured
}

func entry() *logrus.Entry {
	return logger.WithField(indentField, IndentationLevel)
}

// Log prints an indented and formatted message to os.Stderr.
func Log(format string, a ...interface{}) {
	entry().Infof(format, a...)
}

// Debug prints an indented and formatted debug message to os.Stderr if verbose output is selected.
func Debug(format string, a ...interface{}) {
	entry().Debugf(format, a...)
}

// Success prints an indented and formatted success message to os.Stderr.
func Success(format string, a ...interface{}) {
	entry().WithField(successField, true).Infof(format, a...)
}

// Warning prints an indented and formatted warning to os.Stderr.
func Warning(format string, a ...interface{}) {
	entry().Warnf(format, a...)
}

// Error prints an indented and formatted error message to os.Stderr.
func Error(format string, a ...interface{}) {
	errorOccured = true
	entry().Errorf(format, a...)
}

// Fatal prints an indented and formatted error message to os.Stderr and terminates the program.
func Fatal(format string, a ...interface{}) {
	Exit(1, format, a...)
}

// Exit prints an indented and formatted error message and terminates the program with `code`.
func Exit(code int, format string, a ...interface{}) {
	Error(format, a...)
	logger.WithField(fatalField, true).Error("A fatal error occured. Exiting...\n")
	logger.Exit(code)
}

// SetExitFunc replaces the function terminating the program and returns the previous one.
func SetExitFunc(exit func(int)) func(int) {
	previous := logger.ExitFunc
	logger.ExitFunc = exit
	return previous
}
