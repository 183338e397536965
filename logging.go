package template

import (
	"io"

	"github.com/cihub/seelog"
)

// logger is the package-wide diagnostic logger. It is silent by default
// (seelog.Disabled); a host wires it up with UseLogger/SetLogWriter the
// same way rollie's package-level logging functions work.
var logger seelog.LoggerInterface = seelog.Disabled

// DisableLog silences all diagnostic logging from this package.
func DisableLog() {
	seelog.Disabled.Flush()
	logger = seelog.Disabled
}

// UseLogger replaces the package logger wholesale.
func UseLogger(l seelog.LoggerInterface) {
	logger = l
}

// SetLogWriter directs the package logger's output at w, using seelog's
// default format.
func SetLogWriter(w io.Writer) error {
	l, err := seelog.LoggerFromWriterWithMinLevel(w, seelog.TraceLvl)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// FlushLog flushes any buffered log output; callers should defer this
// after wiring up a custom writer.
func FlushLog() {
	logger.Flush()
}

// debugf logs at trace level, gated on the owning Environment's Debug
// flag (the teacher's Debug-bool-gated logf, generalized to seelog).
func (env *Environment) debugf(format string, args ...any) {
	if env.Debug {
		logger.Tracef(format, args...)
	}
}
