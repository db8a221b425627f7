// Copyright 2020 Rob Pike. All rights reserved.
// Use of this source code is governed by a BSD
// license that can be found in the LICENSE file.

package lisp

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// diag is the diagnostic stream of section 6: print writes through it
// at Info level, the top-level driver logs errors through it at Error
// level. A TextFormatter with no timestamp, no colors and no quoting
// writes each entry as one "level=<level> msg=<text>" line, with any
// structured fields appended as key=value pairs; the message text is
// written as is, so a printed string keeps its double quotes.
var diag = newDiagLogger()

func newDiagLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
		DisableQuote:     true,
	})
	return l
}

// SetDiagOutput redirects the diagnostic stream, for tests and for
// embedders that want to capture interpreter output.
func SetDiagOutput(w io.Writer) {
	diag.SetOutput(w)
}

// warnf logs a non-fatal diagnostic, used by the tokenizer for an
// unrecognized string escape (section 4.2).
func warnf(format string, args ...interface{}) {
	diag.Warnf(format, args...)
}

// logError logs a recovered evaluation error at Error level, with the
// symbolic name as a structured field.
func logError(name string, err error) {
	diag.WithField("kind", name).Error(err)
}

// ReportError logs a recovered top-level error to the diagnostic
// stream, tagging it with its symbolic name when err carries one of
// section 7's sentinels. The CLI driver calls this for both reader and
// evaluator errors instead of writing to stderr directly, so recovered
// errors go through the same structured stream as print and warnf.
func ReportError(err error) {
	if name, ok := SymbolicName(err); ok {
		logError(name, err)
		return
	}
	diag.Error(err)
}

// printLine implements the print form's output contract (section 4.6):
// one evaluated value per line, on the diagnostic stream, at Info
// level.
func printLine(v Value) {
	diag.Info(v.String())
}
