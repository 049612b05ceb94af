package fault

import (
	"errors"
	"os"

	"github.com/sirupsen/logrus"
)

// Reporter receives faults that must end the run.
type Reporter interface {
	Report(err error)
}

// FatalReporter logs a fault and terminates the process.
type FatalReporter struct {
	log  logrus.FieldLogger
	exit func(code int)
}

// NewFatalReporter creates a FatalReporter. A nil logger uses the logrus
// standard logger and a nil exit func uses os.Exit.
func NewFatalReporter(log logrus.FieldLogger, exit func(code int)) *FatalReporter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if exit == nil {
		exit = os.Exit
	}

	return &FatalReporter{log: log, exit: exit}
}

// Report logs err with its kind and location, then exits with status 1.
// A nil error is ignored.
func (r *FatalReporter) Report(err error) {
	if err == nil {
		return
	}

	fields := logrus.Fields{"kind": KindOf(err).String()}

	var f *Error
	if errors.As(err, &f) && f.Location() != "" {
		fields["location"] = f.Location()
	}

	r.log.WithFields(fields).Error(err.Error())
	r.exit(1)
}
