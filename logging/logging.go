// Package logging provides the logger handle passed to each genie component
// at construction.
//
// Components never log through package-level state of their own; they hold
// a Logger. The default Logger forwards to glog.
package logging

import (
	"fmt"
	"sync"

	"github.com/golang/glog"
)

// Logger is the subset of glog's API used by the decoders.
type Logger interface {
	// V reports whether verbose logging at the passed level is enabled.
	V(level int) bool
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type glogLogger struct {
	prefix string
}

// Glog returns a Logger writing to glog, with every message prefixed by the
// passed component name (for example "genie.SlpTemplate").
func Glog(component string) Logger {
	if component == "" {
		return glogLogger{}
	}
	return glogLogger{prefix: component + ": "}
}

func (l glogLogger) V(level int) bool {
	return bool(glog.V(glog.Level(level)))
}

func (l glogLogger) Infof(format string, args ...interface{}) {
	glog.Infof(l.prefix+format, args...)
}

func (l glogLogger) Warningf(format string, args ...interface{}) {
	glog.Warningf(l.prefix+format, args...)
}

func (l glogLogger) Errorf(format string, args ...interface{}) {
	glog.Errorf(l.prefix+format, args...)
}

// OrDefault returns l, or a glog-backed Logger for component if l is nil.
func OrDefault(l Logger, component string) Logger {
	if l == nil {
		return Glog(component)
	}
	return l
}

// Severity of a recorded log entry.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Entry is a single message captured by a Recorder.
type Entry struct {
	Severity Severity
	Message  string
}

// Recorder is a Logger keeping all messages in memory. It is mostly useful in
// tests which need to check that a failure was reported.
//
// A Recorder is safe for concurrent use.
type Recorder struct {
	// Verbosity is the highest level for which V returns true.
	Verbosity int

	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) V(level int) bool {
	return level <= r.Verbosity
}

func (r *Recorder) record(sev Severity, format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Severity: sev, Message: fmt.Sprintf(format, args...)})
}

func (r *Recorder) Infof(format string, args ...interface{}) {
	r.record(Info, format, args...)
}

func (r *Recorder) Warningf(format string, args ...interface{}) {
	r.record(Warning, format, args...)
}

func (r *Recorder) Errorf(format string, args ...interface{}) {
	r.record(Error, format, args...)
}

// Entries returns a copy of the recorded messages of the passed severity.
func (r *Recorder) Entries(sev Severity) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.entries {
		if e.Severity == sev {
			out = append(out, e.Message)
		}
	}
	return out
}

// Count returns the number of recorded messages of the passed severity.
func (r *Recorder) Count(sev Severity) int {
	return len(r.Entries(sev))
}
