package config

import "log/slog"

// EventKind identifies what a File reports.
type EventKind int

const (
	// EventGenerated: Save created a file that did not exist before.
	EventGenerated EventKind = iota + 1
	// EventLoadFailed: Load failed for a reason other than a missing file.
	EventLoadFailed
	// EventSaveFailed: Save could not write the file.
	EventSaveFailed
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventGenerated:
		return "generated"
	case EventLoadFailed:
		return "load-failed"
	case EventSaveFailed:
		return "save-failed"
	}
	return "unknown"
}

// Event describes something a File wants its owner to know about.
type Event struct {
	Kind EventKind
	// Path identifies the file.
	Path string
	Err  error
}

// Reporter receives the events of a File. Load and Save never return their
// failures; they are reported here instead.
type Reporter interface {
	Report(Event)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Event)

// Report implements Reporter.
func (f ReporterFunc) Report(e Event) {
	if f != nil {
		f(e)
	}
}

type nopReporter struct{}

func (nopReporter) Report(Event) {}

// NopReporter discards every event.
var NopReporter Reporter = nopReporter{}

// slogReporter writes events to a structured logger.
type slogReporter struct {
	logger *slog.Logger
}

// NewSlogReporter reports events through logger, or slog.Default() when nil.
func NewSlogReporter(logger *slog.Logger) Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogReporter{logger: logger}
}

func (r *slogReporter) Report(e Event) {
	switch e.Kind {
	case EventGenerated:
		r.logger.Info("configuration generated", "file", e.Path)
	case EventLoadFailed:
		r.logger.Error("configuration load failed", "file", e.Path, "error", e.Err)
	case EventSaveFailed:
		r.logger.Error("configuration save failed", "file", e.Path, "error", e.Err)
	default:
		r.logger.Warn("configuration event", "kind", e.Kind.String(), "file", e.Path, "error", e.Err)
	}
}
