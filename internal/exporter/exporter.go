// Package exporter copies one model file out of a library into a destination
// directory and reports a deterministic outcome.
//
// Export runs synchronously on the calling goroutine and holds no locks: two
// exports to the same destination file race and the last writer wins.
package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"modelexport/internal/common/fsutil"
	"modelexport/internal/taxonomy"
	"modelexport/pkg/types"
)

// Request names the file to export and where to put it.
type Request struct {
	LibraryRoot string
	Category    types.Category
	FileName    string
	Destination string
}

// Observer is notified once per export with its outcome.
type Observer interface {
	ObserveExport(res Result, dur time.Duration)
}

// Exporter performs exports. The zero value is usable and logs nothing.
type Exporter struct {
	log      zerolog.Logger
	observer Observer
	// copyFile is swapped in tests.
	copyFile func(src, dst string) error
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger used for per-export events.
func WithLogger(l zerolog.Logger) Option { return func(e *Exporter) { e.log = l } }

// WithObserver installs an outcome observer (e.g. metrics).
func WithObserver(o Observer) Option { return func(e *Exporter) { e.observer = o } }

// New returns an Exporter configured by opts.
func New(opts ...Option) *Exporter {
	e := &Exporter{log: zerolog.Nop()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Export validates req, resolves the source path and copies the file to
// <Destination>/<FileName>, preserving mode and timestamps. It never returns an
// error or panics; every failure is reported in the Result.
func (e *Exporter) Export(req Request) (res Result) {
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			res = failed(ReasonIOError, fmt.Errorf("panic during export: %v", p))
		}
		e.report(req, res, time.Since(start))
	}()

	if req.LibraryRoot == "" || req.Category == "" || req.FileName == "" || req.Destination == "" {
		return failed(ReasonMissingParameters, nil)
	}

	if !taxonomy.IsKnown(req.Category) {
		return failed(ReasonSourceNotFound, taxonomy.ErrUnknownCategory(req.Category.String()))
	}
	// A ModelFile is a bare name inside the category directory.
	if filepath.Base(req.FileName) != req.FileName {
		return failed(ReasonSourceNotFound, fmt.Errorf("%s: not a file name", req.FileName))
	}
	src := taxonomy.SourcePath(req.LibraryRoot, req.Category, req.FileName)
	if !fsutil.IsRegularFile(src) {
		return failed(ReasonSourceNotFound, fmt.Errorf("%s: not found", src))
	}

	if err := os.MkdirAll(req.Destination, 0o755); err != nil {
		return failed(ReasonIOError, err)
	}
	cp := e.copyFile
	if cp == nil {
		cp = fsutil.CopyFile
	}
	if err := cp(src, filepath.Join(req.Destination, req.FileName)); err != nil {
		return failed(ReasonIOError, err)
	}
	return succeeded(req.Destination)
}

func (e *Exporter) report(req Request, res Result, dur time.Duration) {
	if e.observer != nil {
		e.observer.ObserveExport(res, dur)
	}
	ev := e.log.Info()
	if !res.OK {
		ev = e.log.Warn()
		if res.Err != nil {
			ev = ev.Err(res.Err)
		}
	}
	ev.Str("category", req.Category.String()).
		Str("file", req.FileName).
		Str("destination", req.Destination).
		Str("reason", string(res.Reason)).
		Dur("dur", dur).
		Msg("export")
}
