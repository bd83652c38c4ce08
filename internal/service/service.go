// Package service exposes the two library operations (list candidates, export)
// on top of the current settings snapshot.
package service

import (
	"strings"

	"github.com/rs/zerolog"

	"modelexport/internal/common/fsutil"
	"modelexport/internal/config"
	"modelexport/internal/exporter"
	"modelexport/internal/taxonomy"
	"modelexport/pkg/types"
)

// PickerErrorSentinel prefixes the string a directory picker returns when no
// desktop environment is available. Roots carrying it resolve to no root at all:
// unlike an empty root they never fall back to the configured library_root,
// so a failed pick lists nothing and exports fail with missing parameters.
const PickerErrorSentinel = "[ERROR]"

// Service binds settings to the taxonomy resolver and the exporter.
type Service struct {
	settings func() config.Config
	exp      *exporter.Exporter
	log      zerolog.Logger
}

// New returns a Service reading settings through snapshot on every call.
func New(snapshot func() config.Config, exp *exporter.Exporter, log zerolog.Logger) *Service {
	if exp == nil {
		exp = exporter.New(exporter.WithLogger(log))
	}
	return &Service{settings: snapshot, exp: exp, log: log}
}

// NewStatic returns a Service over a fixed configuration.
func NewStatic(cfg config.Config, exp *exporter.Exporter, log zerolog.Logger) *Service {
	return New(func() config.Config { return cfg }, exp, log)
}

// Categories returns the closed category set.
func (s *Service) Categories() []types.Category { return taxonomy.Categories() }

// LibraryRoot returns the configured library root.
func (s *Service) LibraryRoot() string { return s.settings().LibraryRoot }

// DefaultExportDir returns the pre-filled export destination.
func (s *Service) DefaultExportDir() string { return s.settings().DefaultExportDir }

// ListCandidateFiles lists candidates for c under root. An empty root falls back
// to the configured one; a picker failure sentinel counts as no root at all.
func (s *Service) ListCandidateFiles(root string, c types.Category) ([]types.ModelFile, error) {
	if !taxonomy.IsKnown(c) {
		return nil, taxonomy.ErrUnknownCategory(c.String())
	}
	r, err := s.resolveRoot(root)
	if err != nil {
		return nil, err
	}
	files, err := taxonomy.ListCandidateFiles(r, c)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("root", r).Str("category", c.String()).Int("count", len(files)).Msg("listed candidates")
	return files, nil
}

// Export copies one candidate. Empty root or destination fall back to settings.
func (s *Service) Export(req exporter.Request) exporter.Result {
	root, err := s.resolveRoot(req.LibraryRoot)
	if err != nil {
		return exporter.Result{Reason: exporter.ReasonIOError, Err: err}
	}
	dest := req.Destination
	if dest == "" {
		dest = s.settings().DefaultExportDir
	}
	if dest, err = fsutil.ExpandHome(dest); err != nil {
		return exporter.Result{Reason: exporter.ReasonIOError, Err: err}
	}
	req.LibraryRoot = root
	req.Destination = dest
	return s.exp.Export(req)
}

func (s *Service) resolveRoot(root string) (string, error) {
	if root == "" {
		root = s.settings().LibraryRoot
	}
	if strings.HasPrefix(root, PickerErrorSentinel) {
		return "", nil
	}
	return fsutil.ExpandHome(root)
}
