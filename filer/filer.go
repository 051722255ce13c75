// Package filer is a poet.Filer for build tooling. It writes generated
// sources below a root directory and records each artifact, with the
// elements it was generated from, in a SQLite manifest.
package filer

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/poet/errors"
	"github.com/teranos/poet/logger"
	"github.com/teranos/poet/poet"
)

// Filer creates source files below root. Each class name can be created
// once per Filer.
type Filer struct {
	root     string
	manifest *Manifest
	log      *zap.SugaredLogger

	mu      sync.Mutex
	created map[string]bool
}

// New returns a Filer writing below root. manifest may be nil when no
// tracking is wanted.
func New(root string, manifest *Manifest) (*Filer, error) {
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		return nil, errors.NewConfigurationError("filer root %s is not a directory", root)
	}
	return &Filer{
		root:     root,
		manifest: manifest,
		log:      logger.ComponentLogger("poet.filer"),
		created:  make(map[string]bool),
	}, nil
}

// PathFor maps a class name such as demo.app.Greeter to its file below root.
func (f *Filer) PathFor(name string) string {
	parts := strings.Split(name, ".")
	parts[len(parts)-1] += poet.SourceExtension
	return filepath.Join(append([]string{f.root}, parts...)...)
}

// CreateSourceFile reserves the source file for name.
func (f *Filer) CreateSourceFile(name string, originating ...string) (poet.SourceFile, error) {
	if name == "" {
		return nil, errors.NewConfigurationError("source file name is empty")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.created[name] {
		return nil, errors.WithHint(
			errors.NewConfigurationError("source file %s was already created", name),
			"each class may be generated once per build")
	}

	sf := &sourceFile{
		filer: f,
		artifact: Artifact{
			ID:      uuid.NewString(),
			Name:    name,
			Path:    f.PathFor(name),
			Status:  StatusCreated,
			Origins: append([]string(nil), originating...),
		},
	}
	if f.manifest != nil {
		if err := f.manifest.Record(&sf.artifact); err != nil {
			return nil, err
		}
	}
	f.created[name] = true

	f.log.Infow("Source file created",
		logger.FieldFile, name,
		logger.FieldArtifact, sf.artifact.ID,
		logger.FieldElement, originating)
	return sf, nil
}

func (f *Filer) forget(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.created, name)
}

type sourceFile struct {
	filer    *Filer
	artifact Artifact
}

// OpenWriter creates the file on disk. Closing the writer marks the artifact
// written.
func (s *sourceFile) OpenWriter() (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(s.artifact.Path), 0o755); err != nil {
		return nil, errors.Wrapf(err, "create directory for %s", s.artifact.Name)
	}
	file, err := os.Create(s.artifact.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s", s.artifact.Path)
	}
	return &trackedWriter{file: file, source: s}, nil
}

// Delete removes the file and its manifest entry.
func (s *sourceFile) Delete() error {
	if err := os.Remove(s.artifact.Path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "delete %s", s.artifact.Path)
	}
	if s.filer.manifest != nil {
		if err := s.filer.manifest.Remove(s.artifact.ID); err != nil {
			return err
		}
	}
	s.filer.forget(s.artifact.Name)
	s.filer.log.Warnw("Source file deleted",
		logger.FieldFile, s.artifact.Name,
		logger.FieldPath, s.artifact.Path)
	return nil
}

type trackedWriter struct {
	file   *os.File
	source *sourceFile
	n      int64
}

func (w *trackedWriter) Write(p []byte) (int, error) {
	n, err := w.file.Write(p)
	w.n += int64(n)
	return n, err
}

func (w *trackedWriter) Close() error {
	if err := w.file.Close(); err != nil {
		return errors.Wrapf(err, "close %s", w.source.artifact.Path)
	}
	if m := w.source.filer.manifest; m != nil {
		return m.MarkWritten(w.source.artifact.ID, w.n)
	}
	return nil
}
