package poet

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/teranos/poet/errors"
	"github.com/teranos/poet/logger"
)

// SourceExtension is the file extension of Java sources.
const SourceExtension = ".java"

// Filer creates source artifacts on behalf of a host build tool.
type Filer interface {
	// CreateSourceFile reserves the artifact for the class name, associating
	// it with the elements it was generated from.
	CreateSourceFile(name string, originating ...string) (SourceFile, error)
}

// SourceFile is an artifact created by a Filer.
type SourceFile interface {
	OpenWriter() (io.WriteCloser, error)
	Delete() error
}

// RelativePath returns the file's path below a source root, e.g.
// "demo/app/Greeter.java".
func (f *File) RelativePath() string {
	parts := append(packagePath(f.packageName), f.typeSpec.Name+SourceExtension)
	return path.Join(parts...)
}

// WriteToDir writes the file below root following the package layout and
// returns the path written. Missing directories are created.
func (f *File) WriteToDir(root string) (written string, err error) {
	dir := root
	for _, part := range append([]string{""}, packagePath(f.packageName)...) {
		dir = filepath.Join(dir, part)
		if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
			return "", errors.WithHint(
				errors.NewConfigurationError("output path %s exists and is not a directory", dir),
				"point the output at a directory or remove the file")
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.WrapEmission(err, "create "+dir)
	}

	target := filepath.Join(dir, f.typeSpec.Name+SourceExtension)
	out, err := os.Create(target)
	if err != nil {
		return "", errors.WrapEmission(err, "create "+target)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			written, err = "", errors.WrapEmission(cerr, "close "+target)
		}
	}()

	n, err := f.WriteTo(out)
	if err != nil {
		return "", err
	}

	f.log.Infow("Wrote source file",
		logger.FieldPath, target,
		logger.FieldBytes, n)
	return target, nil
}

// WriteToFiler writes the file through a build tool's Filer. When writing
// fails the partially created artifact is deleted before the original error
// is returned.
func (f *File) WriteToFiler(filer Filer) error {
	name := f.QualifiedName()
	sf, err := filer.CreateSourceFile(name, f.typeSpec.AllOriginatingElements()...)
	if err != nil {
		if errors.IsConfigurationError(err) {
			return err
		}
		return errors.WrapEmission(err, "create source file "+name)
	}

	n, err := f.writeSourceFile(sf)
	if err != nil {
		if derr := sf.Delete(); derr != nil {
			f.log.Warnw("Failed to delete partial source file",
				logger.FieldFile, name,
				logger.FieldError, derr)
			err = errors.WithSecondaryError(err, derr)
		}
		return err
	}

	f.log.Infow("Wrote source file",
		logger.FieldFile, name,
		logger.FieldBytes, n)
	return nil
}

func (f *File) writeSourceFile(sf SourceFile) (int64, error) {
	w, err := sf.OpenWriter()
	if err != nil {
		return 0, errors.WrapEmission(err, "open "+f.QualifiedName())
	}
	n, werr := f.WriteTo(w)
	cerr := w.Close()
	if werr != nil {
		return n, werr
	}
	if cerr != nil {
		return n, errors.WrapEmission(cerr, "close "+f.QualifiedName())
	}
	return n, nil
}

// SourceObject is an in-memory source artifact for hosts that compile
// generated code without touching the file system.
type SourceObject struct {
	// URI is the package-relative path, e.g. "demo/app/Greeter.java".
	URI          string
	Kind         string
	LastModified time.Time
	file         *File
}

// ToSourceObject wraps the file as an in-memory source artifact.
func (f *File) ToSourceObject() *SourceObject {
	return &SourceObject{
		URI:          f.RelativePath(),
		Kind:         SourceExtension,
		LastModified: time.Now(),
		file:         f,
	}
}

// CharContent returns the rendered source.
func (o *SourceObject) CharContent() string { return o.file.String() }

// Open returns a reader over the rendered source.
func (o *SourceObject) Open() io.Reader { return strings.NewReader(o.CharContent()) }

// Name returns the file name part of the URI.
func (o *SourceObject) Name() string { return path.Base(o.URI) }

var _ io.WriterTo = (*File)(nil)
