package poet

import (
	"bufio"
	"hash/fnv"
	"io"
	"strings"
	"time"

	"github.com/teranos/poet/errors"
	"github.com/teranos/poet/imports"
	"github.com/teranos/poet/logger"
)

// Imports runs the dry pass and returns the import plan the file renders with.
func (f *File) Imports() (*imports.Plan, error) {
	reg, err := f.collectReferences()
	if err != nil {
		return nil, err
	}
	planner := imports.Planner{
		Registrations: f.registrations,
		Policy:        f.policy,
		SkipBuiltin:   f.skipBuiltin,
		Logger:        f.log,
	}
	return planner.Plan(reg), nil
}

// WriteTo renders the file into out. Both passes run on every call.
func (f *File) WriteTo(out io.Writer) (int64, error) {
	start := time.Now()
	plan, err := f.Imports()
	if err != nil {
		return 0, err
	}

	cw := &countingWriter{w: bufio.NewWriter(out)}
	w := newPlannedWriter(cw, f.indent, f.staticImports, plan)
	if err := f.emit(w, plan); err != nil {
		return cw.n, errors.WrapEmission(err, "render "+f.QualifiedName())
	}
	if err := cw.w.Flush(); err != nil {
		return cw.n, errors.WrapEmission(err, "flush "+f.QualifiedName())
	}

	f.log.Debugw("Rendered file",
		logger.FieldType, f.QualifiedName(),
		logger.FieldImportLines, len(plan.Lines),
		logger.FieldStaticImports, len(plan.Statics),
		logger.FieldWildcards, plan.Wildcards(),
		logger.FieldBytes, cw.n,
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return cw.n, nil
}

// emit writes the whole compilation unit. Header blocks are separated by one
// blank line and the last one is followed by a blank line before the body.
func (f *File) emit(w *CodeWriter, plan *imports.Plan) error {
	w.pushPackage(f.packageName)
	defer w.popPackage()

	blocks := 0
	startBlock := func() {
		if blocks > 0 {
			w.emitAndIndent("\n")
		}
		blocks++
	}

	if !f.fileComment.IsEmpty() {
		startBlock()
		w.emitComment(f.fileComment)
	}
	if f.packageName != "" {
		startBlock()
		w.emitAndIndent("package " + f.packageName + ";\n")
	}
	if plan != nil {
		if lines := plan.StaticLines(); len(lines) > 0 {
			startBlock()
			w.emitAndIndent(strings.Join(lines, "\n") + "\n")
		}
		if lines := plan.ImportLines(); len(lines) > 0 {
			startBlock()
			w.emitAndIndent(strings.Join(lines, "\n") + "\n")
		}
	}
	if blocks > 0 {
		w.emitAndIndent("\n")
	}

	if err := f.typeSpec.emit(w, nil); err != nil {
		return err
	}
	return w.Err()
}

// String returns the rendered text. The text is computed once per File; a
// failed render yields "".
func (f *File) String() string {
	text, _ := f.rendered()
	return text
}

// rendered returns the cached text and the error of the render that produced
// it.
func (f *File) rendered() (string, error) {
	f.textOnce.Do(func() {
		var b strings.Builder
		if _, err := f.WriteTo(&b); err != nil {
			f.log.Errorw("Render into memory failed", logger.FieldError, err)
			f.textErr = err
			return
		}
		f.text = b.String()
	})
	return f.text, f.textErr
}

// Equal reports whether both files render to the same text. A file whose
// render failed equals no other file.
func (f *File) Equal(other *File) bool {
	if f == other {
		return true
	}
	if f == nil || other == nil {
		return false
	}
	text, err := f.rendered()
	otherText, otherErr := other.rendered()
	if err != nil || otherErr != nil {
		return false
	}
	return text == otherText
}

// Hash returns a hash of the rendered text. A failed render hashes its error
// so that failures do not collide with each other or with the empty text.
func (f *File) Hash() uint64 {
	h := fnv.New64a()
	text, err := f.rendered()
	if err != nil {
		_, _ = io.WriteString(h, "\x00render failed: "+err.Error())
		return h.Sum64()
	}
	_, _ = io.WriteString(h, text)
	return h.Sum64()
}

type countingWriter struct {
	w *bufio.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
