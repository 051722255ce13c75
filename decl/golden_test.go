package decl

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/tools/txtar"
)

var update = flag.Bool("update", false, "rewrite want.java in testdata archives")

// TestGolden renders every testdata archive's doc.yaml or doc.toml and
// compares the result with its want.java.
func TestGolden(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, archives)

	for _, path := range archives {
		path := path
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			ar, err := txtar.ParseFile(path)
			require.NoError(t, err)

			var doc, want *txtar.File
			for i := range ar.Files {
				f := &ar.Files[i]
				switch {
				case strings.HasPrefix(f.Name, "doc."):
					doc = f
				case f.Name == "want.java":
					want = f
				}
			}
			require.NotNil(t, doc, "archive has no doc file")
			require.NotNil(t, want, "archive has no want.java")

			format, err := FormatFor(doc.Name)
			require.NoError(t, err)
			d, err := Parse(doc.Data, format)
			require.NoError(t, err)
			file, err := d.Build(Options{SkipBuiltin: true, Logger: zaptest.NewLogger(t).Sugar()})
			require.NoError(t, err)

			got := file.String()
			if *update {
				want.Data = []byte(got)
				require.NoError(t, os.WriteFile(path, txtar.Format(ar), 0o644))
				return
			}
			assert.Equal(t, string(want.Data), got)
		})
	}
}
