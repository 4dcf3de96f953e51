package workspace

import (
	"context"
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phyten/tagmark/internal/grammar"
	"github.com/phyten/tagmark/internal/model"
	"github.com/phyten/tagmark/internal/tags"
)

const mainGo = "package main\n\n// TODO: fix\n// ! warn\nx := 1 // ? why\n"

func newFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	return fs
}

func repoFs(t *testing.T) afero.Fs {
	return newFs(t, map[string]string{
		"/repo/main.go":       mainGo,
		"/repo/sub/app.py":    "import os\n# TODO python\n",
		"/repo/vendor/lib.go": "// TODO vendored\n",
		"/repo/blob.go":       "// TODO\x00\x01",
		"/repo/.git/hooks.go": "// TODO hidden\n",
	})
}

func newScanner(fs afero.Fs) *Scanner {
	return New(fs, tags.DefaultSpecs(), grammar.DefaultOptions())
}

type brief struct {
	File   string
	Tag    string
	Line   int
	Column int
	Text   string
}

func briefs(items []model.Annotation) []brief {
	out := make([]brief, len(items))
	for i, it := range items {
		out[i] = brief{File: it.File, Tag: it.Tag, Line: it.Line, Column: it.Column, Text: it.Text}
	}
	return out
}

func TestRunCollectsSortedAnnotations(t *testing.T) {
	s := newScanner(repoFs(t))
	res, err := s.Run(context.Background(), Options{
		Roots:   []string{"/repo"},
		Exclude: []string{"vendor/**"},
		Jobs:    2,
	})
	require.NoError(t, err)

	assert.Equal(t, []brief{
		{File: "/repo/main.go", Tag: "todo", Line: 3, Column: 4, Text: "TODO: fix"},
		{File: "/repo/main.go", Tag: "!", Line: 4, Column: 4, Text: "! warn"},
		{File: "/repo/main.go", Tag: "?", Line: 5, Column: 11, Text: "? why"},
		{File: "/repo/sub/app.py", Tag: "todo", Line: 2, Column: 3, Text: "TODO python"},
	}, briefs(res.Items))
	assert.Equal(t, 2, res.Files)
	assert.Equal(t, 1, res.Skipped, "binary file is skipped")
	assert.Equal(t, 4, res.Total)
	assert.Empty(t, res.Errors)
	assert.NoError(t, res.Err())
	assert.Equal(t, "go", res.Items[0].Lang)
	assert.Equal(t, model.MatchKindLine, res.Items[0].Kind)
}

func TestRunIncludeAndLangFilters(t *testing.T) {
	s := newScanner(repoFs(t))

	res, err := s.Run(context.Background(), Options{Roots: []string{"/repo"}, Include: []string{"**/*.py"}})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "/repo/sub/app.py", res.Items[0].File)

	res, err = s.Run(context.Background(), Options{Roots: []string{"/repo"}, Langs: []string{"golang"}, Exclude: []string{"vendor/**"}})
	require.NoError(t, err)
	for _, it := range res.Items {
		assert.Equal(t, "/repo/main.go", it.File)
	}
	assert.Len(t, res.Items, 3)
}

func TestRunSkipsLargeFiles(t *testing.T) {
	s := newScanner(repoFs(t))
	res, err := s.Run(context.Background(), Options{Roots: []string{"/repo/main.go"}, MaxFileBytes: 10})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 1, res.Skipped)
}

func TestRunForceLanguage(t *testing.T) {
	fs := newFs(t, map[string]string{"/repo/NOTES": "# TODO call back\n"})
	s := newScanner(fs)

	res, err := s.Run(context.Background(), Options{Roots: []string{"/repo/NOTES"}})
	require.NoError(t, err)
	assert.Empty(t, res.Items, "no language detected")

	res, err = s.Run(context.Background(), Options{Roots: []string{"/repo/NOTES"}, ForceLanguage: "shellscript"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "shellscript", res.Items[0].Lang)
	assert.Equal(t, "TODO call back", res.Items[0].Text)
}

func TestRunRecordsMissingRoot(t *testing.T) {
	s := newScanner(repoFs(t))
	res, err := s.Run(context.Background(), Options{Roots: []string{"/missing", "/repo/sub"}})
	require.NoError(t, err)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "/missing", res.Errors[0].File)
	assert.Equal(t, "walk", res.Errors[0].Stage)
	assert.Error(t, res.Err())
	assert.Len(t, res.Items, 1)
}

func TestRunRejectsInvalidPattern(t *testing.T) {
	s := newScanner(repoFs(t))
	_, err := s.Run(context.Background(), Options{Roots: []string{"/repo"}, Include: []string{"[unclosed"}})
	require.Error(t, err)
}

func TestRunCancelled(t *testing.T) {
	s := newScanner(repoFs(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Run(ctx, Options{Roots: []string{"/repo"}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunIsDeterministicAcrossJobCounts(t *testing.T) {
	files := make(map[string]string)
	for i := 0; i < 40; i++ {
		files[fmt.Sprintf("/repo/pkg%02d/file.go", i)] = fmt.Sprintf("// TODO item %d\n/*\n ! block %d\n */\n", i, i)
	}
	fs := newFs(t, files)

	one, err := newScanner(fs).Run(context.Background(), Options{Roots: []string{"/repo"}, Jobs: 1})
	require.NoError(t, err)
	many, err := newScanner(fs).Run(context.Background(), Options{Roots: []string{"/repo"}, Jobs: 8})
	require.NoError(t, err)

	assert.Len(t, one.Items, 80)
	assert.Equal(t, briefs(one.Items), briefs(many.Items))
}

func TestOptionsAccepts(t *testing.T) {
	opts := Options{Include: []string{"**/*.go"}, Exclude: []string{"vendor/**"}}
	assert.True(t, opts.Accepts("cmd/main.go"))
	assert.False(t, opts.Accepts("vendor/lib.go"))
	assert.False(t, opts.Accepts("README.md"))
	assert.False(t, opts.Accepts(".git/hooks/pre.go"))
	assert.True(t, Options{}.Accepts("anything.txt"))
}
