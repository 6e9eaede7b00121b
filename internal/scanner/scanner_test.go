package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opskit/awsmcp/internal/errors"
)

func write(t *testing.T, root, rel string) {
	t.Helper()
	abs := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
	require.NoError(t, os.WriteFile(abs, []byte("content of "+rel), 0o644))
}

func TestScanner_ExtensionAllowList(t *testing.T) {
	// Given: a mix of matching and non-matching files
	root := t.TempDir()
	write(t, root, "a.pdf")
	write(t, root, "b.txt")
	write(t, root, "c.docx")
	write(t, root, "noext")

	// When: scanning for .pdf only
	files, err := New(root, []string{".pdf"}).Scan()
	require.NoError(t, err)

	// Then: only the PDF is returned
	require.Len(t, files, 1)
	assert.Equal(t, "a.pdf", files[0].RelPath)
}

func TestScanner_ExtensionCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	write(t, root, "UPPER.PDF")

	files, err := New(root, []string{".pdf"}).Scan()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "UPPER.PDF", files[0].RelPath)
}

func TestScanner_RecursesAndOrders(t *testing.T) {
	// Given: files across nested directories, created out of order
	root := t.TempDir()
	write(t, root, "z/last.pdf")
	write(t, root, "a/first.pdf")
	write(t, root, "middle.pdf")

	// When: scanning
	files, err := New(root, []string{".pdf"}).Scan()
	require.NoError(t, err)

	// Then: results are ordered by relative path with forward slashes
	require.Len(t, files, 3)
	assert.Equal(t, "a/first.pdf", files[0].RelPath)
	assert.Equal(t, "middle.pdf", files[1].RelPath)
	assert.Equal(t, "z/last.pdf", files[2].RelPath)
}

func TestScanner_PopulatesFileInfo(t *testing.T) {
	root := t.TempDir()
	write(t, root, "doc.pdf")

	files, err := New(root, []string{".pdf"}).Scan()
	require.NoError(t, err)
	require.Len(t, files, 1)

	f := files[0]
	assert.True(t, filepath.IsAbs(f.AbsPath))
	assert.Greater(t, f.Size, int64(0))
	assert.False(t, f.ModTime.IsZero())
}

func TestScanner_EmptyDirectory(t *testing.T) {
	files, err := New(t.TempDir(), []string{".pdf"}).Scan()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScanner_MissingRootIsFatal(t *testing.T) {
	// Given: a root that does not exist
	root := filepath.Join(t.TempDir(), "nope")

	// When: scanning
	_, err := New(root, []string{".pdf"}).Scan()

	// Then: the run-aborting source error
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSourceUnavailable, errors.GetCode(err))
	assert.True(t, errors.IsFatal(err))
}
