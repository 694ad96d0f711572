package save_test

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/regdiff/pkg/errors"
	"github.com/agentstation/regdiff/pkg/logging"
	"github.com/agentstation/regdiff/pkg/names"
	"github.com/agentstation/regdiff/pkg/save"
)

// faultyFS injects failures into an otherwise working filesystem.
type faultyFS struct {
	afero.Fs
	failWrite  bool
	failRename func(newname string) bool
}

func (f *faultyFS) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	file, err := f.Fs.OpenFile(name, flag, perm)
	if err != nil || !f.failWrite {
		return file, err
	}
	return &faultyFile{File: file}, nil
}

func (f *faultyFS) Rename(oldname, newname string) error {
	if f.failRename != nil && f.failRename(newname) {
		return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: os.ErrPermission}
	}
	return f.Fs.Rename(oldname, newname)
}

// faultyFile writes half of every buffer and then fails.
type faultyFile struct {
	afero.File
}

func (f *faultyFile) Write(p []byte) (int, error) {
	n, _ := f.File.Write(p[:len(p)/2])
	return n, os.ErrClosed
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func listDir(t *testing.T, fs afero.Fs, dir string) []string {
	t.Helper()
	entries, err := afero.ReadDir(fs, dir)
	require.NoError(t, err)
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name())
	}
	return out
}

func newMemWriter(t *testing.T) (*save.Writer, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/data", 0o755))
	return save.NewWriter(save.WithFS(fs)), fs
}

func TestWriteAtomic(t *testing.T) {
	tests := []struct {
		name       string
		in         []string
		sortOutput bool
		want       string
	}{
		{"dedups keeping first occurrence", []string{"b", "a", "b", "c", "a"}, false, "b\na\nc\n"},
		{"sorts when requested", []string{"b", "a", "b", "c"}, true, "a\nb\nc\n"},
		{"empty list writes empty file", nil, true, ""},
		{"single name", []string{"only"}, false, "only\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, fs := newMemWriter(t)
			require.NoError(t, w.WriteAtomic("/data/registry.txt", tt.in, tt.sortOutput))
			assert.Equal(t, tt.want, readFile(t, fs, "/data/registry.txt"))
			assert.Equal(t, []string{"registry.txt"}, listDir(t, fs, "/data"))
		})
	}
}

func TestWriteAtomicRoundTrip(t *testing.T) {
	w, fs := newMemWriter(t)
	in := []string{"zeta", "alpha", "zeta", "New York", "beta"}

	require.NoError(t, w.WriteAtomic("/data/registry.txt", in, false))

	got, err := names.ReadFS(fs, "/data/registry.txt")
	require.NoError(t, err)
	assert.Equal(t, names.Unique(in), got)
}

func TestWriteAtomicReplacesExisting(t *testing.T) {
	w, fs := newMemWriter(t)
	require.NoError(t, afero.WriteFile(fs, "/data/registry.txt", []byte("old\n"), 0o644))

	require.NoError(t, w.WriteAtomic("/data/registry.txt", []string{"new"}, false))
	assert.Equal(t, "new\n", readFile(t, fs, "/data/registry.txt"))
}

func TestWriteAtomicFailureLeavesTargetUntouched(t *testing.T) {
	tests := []struct {
		name   string
		fs     func(base afero.Fs) afero.Fs
		wantOp string
	}{
		{
			name:   "write fails midway",
			fs:     func(base afero.Fs) afero.Fs { return &faultyFS{Fs: base, failWrite: true} },
			wantOp: "write",
		},
		{
			name: "commit fails",
			fs: func(base afero.Fs) afero.Fs {
				return &faultyFS{Fs: base, failRename: func(string) bool { return true }}
			},
			wantOp: "commit",
		},
		{
			name:   "destination cannot be opened",
			fs:     func(base afero.Fs) afero.Fs { return afero.NewReadOnlyFs(base) },
			wantOp: "create",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := afero.NewMemMapFs()
			require.NoError(t, base.MkdirAll("/data", 0o755))
			require.NoError(t, afero.WriteFile(base, "/data/registry.txt", []byte("alpha\nbeta\n"), 0o644))

			w := save.NewWriter(save.WithFS(tt.fs(base)))
			err := w.WriteAtomic("/data/registry.txt", []string{"gamma", "delta"}, true)
			require.Error(t, err)

			var ioErr *errors.IOError
			require.True(t, errors.As(err, &ioErr))
			assert.Equal(t, tt.wantOp, ioErr.Operation)
			assert.Equal(t, "/data/registry.txt", ioErr.Path)
			assert.Contains(t, err.Error(), "/data/registry.txt")

			assert.Equal(t, "alpha\nbeta\n", readFile(t, base, "/data/registry.txt"))
			assert.Equal(t, []string{"registry.txt"}, listDir(t, base, "/data"), "temp file left behind")
		})
	}
}

func TestWriteFileKeepsContentVerbatim(t *testing.T) {
	w, fs := newMemWriter(t)
	patch := "--- a\n+++ b\n@@ -1,2 +1,3 @@\n x\n+y\n x\n"

	require.NoError(t, w.WriteFile("/data/changes.patch", []byte(patch)))
	assert.Equal(t, patch, readFile(t, fs, "/data/changes.patch"))
	assert.Equal(t, []string{"changes.patch"}, listDir(t, fs, "/data"))
}

func TestBackup(t *testing.T) {
	t.Run("no existing file", func(t *testing.T) {
		w, fs := newMemWriter(t)
		path, err := w.Backup("/data/registry.txt", []string{"a"}, true)
		require.NoError(t, err)
		assert.Empty(t, path)
		exists, _ := afero.Exists(fs, "/data/registry.txt.bak")
		assert.False(t, exists)
	})

	t.Run("writes previous names", func(t *testing.T) {
		w, fs := newMemWriter(t)
		require.NoError(t, afero.WriteFile(fs, "/data/registry.txt", []byte("b\na\n"), 0o644))

		path, err := w.Backup("/data/registry.txt", []string{"b", "a"}, true)
		require.NoError(t, err)
		assert.Equal(t, "/data/registry.txt.bak", path)
		assert.Equal(t, "a\nb\n", readFile(t, fs, path))
	})

	t.Run("failure is a warning and does not block the main write", func(t *testing.T) {
		base := afero.NewMemMapFs()
		require.NoError(t, base.MkdirAll("/data", 0o755))
		require.NoError(t, afero.WriteFile(base, "/data/registry.txt", []byte("a\n"), 0o644))

		tl := logging.NewTestLogger(t)
		fs := &faultyFS{Fs: base, failRename: func(newname string) bool { return strings.HasSuffix(newname, ".bak") }}
		w := save.NewWriter(save.WithFS(fs), save.WithLogger(tl.Logger))

		_, err := w.Backup("/data/registry.txt", []string{"a"}, false)
		require.Error(t, err)
		assert.True(t, errors.IsWarning(err))
		assert.True(t, errors.IsIOError(err))
		tl.AssertContains(t, "Backup failed")

		require.NoError(t, w.WriteAtomic("/data/registry.txt", []string{"a", "b"}, false))
		assert.Equal(t, "a\nb\n", readFile(t, base, "/data/registry.txt"))
	})
}

func TestBackupPath(t *testing.T) {
	assert.Equal(t, "registry.txt.bak", save.BackupPath("registry.txt"))
}

func TestWriteAtomicOSFilesystem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "registry.txt")

	require.NoError(t, save.WriteAtomic(path, []string{"b", "a"}, true))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	backup, err := save.Backup(path, []string{"b", "a"}, false)
	require.NoError(t, err)
	data, err = os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "b\na\n", string(data))
}

func TestWriteAtomicMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "registry.txt")
	err := save.WriteAtomic(path, []string{"a"}, false)
	require.Error(t, err)
	assert.True(t, errors.IsIOError(err))
}

func TestWriteAtomicConcurrentSamePath(t *testing.T) {
	w, fs := newMemWriter(t)

	lists := [][]string{
		{"a", "b", "c"},
		{"x", "y"},
		{"one"},
		{"p", "q", "r", "s"},
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(list []string) {
			defer wg.Done()
			assert.NoError(t, w.WriteAtomic("/data/registry.txt", list, false))
		}(lists[i%len(lists)])
	}
	wg.Wait()

	content := readFile(t, fs, "/data/registry.txt")
	valid := false
	for _, l := range lists {
		if content == names.Join(l) {
			valid = true
		}
	}
	assert.True(t, valid, "file content %q is not one complete write", content)
}
