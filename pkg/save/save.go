// Package save persists name lists atomically.
//
// A write goes to a temporary file next to the target, is flushed to
// stable storage and is then renamed over the target. Readers see either
// the old file or the new one, never a partial write, and a failed write
// leaves the old file untouched.
package save

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/regdiff/pkg/constants"
	"github.com/agentstation/regdiff/pkg/errors"
	"github.com/agentstation/regdiff/pkg/logging"
	"github.com/agentstation/regdiff/pkg/names"
)

// Writer writes name files atomically. Writes to the same path are
// serialized; a Writer is safe for concurrent use.
type Writer struct {
	fs     afero.Fs
	perm   os.FileMode
	logger *zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewWriter creates a Writer on the OS filesystem unless WithFS is given.
func NewWriter(opts ...Option) *Writer {
	o := &Options{fs: afero.NewOsFs()}
	o.Apply(opts...)

	return &Writer{
		fs:     o.fs,
		perm:   constants.FilePermissions,
		logger: logging.OrNop(o.logger),
		locks:  make(map[string]*sync.Mutex),
	}
}

var (
	defaultWriterOnce sync.Once
	defaultWriter     *Writer
)

// Default returns the process-wide OS filesystem Writer.
func Default() *Writer {
	defaultWriterOnce.Do(func() {
		defaultWriter = NewWriter()
	})
	return defaultWriter
}

// WriteAtomic writes names to path with the default Writer.
func WriteAtomic(path string, list []string, sortOutput bool) error {
	return Default().WriteAtomic(path, list, sortOutput)
}

// Backup copies previous to path+".bak" with the default Writer.
func Backup(path string, previous []string, sortOutput bool) (string, error) {
	return Default().Backup(path, previous, sortOutput)
}

// WriteFile replaces path with data atomically with the default Writer.
func WriteFile(path string, data []byte) error {
	return Default().WriteFile(path, data)
}

// WriteAtomic removes repeated names (first occurrence wins), optionally
// sorts them and replaces path with one name per line plus a trailing
// newline. An empty list produces an empty file. On failure the previous
// content of path is unchanged and the error is an *errors.IOError.
func (w *Writer) WriteAtomic(path string, list []string, sortOutput bool) error {
	unique := names.Unique(list)
	if sortOutput {
		sort.Strings(unique)
	}

	lock := w.lock(path)
	lock.Lock()
	defer lock.Unlock()

	if err := w.commit(path, []byte(names.Join(unique))); err != nil {
		w.logger.Error().Err(err).Str("path", path).Msg("Atomic write failed")
		return err
	}

	w.logger.Debug().Str("path", path).Int("names", len(unique)).Bool("sorted", sortOutput).Msg("Wrote names")
	return nil
}

// WriteFile replaces path with data atomically, without any name
// processing. Exported diffs go through here so their lines are kept
// verbatim.
func (w *Writer) WriteFile(path string, data []byte) error {
	lock := w.lock(path)
	lock.Lock()
	defer lock.Unlock()

	if err := w.commit(path, data); err != nil {
		w.logger.Error().Err(err).Str("path", path).Msg("Atomic write failed")
		return err
	}

	w.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("Wrote file")
	return nil
}

// Backup writes previous to the backup path of path when a file already
// exists at path, and returns the backup path it wrote. A missing path is
// not an error and returns "". Failures are returned as *errors.Warning so
// callers can report them and carry on with the primary write.
func (w *Writer) Backup(path string, previous []string, sortOutput bool) (string, error) {
	exists, err := afero.Exists(w.fs, path)
	if err != nil {
		return "", errors.NewWarning("backup", errors.WrapIO("stat", path, err))
	}
	if !exists {
		return "", nil
	}

	backupPath := BackupPath(path)
	if err := w.WriteAtomic(backupPath, previous, sortOutput); err != nil {
		w.logger.Warn().Err(err).Str("path", backupPath).Msg("Backup failed")
		return "", errors.NewWarning("backup", err)
	}

	w.logger.Info().Str("path", backupPath).Msg("Backup written")
	return backupPath, nil
}

// BackupPath returns the backup location for a registry path.
func BackupPath(path string) string {
	return path + constants.BackupSuffix
}

// commit stages data in a temporary sibling of path and renames it into place.
func (w *Writer) commit(path string, data []byte) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := afero.TempFile(w.fs, dir, "."+base+".tmp-*")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	tmpPath := tmp.Name()

	// fail removes the staged file and closes it if still open.
	fail := func(op string, cause error, closed bool) error {
		if !closed {
			_ = tmp.Close()
		}
		_ = w.fs.Remove(tmpPath)
		return errors.WrapIO(op, path, cause)
	}

	if _, err := tmp.Write(data); err != nil {
		return fail("write", err, false)
	}
	if err := tmp.Sync(); err != nil {
		return fail("sync", err, false)
	}
	if err := tmp.Close(); err != nil {
		return fail("close", err, true)
	}
	if err := w.fs.Chmod(tmpPath, w.perm); err != nil {
		return fail("chmod", err, true)
	}
	if err := w.fs.Rename(tmpPath, path); err != nil {
		return fail("commit", err, true)
	}
	return nil
}

// lock returns the mutex guarding writes to path.
func (w *Writer) lock(path string) *sync.Mutex {
	key := filepath.Clean(path)
	if abs, err := filepath.Abs(key); err == nil {
		key = abs
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	l, ok := w.locks[key]
	if !ok {
		l = &sync.Mutex{}
		w.locks[key] = l
	}
	return l
}
