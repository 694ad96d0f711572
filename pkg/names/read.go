package names

import (
	"io"
	"os"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding/unicode"

	"github.com/agentstation/regdiff/pkg/errors"
)

// Read loads a UTF-8 name file from the OS filesystem and normalizes it.
func Read(path string) ([]string, error) {
	return ReadFS(afero.NewOsFs(), path)
}

// ReadFS loads a UTF-8 name file from fs and normalizes it.
// A missing file yields a NotFoundError; any other failure an IOError.
func ReadFS(fs afero.Fs, path string) ([]string, error) {
	f, err := fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("file", path)
		}
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	out, err := ReadFrom(f)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return out, nil
}

// ReadFrom normalizes UTF-8 text from r. A leading byte order mark is dropped.
func ReadFrom(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(unicode.UTF8BOM.NewDecoder().Reader(r))
	if err != nil {
		return nil, err
	}
	return Normalize(string(data)), nil
}
