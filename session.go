package regdiff

import (
	"io"
	"slices"

	"github.com/agentstation/regdiff/pkg/names"
)

// Compile-time interface check to ensure proper implementation.
var _ Session = (*client)(nil)

// Session loads and exposes the two name lists of a session.
type Session interface {
	// LoadRegistry reads the registry file at path. The path becomes the
	// default apply target. On error the session is unchanged.
	LoadRegistry(path string) error

	// LoadCandidates reads the candidate file at path. On error the session
	// is unchanged.
	LoadCandidates(path string) error

	// ReadCandidates reads candidate names from r, e.g. standard input.
	ReadCandidates(r io.Reader) error

	// SetRegistry replaces the registry with the names in text.
	SetRegistry(text string)

	// SetCandidates replaces the candidates with the names in text.
	SetCandidates(text string)

	// Registry returns a copy of the registry names.
	Registry() []string

	// Candidates returns a copy of the candidate names.
	Candidates() []string

	// RegistryPath returns the path the registry was loaded from, if any.
	RegistryPath() string
}

// LoadRegistry reads the registry file at path.
func (c *client) LoadRegistry(path string) error {
	list, err := names.ReadFS(c.fs, path)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.registry = list
	c.registryPath = path
	c.mu.Unlock()

	c.logger.Debug().Str("path", path).Int("names", len(list)).Msg("Registry loaded")
	return nil
}

// LoadCandidates reads the candidate file at path.
func (c *client) LoadCandidates(path string) error {
	list, err := names.ReadFS(c.fs, path)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.candidates = list
	c.mu.Unlock()

	c.logger.Debug().Str("path", path).Int("names", len(list)).Msg("Candidates loaded")
	return nil
}

// ReadCandidates reads candidate names from r.
func (c *client) ReadCandidates(r io.Reader) error {
	list, err := names.ReadFrom(r)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.candidates = list
	c.mu.Unlock()
	return nil
}

// SetRegistry replaces the registry with the names in text.
func (c *client) SetRegistry(text string) {
	list := names.Normalize(text)
	c.mu.Lock()
	c.registry = list
	c.mu.Unlock()
}

// SetCandidates replaces the candidates with the names in text.
func (c *client) SetCandidates(text string) {
	list := names.Normalize(text)
	c.mu.Lock()
	c.candidates = list
	c.mu.Unlock()
}

// Registry returns a copy of the registry names.
func (c *client) Registry() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.registry)
}

// Candidates returns a copy of the candidate names.
func (c *client) Candidates() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.candidates)
}

// RegistryPath returns the path the registry was loaded from, if any.
func (c *client) RegistryPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.registryPath
}
