// Package devel tracks VCS-built packages and probes their upstream
// repositories for new commits.
package devel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iancoleman/orderedmap"
)

// Entry describes one tracked package.
//
// Fields:
//   - URL: Clone URL of the upstream repository
//   - Branch: Branch to watch; "" watches the remote HEAD
//   - Commit: Commit hash the installed package was built from
type Entry struct {
	URL    string `json:"url"`
	Branch string `json:"branch,omitempty"`
	Commit string `json:"commit"`
}

// State is the on-disk record of tracked packages.
//
// The file is a JSON object mapping package names to entries. Entry order
// is preserved across load/save cycles so hand-edited files stay diffable.
type State struct {
	path    string
	entries *orderedmap.OrderedMap
}

// LoadState reads the state file at the given path.
//
// A missing file yields an empty state rather than an error: a first run
// has nothing tracked yet.
//
// Parameters:
//   - path: Path of the state file
//
// Returns:
//   - *State: The loaded (possibly empty) state
//   - error: Read or parse failure
func LoadState(path string) (*State, error) {
	state := &State{path: path, entries: orderedmap.New()}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return nil, fmt.Errorf("failed to read devel state: %w", err)
	}

	if err := json.Unmarshal(data, state.entries); err != nil {
		return nil, fmt.Errorf("invalid devel state in %s: %w", path, err)
	}
	return state, nil
}

// Names returns the tracked package names in file order.
//
// Returns:
//   - []string: Package names as they appear in the state file
func (s *State) Names() []string {
	return s.entries.Keys()
}

// Len returns the number of tracked packages.
//
// Returns:
//   - int: Entry count
func (s *State) Len() int {
	return len(s.entries.Keys())
}

// Get returns the entry for a package.
//
// Parameters:
//   - name: The package name
//
// Returns:
//   - Entry: The tracked entry
//   - bool: true if the package is tracked
func (s *State) Get(name string) (Entry, bool) {
	raw, ok := s.entries.Get(name)
	if !ok {
		return Entry{}, false
	}
	return decodeEntry(raw), true
}

// Set records or replaces the entry for a package, preserving its
// position when it already exists.
//
// Parameters:
//   - name: The package name
//   - entry: The entry to store
func (s *State) Set(name string, entry Entry) {
	value := orderedmap.New()
	value.Set("url", entry.URL)
	if entry.Branch != "" {
		value.Set("branch", entry.Branch)
	}
	value.Set("commit", entry.Commit)
	s.entries.Set(name, value)
}

// SetCommit updates just the recorded commit of a tracked package.
//
// Parameters:
//   - name: The package name
//   - commit: The new commit hash
//
// Returns:
//   - bool: true if the package was tracked and updated
func (s *State) SetCommit(name, commit string) bool {
	entry, ok := s.Get(name)
	if !ok {
		return false
	}
	entry.Commit = commit
	s.Set(name, entry)
	return true
}

// Save writes the state back to its file, preserving entry order.
//
// It performs the following operations:
//   - Step 1: Creates the parent directory when missing
//   - Step 2: Encodes the ordered entries with two-space indentation and
//     HTML escaping disabled
//   - Step 3: Writes the file with private permissions
//
// Returns:
//   - error: Encode or write failure
func (s *State) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create devel state directory: %w", err)
	}

	var buf bytes.Buffer
	s.entries.SetEscapeHTML(false)
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(s.entries); err != nil {
		return fmt.Errorf("failed to encode devel state: %w", err)
	}

	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write devel state: %w", err)
	}
	return nil
}

// decodeEntry converts a raw unmarshaled value into an Entry.
//
// Values arrive as ordered maps after Unmarshal and as ordered maps or
// plain maps after Set; all three shapes are handled.
//
// Parameters:
//   - raw: The raw map value
//
// Returns:
//   - Entry: The decoded entry, zero-valued fields for missing keys
func decodeEntry(raw interface{}) Entry {
	get := func(key string) string {
		switch m := raw.(type) {
		case *orderedmap.OrderedMap:
			if v, ok := m.Get(key); ok {
				if s, ok := v.(string); ok {
					return s
				}
			}
		case orderedmap.OrderedMap:
			if v, ok := m.Get(key); ok {
				if s, ok := v.(string); ok {
					return s
				}
			}
		case map[string]interface{}:
			if s, ok := m[key].(string); ok {
				return s
			}
		}
		return ""
	}
	return Entry{URL: get("url"), Branch: get("branch"), Commit: get("commit")}
}
