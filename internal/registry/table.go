package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TableEntry is one declared function signature from the function-registry
// table document: "{name, arguments: [<type>], returns:
// <type>, impure?: bool}".
type TableEntry struct {
	Name      string   `yaml:"name"`
	Arguments []string `yaml:"arguments"`
	Returns   string   `yaml:"returns"`
	Impure    bool     `yaml:"impure"`
}

// TableError reports a mismatch between the function-registry table and
// the handlers actually registered at load time: a named function with
// no handler, or a handler with no table entry.
type TableError struct {
	Name   string
	Reason string
}

func (e *TableError) Error() string {
	return fmt.Sprintf("registry table: %s: %s", e.Name, e.Reason)
}

// LoadTable reads the function-registry-table YAML document at path and
// cross-checks it against reg: every table entry must name a handler
// already registered in reg, and every handler in reg must appear in the
// table, including agreement on impurity. It returns the parsed entries
// on success so callers can inspect declared arities/types.
func LoadTable(path string, reg *Registry) ([]TableEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry table: cannot read %s: %w", path, err)
	}

	var entries []TableEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("registry table: invalid YAML in %s: %w", path, err)
	}

	declared := make(map[string]bool, len(entries))
	for _, e := range entries {
		declared[e.Name] = true
		if !reg.Has(e.Name) {
			return nil, &TableError{Name: e.Name, Reason: "declared in table but no handler registered"}
		}
		if e.Impure != reg.IsImpure(e.Name) {
			return nil, &TableError{Name: e.Name, Reason: "table's impure flag disagrees with the registered handler"}
		}
	}
	for _, name := range reg.Names() {
		if !declared[name] {
			return nil, &TableError{Name: name, Reason: "handler registered but not declared in table"}
		}
	}

	return entries, nil
}
