package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/akaoio/akao-sub001/internal/value"
)

func writeTable(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "table.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTableAgreesWithRegistry(t *testing.T) {
	reg := New()
	reg.Register("string.length", false, 1, func(args []value.Value) (value.Value, error) {
		return value.NewInteger(0), nil
	})

	path := writeTable(t, t.TempDir(), `
- name: string.length
  arguments: [string]
  returns: integer
  impure: false
`)
	entries, err := LoadTable(path, reg)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name != "string.length" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestLoadTableUndeclaredHandlerIsError(t *testing.T) {
	reg := New()
	reg.Register("string.length", false, 1, func(args []value.Value) (value.Value, error) {
		return value.NewInteger(0), nil
	})
	path := writeTable(t, t.TempDir(), "[]\n")
	if _, err := LoadTable(path, reg); err == nil {
		t.Fatal("expected TableError for a handler missing from the table")
	}
}

func TestLoadTableUnknownFunctionIsError(t *testing.T) {
	reg := New()
	path := writeTable(t, t.TempDir(), `
- name: does.not.exist
  arguments: []
  returns: boolean
`)
	if _, err := LoadTable(path, reg); err == nil {
		t.Fatal("expected TableError for a table entry with no handler")
	}
}

func TestLoadTableImpurityMismatchIsError(t *testing.T) {
	reg := New()
	reg.Register("filesystem.read_file", true, 1, func(args []value.Value) (value.Value, error) {
		return value.NewString(""), nil
	})
	path := writeTable(t, t.TempDir(), `
- name: filesystem.read_file
  arguments: [string]
  returns: string
  impure: false
`)
	if _, err := LoadTable(path, reg); err == nil {
		t.Fatal("expected TableError for an impurity mismatch")
	}
}
