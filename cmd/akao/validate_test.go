package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akaoio/akao-sub001/internal/config"
	"github.com/akaoio/akao-sub001/internal/logging"
)

func writeDoc(t *testing.T, dir, name, id string) string {
	t.Helper()
	src := `
metadata:
  id: ` + id + `
  name: n
  description: d
logic: {literal: true}
self_validation: {literal: true}
`
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunValidateRejectsDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.yaml", "akao:rule:demo:dup:v1")
	writeDoc(t, dir, "b.yaml", "akao:rule:demo:dup:v1")

	cfg = config.DefaultConfig()
	logger = logging.Nop()

	err := runValidate(validateCmd, []string{dir})
	if err == nil {
		t.Fatal("expected an error for duplicate metadata.id across documents")
	}
	if !strings.Contains(err.Error(), "1 of 2") {
		t.Errorf("error = %q, want the second (duplicate) document counted as a failure", err.Error())
	}
}

func TestRunValidateAcceptsDistinctIDs(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.yaml", "akao:rule:demo:one:v1")
	writeDoc(t, dir, "b.yaml", "akao:rule:demo:two:v1")

	cfg = config.DefaultConfig()
	logger = logging.Nop()

	if err := runValidate(validateCmd, []string{dir}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
