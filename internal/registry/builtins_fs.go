package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/akaoio/akao-sub001/internal/value"
)

// registerFilesystemBuiltins installs the filesystem.* handlers. Every
// handler here is impure (it touches the host filesystem), so the
// evaluator's cache must never memoize a call into one of them — each
// Register call below passes impure=true.
func registerFilesystemBuiltins(r *Registry) {
	r.Register("filesystem.get_cpp_files", true, 1, func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return value.Value{}, fmt.Errorf("filesystem.get_cpp_files wants 1 argument, got %d", len(args))
		}
		root, err := args[0].Str()
		if err != nil {
			return value.Value{}, err
		}
		var files []value.Value
		walkErr := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if isCppFile(path) {
				files = append(files, value.NewString(path))
			}
			return nil
		})
		if walkErr != nil {
			return value.Value{}, walkErr
		}
		return value.NewCollection(files...), nil
	})

	r.Register("filesystem.read_file", true, 1, func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return value.Value{}, fmt.Errorf("filesystem.read_file wants 1 argument, got %d", len(args))
		}
		path, err := args[0].Str()
		if err != nil {
			return value.Value{}, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewString(string(data)), nil
	})

	r.Register("filesystem.has_extension", true, 2, func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return value.Value{}, fmt.Errorf("filesystem.has_extension wants 2 arguments, got %d", len(args))
		}
		path, err := args[0].Str()
		if err != nil {
			return value.Value{}, err
		}
		ext, err := args[1].Str()
		if err != nil {
			return value.Value{}, err
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		return value.NewBoolean(strings.EqualFold(filepath.Ext(path), ext)), nil
	})
}

func isCppFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cpp", ".cc", ".cxx", ".hpp", ".hh", ".h":
		return true
	default:
		return false
	}
}
