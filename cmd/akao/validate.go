package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	ctxpkg "github.com/akaoio/akao-sub001/internal/context"
	"github.com/akaoio/akao-sub001/internal/document"
	"github.com/akaoio/akao-sub001/internal/value"
)

var validateCmd = &cobra.Command{
	Use:   "validate <dir>",
	Short: "load and run every rule/philosophy document under a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	root := args[0]
	eng, err := buildEngine()
	if err != nil {
		return err
	}

	docPaths, err := collectYAMLFiles(root)
	if err != nil {
		return err
	}

	failures := 0
	seenIDs := make(map[string]string)
	for _, path := range docPaths {
		doc, err := eng.LoadDocument(path)
		if err != nil {
			logger.Warn("document malformed, skipping", zap.String("document", path), zap.Error(err))
			failures++
			continue
		}
		if prior, ok := seenIDs[doc.Metadata.ID]; ok {
			err := &document.DocumentMalformed{
				Path:   path,
				Reason: fmt.Sprintf("metadata.id %q already used by %s", doc.Metadata.ID, prior),
			}
			logger.Warn("duplicate document id, skipping", zap.String("document", path), zap.Error(err))
			failures++
			continue
		}
		seenIDs[doc.Metadata.ID] = path

		ctx := ctxpkg.New()
		ctx.Bind("root", value.NewString(root))
		out := eng.Run(doc, ctx)
		reportOutcome(path, out)
		if out.Decision() != "pass" {
			failures++
		}
	}

	if failures > 0 {
		return fmt.Errorf("validate: %d of %d documents failed", failures, len(docPaths))
	}
	return nil
}

func collectYAMLFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
