package registry

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"

	"github.com/akaoio/akao-sub001/internal/value"
)

// registerCppBuiltins installs the cpp.* handlers: one sitter.Parser
// configured with the cpp grammar, queried for class_specifier,
// struct_specifier (both counted as classes) and preproc_include nodes. Like filesystem.*, these are impure: parsing is
// deterministic given the same bytes, but the handler reads no state the
// interpreter owns, so it is classified impure rather than special-cased
// as "pure except for its argument".
func registerCppBuiltins(r *Registry) {
	parser := sitter.NewParser()
	parser.SetLanguage(cpp.GetLanguage())

	r.Register("cpp.extract_classes", true, 1, func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return value.Value{}, fmt.Errorf("cpp.extract_classes wants 1 argument, got %d", len(args))
		}
		text, err := args[0].Str()
		if err != nil {
			return value.Value{}, err
		}
		names, err := extractCppClassNames(parser, text)
		if err != nil {
			return value.Value{}, err
		}
		elems := make([]value.Value, len(names))
		for i, n := range names {
			elems[i] = value.NewString(n)
		}
		return value.NewCollection(elems...), nil
	})

	r.Register("cpp.count_classes", true, 1, func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return value.Value{}, fmt.Errorf("cpp.count_classes wants 1 argument, got %d", len(args))
		}
		text, err := args[0].Str()
		if err != nil {
			return value.Value{}, err
		}
		names, err := extractCppClassNames(parser, text)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewInteger(int64(len(names))), nil
	})

	r.Register("cpp.get_includes", true, 1, func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return value.Value{}, fmt.Errorf("cpp.get_includes wants 1 argument, got %d", len(args))
		}
		text, err := args[0].Str()
		if err != nil {
			return value.Value{}, err
		}
		tree, err := parser.ParseCtx(context.Background(), nil, []byte(text))
		if err != nil {
			return value.Value{}, err
		}
		defer tree.Close()

		var includes []value.Value
		walkCpp(tree.RootNode(), func(n *sitter.Node) {
			if n.Type() != "preproc_include" {
				return
			}
			raw := n.Content([]byte(text))
			path := strings.TrimSpace(strings.TrimPrefix(raw, "#include"))
			path = strings.Trim(path, "<>\"")
			includes = append(includes, value.NewString(path))
		})
		return value.NewCollection(includes...), nil
	})
}

func extractCppClassNames(parser *sitter.Parser, text string) ([]string, error) {
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(text))
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var names []string
	walkCpp(tree.RootNode(), func(n *sitter.Node) {
		if n.Type() != "class_specifier" && n.Type() != "struct_specifier" {
			return
		}
		nameNode := n.ChildByFieldName("name")
		if nameNode == nil {
			return
		}
		names = append(names, nameNode.Content([]byte(text)))
	})
	return names, nil
}

// walkCpp performs a depth-first traversal of a tree-sitter parse tree,
// invoking visit on every node in document order.
func walkCpp(n *sitter.Node, visit func(*sitter.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for i := 0; i < int(n.ChildCount()); i++ {
		walkCpp(n.Child(i), visit)
	}
}
