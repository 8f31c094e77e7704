package branches

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/ntuplegen/internal/ctxlog"
)

// Lookup produces the tree structure of the ntuple at path.
type Lookup interface {
	Dump(ctx context.Context, path string) (*Dump, error)
}

// typeHints maps fixed-width type names reported by inspectors to the ROOT
// typedefs generated code uses.
var typeHints = map[string]string{
	"uint64_t": "ULong64_t",
	"uint32_t": "UInt_t",
}

// TypeHint returns the ROOT spelling of typename.
func TypeHint(typename string) string {
	if hint, ok := typeHints[typename]; ok {
		return hint
	}
	return typename
}

// TreeName strips a ROOT cycle suffix ("DecayTree;2" -> "DecayTree").
func TreeName(key string) string {
	name, _, _ := strings.Cut(key, ";")
	return name
}

// FileLookup reads YAML tree dumps from disk.
type FileLookup struct{}

func NewFileLookup() *FileLookup {
	return &FileLookup{}
}

// Dump parses the dump at path. When a tree appears under several cycles,
// the last one listed wins.
func (l *FileLookup) Dump(ctx context.Context, path string) (*Dump, error) {
	logger := ctxlog.FromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ntuple dump %s: %w", path, err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse ntuple dump %s: %w", path, err)
	}

	dump := NewDump()
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		logger.Warn("Ntuple dump is empty.", "path", path)
		return dump, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: line %d: expected a mapping of tree names", path, root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, body := root.Content[i], root.Content[i+1]
		if body.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%s: line %d: tree %q must map branch names to types", path, body.Line, key.Value)
		}
		tree := NewTree(TreeName(key.Value))
		for j := 0; j+1 < len(body.Content); j += 2 {
			tree.Set(body.Content[j].Value, TypeHint(body.Content[j+1].Value))
		}
		dump.Add(tree)
	}

	logger.Debug("Loaded ntuple dump.", "path", path, "trees", len(dump.trees))
	return dump, nil
}
