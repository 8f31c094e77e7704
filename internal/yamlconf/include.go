package yamlconf

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const includeTag = "!include"

// readFile parses path into a node tree with every include expanded. stack
// holds the files currently being expanded and catches include cycles.
func readFile(path string, stack []string) (*yaml.Node, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	for _, p := range stack {
		if p == abs {
			return nil, fmt.Errorf("include cycle detected at %s", path)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}, nil
	}
	root := doc.Content[0]
	if err := expand(root, filepath.Dir(path), append(stack, abs)); err != nil {
		return nil, fmt.Errorf("in %s: %w", path, err)
	}
	return root, nil
}

func expand(n *yaml.Node, dir string, stack []string) error {
	if n.Tag == includeTag {
		if n.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: %s expects a file name", n.Line, includeTag)
		}
		inc, err := readFile(filepath.Join(dir, n.Value), stack)
		if err != nil {
			return err
		}
		*n = *inc
		return nil
	}
	for _, c := range n.Content {
		if err := expand(c, dir, stack); err != nil {
			return err
		}
	}
	return nil
}
