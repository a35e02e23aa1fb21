package configtree

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads and parses a configuration tree from a YAML file.
func LoadFile(path string) (Tree, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	tree, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return tree, nil
}

// Parse unmarshals YAML data into a Tree. An empty document yields an empty
// Tree rather than nil so the result is always safe to merge onto.
func Parse(data []byte) (Tree, error) {
	var tree Tree
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}
	if tree == nil {
		tree = Tree{}
	}
	return tree, nil
}

// Decode converts a merged subtree into a typed value by round-tripping it
// through YAML. out must be a pointer.
func Decode(t Tree, out any) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to re-encode config tree: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode config tree: %w", err)
	}
	return nil
}
