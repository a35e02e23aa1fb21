package topology

import (
	"fmt"
	"sort"

	"github.com/imamik/topoplan/internal/configtree"
)

// ResolveClasses flattens the merged node_classes table into concrete
// NodeClass values. Each class's parent_class chain is collected root first
// and folded through the merge engine, so descendant fields overlay ancestor
// fields and tombstones delete inherited disks, partitions, and interfaces.
//
// Pure base classes are retained in the result, unexpanded, so diagnostics
// and descendants can still see them; the instantiation planner skips them.
// Whether a class is a pure base class is decided by the class's own entry,
// never inherited from an ancestor.
func ResolveClasses(nodeClasses configtree.Tree) (map[string]*NodeClass, error) {
	resolved := make(map[string]*NodeClass, len(nodeClasses))
	for _, name := range sortedKeys(nodeClasses) {
		entry, ok := nodeClasses[name].(configtree.Tree)
		if !ok {
			return nil, fmt.Errorf("node class %q: definition is not a mapping", name)
		}
		if configtree.Tombstoned(entry) {
			continue
		}
		pure, _ := entry["pure_base_class"].(bool)
		if pure {
			class, err := decodeClass(name, entry)
			if err != nil {
				return nil, err
			}
			class.PureBaseClass = true
			resolved[name] = class
			continue
		}
		chain, err := inheritanceChain(nodeClasses, name)
		if err != nil {
			return nil, err
		}
		expanded := configtree.Tree{}
		for _, link := range chain {
			expanded = configtree.Merge(expanded, link)
		}
		class, err := decodeClass(name, expanded)
		if err != nil {
			return nil, err
		}
		// The template decision belongs to the class's own entry; an
		// inherited pure_base_class flag must not leak down.
		class.PureBaseClass = false
		resolved[name] = class
	}
	return resolved, nil
}

// inheritanceChain collects the parent_class chain of the named class, root
// ancestor first, failing on dangling parents and cycles.
func inheritanceChain(nodeClasses configtree.Tree, name string) ([]configtree.Tree, error) {
	var chain []configtree.Tree
	visited := map[string]bool{}
	for current := name; current != ""; {
		if visited[current] {
			return nil, fmt.Errorf("node class %q: %w via %q", name, ErrCircularInheritance, current)
		}
		visited[current] = true
		entry, ok := nodeClasses[current].(configtree.Tree)
		if !ok {
			return nil, fmt.Errorf("node class %q: %w (%q)", name, ErrUndefinedParent, current)
		}
		chain = append(chain, entry)
		current, _ = entry["parent_class"].(string)
	}
	// Reverse so the root ancestor merges first and descendants overlay it.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// decodeClass prunes tombstoned interfaces, disks, and partitions from the
// expanded class tree and decodes it into a typed NodeClass.
func decodeClass(name string, expanded configtree.Tree) (*NodeClass, error) {
	pruned := pruneClassTombstones(expanded)
	var class NodeClass
	if err := configtree.Decode(pruned, &class); err != nil {
		return nil, fmt.Errorf("node class %q: %w", name, err)
	}
	class.Name = name
	return &class, nil
}

// pruneClassTombstones removes interface, disk, and partition entries that
// survived the inheritance fold still carrying a tombstone. Base templates
// pre-populate example entries with "delete: true" so descendants can
// override or drop them; whatever is left deleted at this point is gone for
// good.
func pruneClassTombstones(class configtree.Tree) configtree.Tree {
	out := configtree.Clone(class)
	if interfaces, ok := out["network_interfaces"].(configtree.Tree); ok {
		out["network_interfaces"] = pruneTombstonedEntries(interfaces)
	}
	vm, ok := out["virtual_machine"].(configtree.Tree)
	if !ok {
		return out
	}
	if boot, ok := vm["boot_disk"].(configtree.Tree); ok {
		vm["boot_disk"] = pruneDiskPartitions(boot)
	}
	if disks, ok := vm["additional_disks"].(configtree.Tree); ok {
		kept := pruneTombstonedEntries(disks)
		for name, disk := range kept {
			if diskTree, ok := disk.(configtree.Tree); ok {
				kept[name] = pruneDiskPartitions(diskTree)
			}
		}
		vm["additional_disks"] = kept
	}
	return out
}

func pruneDiskPartitions(disk configtree.Tree) configtree.Tree {
	if partitions, ok := disk["partitions"].(configtree.Tree); ok {
		disk["partitions"] = pruneTombstonedEntries(partitions)
	}
	return disk
}

func pruneTombstonedEntries(table configtree.Tree) configtree.Tree {
	kept := make(configtree.Tree, len(table))
	for key, value := range table {
		if configtree.Tombstoned(value) {
			continue
		}
		kept[key] = value
	}
	return kept
}

// sortedKeys returns a table's keys in lexical order so resolution walks
// tables deterministically regardless of map iteration order.
func sortedKeys[V any](table map[string]V) []string {
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
