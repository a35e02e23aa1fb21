package topology

import (
	"fmt"

	"github.com/imamik/topoplan/internal/util/naming"
)

// planInstances expands a concrete node class into its NodeInstance stubs:
// name, hostname, owning class, and creation-order index. Placement and
// addressing are resolved afterwards by the other engines.
//
// Names come from node_naming.node_names in list order; instances beyond the
// explicit list get "<base_name>-<k>" with k counting from 0. Explicit and
// numbered names share one namespace, so a collision between them is a
// configuration error caught by the assembler's uniqueness check.
func planInstances(class *NodeClass) ([]*NodeInstance, error) {
	if class.PureBaseClass || class.NodeCount <= 0 {
		return nil, nil
	}
	names, err := expandNames(class.Name, class.NodeNaming.BaseName, class.NodeNaming.NodeNames, class.NodeCount)
	if err != nil {
		return nil, err
	}
	hostnames, err := expandHostnames(class, names)
	if err != nil {
		return nil, err
	}
	instances := make([]*NodeInstance, class.NodeCount)
	for i := range instances {
		instances[i] = &NodeInstance{
			Name:     names[i],
			Hostname: hostnames[i],
			Class:    class.Name,
			Index:    i,
		}
	}
	return instances, nil
}

// expandHostnames resolves the hostname list for a class. Without a
// host_naming section hostnames follow node names; with one, explicit
// hostnames are honored first and the rest derive from the host base name,
// which itself defaults to the node base name.
func expandHostnames(class *NodeClass, nodeNames []string) ([]string, error) {
	if class.HostNaming == nil {
		out := make([]string, len(nodeNames))
		copy(out, nodeNames)
		return out, nil
	}
	baseName := class.HostNaming.BaseName
	if baseName == "" {
		baseName = class.NodeNaming.BaseName
	}
	return expandNames(class.Name, baseName, class.HostNaming.Hostnames, class.NodeCount)
}

func expandNames(className, baseName string, explicit []string, count int) ([]string, error) {
	names := make([]string, 0, count)
	for i := 0; i < count && i < len(explicit); i++ {
		if explicit[i] == "" {
			return nil, fmt.Errorf("node class %q: name list entry %d is empty", className, i)
		}
		names = append(names, explicit[i])
	}
	next := 0
	for len(names) < count {
		if baseName == "" {
			return nil, fmt.Errorf("node class %q: %d instances but only %d explicit names and no base_name",
				className, count, len(explicit))
		}
		names = append(names, naming.Node(baseName, next))
		next++
	}
	return names, nil
}
