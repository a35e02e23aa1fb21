package topology

import "fmt"

// Accessors for downstream provisioning collaborators. The topology is
// read-only; every method is a pure lookup.

// NetworkNames returns the names of all resolved networks in lexical order.
func (t *ResolvedTopology) NetworkNames() []string {
	return sortedKeys(t.Networks)
}

// ClassNames returns the names of all concrete node classes in lexical order.
func (t *ResolvedTopology) ClassNames() []string {
	return sortedKeys(t.Classes)
}

// NodeCount returns the number of instances of the named class.
func (t *ResolvedTopology) NodeCount(class string) (int, error) {
	nclass, err := t.class(class)
	if err != nil {
		return 0, err
	}
	return nclass.NodeCount, nil
}

// NodeName returns the node name of the given instance of the named class.
func (t *ResolvedTopology) NodeName(class string, instance int) (string, error) {
	node, err := t.Instance(class, instance)
	if err != nil {
		return "", err
	}
	return node.Name, nil
}

// Hostname returns the hostname of the given instance of the named class. A
// non-empty network scopes the lookup to that network, appending the
// interface's configured hostname suffix.
func (t *ResolvedTopology) Hostname(class string, instance int, network string) (string, error) {
	node, err := t.Instance(class, instance)
	if err != nil {
		return "", err
	}
	if network == "" {
		return node.Hostname, nil
	}
	iface, err := t.interfaceOn(node, class, network)
	if err != nil {
		return "", err
	}
	suffix := ""
	for _, addr := range iface.Addresses {
		if addr.Family == FamilyIPv4 {
			suffix = addr.HostnameSuffix
			break
		}
	}
	return node.Hostname + suffix, nil
}

// NodeAddress returns the resolved address of the given instance on the
// named network for the given family. Dynamically addressed interfaces
// return an empty string: the address is the DHCP collaborator's to assign
// at deploy time.
func (t *ResolvedTopology) NodeAddress(class string, instance int, network string, family AddressFamily) (string, error) {
	node, err := t.Instance(class, instance)
	if err != nil {
		return "", err
	}
	iface, err := t.interfaceOn(node, class, network)
	if err != nil {
		return "", err
	}
	for _, addr := range iface.Addresses {
		if addr.Family == family {
			return addr.Address, nil
		}
	}
	return "", nil
}

// HostBlade returns the blade placement of the given instance.
func (t *ResolvedTopology) HostBlade(class string, instance int) (BladePlacement, error) {
	node, err := t.Instance(class, instance)
	if err != nil {
		return BladePlacement{}, err
	}
	return node.Placement, nil
}

// NodeNetworks returns the names of the networks connected to instances of
// the named class, in lexical interface-name order.
func (t *ResolvedTopology) NodeNetworks(class string) ([]string, error) {
	nclass, err := t.class(class)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, ifaceName := range sortedKeys(nclass.NetworkInterfaces) {
		names = append(names, nclass.NetworkInterfaces[ifaceName].ClusterNetwork)
	}
	return names, nil
}

// Instance returns the given instance of the named class.
func (t *ResolvedTopology) Instance(class string, instance int) (*NodeInstance, error) {
	nclass, err := t.class(class)
	if err != nil {
		return nil, err
	}
	if instance < 0 || instance >= nclass.NodeCount {
		return nil, fmt.Errorf("instance number %d out of range for node class %q which has a count of %d",
			instance, class, nclass.NodeCount)
	}
	for _, node := range t.Instances {
		if node.Class == class && node.Index == instance {
			return node, nil
		}
	}
	return nil, fmt.Errorf("node class %q has no instance %d", class, instance)
}

func (t *ResolvedTopology) class(name string) (*NodeClass, error) {
	nclass, ok := t.Classes[name]
	if !ok {
		return nil, fmt.Errorf("cannot find node class %q: %w", name, ErrUndefinedReference)
	}
	return nclass, nil
}

// interfaceOn finds the single interface of a node attached to the named
// network. More than one interface on the same network is a configuration
// error; none is a lookup error.
func (t *ResolvedTopology) interfaceOn(node *NodeInstance, class, network string) (InterfaceAssignment, error) {
	var (
		found InterfaceAssignment
		count int
	)
	for _, ifaceName := range sortedKeys(node.Interfaces) {
		iface := node.Interfaces[ifaceName]
		if iface.Network == network {
			found = iface
			count++
		}
	}
	if count > 1 {
		return InterfaceAssignment{}, fmt.Errorf(
			"node class %q defines more than one network interface connected to network %q", class, network)
	}
	if count == 0 {
		return InterfaceAssignment{}, fmt.Errorf(
			"node class %q defines no network interface connected to network %q: %w",
			class, network, ErrUndefinedReference)
	}
	return found, nil
}
