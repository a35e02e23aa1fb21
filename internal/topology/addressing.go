package topology

import (
	"fmt"

	"github.com/imamik/topoplan/internal/util/netutil"
)

// assignAddresses resolves every interface of a node instance: the network
// binding, the planned MAC address, and one address assignment per
// configured L3 family.
//
// Static and reserved interfaces consume the family's address pool
// positionally, one-to-one with instance creation order within the class. A
// reserved interface whose pool runs out falls back to dynamic addressing;
// that is designed behavior, not an error, because the DHCP collaborator can
// still serve the node. A static interface has no such fallback, so pool
// exhaustion there fails the resolution.
func assignAddresses(class *NodeClass, networks map[string]*Network, instance *NodeInstance, macs *macPlanner) error {
	if len(class.NetworkInterfaces) == 0 {
		return nil
	}
	instance.Interfaces = make(map[string]InterfaceAssignment, len(class.NetworkInterfaces))
	for _, ifaceName := range sortedKeys(class.NetworkInterfaces) {
		iface := class.NetworkInterfaces[ifaceName]
		network, ok := networks[iface.ClusterNetwork]
		if !ok {
			return fmt.Errorf("node class %q interface %q: %w (network %q)",
				class.Name, ifaceName, ErrUndefinedReference, iface.ClusterNetwork)
		}
		byFamily, err := addrInfoByFamily(class.Name, ifaceName, iface)
		if err != nil {
			return err
		}
		mac, err := macs.macFor(byFamily[FamilyLayer2], instance.Index)
		if err != nil {
			return err
		}
		assignment := InterfaceAssignment{
			Network:    iface.ClusterNetwork,
			MACAddress: mac,
		}
		for _, family := range []AddressFamily{FamilyIPv4, FamilyIPv6} {
			info, ok := byFamily[family]
			if !ok {
				continue
			}
			resolved, err := resolveAddrInfo(class.Name, ifaceName, network, family, info, instance.Index)
			if err != nil {
				return err
			}
			assignment.Addresses = append(assignment.Addresses, resolved)
		}
		instance.Interfaces[ifaceName] = assignment
	}
	return nil
}

// addrInfoByFamily indexes an interface's addr_info blocks by family,
// enforcing at most one block per family.
func addrInfoByFamily(className, ifaceName string, iface NetworkInterface) (map[AddressFamily]AddrInfo, error) {
	byFamily := make(map[AddressFamily]AddrInfo, len(iface.AddrInfo))
	for _, blockName := range sortedKeys(iface.AddrInfo) {
		info := iface.AddrInfo[blockName]
		if !info.Family.IsValid() {
			return nil, fmt.Errorf("node class %q interface %q: addr_info %q has unknown address family %q",
				className, ifaceName, blockName, info.Family)
		}
		if _, dup := byFamily[info.Family]; dup {
			return nil, fmt.Errorf("node class %q interface %q: more than one %s addr_info block",
				className, ifaceName, info.Family)
		}
		byFamily[info.Family] = info
	}
	return byFamily, nil
}

func resolveAddrInfo(className, ifaceName string, network *Network, family AddressFamily, info AddrInfo, index int) (AddressAssignment, error) {
	mode := info.Mode
	if mode == "" {
		mode = ModeDynamic
	}
	if !mode.IsValid() {
		return AddressAssignment{}, fmt.Errorf("node class %q interface %q: unknown addressing mode %q",
			className, ifaceName, info.Mode)
	}
	assignment := AddressAssignment{
		Family:         family,
		Mode:           mode,
		HostnameSuffix: info.HostnameSuffix,
	}
	if mode == ModeDynamic {
		return assignment, nil
	}
	if index >= len(info.Addresses) {
		if mode == ModeReserved {
			// Out of reserved addresses; the remaining instances get
			// dynamic leases instead.
			assignment.Mode = ModeDynamic
			return assignment, nil
		}
		return AddressAssignment{}, fmt.Errorf(
			"node class %q interface %q: %w (%d addresses for instance %d)",
			className, ifaceName, ErrAddressPoolExhausted, len(info.Addresses), index)
	}
	address := info.Addresses[index]
	if err := checkAddressInNetwork(network, family, address); err != nil {
		return AddressAssignment{}, fmt.Errorf("node class %q interface %q: %w",
			className, ifaceName, err)
	}
	assignment.Address = address
	return assignment, nil
}

// checkAddressInNetwork validates that a consumed pool address lies inside
// the network's CIDR for the given family. Networks without an L3 block or
// CIDR for the family carry no range to validate against.
func checkAddressInNetwork(network *Network, family AddressFamily, address string) error {
	l3, ok := findL3Config(network, family)
	if !ok || l3.CIDR == "" {
		return nil
	}
	in, err := netutil.Contains(l3.CIDR, address)
	if err != nil {
		return fmt.Errorf("address %q on network %q: %w (%v)",
			address, network.Name, ErrAddressOutOfRange, err)
	}
	if !in {
		return fmt.Errorf("address %q on network %q: %w (outside %s)",
			address, network.Name, ErrAddressOutOfRange, l3.CIDR)
	}
	return nil
}
