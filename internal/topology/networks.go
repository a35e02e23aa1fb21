package topology

import (
	"fmt"

	"github.com/imamik/topoplan/internal/configtree"
	"github.com/imamik/topoplan/internal/util/naming"
	"github.com/imamik/topoplan/internal/util/netutil"
)

// ResolveNetworks flattens the merged networks table into typed Network
// values. Tombstoned entries are dropped, device names are defaulted, and
// uniqueness and well-formedness constraints are checked: every tunnel id is
// unique across the resolved set and every configured CIDR parses.
func ResolveNetworks(networks configtree.Tree) (map[string]*Network, error) {
	resolved := make(map[string]*Network, len(networks))
	tunnelIDs := map[int]string{}
	for _, name := range sortedKeys(networks) {
		entry, ok := networks[name].(configtree.Tree)
		if !ok {
			return nil, fmt.Errorf("network %q: definition is not a mapping", name)
		}
		if configtree.Tombstoned(entry) {
			continue
		}
		var network Network
		if err := configtree.Decode(entry, &network); err != nil {
			return nil, fmt.Errorf("network %q: %w", name, err)
		}
		if network.Name == "" {
			network.Name = name
		}
		applyDeviceDefaults(&network)
		if err := validateNetwork(name, &network); err != nil {
			return nil, err
		}
		if owner, taken := tunnelIDs[network.TunnelID]; taken {
			return nil, fmt.Errorf("network %q: %w (%d also used by %q)",
				name, ErrDuplicateTunnelID, network.TunnelID, owner)
		}
		tunnelIDs[network.TunnelID] = name
		resolved[name] = &network
	}
	return resolved, nil
}

// applyDeviceDefaults fills in the conventional device names: the tunnel
// device defaults to the network name and the bridge to "br-<tunnel>".
func applyDeviceDefaults(network *Network) {
	if network.Devices.Tunnel == "" {
		network.Devices.Tunnel = naming.Tunnel(network.Name)
	}
	if network.Devices.BridgeName == "" {
		network.Devices.BridgeName = naming.Bridge(network.Devices.Tunnel)
	}
}

func validateNetwork(name string, network *Network) error {
	if network.BladeInterconnect == "" {
		return fmt.Errorf("network %q: %w (no blade_interconnect configured)", name, ErrUndefinedReference)
	}
	families := map[AddressFamily]string{}
	for _, blockName := range sortedKeys(network.L3Configs) {
		l3 := network.L3Configs[blockName]
		if !l3.Family.IsValid() {
			return fmt.Errorf("network %q: l3_config %q has unknown address family %q",
				name, blockName, l3.Family)
		}
		if prev, dup := families[l3.Family]; dup {
			return fmt.Errorf("network %q: more than one %s l3_config block (%q and %q)",
				name, l3.Family, prev, blockName)
		}
		families[l3.Family] = blockName
		if l3.CIDR == "" {
			continue
		}
		if err := netutil.ValidateCIDR(l3.CIDR); err != nil {
			return fmt.Errorf("network %q: l3_config %q has %w", name, blockName, err)
		}
		if l3.Gateway != "" {
			in, err := netutil.Contains(l3.CIDR, l3.Gateway)
			if err != nil || !in {
				return fmt.Errorf("network %q: gateway %q: %w (outside %s)",
					name, l3.Gateway, ErrAddressOutOfRange, l3.CIDR)
			}
		}
	}
	return nil
}

// findL3Config returns the network's L3 configuration for the given family,
// or false when the family is not configured.
func findL3Config(network *Network, family AddressFamily) (L3Config, bool) {
	for _, l3 := range network.L3Configs {
		if l3.Family == family {
			return l3, true
		}
	}
	return L3Config{}, false
}
