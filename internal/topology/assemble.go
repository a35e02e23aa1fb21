package topology

import (
	"fmt"

	"github.com/go-logr/logr"
)

// assemble composes the resolved networks and per-class instances into the
// final ResolvedTopology, validating the cross-entity invariants the
// individual engines cannot see on their own: global node name uniqueness,
// placement consistency with the owning class, and DHCP server selectors
// that point at blade classes actually in use.
func assemble(classes map[string]*NodeClass, networks map[string]*Network, perClass map[string][]*NodeInstance, log logr.Logger) (*ResolvedTopology, error) {
	var instances []*NodeInstance
	seen := map[string]string{}
	for _, className := range sortedKeys(classes) {
		for _, instance := range perClass[className] {
			if owner, dup := seen[instance.Name]; dup {
				return nil, fmt.Errorf("node class %q: %w (%q also named by class %q)",
					className, ErrDuplicateNodeName, instance.Name, owner)
			}
			seen[instance.Name] = className
			if want := classes[className].HostBlade.BladeClass; instance.Placement.BladeClass != want {
				return nil, fmt.Errorf("node %q: placed on blade class %q but class %q declares %q",
					instance.Name, instance.Placement.BladeClass, className, want)
			}
			instances = append(instances, instance)
		}
	}

	if err := validateDHCPSelectors(networks, classes); err != nil {
		return nil, err
	}

	log.V(1).Info("assembled topology",
		"networks", len(networks), "classes", len(classes), "instances", len(instances))
	return &ResolvedTopology{
		Networks:  networks,
		Classes:   classes,
		Instances: instances,
	}, nil
}

// validateDHCPSelectors checks that every enabled DHCP block selects a blade
// class some concrete node class is hosted on. The instance index is not
// bounded here: blade pools are sized by the provider layer, which may hold
// more blades than placement happened to fill.
func validateDHCPSelectors(networks map[string]*Network, classes map[string]*NodeClass) error {
	bladeClasses := map[string]bool{}
	for _, class := range classes {
		if class.HostBlade.BladeClass != "" {
			bladeClasses[class.HostBlade.BladeClass] = true
		}
	}
	for _, netName := range sortedKeys(networks) {
		network := networks[netName]
		for _, blockName := range sortedKeys(network.L3Configs) {
			l3 := network.L3Configs[blockName]
			if l3.DHCP == nil || !l3.DHCP.Enabled {
				continue
			}
			selector := l3.DHCP.BladeHost
			if selector.BladeClass == "" {
				return fmt.Errorf("network %q: DHCP block has no blade_host blade_class", netName)
			}
			if !bladeClasses[selector.BladeClass] {
				return fmt.Errorf("network %q: %w (DHCP blade class %q hosts no node class)",
					netName, ErrUndefinedReference, selector.BladeClass)
			}
			if selector.BladeInstance < 0 {
				return fmt.Errorf("network %q: DHCP blade_instance %d is negative",
					netName, selector.BladeInstance)
			}
		}
	}
	return nil
}
