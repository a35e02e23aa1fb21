package topology

import "fmt"

// placeInstances assigns every instance of a class to a blade instance of the
// class's host blade class. Placement is first-fit in creation order: blade
// instance k holds instances [k*capacity, (k+1)*capacity). Blade pools are
// sized by the caller, so the engine allocates blade indices without bound;
// the only failure is a degenerate non-positive capacity.
func placeInstances(class *NodeClass, instances []*NodeInstance) error {
	if len(instances) == 0 {
		return nil
	}
	if class.HostBlade.BladeClass == "" {
		return fmt.Errorf("node class %q: %w (no host_blade blade_class configured)",
			class.Name, ErrUndefinedReference)
	}
	capacity := class.HostBlade.Capacity()
	if capacity <= 0 {
		return fmt.Errorf("node class %q: %w (instance_capacity %d)",
			class.Name, ErrCapacityExceeded, capacity)
	}
	for _, instance := range instances {
		instance.Placement = BladePlacement{
			BladeClass:    class.HostBlade.BladeClass,
			BladeInstance: instance.Index / capacity,
		}
	}
	return nil
}
