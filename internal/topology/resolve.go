package topology

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/imamik/topoplan/internal/configtree"
	"github.com/imamik/topoplan/internal/util/async"
)

// Resolver turns a layered cluster configuration into a ResolvedTopology.
// The zero value is not usable; construct with New.
type Resolver struct {
	log logr.Logger
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithLogger routes resolution progress logging to the given logger. The
// default discards everything, keeping the engine a pure computation.
func WithLogger(log logr.Logger) Option {
	return func(r *Resolver) { r.log = log }
}

// New creates a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{log: logr.Discard()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve merges the base configuration with the overlays, left to right,
// and resolves the result into a complete deployment plan. Resolution is
// fail-fast: any configuration defect aborts the pipeline and no partial
// topology is ever returned.
//
// Per-class work (instantiation, placement, addressing) runs in parallel
// across classes; classes share only the read-only networks table, and a join
// barrier precedes assembly.
func (r *Resolver) Resolve(ctx context.Context, base configtree.Tree, overlays ...configtree.Tree) (*ResolvedTopology, error) {
	merged := configtree.MergeAll(base, overlays...)

	rawClasses, ok := merged["node_classes"].(configtree.Tree)
	if !ok {
		return nil, fmt.Errorf("configuration has no node_classes section")
	}
	rawNetworks, _ := merged["networks"].(configtree.Tree)

	networks, err := ResolveNetworks(rawNetworks)
	if err != nil {
		return nil, err
	}
	r.log.V(1).Info("resolved networks", "count", len(networks))

	classes, err := ResolveClasses(rawClasses)
	if err != nil {
		return nil, err
	}
	r.log.V(1).Info("resolved node classes", "count", len(classes))

	concrete := concreteClasses(classes)
	if err := validateClassReferences(concrete, networks); err != nil {
		return nil, err
	}

	// Fan out per-class resolution. Each task owns its slot in perClass;
	// nothing else is written concurrently.
	perClass := make(map[string][]*NodeInstance, len(concrete))
	macs := newMACPlanner()
	tasks := make([]async.Task, 0, len(concrete))
	for _, name := range sortedKeys(concrete) {
		class := concrete[name]
		instances, err := planInstances(class)
		if err != nil {
			return nil, err
		}
		perClass[name] = instances
		tasks = append(tasks, async.Task{
			Name: fmt.Sprintf("node class %q", name),
			Func: func(context.Context) error {
				if err := placeInstances(class, instances); err != nil {
					return err
				}
				for _, instance := range instances {
					if err := assignAddresses(class, networks, instance, macs); err != nil {
						return err
					}
				}
				return nil
			},
		})
	}
	if err := async.RunParallel(ctx, tasks); err != nil {
		return nil, err
	}

	return assemble(concrete, networks, perClass, r.log)
}

// concreteClasses filters the resolved class table down to the instantiation
// set: everything that is not a pure base class.
func concreteClasses(classes map[string]*NodeClass) map[string]*NodeClass {
	concrete := make(map[string]*NodeClass, len(classes))
	for name, class := range classes {
		if class.PureBaseClass {
			continue
		}
		concrete[name] = class
	}
	return concrete
}

// validateClassReferences checks that every interface of every concrete class
// names a resolved network. Catching this before instantiation keeps the
// failure tied to the class definition rather than an instance.
func validateClassReferences(classes map[string]*NodeClass, networks map[string]*Network) error {
	for _, name := range sortedKeys(classes) {
		class := classes[name]
		for _, ifaceName := range sortedKeys(class.NetworkInterfaces) {
			iface := class.NetworkInterfaces[ifaceName]
			if iface.ClusterNetwork == "" {
				return fmt.Errorf("node class %q interface %q: %w (no cluster_network configured)",
					name, ifaceName, ErrUndefinedReference)
			}
			if _, ok := networks[iface.ClusterNetwork]; !ok {
				return fmt.Errorf("node class %q interface %q: %w (network %q)",
					name, ifaceName, ErrUndefinedReference, iface.ClusterNetwork)
			}
		}
	}
	return nil
}
