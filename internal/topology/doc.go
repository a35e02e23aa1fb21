// Package topology resolves a layered, inheritance-based description of a
// virtual cluster into a concrete deployment plan.
//
// # Pipeline
//
// Resolution is a one-shot, single-snapshot computation run by [Resolver.Resolve]:
//
//  1. The base configuration and its overlays are folded together by the
//     merge engine in package configtree.
//  2. Node class inheritance (parent_class chains) is flattened, with cycle
//     detection; pure base classes survive as lookup entries but are never
//     instantiated.
//  3. The networks table is resolved into typed [Network] values with device
//     name defaulting and tunnel-id uniqueness checks.
//  4. Each concrete class expands into named [NodeInstance] values, which are
//     placed onto host blades first-fit by capacity and given per-interface
//     MAC and L3 address assignments.
//  5. The assembler composes everything into an immutable [ResolvedTopology]
//     after cross-entity invariant checks.
//
// Failures are configuration defects: the pipeline fails fast with an error
// wrapping one of the package sentinels and naming the offending class,
// network, or instance. The only designed fallback is reserved-pool
// exhaustion, which silently degrades to dynamic addressing.
//
// Downstream provider and platform collaborators consume the resolved plan;
// this package never provisions anything.
package topology
