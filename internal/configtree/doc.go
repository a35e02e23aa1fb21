// Package configtree implements the raw configuration model used by the
// topology resolver.
//
// A [Tree] is an untyped mapping parsed from YAML. Higher layers customize a
// base tree by merging overlay trees onto it with [Merge]; an overlay entry
// carrying a "delete: true" tombstone removes the corresponding base entry
// instead of combining with it. Typed decoding of resolved subtrees is done
// with [Decode] once all overlays have been applied.
package configtree
