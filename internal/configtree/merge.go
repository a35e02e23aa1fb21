package configtree

// Merge deep-merges overlay onto base and returns the result as a new Tree.
// Neither input is modified.
//
// The rules, applied per overlay key:
//
//   - an overlay subtree carrying "delete: true" removes the key from the
//     result entirely, regardless of any sibling fields in that subtree
//   - when both sides hold a subtree, the subtrees are merged recursively
//   - otherwise the overlay value replaces the base value outright; scalars
//     and sequences are never merged element-wise
//
// Keys present only in base are copied unchanged. A tombstone on the root of
// the overlay itself deletes nothing: tombstones are evaluated one level up,
// by the call that owns the key the tombstoned subtree sits under.
func Merge(base, overlay Tree) Tree {
	out := Clone(base)
	if out == nil {
		out = Tree{}
	}
	for key, value := range overlay {
		if Tombstoned(value) {
			delete(out, key)
			continue
		}
		if baseSub, ok := out[key].(Tree); ok {
			if overlaySub, ok := value.(Tree); ok {
				out[key] = Merge(baseSub, overlaySub)
				continue
			}
		}
		out[key] = cloneValue(value)
	}
	return out
}

// MergeAll folds the overlays onto base left to right, so later overlays win
// over earlier ones. With no overlays the result is a copy of base.
func MergeAll(base Tree, overlays ...Tree) Tree {
	out := Clone(base)
	for _, overlay := range overlays {
		out = Merge(out, overlay)
	}
	return out
}
