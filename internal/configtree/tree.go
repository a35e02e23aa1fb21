package configtree

// Tree is a raw, untyped configuration mapping. Values are scalars, nested
// Trees, or sequences of either. A Tree carries no identity; it is pure value
// data owned transiently by the merge engine during a single merge call.
type Tree = map[string]any

// TombstoneKey is the reserved key that marks a subtree for deletion when it
// appears in an overlay, and marks a table entry as removed when it survives
// into a merged table (for example placeholder entries in base templates).
const TombstoneKey = "delete"

// Tombstoned reports whether v is a Tree flagged with a "delete: true"
// tombstone. Sibling fields next to the tombstone do not matter; the
// tombstone always wins.
func Tombstoned(v any) bool {
	t, ok := v.(Tree)
	if !ok {
		return false
	}
	flag, ok := t[TombstoneKey].(bool)
	return ok && flag
}

// Clone returns a deep copy of t. The copy shares no mutable state with the
// original, so callers may hand out merge results without aliasing worries.
func Clone(t Tree) Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for k, v := range t {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case Tree:
		return Clone(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}
