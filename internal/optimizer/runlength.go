package optimizer

import "brainfuck/internal/ir"

// RunLengthFold is pass 1 (spec.md §4.2): merge adjacent nodes of the
// same kind whose combined effect fits in a single node. It recurses
// into every Loop body before folding the body's own siblings, so a loop
// whose body collapses to something foldable is itself seen folded by
// later passes.
func RunLengthFold(nodes []ir.Node) []ir.Node {
	expanded := make([]ir.Node, len(nodes))
	for i, n := range nodes {
		if n.Kind == ir.Loop {
			n.Body = RunLengthFold(n.Body)
		}
		expanded[i] = n
	}
	return foldAdjacent(expanded)
}

// foldAdjacent merges immediate neighbors per the pass 1 rules: it only
// ever looks at a node and its current predecessor. The bulk pass (pass
// 6, bulk.go's normalizeByOffset) needs a different shape — absorbing
// ValAdd/Set across a whole sub-run by offset, not just adjacent pairs —
// so it does not call this; it reimplements the same absorb/shadow rule
// against the wider window its grouping requires.
func foldAdjacent(nodes []ir.Node) []ir.Node {
	var out []ir.Node
	for _, n := range nodes {
		if len(out) == 0 {
			out = append(out, n)
			continue
		}
		last := out[len(out)-1]
		if merged, drop, ok := merge(last, n); ok {
			if drop {
				out = out[:len(out)-1]
			} else {
				out[len(out)-1] = merged
			}
			continue
		}
		out = append(out, n)
	}
	return out
}

// merge reports whether b can be absorbed into a, returning the result
// and whether the pair should collapse to nothing at all (drop).
func merge(a, b ir.Node) (result ir.Node, drop bool, ok bool) {
	switch {
	case a.Kind == ir.PtrAdd && b.Kind == ir.PtrAdd:
		sum := a.Delta + b.Delta
		if sum == 0 {
			return ir.Node{}, true, true
		}
		return ir.NewPtrAdd(sum), false, true

	case a.Kind == ir.ValAdd && b.Kind == ir.ValAdd && a.Offset == b.Offset:
		merged := ir.NewValAdd(a.Offset, a.Delta+b.Delta)
		if merged.Delta == 0 {
			return ir.Node{}, true, true
		}
		return merged, false, true

	case a.Kind == ir.Set && b.Kind == ir.ValAdd && a.Offset == b.Offset:
		// Set(o, v) followed by ValAdd(o, d) -> Set(o, (v+d) mod 256).
		return ir.NewSet(a.Offset, a.Value+b.Delta), false, true

	case a.Kind == ir.ValAdd && b.Kind == ir.Set && a.Offset == b.Offset:
		// A ValAdd shadowed by a following Set at the same offset.
		return ir.NewSet(b.Offset, b.Value), false, true

	default:
		return ir.Node{}, false, false
	}
}
