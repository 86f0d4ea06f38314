package optimizer

import "brainfuck/internal/ir"

// DCE is pass 7 (spec.md §4.2), the last pass: it benefits from the
// zero-cell knowledge the earlier passes expose. Three rules apply
// repeatedly to a fixpoint within the pass:
//
//   - a Loop immediately following a node known to leave cell[ptr] == 0
//     (Set(0,0), another Loop, a Scan, or the very start of the program,
//     whose tape starts zeroed) can never run and is dropped — this
//     subsumes the "two consecutive Loops" case the spec calls out
//     separately, since a Loop's own postcondition is cell[ptr] == 0;
//   - a Set(o, v) immediately followed by another Set(o, v') at the same
//     offset makes the first write dead (nothing read the cell between
//     them) and is dropped.
func DCE(nodes []ir.Node) []ir.Node {
	return dce(nodes, true)
}

func dce(nodes []ir.Node, atProgramStart bool) []ir.Node {
	cur := nodes
	for {
		next, changed := dcePass(cur, atProgramStart)
		cur = next
		if !changed {
			break
		}
	}
	for i := range cur {
		if cur[i].Kind == ir.Loop {
			cur[i].Body = dce(cur[i].Body, false)
		}
	}
	return cur
}

func dcePass(nodes []ir.Node, atProgramStart bool) ([]ir.Node, bool) {
	out := make([]ir.Node, 0, len(nodes))
	changed := false
	zeroKnown := atProgramStart

	for _, n := range nodes {
		if n.Kind == ir.Loop && zeroKnown {
			changed = true
			continue // dead: cell[ptr] is already 0, loop never runs
		}
		if n.Kind == ir.Set && len(out) > 0 &&
			out[len(out)-1].Kind == ir.Set && out[len(out)-1].Offset == n.Offset {
			out[len(out)-1] = n
			changed = true
			zeroKnown = ir.IsZeroingNode(n)
			continue
		}
		out = append(out, n)
		zeroKnown = ir.IsZeroingNode(n)
	}
	return out, changed
}
