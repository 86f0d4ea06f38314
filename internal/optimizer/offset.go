package optimizer

import "brainfuck/internal/ir"

// LazyPointer is pass 5 (spec.md §4.2): within each straight-line run, a
// running "pending offset" accumulates every PtrAdd (which is elided),
// and is folded into every ValAdd's offset. The run ends at a Loop,
// Input, Output, ScanLeft/ScanRight, MulAdd, or Set — a node that acts
// at the current pointer and so must see it updated first — at which
// point the accumulated offset is flushed as a single trailing PtrAdd
// emitted just before that node, or at the end of the sequence.
func LazyPointer(nodes []ir.Node) []ir.Node {
	var out []ir.Node
	pending := 0

	flush := func() {
		if pending != 0 {
			out = append(out, ir.NewPtrAdd(pending))
			pending = 0
		}
	}

	for _, n := range nodes {
		switch n.Kind {
		case ir.PtrAdd:
			pending += n.Delta
		case ir.ValAdd:
			out = append(out, ir.NewValAdd(n.Offset+pending, n.Delta))
		case ir.Loop:
			flush()
			n.Body = LazyPointer(n.Body)
			out = append(out, n)
		default:
			// Input, Output, Set, MulAdd, ScanLeft, ScanRight: boundary
			// nodes that act at the pointer position. They keep their own
			// (still-zero) offset and instead see the flushed pointer move.
			flush()
			out = append(out, n)
		}
	}
	flush()
	return out
}
