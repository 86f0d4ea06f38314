package optimizer

import "brainfuck/internal/ir"

// ClearLoop is pass 2 (spec.md §4.2): a Loop whose body is exactly one
// ValAdd(0, ±1) zeroes the current cell unconditionally and is replaced
// by Set(0, 0). Applied bottom-up, so an inner loop is considered (and
// possibly already replaced) before its enclosing loop is examined.
func ClearLoop(nodes []ir.Node) []ir.Node {
	out := make([]ir.Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Kind == ir.Loop {
			n.Body = ClearLoop(n.Body)
			if isClearLoopBody(n.Body) {
				out = append(out, ir.NewSet(0, 0))
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

func isClearLoopBody(body []ir.Node) bool {
	if len(body) != 1 {
		return false
	}
	n := body[0]
	return n.Kind == ir.ValAdd && n.Offset == 0 && (n.Delta == 1 || n.Delta == -1)
}
