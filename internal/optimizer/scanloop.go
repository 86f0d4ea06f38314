package optimizer

import "brainfuck/internal/ir"

// ScanLoop is pass 4 (spec.md §4.2): a loop whose body is exactly one
// PtrAdd(s), s != 0, advances the pointer at a fixed stride until it
// finds a zero cell. Replaced by ScanLeft/ScanRight accordingly.
func ScanLoop(nodes []ir.Node) []ir.Node {
	out := make([]ir.Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Kind == ir.Loop {
			n.Body = ScanLoop(n.Body)
			if len(n.Body) == 1 && n.Body[0].Kind == ir.PtrAdd && n.Body[0].Delta != 0 {
				s := n.Body[0].Delta
				if s < 0 {
					out = append(out, ir.NewScanLeft(-s))
				} else {
					out = append(out, ir.NewScanRight(s))
				}
				continue
			}
		}
		out = append(out, n)
	}
	return out
}
