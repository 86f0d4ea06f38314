package optimizer

import (
	"brainfuck/internal/ir"

	"golang.org/x/exp/slices"
)

// MoveMultiplyLoop is pass 3 (spec.md §4.2): a loop whose body, after
// run-length folding, contains only ValAdd/PtrAdd with zero net pointer
// motion and a net −1 delta at offset 0 is a linear transfer of
// cell[ptr] into the other cells it touches, scaled by however many
// times each is added per iteration. It's replaced by one MulAdd per
// touched offset (ascending, for determinism) followed by Set(0, 0).
// Recognition requires the control cell to decrement by exactly 1 per
// iteration — the case spec.md §9 notes guarantees termination and a
// clean multiplication reading; loops that decrement by 2, 3, ... are
// deliberately left unoptimized.
func MoveMultiplyLoop(nodes []ir.Node) []ir.Node {
	out := make([]ir.Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Kind == ir.Loop {
			n.Body = MoveMultiplyLoop(n.Body)
			if replacement, ok := tryMultiplyLoop(n.Body); ok {
				out = append(out, replacement...)
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

func tryMultiplyLoop(body []ir.Node) ([]ir.Node, bool) {
	for _, n := range body {
		if n.Kind != ir.ValAdd && n.Kind != ir.PtrAdd {
			return nil, false
		}
	}

	net := map[int]int{}
	ptr := 0
	for _, n := range body {
		switch n.Kind {
		case ir.PtrAdd:
			ptr += n.Delta
		case ir.ValAdd:
			net[ptr+n.Offset] += n.Delta
		}
	}
	if ptr != 0 {
		return nil, false
	}
	if wrapSigned(net[0]) != -1 {
		return nil, false
	}

	offsets := make([]int, 0, len(net))
	for off := range net {
		if off == 0 {
			continue
		}
		if wrapByte(net[off]) == 0 {
			continue
		}
		offsets = append(offsets, off)
	}
	slices.Sort(offsets)

	out := make([]ir.Node, 0, len(offsets)+1)
	for _, off := range offsets {
		out = append(out, ir.NewMulAdd(off, net[off]))
	}
	out = append(out, ir.NewSet(0, 0))
	return out, true
}

func wrapByte(v int) int {
	return ((v % 256) + 256) % 256
}

// wrapSigned reduces v into Brainfuck's mod-256 byte arithmetic and
// reports it in [-128, 127], so "net delta is exactly −1" can be
// compared literally regardless of how many times ± accumulated.
func wrapSigned(v int) int {
	v = wrapByte(v)
	if v > 127 {
		v -= 256
	}
	return v
}
