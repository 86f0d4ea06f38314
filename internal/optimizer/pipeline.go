// Package optimizer rewrites the parser's IR tree through the fixed,
// ordered pipeline of passes described in spec.md §4.2. Every pass is a
// pure tree-to-tree function — nothing mutates a tree in place across
// passes, mirroring the teacher's habit (see internal/jit's
// Profiler/Compiler split) of keeping each transformation stage as its
// own small, independently named unit bolted onto a shared contract;
// here the contract is []ir.Node in, []ir.Node out, instead of a shared
// VM struct.
package optimizer

import "brainfuck/internal/ir"

// Optimize runs the seven passes once, in the load-bearing order spec.md
// §4.2 mandates: clear/move/scan recognition must precede offset
// optimization (their pattern shapes depend on un-rewritten offsets);
// dead code elimination runs last because it benefits from the
// zero-cell knowledge the earlier passes produce.
func Optimize(nodes []ir.Node) []ir.Node {
	nodes = RunLengthFold(nodes)
	nodes = ClearLoop(nodes)
	nodes = MoveMultiplyLoop(nodes)
	nodes = ScanLoop(nodes)
	nodes = LazyPointer(nodes)
	nodes = Bulk(nodes)
	nodes = DCE(nodes)
	return nodes
}
