// Package interpreter is the direct-execution back-end (spec.md §4.3):
// it flattens the optimized IR tree into a linear instruction vector
// with resolved jump targets, then runs a single fetch-decode-execute
// loop over that vector, the data pointer, and the tape.
package interpreter

import (
	"brainfuck/internal/bytecode"
	"brainfuck/internal/ir"
)

// Flatten walks the tree once, emitting one Instr per node and, for each
// Loop, a bracketing OpJumpIfZero/OpJumpIfNonZero pair. Jump targets are
// resolved immediately: each Loop's JumpIfZero index is held on the
// (implicit, call-stack-based) work stack until its matching
// JumpIfNonZero is emitted, at which point both are patched in one step.
func Flatten(nodes []ir.Node) *bytecode.Chunk {
	chunk := bytecode.NewChunk()
	emit(chunk, nodes)
	return chunk
}

func emit(chunk *bytecode.Chunk, nodes []ir.Node) {
	for _, n := range nodes {
		switch n.Kind {
		case ir.PtrAdd:
			chunk.Write(bytecode.Instr{Op: bytecode.OpPtrAdd, Delta: n.Delta})
		case ir.ValAdd:
			chunk.Write(bytecode.Instr{Op: bytecode.OpValAdd, Offset: n.Offset, Delta: n.Delta})
		case ir.Set:
			chunk.Write(bytecode.Instr{Op: bytecode.OpSet, Offset: n.Offset, Value: n.Value})
		case ir.MulAdd:
			chunk.Write(bytecode.Instr{Op: bytecode.OpMulAdd, Offset: n.Offset, Factor: n.Factor})
		case ir.BulkAdd:
			chunk.Write(bytecode.Instr{Op: bytecode.OpBulkAdd, Pairs: n.Pairs})
		case ir.BulkSet:
			chunk.Write(bytecode.Instr{Op: bytecode.OpBulkSet, Pairs: n.Pairs})
		case ir.ScanLeft:
			chunk.Write(bytecode.Instr{Op: bytecode.OpScanLeft, Stride: n.Stride})
		case ir.ScanRight:
			chunk.Write(bytecode.Instr{Op: bytecode.OpScanRight, Stride: n.Stride})
		case ir.Input:
			chunk.Write(bytecode.Instr{Op: bytecode.OpInput, Offset: n.Offset})
		case ir.Output:
			chunk.Write(bytecode.Instr{Op: bytecode.OpOutput, Offset: n.Offset})
		case ir.Loop:
			jz := chunk.Write(bytecode.Instr{Op: bytecode.OpJumpIfZero})
			emit(chunk, n.Body)
			jnz := chunk.Write(bytecode.Instr{Op: bytecode.OpJumpIfNonZero, Target: jz + 1})
			chunk.Code[jz].Target = jnz + 1
		}
	}
}
