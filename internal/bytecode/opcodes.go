// Package bytecode is the interpreter back-end's flat instruction
// format: the linear vector the optimized IR tree flattens into, with
// resolved jump indices bracketing each former Loop (spec.md §4.3).
package bytecode

// OpCode is a closed byte-sized tag, one per IR node kind plus the two
// jump instructions the flattener introduces for Loop.
type OpCode byte

const (
	OpPtrAdd OpCode = iota
	OpValAdd
	OpSet
	OpMulAdd
	OpBulkAdd
	OpBulkSet
	OpScanLeft
	OpScanRight
	OpInput
	OpOutput
	OpJumpIfZero
	OpJumpIfNonZero
)
