package interpreter

import (
	"bufio"
	"io"

	"brainfuck/internal/bytecode"
	"brainfuck/internal/errors"
	"brainfuck/internal/ir"
)

// Stats reports diagnostics about a completed run, surfaced by the CLIs'
// -stats flag (SPEC_FULL.md's ambient stats/diagnostics surface) — not
// part of the observable I/O contract.
type Stats struct {
	InstrExecuted uint64
	InstrCount    int
	HighWaterMark int // highest value the data pointer reached; cells reached only through an offset are not counted
}

// VM owns exactly one tape, one instruction pointer, and one data
// pointer — the sole mutable state of a single execution (spec.md §5).
type VM struct {
	tape [ir.TapeSize]byte
	ptr  int
	ip   int
}

// Run executes chunk to completion, reading program input from in and
// writing program output to out. Output is buffered: it is written out
// whenever the buffer fills and flushed on normal termination (spec.md §4.3).
func Run(chunk *bytecode.Chunk, in io.Reader, out io.Writer) (Stats, error) {
	vm := &VM{}
	return vm.run(chunk, in, out)
}

func (vm *VM) run(chunk *bytecode.Chunk, in io.Reader, out io.Writer) (Stats, error) {
	reader := bufio.NewReader(in)
	writer := bufio.NewWriter(out)

	code := chunk.Code
	var stats Stats
	stats.InstrCount = len(code)

	for vm.ip < len(code) {
		instr := &code[vm.ip]
		stats.InstrExecuted++

		switch instr.Op {
		case bytecode.OpPtrAdd:
			vm.ptr += instr.Delta
			vm.ip++

		case bytecode.OpValAdd:
			idx := vm.ptr + instr.Offset
			vm.tape[idx] = byte(int(vm.tape[idx]) + instr.Delta)
			vm.ip++

		case bytecode.OpSet:
			vm.tape[vm.ptr+instr.Offset] = byte(instr.Value)
			vm.ip++

		case bytecode.OpMulAdd:
			idx := vm.ptr + instr.Offset
			vm.tape[idx] = byte(int(vm.tape[idx]) + int(vm.tape[vm.ptr])*instr.Factor)
			vm.ip++

		case bytecode.OpBulkAdd:
			for _, p := range instr.Pairs {
				idx := vm.ptr + p.Offset
				vm.tape[idx] = byte(int(vm.tape[idx]) + p.Value)
			}
			vm.ip++

		case bytecode.OpBulkSet:
			for _, p := range instr.Pairs {
				vm.tape[vm.ptr+p.Offset] = byte(p.Value)
			}
			vm.ip++

		case bytecode.OpScanLeft:
			for vm.tape[vm.ptr] != 0 {
				vm.ptr -= instr.Stride
			}
			vm.ip++

		case bytecode.OpScanRight:
			for vm.tape[vm.ptr] != 0 {
				vm.ptr += instr.Stride
			}
			vm.ip++

		case bytecode.OpInput:
			b, err := reader.ReadByte()
			if err == io.EOF {
				vm.tape[vm.ptr+instr.Offset] = 0
			} else if err != nil {
				return stats, errors.NewIoError("reading program input", err)
			} else {
				vm.tape[vm.ptr+instr.Offset] = b
			}
			vm.ip++

		case bytecode.OpOutput:
			if err := writer.WriteByte(vm.tape[vm.ptr+instr.Offset]); err != nil {
				return stats, errors.NewIoError("writing program output", err)
			}
			vm.ip++

		case bytecode.OpJumpIfZero:
			if vm.tape[vm.ptr] == 0 {
				vm.ip = instr.Target
			} else {
				vm.ip++
			}

		case bytecode.OpJumpIfNonZero:
			if vm.tape[vm.ptr] != 0 {
				vm.ip = instr.Target
			} else {
				vm.ip++
			}
		}

		if vm.ptr > stats.HighWaterMark {
			stats.HighWaterMark = vm.ptr
		}
	}

	if err := writer.Flush(); err != nil {
		return stats, errors.NewIoError("flushing program output", err)
	}
	return stats, nil
}
