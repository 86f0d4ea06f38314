// Package transpiler is the source-to-source back-end (spec.md §4.4): it
// recursively emits a target-language program from the optimized IR
// tree. The target here is LLVM IR, built in memory with
// github.com/llir/llvm and printed as text — a statically-typed,
// imperative, machine-compilable format that satisfies §6's contract
// ("any well-formed program in the chosen target language that, when
// compiled and run, produces output byte-identical to the
// interpreter's"). Turning that text into a binary means invoking an
// external native compiler (llc/clang), which spec.md §1 names as an
// out-of-scope external collaborator.
package transpiler

import (
	"brainfuck/internal/ir"

	"github.com/google/uuid"
	lir "github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// emitter threads the handful of values every emitted statement needs:
// the tape global, the data-pointer slot, the libc declarations, and the
// basic block currently being appended to. One emitter serves one
// module; loops and scans grow the function's block list but never
// change which function is being built.
type emitter struct {
	fn      *lir.Func
	block   *lir.Block
	tape    *lir.Global
	ptrSlot *lir.InstAlloca
	putchar *lir.Func
	getchar *lir.Func
}

// Emit lowers an optimized IR tree into a self-contained LLVM IR module:
// a fixed, zero-initialized tape of wrapping 8-bit cells, a mutable
// data-pointer index, and a main entry that performs the emitted
// operations against stdin/stdout via libc, flushing before it returns
// (spec.md §4.4).
func Emit(nodes []ir.Node) string {
	m := lir.NewModule()

	// A per-module symbol suffix, so more than one transpiled module can
	// be linked into a single binary without colliding on "tape".
	suffix := uuid.New().String()[:8]

	tapeType := types.NewArray(uint64(ir.TapeSize), types.I8)
	tape := m.NewGlobalDef("tape."+suffix, constant.NewZeroInitializer(tapeType))

	i8ptr := types.NewPointer(types.I8)
	getchar := m.NewFunc("getchar", types.I32)
	putchar := m.NewFunc("putchar", types.I32, lir.NewParam("c", types.I32))
	fflush := m.NewFunc("fflush", types.I32, lir.NewParam("stream", i8ptr))

	main := m.NewFunc("main", types.I32)
	entry := main.NewBlock("")

	ptrSlot := entry.NewAlloca(types.I64)
	entry.NewStore(constant.NewInt(types.I64, 0), ptrSlot)

	e := &emitter{
		fn:      main,
		block:   entry,
		tape:    tape,
		ptrSlot: ptrSlot,
		putchar: putchar,
		getchar: getchar,
	}
	e.emitSeq(nodes)

	e.block.NewCall(fflush, constant.NewNull(i8ptr))
	e.block.NewRet(constant.NewInt(types.I32, 0))

	return m.String()
}

func (e *emitter) emitSeq(nodes []ir.Node) {
	for _, n := range nodes {
		e.emitNode(n)
	}
}

func (e *emitter) emitNode(n ir.Node) {
	switch n.Kind {
	case ir.PtrAdd:
		e.storePtr(e.block.NewAdd(e.loadPtr(), constant.NewInt(types.I64, int64(n.Delta))))

	case ir.ValAdd:
		e.addCell(n.Offset, n.Delta)

	case ir.Set:
		e.storeCell(n.Offset, constant.NewInt(types.I8, int64(n.Value)))

	case ir.MulAdd:
		cell := e.loadCell(n.Offset)
		ctrl := e.loadCell(0)
		prod := e.block.NewMul(ctrl, constant.NewInt(types.I8, int64(n.Factor)))
		e.storeCell(n.Offset, e.block.NewAdd(cell, prod))

	case ir.BulkAdd:
		for _, p := range n.Pairs {
			e.addCell(p.Offset, p.Value)
		}

	case ir.BulkSet:
		for _, p := range n.Pairs {
			e.storeCell(p.Offset, constant.NewInt(types.I8, int64(p.Value)))
		}

	case ir.ScanLeft:
		e.emitScan(n.Stride, false)

	case ir.ScanRight:
		e.emitScan(n.Stride, true)

	case ir.Input:
		e.emitInput(n.Offset)

	case ir.Output:
		v := e.loadCell(n.Offset)
		ext := e.block.NewZExt(v, types.I32)
		e.block.NewCall(e.putchar, ext)

	case ir.Loop:
		e.emitLoop(n.Body)
	}
}

func (e *emitter) addCell(offset, delta int) {
	cell := e.loadCell(offset)
	sum := e.block.NewAdd(cell, constant.NewInt(types.I8, int64(delta)))
	e.storeCell(offset, sum)
}

func (e *emitter) loadPtr() value.Value {
	return e.block.NewLoad(types.I64, e.ptrSlot)
}

func (e *emitter) storePtr(v value.Value) {
	e.block.NewStore(v, e.ptrSlot)
}

func (e *emitter) cellAddr(offset int) value.Value {
	p := value.Value(e.loadPtr())
	if offset != 0 {
		p = e.block.NewAdd(p, constant.NewInt(types.I64, int64(offset)))
	}
	zero := constant.NewInt(types.I64, 0)
	return e.block.NewGetElementPtr(e.tape.ContentType, e.tape, zero, p)
}

func (e *emitter) loadCell(offset int) value.Value {
	return e.block.NewLoad(types.I8, e.cellAddr(offset))
}

func (e *emitter) storeCell(offset int, v value.Value) {
	e.block.NewStore(v, e.cellAddr(offset))
}

// emitLoop emits `while cell[ptr] != 0 { body }` as three blocks: a
// condition test, the body (falling back to the condition), and the
// block execution resumes in afterward.
func (e *emitter) emitLoop(body []ir.Node) {
	cond := e.fn.NewBlock("")
	bodyBlk := e.fn.NewBlock("")
	after := e.fn.NewBlock("")

	e.block.NewBr(cond)

	e.block = cond
	cmp := e.block.NewICmp(enum.IPredNE, e.loadCell(0), constant.NewInt(types.I8, 0))
	e.block.NewCondBr(cmp, bodyBlk, after)

	e.block = bodyBlk
	e.emitSeq(body)
	e.block.NewBr(cond)

	e.block = after
}

// emitScan emits `while cell[ptr] != 0 { ptr +-= stride }`.
func (e *emitter) emitScan(stride int, rightward bool) {
	cond := e.fn.NewBlock("")
	step := e.fn.NewBlock("")
	after := e.fn.NewBlock("")

	e.block.NewBr(cond)

	e.block = cond
	cmp := e.block.NewICmp(enum.IPredNE, e.loadCell(0), constant.NewInt(types.I8, 0))
	e.block.NewCondBr(cmp, step, after)

	e.block = step
	delta := constant.NewInt(types.I64, int64(stride))
	p := e.loadPtr()
	if rightward {
		e.storePtr(e.block.NewAdd(p, delta))
	} else {
		e.storePtr(e.block.NewSub(p, delta))
	}
	e.block.NewBr(cond)

	e.block = after
}

// emitInput emits the EOF-as-zero policy (spec.md §4.3): getchar()
// returns a negative value on EOF, in which case the cell is zeroed
// rather than storing the sentinel.
func (e *emitter) emitInput(offset int) {
	r := e.block.NewCall(e.getchar)
	isEOF := e.block.NewICmp(enum.IPredSLT, r, constant.NewInt(types.I32, 0))

	eofBlk := e.fn.NewBlock("")
	haveBlk := e.fn.NewBlock("")
	after := e.fn.NewBlock("")
	e.block.NewCondBr(isEOF, eofBlk, haveBlk)

	e.block = eofBlk
	e.storeCell(offset, constant.NewInt(types.I8, 0))
	e.block.NewBr(after)

	e.block = haveBlk
	e.storeCell(offset, e.block.NewTrunc(r, types.I8))
	e.block.NewBr(after)

	e.block = after
}
