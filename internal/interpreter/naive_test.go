package interpreter

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
	"testing/quick"

	"brainfuck/internal/ir"
	"brainfuck/internal/optimizer"
	"brainfuck/internal/parser"
)

// naiveRun executes an unoptimized IR tree directly, one node at a time,
// with no flattening and no jump-target resolution — the ground truth
// spec.md §8's semantic-preservation property is checked against.
func naiveRun(nodes []ir.Node, input []byte) []byte {
	tape := make([]byte, ir.TapeSize)
	ptr := 0
	inPos := 0
	var out bytes.Buffer

	var exec func([]ir.Node)
	exec = func(nodes []ir.Node) {
		for _, n := range nodes {
			switch n.Kind {
			case ir.PtrAdd:
				ptr += n.Delta
			case ir.ValAdd:
				tape[ptr+n.Offset] = byte(int(tape[ptr+n.Offset]) + n.Delta)
			case ir.Set:
				tape[ptr+n.Offset] = byte(n.Value)
			case ir.MulAdd:
				tape[ptr+n.Offset] = byte(int(tape[ptr+n.Offset]) + int(tape[ptr])*n.Factor)
			case ir.BulkAdd:
				for _, p := range n.Pairs {
					tape[ptr+p.Offset] = byte(int(tape[ptr+p.Offset]) + p.Value)
				}
			case ir.BulkSet:
				for _, p := range n.Pairs {
					tape[ptr+p.Offset] = byte(p.Value)
				}
			case ir.ScanLeft:
				for tape[ptr] != 0 {
					ptr -= n.Stride
				}
			case ir.ScanRight:
				for tape[ptr] != 0 {
					ptr += n.Stride
				}
			case ir.Input:
				if inPos < len(input) {
					tape[ptr+n.Offset] = input[inPos]
					inPos++
				} else {
					tape[ptr+n.Offset] = 0
				}
			case ir.Output:
				out.WriteByte(tape[ptr+n.Offset])
			case ir.Loop:
				for tape[ptr] != 0 {
					exec(n.Body)
				}
			}
		}
	}
	exec(nodes)
	return out.Bytes()
}

// genBoundedProgram builds a Brainfuck source string restricted, by
// construction, to shapes that are guaranteed to terminate and stay in
// bounds, since neither back-end checks either. Besides the trivial
// ValAdd/Output/clear-loop fragments, it emits:
//
//   - bounded "<"/">" runs, kept within a small window around the
//     origin so the pointer never goes negative or far afield;
//   - "+[->+<]"/"+[-<+>]" move-add loops, whose body has zero net
//     pointer motion and decrements its control cell to zero within at
//     most 255 iterations — exactly the shape MoveMultiplyLoop looks for;
//   - "+[>]"/"+[<]" scan loops landing on a never-before-touched cell,
//     so each one runs for exactly one iteration and the tape positions
//     it touches are disjoint from every other generated fragment.
//
// Each fragment's effect on the pointer is known at generation time
// (never dependent on a runtime cell value), so the whole program's
// pointer trace stays in [0, tapeSafetyBound) regardless of what the
// optimizer does to it.
func genBoundedProgram(rng *rand.Rand, size int) string {
	const window = 16 // plain moves and move-add loops stay inside [0, window]
	const tapeSafetyBound = 4096

	var b strings.Builder
	cursor := 0
	scanBase := window + 4 // each scan fragment claims a fresh, never-reused pair of offsets here

	move := func(to int) {
		for cursor < to {
			b.WriteByte('>')
			cursor++
		}
		for cursor > to {
			b.WriteByte('<')
			cursor--
		}
	}

	n := rng.Intn(size + 1)
	for i := 0; i < n; i++ {
		switch rng.Intn(8) {
		case 0:
			b.WriteByte('+')
		case 1:
			b.WriteByte('-')
		case 2:
			b.WriteByte('.')
		case 3:
			b.WriteString("[-]")
		case 4:
			b.WriteString("[+]")
		case 5:
			// Bounded pointer move.
			if target := cursor + rng.Intn(3) - 1; target >= 0 && target <= window {
				move(target)
			}
		case 6:
			// Move-add loop: transfers cell[ptr] onto a neighbor.
			dir := 1
			if rng.Intn(2) == 0 {
				dir = -1
			}
			if target := cursor + dir; target >= 0 && target <= window {
				b.WriteByte('+')
				if dir == 1 {
					b.WriteString("[->+<]")
				} else {
					b.WriteString("[-<+>]")
				}
			}
		case 7:
			// Scan loop: land on a fresh, guaranteed-zero cell so the loop
			// body runs for exactly one iteration, then return to where we
			// came from so later fragments stay densely packed near origin.
			if scanBase+2 >= tapeSafetyBound {
				continue
			}
			origin := cursor
			dir := 1
			if rng.Intn(2) == 0 {
				dir = -1
			}
			if dir == 1 {
				move(scanBase)
				b.WriteByte('+')
				b.WriteString("[>]")
				cursor = scanBase + 1
			} else {
				move(scanBase + 1)
				b.WriteByte('+')
				b.WriteString("[<]")
				cursor = scanBase
			}
			scanBase += 3
			move(origin)
		}
	}
	return b.String()
}

func TestSemanticPreservation(t *testing.T) {
	check := func(seed int64, size uint8) bool {
		rng := rand.New(rand.NewSource(seed))
		source := genBoundedProgram(rng, int(size)%64)

		nodes, err := parser.Parse([]byte(source))
		if err != nil {
			t.Fatalf("unexpected parse error on %q: %v", source, err)
		}

		want := naiveRun(nodes, nil)

		optimized := optimizer.Optimize(nodes)
		chunk := Flatten(optimized)
		var out bytes.Buffer
		if _, err := Run(chunk, strings.NewReader(""), &out); err != nil {
			t.Fatalf("unexpected run error on %q: %v", source, err)
		}

		if !bytes.Equal(out.Bytes(), want) {
			t.Errorf("optimized output %v != naive output %v for program %q", out.Bytes(), want, source)
			return false
		}
		return true
	}

	if err := quick.Check(check, &quick.Config{MaxCount: 200}); err != nil {
		t.Error(err)
	}
}

func TestOptimizerIdempotence(t *testing.T) {
	check := func(seed int64, size uint8) bool {
		rng := rand.New(rand.NewSource(seed))
		source := genBoundedProgram(rng, int(size)%64)

		nodes, err := parser.Parse([]byte(source))
		if err != nil {
			t.Fatalf("unexpected parse error on %q: %v", source, err)
		}

		once := optimizer.Optimize(nodes)
		twice := optimizer.Optimize(once)

		if !ir.Equal(once, twice) {
			t.Errorf("optimizing twice diverged for program %q:\nonce:  %+v\ntwice: %+v", source, once, twice)
			return false
		}
		return true
	}

	if err := quick.Check(check, &quick.Config{MaxCount: 200}); err != nil {
		t.Error(err)
	}
}
