package optimizer

import "brainfuck/internal/ir"

// Bulk is pass 6 (spec.md §4.2): within a straight-line run (post lazy
// pointer), consecutive ValAdd/Set nodes are normalized per the pass 1
// absorb/shadow rules — generalized across the whole sub-run rather than
// just immediate neighbors, since offset optimization can leave several
// ValAdds/Sets at the same offset non-adjacent to one another — and then
// chunked into maximal same-kind runs, each collapsing to one BulkAdd or
// BulkSet. A chunk of size one collapses back to its plain node.
func Bulk(nodes []ir.Node) []ir.Node {
	out := groupRuns(nodes)
	for i := range out {
		if out[i].Kind == ir.Loop {
			out[i].Body = Bulk(out[i].Body)
		}
	}
	return out
}

func groupRuns(nodes []ir.Node) []ir.Node {
	var out []ir.Node
	i := 0
	for i < len(nodes) {
		if nodes[i].Kind != ir.ValAdd && nodes[i].Kind != ir.Set {
			out = append(out, nodes[i])
			i++
			continue
		}
		j := i
		for j < len(nodes) && (nodes[j].Kind == ir.ValAdd || nodes[j].Kind == ir.Set) {
			j++
		}
		out = append(out, chunkBulk(normalizeByOffset(nodes[i:j]))...)
		i = j
	}
	return out
}

// normalizeEntry tracks the single final effect at one offset within a
// sub-run: either an absolute Set value, or an accumulated ValAdd delta.
type normalizeEntry struct {
	offset int
	isSet  bool
	value  int
	delta  int
}

func normalizeByOffset(group []ir.Node) []ir.Node {
	var entries []*normalizeEntry
	byOffset := map[int]*normalizeEntry{}

	for _, n := range group {
		e, ok := byOffset[n.Offset]
		if !ok {
			e = &normalizeEntry{offset: n.Offset}
			byOffset[n.Offset] = e
			entries = append(entries, e)
		}
		if n.Kind == ir.Set {
			e.isSet = true
			e.value = n.Value
			continue
		}
		// ValAdd: absorbed by a prior Set at the same offset, or
		// accumulated onto a running ValAdd delta.
		if e.isSet {
			e.value = wrapByte(e.value + n.Delta)
		} else {
			e.delta += n.Delta
		}
	}

	out := make([]ir.Node, 0, len(entries))
	for _, e := range entries {
		if e.isSet {
			out = append(out, ir.NewSet(e.offset, e.value))
			continue
		}
		if wrapByte(e.delta) != 0 {
			out = append(out, ir.NewValAdd(e.offset, e.delta))
		}
	}
	return out
}

func chunkBulk(nodes []ir.Node) []ir.Node {
	var out []ir.Node
	i := 0
	for i < len(nodes) {
		kind := nodes[i].Kind
		j := i
		for j < len(nodes) && nodes[j].Kind == kind {
			j++
		}
		group := nodes[i:j]
		if len(group) == 1 {
			out = append(out, group[0])
		} else {
			pairs := make([]ir.Pair, len(group))
			for k, g := range group {
				if kind == ir.ValAdd {
					pairs[k] = ir.Pair{Offset: g.Offset, Value: g.Delta}
				} else {
					pairs[k] = ir.Pair{Offset: g.Offset, Value: g.Value}
				}
			}
			if kind == ir.ValAdd {
				out = append(out, ir.NewBulkAdd(pairs))
			} else {
				out = append(out, ir.NewBulkSet(pairs))
			}
		}
		i = j
	}
	return out
}
