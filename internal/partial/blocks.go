package partial

import "slices"

// Block is a matching block: a[A:A+Size] == b[B:B+Size].
type Block struct {
	A, B, Size int
}

type span struct {
	alo, ahi, blo, bhi int
}

// finder holds the buffers for repeated longest-match searches over one b.
type finder struct {
	b2j map[rune][]int

	// prev[j+1] is the length of the match ending at a[i-1], b[j].
	prev, cur         []int
	prevSet, curSet   []int
	queue             []span
	blocks, collapsed []Block
}

func (f *finder) reset(b []rune) {
	if f.b2j == nil {
		f.b2j = make(map[rune][]int)
	}
	clear(f.b2j)
	for j, r := range b {
		f.b2j[r] = append(f.b2j[r], j)
	}

	n := len(b) + 1
	if cap(f.prev) < n {
		f.prev = make([]int, n)
		f.cur = make([]int, n)
	}
	f.prev, f.cur = f.prev[:n], f.cur[:n]
	f.prevSet, f.curSet = f.prevSet[:0], f.curSet[:0]
}

// longest finds the longest block inside a[alo:ahi] and b[blo:bhi].
// Ties go to the block starting earliest in a, then earliest in b.
func (f *finder) longest(a []rune, alo, ahi, blo, bhi int) Block {
	best := Block{A: alo, B: blo}

	for i := alo; i < ahi; i++ {
		for _, j := range f.b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := f.prev[j] + 1
			f.cur[j+1] = k
			f.curSet = append(f.curSet, j+1)
			if k > best.Size {
				best = Block{A: i - k + 1, B: j - k + 1, Size: k}
			}
		}

		for _, j := range f.prevSet {
			f.prev[j] = 0
		}
		f.prev, f.cur = f.cur, f.prev
		f.prevSet, f.curSet = f.curSet, f.prevSet[:0]
	}

	for _, j := range f.prevSet {
		f.prev[j] = 0
	}
	f.prevSet = f.prevSet[:0]

	return best
}

// matchingBlocks decomposes a against b into non-adjacent matching blocks,
// sorted by position and terminated by the sentinel {len(a), len(b), 0}.
func (f *finder) matchingBlocks(a, b []rune) []Block {
	f.reset(b)
	f.blocks = f.blocks[:0]
	f.queue = append(f.queue[:0], span{0, len(a), 0, len(b)})

	for len(f.queue) > 0 {
		s := f.queue[len(f.queue)-1]
		f.queue = f.queue[:len(f.queue)-1]

		m := f.longest(a, s.alo, s.ahi, s.blo, s.bhi)
		if m.Size == 0 {
			continue
		}
		f.blocks = append(f.blocks, m)
		if s.alo < m.A && s.blo < m.B {
			f.queue = append(f.queue, span{s.alo, m.A, s.blo, m.B})
		}
		if m.A+m.Size < s.ahi && m.B+m.Size < s.bhi {
			f.queue = append(f.queue, span{m.A + m.Size, s.ahi, m.B + m.Size, s.bhi})
		}
	}

	slices.SortFunc(f.blocks, func(x, y Block) int {
		if x.A != y.A {
			return x.A - y.A
		}
		if x.B != y.B {
			return x.B - y.B
		}
		return x.Size - y.Size
	})

	f.collapsed = f.collapsed[:0]
	var cur Block
	for _, m := range f.blocks {
		if cur.A+cur.Size == m.A && cur.B+cur.Size == m.B {
			cur.Size += m.Size
			continue
		}
		if cur.Size > 0 {
			f.collapsed = append(f.collapsed, cur)
		}
		cur = m
	}
	if cur.Size > 0 {
		f.collapsed = append(f.collapsed, cur)
	}

	return append(f.collapsed, Block{A: len(a), B: len(b)})
}

// MatchingBlocks returns the matching blocks of a against b.
//
// The decomposition repeatedly takes the longest common run and recurses
// into the unmatched regions on either side, so blocks are disjoint and
// increasing in both a and b. The final element is always the sentinel
// {len(a), len(b), 0}.
func MatchingBlocks(a, b []rune) []Block {
	var f finder
	return slices.Clone(f.matchingBlocks(a, b))
}
