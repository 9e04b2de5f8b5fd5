package generator

// visitSet marks the operators on the current render path.
type visitSet []uint64

func newVisitSet(n int) visitSet {
	return make(visitSet, (n+63)/64)
}

func (s visitSet) has(i int) bool { return s[i>>6]&(1<<(uint(i)&63)) != 0 }

func (s visitSet) add(i int) { s[i>>6] |= 1 << (uint(i) & 63) }

func (s visitSet) remove(i int) { s[i>>6] &^= 1 << (uint(i) & 63) }

func (s visitSet) clear() {
	for i := range s {
		s[i] = 0
	}
}
