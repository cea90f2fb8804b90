package contract

import (
	"fmt"
	"strconv"
)

// getCount reads a uint64 counter, zero when unset.
func getCount(s State, key string) uint64 {
	raw := s.Get(key)
	if raw == nil {
		return 0
	}
	n, err := strconv.ParseUint(*raw, 10, 64)
	if err != nil {
		panic(fmt.Sprintf("corrupt counter %s: %v", key, err))
	}
	return n
}

// idAlloc hands out position ids within one operation. Stage writes are not
// readable mid-operation, so the counter is read once and the final value
// staged once. Ids start at 1; an unset counter never collides with a real
// position.
type idAlloc struct {
	last uint64
}

func newIDAlloc(s State) *idAlloc {
	return &idAlloc{last: getCount(s, positionsCnt)}
}

func (a *idAlloc) next() uint64 {
	a.last++
	return a.last
}

func (a *idAlloc) commit(st *stage) {
	st.set(positionsCnt, strconv.FormatUint(a.last, 10))
}
