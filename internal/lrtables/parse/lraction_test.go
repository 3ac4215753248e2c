package parse

import (
	"testing"

	"github.com/dekarrin/lrtables/internal/lrtables/grammar"
	"github.com/stretchr/testify/assert"
)

func Test_LRAction_Equal(t *testing.T) {
	assert := assert.New(t)

	shift1 := LRAction{Type: LRShift, State: "I3"}
	shift2 := LRAction{Type: LRShift, State: "I3"}
	shift3 := LRAction{Type: LRShift, State: "I4"}

	assert.True(shift1.Equal(shift2))
	assert.False(shift1.Equal(shift3))

	reduce1 := LRAction{Type: LRReduce, Symbol: "A", Production: grammar.Production{"a"}}
	reduce2 := LRAction{Type: LRReduce, Symbol: "A", Production: grammar.Production{"a"}}
	assert.True(reduce1.Equal(reduce2))
	assert.False(reduce1.Equal(shift1))

	assert.False(reduce1.Equal("not an action"))
}

func Test_describeLRConflict_shiftReduce(t *testing.T) {
	assert := assert.New(t)

	entries := []LRAction{
		{Type: LRShift, State: "I5"},
		{Type: LRReduce, Symbol: "L", Production: grammar.Production{"id"}},
	}
	desc := describeLRConflict(entries, "=")
	assert.Contains(desc, "shift/reduce")
	assert.Contains(desc, "=")
}

func Test_describeLRConflict_reduceReduce(t *testing.T) {
	assert := assert.New(t)

	entries := []LRAction{
		{Type: LRReduce, Symbol: "A", Production: grammar.Production{"x"}},
		{Type: LRReduce, Symbol: "B", Production: grammar.Production{"x"}},
	}
	desc := describeLRConflict(entries, "x")
	assert.Contains(desc, "reduce/reduce")
}
