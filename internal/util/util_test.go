package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_FreshNamer_appendsSuffixUntilUnique(t *testing.T) {
	assert := assert.New(t)

	taken := NewStringSet()
	taken.Add("S")
	taken.Add("S_expanded")

	namer := FreshNamer{Suffix: "_expanded", Taken: taken}

	assert.Equal("S_expanded_expanded", namer.Name("S_expanded"))
	assert.Equal("T", namer.Name("T"), "a base that is already free comes back unchanged")
}

func Test_Stack_pushPopPeek(t *testing.T) {
	assert := assert.New(t)

	var s Stack[int]
	assert.True(s.Empty())

	s.Push(1)
	s.Push(2)
	assert.Equal(2, s.Len())
	assert.Equal(2, s.Peek())
	assert.Equal(2, s.Pop())
	assert.Equal(1, s.Pop())
	assert.Panics(func() { s.Pop() })
}

func Test_OrderedKeys_andAlphabetized_sortDeterministically(t *testing.T) {
	assert := assert.New(t)

	m := map[string]int{"b": 1, "a": 2, "c": 3}
	assert.Equal([]string{"a", "b", "c"}, OrderedKeys(m))

	s := NewStringSet()
	s.Add("gamma")
	s.Add("alpha")
	s.Add("beta")
	assert.Equal([]string{"alpha", "beta", "gamma"}, Alphabetized[string](s))
}

func Test_OrderedKeysByRank_sortsByRankWithAlphabeticalTieBreak(t *testing.T) {
	assert := assert.New(t)

	type ranked struct{ ord uint64 }
	m := map[string]ranked{
		"zeta":  {ord: 0},
		"alpha": {ord: 2},
		"mid":   {ord: 1},
		"tieB":  {ord: 3},
		"tieA":  {ord: 3},
	}

	got := OrderedKeysByRank(m, func(r ranked) uint64 { return r.ord })
	assert.Equal([]string{"zeta", "mid", "alpha", "tieA", "tieB"}, got)
}

func Test_StringSet_StringOrdered_isStable(t *testing.T) {
	assert := assert.New(t)

	s1 := NewStringSet()
	s2 := NewStringSet()
	for _, v := range []string{"x", "y", "z"} {
		s1.Add(v)
	}
	for _, v := range []string{"z", "x", "y"} {
		s2.Add(v)
	}

	assert.Equal(s1.StringOrdered(), s2.StringOrdered(), "insertion order must not leak into the ordered rendering")
	assert.True(s1.Equal(s2))
}

func Test_SVSet_setSemanticsAndEquality(t *testing.T) {
	assert := assert.New(t)

	s := NewSVSet[int]()
	s.Set("a", 1)
	s.Set("a", 2)

	assert.Equal(1, s.Len(), "Set on an existing key replaces the value, not the membership")
	assert.Equal(2, s.Get("a"))

	other := NewSVSet[int]()
	other.Set("a", 99)
	assert.True(s.Equal(other), "SVSet equality is over keys, not mapped values")

	s.Remove("a")
	assert.True(s.Empty())
}

func Test_KeySetOf_overNonStringAlphabet(t *testing.T) {
	assert := assert.New(t)

	ks := KeySetOf([]rune{'a', 'b'})
	assert.True(ks.Has('a'))
	assert.False(ks.Has('c'))
	assert.Equal(2, ks.Len())
}

func Test_MakeTextList(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("", MakeTextList(nil))
	assert.Equal("x", MakeTextList([]string{"x"}))
	assert.Equal("x and y", MakeTextList([]string{"x", "y"}))
	assert.Equal("x, y, and z", MakeTextList([]string{"x", "y", "z"}))
}
