package simulate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func abDFA() DFA[string] {
	return DFA[string]{
		Alphabet:  []string{"a", "b"},
		States:    []string{"q0", "q1"},
		Start:     "q0",
		Accepting: []string{"q1"},
		Transitions: map[string]map[string]string{
			"q0": {"a": "q1", "b": "q0"},
			"q1": {"a": "q1", "b": "q0"},
		},
	}
}

func Test_Simulator_abDFA(t *testing.T) {
	assert := assert.New(t)

	var sim Simulator[string]
	assert.NoError(sim.Update(abDFA()))

	assert.True(sim.Simulate([]string{"a"}).Accepted)
	assert.False(sim.Simulate([]string{"b"}).Accepted)
	assert.False(sim.Simulate([]string{"c"}).Accepted)
	assert.False(sim.Simulate(nil).Accepted)
}

func Test_Simulator_Simulate_emptyInputIsRejectedNotError(t *testing.T) {
	assert := assert.New(t)

	var sim Simulator[string]
	assert.NoError(sim.Update(abDFA()))

	result := sim.Simulate([]string{})
	assert.False(result.Accepted)
	assert.Equal([]string{"q0"}, result.Trace)
}

func Test_Simulator_Simulate_unknownSymbolRejectsWithoutError(t *testing.T) {
	assert := assert.New(t)

	var sim Simulator[string]
	assert.NoError(sim.Update(abDFA()))

	result := sim.Simulate([]string{"a", "c", "a"})
	assert.False(result.Accepted)
	assert.Equal([]string{"q0", "q1"}, result.Trace)
}

func Test_Simulator_Simulate_traceAccumulatesWithoutReset(t *testing.T) {
	assert := assert.New(t)

	var sim Simulator[string]
	assert.NoError(sim.Update(abDFA()))

	result := sim.Simulate([]string{"a", "b", "a", "a"})
	assert.True(result.Accepted)
	assert.Equal([]string{"q0", "q1", "q0", "q1", "q1"}, result.Trace)
}

func Test_Simulator_Update_rejectsInvalidDFA(t *testing.T) {
	assert := assert.New(t)

	var sim Simulator[string]
	bad := DFA[string]{
		Alphabet: []string{"a"},
		States:   []string{"q0"},
		Start:    "q_missing",
	}
	assert.Error(sim.Update(bad))
}

func Test_Simulator_GenerateAccepted_dfsEnumeration(t *testing.T) {
	assert := assert.New(t)

	var sim Simulator[string]
	assert.NoError(sim.Update(abDFA()))

	accepted := sim.GenerateAccepted(2)

	assert.Contains(accepted, []string{"a"})
	assert.Contains(accepted, []string{"a", "a"})
	assert.Contains(accepted, []string{"b", "a"})
	assert.NotContains(accepted, []string{"b"})
	assert.NotContains(accepted, []string{})
}

// realNumberDFA accepts character sequences shaped like a real number with
// at most one decimal point: digits, optionally followed by a single '.'
// and more digits.
func realNumberDFA() DFA[rune] {
	digits := []rune("0123456789")
	alphabet := append(append([]rune{}, digits...), '.')

	transitions := map[string]map[rune]string{
		"start":      {},
		"intDigits":  {},
		"point":      {},
		"fracDigits": {},
	}
	for _, d := range digits {
		transitions["start"][d] = "intDigits"
		transitions["intDigits"][d] = "intDigits"
		transitions["fracDigits"][d] = "fracDigits"
	}
	transitions["intDigits"]['.'] = "point"
	for _, d := range digits {
		transitions["point"][d] = "fracDigits"
	}

	return DFA[rune]{
		Alphabet:    alphabet,
		States:      []string{"start", "intDigits", "point", "fracDigits"},
		Start:       "start",
		Accepting:   []string{"intDigits", "fracDigits"},
		Transitions: transitions,
	}
}

func Test_Simulator_multiType_realNumberDFA(t *testing.T) {
	assert := assert.New(t)

	var sim Simulator[rune]
	assert.NoError(sim.Update(realNumberDFA()))

	assert.True(sim.Simulate([]rune{'3', '.', '4', '5', '6'}).Accepted)
	assert.False(sim.Simulate([]rune{'1', '9', '2', '.', '1', '6', '8', '.', '0', '.', '1'}).Accepted)
}
