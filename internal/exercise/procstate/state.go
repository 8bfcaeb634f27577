package procstate

import (
	"slices"

	"opensye/internal/locale"
)

// State is one stage of the process life cycle.
type State int

const (
	External State = iota
	Ready
	Executing
	Suspended
	Waiting
	Terminated
)

// States lists every state, in declaration order.
var States = []State{External, Ready, Executing, Suspended, Waiting, Terminated}

var stateCodes = map[State]string{
	External:   "E",
	Ready:      "P",
	Executing:  "X",
	Suspended:  "S",
	Waiting:    "A",
	Terminated: "T",
}

var statePhrases = map[State]string{
	External:   locale.StateExternal,
	Ready:      locale.StateReady,
	Executing:  locale.StateExecuting,
	Suspended:  locale.StateSuspended,
	Waiting:    locale.StateWaiting,
	Terminated: locale.StateTerminated,
}

// Code is the one-letter code used in logs and dumps.
func (s State) Code() string {
	if c, ok := stateCodes[s]; ok {
		return c
	}
	return "?"
}

func (s State) Name(l locale.Locale) string {
	return locale.Text(l, statePhrases[s])
}

func (s State) String() string { return s.Code() }

// Graph maps a state onto the states reachable by one legal transition.
type Graph map[State][]State

// Transitions is the process life cycle. Terminated has no way out.
var Transitions = Graph{
	External:   {Ready},
	Ready:      {Executing, Suspended},
	Executing:  {Terminated, Waiting, Ready},
	Suspended:  {Ready, Waiting},
	Waiting:    {Ready, Suspended},
	Terminated: {},
}

func (g Graph) Successors(s State) []State {
	return g[s]
}

func (g Graph) Allows(from, to State) bool {
	return slices.Contains(g[from], to)
}
