package core

// Rand is the random stream shared by the environment and its rooms.
// Every stochastic draw in a run goes through it so a seed replays the run.
type Rand interface {
	// IntRange returns a uniform integer in [lo, hi]
	IntRange(lo, hi int) int
	// Float64 returns a uniform probability in [0, 1)
	Float64() float64
}

// Policy maps a percept to an action
type Policy interface {
	Decide(p Percept, rooms int) Action
}
