package environment

import (
	"fmt"

	"github.com/boristopalov/vacuumworld/pkg/core"
)

const (
	MinDirtiness = 1
	MaxDirtiness = 5
)

// Room is a single cell of the row. Dirtiness 0 means clean.
type Room struct {
	dirtiness int
}

func NewRoom(dirtiness int) *Room {
	r := &Room{}
	r.MakeDirty(dirtiness)
	return r
}

func (r *Room) Dirtiness() int {
	return r.dirtiness
}

func (r *Room) IsDirty() bool {
	return r.dirtiness > 0
}

func (r *Room) Clean() {
	r.dirtiness = 0
}

// MakeDirty overwrites the current level; dirt does not accumulate.
func (r *Room) MakeDirty(level int) {
	if level < 0 {
		level = 0
	}
	r.dirtiness = level
}

// MakeRandomDirty overwrites the level with a uniform draw in [MinDirtiness, MaxDirtiness]
// and returns it.
func (r *Room) MakeRandomDirty(rng core.Rand) int {
	level := rng.IntRange(MinDirtiness, MaxDirtiness)
	r.MakeDirty(level)
	return level
}

func (r *Room) String() string {
	if r.IsDirty() {
		return fmt.Sprintf("Dirtiness(%d)", r.dirtiness)
	}
	return "Clean"
}
