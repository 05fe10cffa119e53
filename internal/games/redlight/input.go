package redlight

import "github.com/vovakirdan/redlight-arcade/internal/core"

// InputState is a copy of the held directions, indexed by core.Direction.
type InputState [len(core.Directions)]bool

// Held reports whether d is held.
func (s InputState) Held(d core.Direction) bool {
	if !d.Valid() {
		return false
	}
	return s[d]
}

// Any reports whether at least one direction is held.
func (s InputState) Any() bool {
	for _, held := range s {
		if held {
			return true
		}
	}
	return false
}

// Sampler records which directions are held. It only captures edges;
// whether they have any effect is up to the session.
type Sampler struct {
	held InputState
}

// NewSampler returns a sampler with nothing held.
func NewSampler() *Sampler {
	return &Sampler{}
}

// Press marks d as held. Unknown directions are ignored.
func (s *Sampler) Press(d core.Direction) {
	if d.Valid() {
		s.held[d] = true
	}
}

// Release marks d as released. Unknown directions are ignored.
func (s *Sampler) Release(d core.Direction) {
	if d.Valid() {
		s.held[d] = false
	}
}

// Apply replays a frame's edges in order.
func (s *Sampler) Apply(edges []core.KeyEdge) {
	for _, e := range edges {
		if e.Down {
			s.Press(e.Dir)
		} else {
			s.Release(e.Dir)
		}
	}
}

// ReleaseAll clears every held direction.
func (s *Sampler) ReleaseAll() {
	s.held = InputState{}
}

// Held reports whether d is currently held.
func (s *Sampler) Held(d core.Direction) bool {
	return s.held.Held(d)
}

// Any reports whether any direction is held.
func (s *Sampler) Any() bool {
	return s.held.Any()
}

// Snapshot returns the held set by value.
func (s *Sampler) Snapshot() InputState {
	return s.held
}
