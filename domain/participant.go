// Package domain contains core concepts of the room session:
// participants, messages, and the screen-share slot.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"time"

	"watchroom/errors"
)

type RoomID string

// Presence reflects how alive a participant currently looks.
// Transitions are driven by external activity/heartbeat signals;
// the registry only records them.
type Presence string

const (
	PresenceActive       Presence = "active"
	PresenceIdle         Presence = "idle"
	PresenceDisconnected Presence = "disconnected"
)

func ValidPresence(p Presence) bool {
	return p == PresenceActive || p == PresenceIdle || p == PresenceDisconnected
}

// Participant is a member of a room. ID is stable for the whole
// membership; DisplayName may change without affecting identity.
type Participant struct {
	ID          string
	DisplayName string
	Presence    Presence
	JoinedAt    time.Time
}

// Registry tracks current members in join order, and remembers departed
// ids so messages from former members stay attributable.
type Registry struct {
	order    []string
	members  map[string]*Participant
	departed map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		members:  make(map[string]*Participant),
		departed: make(map[string]struct{}),
	}
}

// Join inserts a participant with presence Active.
func (r *Registry) Join(id, displayName string) (Participant, error) {
	if _, ok := r.members[id]; ok {
		return Participant{}, errors.ErrDuplicateParticipant
	}
	p := &Participant{
		ID:          id,
		DisplayName: displayName,
		Presence:    PresenceActive,
		JoinedAt:    time.Now().UTC(),
	}
	r.members[id] = p
	r.order = append(r.order, id)
	// A rejoin makes the id current again
	delete(r.departed, id)
	return *p, nil
}

// Leave removes a participant. Leaving twice is a no-op, not an error.
func (r *Registry) Leave(id string) (Participant, bool) {
	p, ok := r.members[id]
	if !ok {
		return Participant{}, false
	}
	delete(r.members, id)
	r.departed[id] = struct{}{}
	for i, memberID := range r.order {
		if memberID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return *p, true
}

// SetPresence updates the presence of a current member.
func (r *Registry) SetPresence(id string, presence Presence) (Participant, error) {
	p, ok := r.members[id]
	if !ok {
		return Participant{}, errors.ErrUnknownParticipant
	}
	p.Presence = presence
	return *p, nil
}

// Has reports whether id is a current member.
func (r *Registry) Has(id string) bool {
	_, ok := r.members[id]
	return ok
}

// Seen reports whether id is a current or former member.
func (r *Registry) Seen(id string) bool {
	if r.Has(id) {
		return true
	}
	_, ok := r.departed[id]
	return ok
}

func (r *Registry) Get(id string) (Participant, bool) {
	p, ok := r.members[id]
	if !ok {
		return Participant{}, false
	}
	return *p, true
}

// List returns current members ordered by join time. The order is
// stable across calls until the next mutation.
func (r *Registry) List() []Participant {
	out := make([]Participant, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.members[id])
	}
	return out
}

func (r *Registry) Len() int { return len(r.members) }
