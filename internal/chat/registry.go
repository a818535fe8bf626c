package chat

import (
	"sort"
	"sync"
)

// DefaultRoom is joined when the handshake names no room.
const DefaultRoom = "general"

// Participant is one live connection's membership record within a room.
type Participant struct {
	SessionID string `json:"sessionId"`
	UserID    uint   `json:"userId"`
	Username  string `json:"username"`
}

type member struct {
	Participant
	seq uint64 // join order, for deterministic snapshots
}

// Registry maps room names to their current participants. Rooms are
// created on first join and pruned the moment they empty out; nothing
// here survives a restart. The registry enforces nothing about how many
// rooms a session is in — the hub's single-room discipline does that.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]map[string]member // room -> session id -> member
	seq   uint64
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]map[string]member)}
}

// Add upserts a participant into a room, creating the room if absent,
// and returns the updated membership snapshot. Re-adding the same
// session id overwrites in place and keeps its original join position.
func (r *Registry) Add(room string, p Participant) []Participant {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := r.ensureLocked(room)

	seq := r.seq
	if existing, ok := members[p.SessionID]; ok {
		seq = existing.seq
	} else {
		r.seq++
	}
	members[p.SessionID] = member{Participant: p, seq: seq}

	return snapshotLocked(members)
}

// ensureLocked returns the room's member map, creating an empty room on
// first use. Callers hold r.mu.
func (r *Registry) ensureLocked(room string) map[string]member {
	members, ok := r.rooms[room]
	if !ok {
		members = make(map[string]member)
		r.rooms[room] = members
	}
	return members
}

// Remove deletes a session from a room. A missing room or session is a
// no-op. When the last participant leaves, the room entry itself is
// deleted and the second return value is false, meaning there is no one
// left to notify.
func (r *Registry) Remove(room, sessionID string) ([]Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[room]
	if !ok {
		return nil, false
	}

	delete(members, sessionID)
	if len(members) == 0 {
		delete(r.rooms, room)
		return nil, false
	}

	return snapshotLocked(members), true
}

// Snapshot returns the current membership of a room in join order, and
// whether the room exists at all.
func (r *Registry) Snapshot(room string) ([]Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[room]
	if !ok {
		return nil, false
	}
	return snapshotLocked(members), true
}

func snapshotLocked(members map[string]member) []Participant {
	list := make([]member, 0, len(members))
	for _, m := range members {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].seq < list[j].seq })

	out := make([]Participant, len(list))
	for i, m := range list {
		out[i] = m.Participant
	}
	return out
}
