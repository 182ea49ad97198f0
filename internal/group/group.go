// Package group provides an insertion-ordered, identity-unique collection of
// a parent record and its registered children.
package group

// Member is implemented by records that can join a group. K is the member's
// own identity; Q is the type of candidates the member's relation predicate
// accepts.
type Member[K comparable, Q any] interface {
	// GroupKey returns the member's identity within the group.
	GroupKey() K
	// Deleted reports whether the member is logically removed; deleted
	// members are skipped by relation queries but keep their slot.
	Deleted() bool
	// RelatesTo is the member's own relation predicate against a candidate.
	RelatesTo(candidate Q) bool
}

// Group holds a parent plus its registered children. The parent is always
// the first and permanent member. No two entries share identity; insertion
// order is preserved.
//
// Groups follow a single-writer construction pattern: build and register on
// one goroutine, then query freely.
type Group[K comparable, Q any, M Member[K, Q]] struct {
	members []M
	seen    map[K]struct{}
}

// New constructs a group around parent, which becomes its first member.
func New[K comparable, Q any, M Member[K, Q]](parent M) *Group[K, Q, M] {
	g := &Group[K, Q, M]{
		members: make([]M, 0, 4),
		seen:    make(map[K]struct{}),
	}
	g.members = append(g.members, parent)
	g.seen[parent.GroupKey()] = struct{}{}
	return g
}

// Parent returns the group's first member.
func (g *Group[K, Q, M]) Parent() M {
	return g.members[0]
}

// Register appends child unless a member with the same identity already
// exists. Duplicate registration is a no-op; it never creates a second
// entry. Returns true when the child was added.
func (g *Group[K, Q, M]) Register(child M) bool {
	key := child.GroupKey()
	if _, dup := g.seen[key]; dup {
		return false
	}
	g.members = append(g.members, child)
	g.seen[key] = struct{}{}
	return true
}

// Contains reports whether a member with the given identity was registered.
func (g *Group[K, Q, M]) Contains(key K) bool {
	_, ok := g.seen[key]
	return ok
}

// Len returns the number of registered members, parent included.
func (g *Group[K, Q, M]) Len() int {
	return len(g.members)
}

// Members returns the members in insertion order. The returned slice is a
// copy.
func (g *Group[K, Q, M]) Members() []M {
	out := make([]M, len(g.members))
	copy(out, g.members)
	return out
}

// RelatesTo reports whether any live member relates to the candidate by its
// own predicate. The scan runs in insertion order, short-circuits on the
// first match, and re-scans on every call.
func (g *Group[K, Q, M]) RelatesTo(candidate Q) bool {
	for _, m := range g.members {
		if m.Deleted() {
			continue
		}
		if m.RelatesTo(candidate) {
			return true
		}
	}
	return false
}
