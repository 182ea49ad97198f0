package attribute

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"finattr/pkg/domain"
	dErrors "finattr/pkg/domain-errors"
)

// SlotState is the explicit tri-state of a class slot within a set. It
// distinguishes a value that was never set from one that was explicitly
// cleared, which presence rules treat identically but history does not.
type SlotState int

const (
	SlotUnset SlotState = iota
	SlotSet
	SlotCleared
)

func (s SlotState) String() string {
	switch s {
	case SlotUnset:
		return "unset"
	case SlotSet:
		return "set"
	case SlotCleared:
		return "cleared"
	}
	return "unknown"
}

// Item is a single stored attribute instance. Items are created when a class
// is first set on an owner and mutated in place afterwards; clearing is
// logical (Deleted=true), never physical removal.
type Item[C comparable] struct {
	Owner   uuid.UUID
	Class   C
	Value   Value
	Deleted bool
}

// Live reports whether the item counts as present for validation.
func (it *Item[C]) Live() bool {
	return !it.Deleted
}

// Set holds at most one item per attribute class for a single owner record.
//
// Invariants:
//   - every item's Owner equals the set's owner
//   - at most one item exists per class; re-setting a cleared class
//     resurrects the existing item rather than inserting a duplicate
//
// A set is exclusively owned by one record. Callers must serialize writes
// and validation on a given owner; concurrent use across owners is safe
// because sets share no state.
type Set[C comparable] struct {
	catalog *Catalog[C]
	owner   uuid.UUID
	items   map[C]*Item[C]
}

// NewSet creates an empty set bound to owner, constrained to catalog.
func NewSet[C comparable](catalog *Catalog[C], owner uuid.UUID) *Set[C] {
	return &Set[C]{
		catalog: catalog,
		owner:   owner,
		items:   make(map[C]*Item[C]),
	}
}

// Owner returns the owning record's identity.
func (s *Set[C]) Owner() uuid.UUID {
	return s.owner
}

// Catalog returns the catalog this set is constrained to.
func (s *Set[C]) Catalog() *Catalog[C] {
	return s.catalog
}

// Get returns the live item for class. It never fails: a class that is
// unset, cleared, or unknown reports ok=false.
func (s *Set[C]) Get(class C) (*Item[C], bool) {
	it, ok := s.items[class]
	if !ok || it.Deleted {
		return nil, false
	}
	return it, true
}

// State returns the tri-state of the class slot.
func (s *Set[C]) State(class C) SlotState {
	it, ok := s.items[class]
	switch {
	case !ok:
		return SlotUnset
	case it.Deleted:
		return SlotCleared
	default:
		return SlotSet
	}
}

// SetValue creates or replaces the live item for class. A cleared item is
// resurrected with the new value. The value's kind must match the class
// declaration; a mismatch or an unknown class is a contract violation.
func (s *Set[C]) SetValue(class C, v Value) error {
	spec, ok := s.catalog.Spec(class)
	if !ok {
		return dErrors.New(dErrors.CodeInvariantViolation, "attribute class not in catalog")
	}
	if v.Kind() != spec.Kind {
		return dErrors.New(dErrors.CodeInvariantViolation,
			"attribute "+spec.Name+" declares kind "+spec.Kind.String()+", got "+v.Kind().String())
	}
	if it, exists := s.items[class]; exists {
		it.Value = v
		it.Deleted = false
		return nil
	}
	s.items[class] = &Item[C]{Owner: s.owner, Class: class, Value: v}
	return nil
}

// Clear soft-deletes the item for class. Clearing an unset class is a no-op
// so the slot stays distinguishable as never set.
func (s *Set[C]) Clear(class C) {
	if it, ok := s.items[class]; ok {
		it.Deleted = true
	}
}

// Text returns the text payload for class. ok=false when the class is not
// live; a non-nil error means the class does not declare a text kind.
func (s *Set[C]) Text(class C) (string, bool, error) {
	it, ok := s.Get(class)
	if !ok {
		return "", false, nil
	}
	v, err := it.Value.Text()
	if err != nil {
		return "", true, err
	}
	return v, true, nil
}

// Decimal returns the decimal payload for class. Same contract as Text.
func (s *Set[C]) Decimal(class C) (decimal.Decimal, bool, error) {
	it, ok := s.Get(class)
	if !ok {
		return decimal.Decimal{}, false, nil
	}
	v, err := it.Value.Decimal()
	if err != nil {
		return decimal.Decimal{}, true, err
	}
	return v, true, nil
}

// AccountRef returns the account reference payload for class. Same contract
// as Text.
func (s *Set[C]) AccountRef(class C) (domain.AccountID, bool, error) {
	it, ok := s.Get(class)
	if !ok {
		return domain.AccountID{}, false, nil
	}
	v, err := it.Value.AccountRef()
	if err != nil {
		return domain.AccountID{}, true, err
	}
	return v, true, nil
}

// Clone deep-copies all non-deleted items into a fresh set bound to
// newOwner. The clone is fully independent of the source: mutating either
// never affects the other.
func (s *Set[C]) Clone(newOwner uuid.UUID) *Set[C] {
	out := NewSet(s.catalog, newOwner)
	for class, it := range s.items {
		if it.Deleted {
			continue
		}
		out.items[class] = &Item[C]{Owner: newOwner, Class: class, Value: copyValue(it.Value)}
	}
	return out
}

// LiveCount returns the number of live items, used by reporting surfaces.
func (s *Set[C]) LiveCount() int {
	n := 0
	for _, it := range s.items {
		if !it.Deleted {
			n++
		}
	}
	return n
}
