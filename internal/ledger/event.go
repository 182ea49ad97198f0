// Package ledger models transaction events: a parent entry plus the split
// entries that depend on it, treated as one identity-unique, ordered unit.
package ledger

import (
	"github.com/shopspring/decimal"

	"finattr/internal/group"
	"finattr/pkg/domain"
)

// Entry is a single ledger posting against an account.
type Entry struct {
	ID      domain.EntryID
	Account domain.AccountID
	Amount  decimal.Decimal
	Memo    string
	Removed bool
}

// GroupKey implements group.Member.
func (e *Entry) GroupKey() domain.EntryID {
	return e.ID
}

// Deleted implements group.Member.
func (e *Entry) Deleted() bool {
	return e.Removed
}

// RelatesTo reports whether the entry posts against the candidate account.
func (e *Entry) RelatesTo(account domain.AccountID) bool {
	return e.Account == account
}

// Event is a parent entry plus its dependent split entries. The parent is
// always the event's first member.
type Event struct {
	entries *group.Group[domain.EntryID, domain.AccountID, *Entry]
}

// NewEvent constructs an event around its parent entry.
func NewEvent(parent *Entry) *Event {
	return &Event{entries: group.New[domain.EntryID, domain.AccountID](parent)}
}

// Parent returns the event's parent entry.
func (ev *Event) Parent() *Entry {
	return ev.entries.Parent()
}

// AddSplit registers a dependent entry. Registering an entry twice is a
// no-op; the return reports whether the entry was added.
func (ev *Event) AddSplit(e *Entry) bool {
	return ev.entries.Register(e)
}

// Entries returns the event's entries in insertion order.
func (ev *Event) Entries() []*Entry {
	return ev.entries.Members()
}

// Involves reports whether any live entry of the event posts against the
// account.
func (ev *Event) Involves(account domain.AccountID) bool {
	return ev.entries.RelatesTo(account)
}
