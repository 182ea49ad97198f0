// Package store provides the in-memory account registry. It is the identity
// indirection behind reference-kind attributes and the source of the derived
// facts (alias targets, price and transaction history) the validator reads.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"finattr/internal/account/models"
	"finattr/internal/attribute"
	"finattr/internal/ledger"
	"finattr/pkg/domain"
	dErrors "finattr/pkg/domain-errors"
)

// ErrNotFound keeps store-level 404s consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "account not found")

// InMemoryStore holds accounts, recorded valuations, and ledger events.
// Reads and writes are guarded by an RWMutex so concurrent validation of
// different owners stays safe.
type InMemoryStore struct {
	mu       sync.RWMutex
	accounts map[domain.AccountID]*models.Account
	prices   map[domain.AccountID]int
	events   []*ledger.Event
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		accounts: make(map[domain.AccountID]*models.Account),
		prices:   make(map[domain.AccountID]int),
	}
}

// Save upserts an account.
func (s *InMemoryStore) Save(_ context.Context, acct *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[acct.ID] = acct
	return nil
}

// Get returns the account with the given id.
func (s *InMemoryStore) Get(_ context.Context, id domain.AccountID) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return acct, nil
}

// List returns all accounts in unspecified order.
func (s *InMemoryStore) List(_ context.Context) ([]*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	return out, nil
}

// UpdateAttributes runs fn against the account's attribute set under the
// store's write lock, so attribute mutation is synchronized with the
// snapshot reads other owners' validations perform.
func (s *InMemoryStore) UpdateAttributes(_ context.Context, id domain.AccountID, fn func(*attribute.Set[attribute.AccountClass]) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.accounts[id]
	if !ok {
		return ErrNotFound
	}
	if err := fn(acct.Attributes()); err != nil {
		return err
	}
	acct.UpdatedAt = time.Now()
	return nil
}

// RecordPrice records one valuation for the account, feeding the
// has-price-history fact.
func (s *InMemoryStore) RecordPrice(_ context.Context, id domain.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[id]; !ok {
		return ErrNotFound
	}
	s.prices[id]++
	return nil
}

// AppendEvent records a ledger event, feeding the has-transaction-history
// fact.
func (s *InMemoryStore) AppendEvent(_ context.Context, ev *ledger.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

// Snapshot assembles the validation view of an account: the record, its
// attribute set, and the derived facts, all read under one lock.
func (s *InMemoryStore) Snapshot(_ context.Context, id domain.AccountID) (attribute.AccountView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.snapshotLocked(id)
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

// Lookup implements attribute.AccountRegistry for reference resolution
// during validation.
func (s *InMemoryStore) Lookup(id domain.AccountID) (attribute.AccountView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(id)
}

func (s *InMemoryStore) snapshotLocked(id domain.AccountID) (*accountView, bool) {
	acct, ok := s.accounts[id]
	if !ok {
		return nil, false
	}
	return &accountView{
		id:          acct.ID,
		category:    acct.Category,
		closed:      acct.Closed,
		taxExempt:   acct.TaxExempt,
		aliasTarget: s.aliasTargetLocked(id),
		priced:      s.prices[id] > 0,
		hasTxns:     s.hasTransactionsLocked(id),
		attrs:       acct.Attributes().Clone(uuid.UUID(acct.ID)),
	}, true
}

// aliasTargetLocked reports whether any other account's live alias
// attribute points at id.
func (s *InMemoryStore) aliasTargetLocked(id domain.AccountID) bool {
	for otherID, other := range s.accounts {
		if otherID == id {
			continue
		}
		target, ok, err := other.Attributes().AccountRef(attribute.AccountAlias)
		if err != nil || !ok {
			continue
		}
		if target == id {
			return true
		}
	}
	return false
}

func (s *InMemoryStore) hasTransactionsLocked(id domain.AccountID) bool {
	for _, ev := range s.events {
		if ev.Involves(id) {
			return true
		}
	}
	return false
}

// accountView is an immutable snapshot satisfying attribute.AccountView.
// Scalars, derived facts, and a deep copy of the attribute set are all
// captured under the store lock, so a view never races with writers
// mutating the live record.
type accountView struct {
	id          domain.AccountID
	category    models.Category
	closed      bool
	taxExempt   bool
	aliasTarget bool
	priced      bool
	hasTxns     bool
	attrs       *attribute.Set[attribute.AccountClass]
}

func (v *accountView) AccountID() domain.AccountID {
	return v.id
}

func (v *accountView) Category() (attribute.CategoryProfile, bool) {
	return v.category.Profile()
}

func (v *accountView) CategoryCode() string {
	return v.category.String()
}

func (v *accountView) Closed() bool {
	return v.closed
}

func (v *accountView) TaxExempt() bool {
	return v.taxExempt
}

// HasUnits derives from the category: unit-trading categories carry
// tradable units.
func (v *accountView) HasUnits() bool {
	profile, ok := v.category.Profile()
	return ok && profile.TradesUnits
}

func (v *accountView) AliasTarget() bool {
	return v.aliasTarget
}

func (v *accountView) HasPriceHistory() bool {
	return v.priced
}

func (v *accountView) HasTransactionHistory() bool {
	return v.hasTxns
}

func (v *accountView) Attributes() *attribute.Set[attribute.AccountClass] {
	return v.attrs
}
