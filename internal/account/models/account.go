package models

import (
	"time"

	"github.com/google/uuid"

	"finattr/internal/attribute"
	"finattr/pkg/domain"
	dErrors "finattr/pkg/domain-errors"
)

// Account is the aggregate root for a financial account.
//
// Invariants:
//   - Name is non-empty and at most 128 characters
//   - the attribute set is exclusively owned by this record and every item
//     in it carries this account's identity
//   - accumulated violations belong to the last validation pass only
type Account struct {
	ID        domain.AccountID
	Name      string
	Category  Category
	Closed    bool
	TaxExempt bool
	CreatedAt time.Time
	UpdatedAt time.Time

	attrs      *attribute.Set[attribute.AccountClass]
	violations []attribute.Violation[attribute.AccountClass]
}

// NewAccount constructs an account with an empty attribute set.
func NewAccount(id domain.AccountID, name string, category Category, now time.Time) (*Account, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "account name cannot be empty")
	}
	if len(name) > 128 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "account name must be 128 characters or less")
	}
	return &Account{
		ID:        id,
		Name:      name,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
		attrs:     attribute.NewSet(attribute.AccountCatalog, uuid.UUID(id)),
	}, nil
}

// Attributes returns the account's attribute set.
func (a *Account) Attributes() *attribute.Set[attribute.AccountClass] {
	return a.attrs
}

// Report implements attribute.Reporter by accumulating findings on the
// record. The record decides separately how findings affect save flows.
func (a *Account) Report(v attribute.Violation[attribute.AccountClass]) {
	a.violations = append(a.violations, v)
}

// Violations returns the findings accumulated by the last validation pass.
func (a *Account) Violations() []attribute.Violation[attribute.AccountClass] {
	out := make([]attribute.Violation[attribute.AccountClass], len(a.violations))
	copy(out, a.violations)
	return out
}

// ResetViolations clears accumulated findings before a fresh pass.
func (a *Account) ResetViolations() {
	a.violations = a.violations[:0]
}

// Clone duplicates the account under a new identity and name. All
// non-deleted attributes are copied; the clone's set is fully independent
// of the source. Accumulated violations are not carried over.
func (a *Account) Clone(id domain.AccountID, name string, now time.Time) (*Account, error) {
	clone, err := NewAccount(id, name, a.Category, now)
	if err != nil {
		return nil, err
	}
	clone.Closed = a.Closed
	clone.TaxExempt = a.TaxExempt
	clone.attrs = a.attrs.Clone(uuid.UUID(id))
	return clone, nil
}
