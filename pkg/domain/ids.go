// Package domain holds shared identity primitives.
//
// IDs are distinct named types over uuid.UUID so the compiler rejects mixing
// an AccountID with a TaxYearID. Construct from external input via the Parse*
// functions; direct casting bypasses validation and is reserved for code that
// already holds a trusted UUID.
package domain

import (
	"github.com/google/uuid"

	dErrors "finattr/pkg/domain-errors"
)

// AccountID identifies an account record.
type AccountID uuid.UUID

// TaxYearID identifies a tax year record.
type TaxYearID uuid.UUID

// CategoryID identifies an expense/income category record.
type CategoryID uuid.UUID

// EntryID identifies a single ledger entry.
type EntryID uuid.UUID

// NewAccountID returns a fresh random AccountID.
func NewAccountID() AccountID { return AccountID(uuid.New()) }

// NewTaxYearID returns a fresh random TaxYearID.
func NewTaxYearID() TaxYearID { return TaxYearID(uuid.New()) }

// NewCategoryID returns a fresh random CategoryID.
func NewCategoryID() CategoryID { return CategoryID(uuid.New()) }

// NewEntryID returns a fresh random EntryID.
func NewEntryID() EntryID { return EntryID(uuid.New()) }

func (id AccountID) String() string  { return uuid.UUID(id).String() }
func (id TaxYearID) String() string  { return uuid.UUID(id).String() }
func (id CategoryID) String() string { return uuid.UUID(id).String() }
func (id EntryID) String() string    { return uuid.UUID(id).String() }

// IsNil reports whether the ID is the zero UUID.
func (id AccountID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id TaxYearID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id CategoryID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id EntryID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// parseUUID enforces the shared invariant: IDs must be valid, non-nil UUIDs.
func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(dErrors.CodeInvalidInput, "malformed id", err)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be the nil uuid")
	}
	return u, nil
}

// ParseAccountID constructs an AccountID from external input.
func ParseAccountID(s string) (AccountID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return AccountID{}, err
	}
	return AccountID(u), nil
}

// ParseTaxYearID constructs a TaxYearID from external input.
func ParseTaxYearID(s string) (TaxYearID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return TaxYearID{}, err
	}
	return TaxYearID(u), nil
}

// ParseCategoryID constructs a CategoryID from external input.
func ParseCategoryID(s string) (CategoryID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return CategoryID{}, err
	}
	return CategoryID(u), nil
}

// ParseEntryID constructs an EntryID from external input.
func ParseEntryID(s string) (EntryID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return EntryID{}, err
	}
	return EntryID(u), nil
}
