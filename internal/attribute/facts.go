package attribute

import "finattr/pkg/domain"

// AccountFacts is the read-only view of an account that the policy and the
// validator consume. The concrete account record and the facts derived from
// its surroundings (alias targets, price and transaction history) live
// outside this package; the store assembles them into a snapshot.
type AccountFacts interface {
	AccountID() domain.AccountID

	// Category returns the capability profile of the account's category.
	// ok=false means no category is assigned yet.
	Category() (CategoryProfile, bool)

	// CategoryCode is a stable identity token for the category, used for
	// same-category comparisons. Empty when uncategorized.
	CategoryCode() string

	Closed() bool
	TaxExempt() bool

	// HasUnits reports whether the account carries tradable units.
	HasUnits() bool

	// AliasTarget reports whether some other account's alias attribute
	// points at this account.
	AliasTarget() bool

	// HasPriceHistory reports whether the account has recorded valuations.
	HasPriceHistory() bool

	// HasTransactionHistory reports whether any ledger event involves the
	// account.
	HasTransactionHistory() bool
}

// AccountView couples an account's facts with its attribute set.
type AccountView interface {
	AccountFacts
	Attributes() *Set[AccountClass]
}

// AccountRegistry resolves account references by identity. Reference-kind
// attributes hold relations, never ownership; all resolution goes through
// this indirection so the data model stays acyclic and cloneable.
type AccountRegistry interface {
	Lookup(id domain.AccountID) (AccountView, bool)
}

// TaxYearView couples a tax year's facts with its attribute set.
type TaxYearView interface {
	TaxYearID() domain.TaxYearID

	// Regime returns the capability profile of the year's tax regime.
	// ok=false means no regime is assigned yet.
	Regime() (RegimeProfile, bool)

	Attributes() *Set[TaxYearClass]
}
