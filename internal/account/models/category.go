package models

import "finattr/internal/attribute"

// Category is the closed set of account categories. The zero value means
// "no category assigned"; an uncategorized account cannot carry attributes.
type Category int

const (
	CategoryNone Category = iota
	CategorySavings
	CategoryCash
	CategoryCreditCard
	CategoryPortfolio
	CategoryShare
	CategoryBond
	CategoryLoan
	CategoryAsset
)

var categoryNames = map[Category]string{
	CategorySavings:    "savings",
	CategoryCash:       "cash",
	CategoryCreditCard: "credit_card",
	CategoryPortfolio:  "portfolio",
	CategoryShare:      "share",
	CategoryBond:       "bond",
	CategoryLoan:       "loan",
	CategoryAsset:      "asset",
}

func (c Category) String() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return ""
}

// ParseCategory resolves a category from its wire name. ok=false for
// unknown names, including the empty string.
func ParseCategory(name string) (Category, bool) {
	for c, n := range categoryNames {
		if n == name {
			return c, true
		}
	}
	return CategoryNone, false
}

// categoryProfiles maps each category to the capability view the attribute
// policy reads. Shares are the only child, unit-trading, aliasable
// category; portfolios alone can parent them.
var categoryProfiles = map[Category]attribute.CategoryProfile{
	CategorySavings:    {CanParent: true, SavingsLike: true},
	CategoryCash:       {Cash: true},
	CategoryCreditCard: {SavingsLike: true},
	CategoryPortfolio:  {Portfolio: true, CanParent: true},
	CategoryShare:      {Child: true, TradesUnits: true, SupportsAlias: true},
	CategoryBond:       {Bond: true},
	CategoryLoan:       {},
	CategoryAsset:      {Asset: true},
}

// Profile returns the category's capability view. ok=false for
// CategoryNone.
func (c Category) Profile() (attribute.CategoryProfile, bool) {
	p, ok := categoryProfiles[c]
	return p, ok
}
