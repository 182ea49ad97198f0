package attribute

// RequirementLevel classifies a class's presence rule for a given owner
// context. It is never stored; it is computed on demand from owner state.
type RequirementLevel int

const (
	MustExist RequirementLevel = iota
	CanExist
	NotAllowed
)

func (l RequirementLevel) String() string {
	switch l {
	case MustExist:
		return "must_exist"
	case CanExist:
		return "can_exist"
	case NotAllowed:
		return "not_allowed"
	}
	return "unknown"
}

// CategoryProfile is the capability view of an account category. The policy
// reads capabilities, never category identity, so new categories plug in
// without touching the rule table.
type CategoryProfile struct {
	// Child categories live under a parent account (e.g. shares under a
	// portfolio).
	Child bool
	// CanParent categories may be referenced as another account's parent.
	CanParent bool
	// TradesUnits categories hold priced units rather than plain balances.
	TradesUnits bool
	// SupportsAlias categories may redirect their values to a twin account
	// of the same category with the opposite tax-exempt status.
	SupportsAlias bool
	Portfolio     bool
	Bond          bool
	SavingsLike   bool
	Cash          bool
	// Asset categories are physical assets with no servicing institution.
	Asset bool
}

// AccountPolicyContext carries everything the account rule table reads.
type AccountPolicyContext struct {
	// Categorized is false when the account has no category assigned yet; an
	// uncategorized record cannot carry attributes at all.
	Categorized bool
	Profile     CategoryProfile
	// IsAlias is true when the account itself carries a live alias
	// attribute.
	IsAlias bool
}

func mustIf(ok bool) RequirementLevel {
	if ok {
		return MustExist
	}
	return NotAllowed
}

func canIf(ok bool) RequirementLevel {
	if ok {
		return CanExist
	}
	return NotAllowed
}

// accountRules is the declarative per-class rule table. Classes absent from
// the table default to MustExist for every categorized account.
var accountRules = map[AccountClass]func(AccountPolicyContext) RequirementLevel{
	AccountNotes:     func(AccountPolicyContext) RequirementLevel { return CanExist },
	AccountNumber:    func(AccountPolicyContext) RequirementLevel { return CanExist },
	AccountReference: func(AccountPolicyContext) RequirementLevel { return CanExist },
	AccountComments:  func(AccountPolicyContext) RequirementLevel { return CanExist },

	// Institutional fields make no sense on physical assets.
	AccountWebSite:    func(ctx AccountPolicyContext) RequirementLevel { return canIf(!ctx.Profile.Asset) },
	AccountCustomerNo: func(ctx AccountPolicyContext) RequirementLevel { return canIf(!ctx.Profile.Asset) },
	AccountUserID:     func(ctx AccountPolicyContext) RequirementLevel { return canIf(!ctx.Profile.Asset) },
	AccountPassword:   func(ctx AccountPolicyContext) RequirementLevel { return canIf(!ctx.Profile.Asset) },

	// Child categories must sit under a parent; savings-like accounts may,
	// so a portfolio can designate one as its holding.
	AccountParent: func(ctx AccountPolicyContext) RequirementLevel {
		if ctx.Profile.Child {
			return MustExist
		}
		return canIf(ctx.Profile.SavingsLike)
	},
	AccountAlias:   func(ctx AccountPolicyContext) RequirementLevel { return canIf(ctx.Profile.SupportsAlias) },
	AccountHolding: func(ctx AccountPolicyContext) RequirementLevel { return mustIf(ctx.Profile.Portfolio) },
	AccountMaturity: func(ctx AccountPolicyContext) RequirementLevel {
		return mustIf(ctx.Profile.Bond)
	},
	AccountSymbol: func(ctx AccountPolicyContext) RequirementLevel {
		return mustIf(ctx.Profile.TradesUnits && !ctx.IsAlias)
	},
	AccountOpeningBalance: func(ctx AccountPolicyContext) RequirementLevel {
		return canIf(ctx.Profile.SavingsLike)
	},
	AccountAutoExpense: func(ctx AccountPolicyContext) RequirementLevel { return canIf(ctx.Profile.Cash) },
}

// ClassifyAccount is the requirement policy for account attributes. The
// policy is total: every catalog class maps to exactly one level for any
// context.
func ClassifyAccount(ctx AccountPolicyContext, class AccountClass) RequirementLevel {
	if !ctx.Categorized {
		return NotAllowed
	}
	if rule, ok := accountRules[class]; ok {
		return rule(ctx)
	}
	return MustExist
}

// RegimeProfile is the capability view of a tax regime.
type RegimeProfile struct {
	// AdditionalBand regimes tax income above a threshold at additional
	// rates.
	AdditionalBand bool
	// CapitalAsIncome regimes fold capital gains into income instead of
	// taxing them at dedicated rates.
	CapitalAsIncome bool
}

// TaxYearPolicyContext carries everything the tax-year rule table reads.
type TaxYearPolicyContext struct {
	HasRegime bool
	Regime    RegimeProfile
}

var taxYearRules = map[TaxYearClass]func(TaxYearPolicyContext) RequirementLevel{
	TaxAdditionalRate: func(ctx TaxYearPolicyContext) RequirementLevel {
		return mustIf(ctx.Regime.AdditionalBand)
	},
	TaxAdditionalDividendRate: func(ctx TaxYearPolicyContext) RequirementLevel {
		return mustIf(ctx.Regime.AdditionalBand)
	},
	TaxAdditionalIncomeThreshold: func(ctx TaxYearPolicyContext) RequirementLevel {
		return mustIf(ctx.Regime.AdditionalBand)
	},
	TaxAdditionalAllowanceLimit: func(ctx TaxYearPolicyContext) RequirementLevel {
		return mustIf(ctx.Regime.AdditionalBand)
	},
	TaxCapitalRate: func(ctx TaxYearPolicyContext) RequirementLevel {
		return mustIf(!ctx.Regime.CapitalAsIncome)
	},
	TaxHiCapitalRate: func(ctx TaxYearPolicyContext) RequirementLevel {
		return mustIf(!ctx.Regime.CapitalAsIncome)
	},
	TaxCapitalAllowance: func(ctx TaxYearPolicyContext) RequirementLevel {
		return mustIf(!ctx.Regime.CapitalAsIncome)
	},
}

// ClassifyTaxYear is the requirement policy for tax-year attributes.
// Unlisted classes (base allowances and rates) default to MustExist for any
// year with a regime assigned.
func ClassifyTaxYear(ctx TaxYearPolicyContext, class TaxYearClass) RequirementLevel {
	if !ctx.HasRegime {
		return NotAllowed
	}
	if rule, ok := taxYearRules[class]; ok {
		return rule(ctx)
	}
	return MustExist
}
