package attribute

// AccountValidator walks every class in the account catalog, applying the
// requirement policy, per-kind semantic checks, and the relational checks
// for parent, alias, and holding references.
//
// The pass never short-circuits on a finding: a single Validate call
// surfaces all violations. The only error return is the programming-contract
// case of a value whose kind disagrees with its class declaration; that
// indicates catalog drift and aborts the call with CodeInvariantViolation.
type AccountValidator struct {
	registry AccountRegistry
}

func NewAccountValidator(registry AccountRegistry) *AccountValidator {
	return &AccountValidator{registry: registry}
}

// PolicyContext derives the policy inputs for an account from its facts and
// its attribute set.
func accountPolicyContext(owner AccountView) AccountPolicyContext {
	profile, categorized := owner.Category()
	return AccountPolicyContext{
		Categorized: categorized,
		Profile:     profile,
		IsAlias:     owner.Attributes().State(AccountAlias) == SlotSet,
	}
}

// Classify returns the requirement level for one class of the given owner.
func (v *AccountValidator) Classify(owner AccountView, class AccountClass) RequirementLevel {
	return ClassifyAccount(accountPolicyContext(owner), class)
}

// Validate runs the full pass over the account catalog, reporting findings
// through rep. The pass is read-only over the attribute set.
func (v *AccountValidator) Validate(owner AccountView, rep Reporter[AccountClass]) error {
	pctx := accountPolicyContext(owner)
	set := owner.Attributes()

	for _, class := range AccountCatalog.Classes() {
		level := ClassifyAccount(pctx, class)
		item, present := set.Get(class)

		if !present {
			if level == MustExist {
				rep.Report(Violation[AccountClass]{Kind: MissingRequiredField, Class: class})
			}
			continue
		}
		if level == NotAllowed {
			rep.Report(Violation[AccountClass]{Kind: UnexpectedField, Class: class})
			continue
		}
		if err := v.check(owner, class, item.Value, rep); err != nil {
			return err
		}
	}
	return nil
}

// check dispatches the class-specific semantic check for a present, allowed
// attribute.
func (v *AccountValidator) check(owner AccountView, class AccountClass, val Value, rep Reporter[AccountClass]) error {
	checkLength(AccountCatalog, class, val, rep)

	switch class {
	case AccountParent:
		return v.checkParent(owner, val, rep)
	case AccountAlias:
		return v.checkAlias(owner, val, rep)
	case AccountHolding:
		return v.checkHolding(owner, val, rep)
	}
	return nil
}

// checkLength applies the catalog's declared maximum to text and blob
// payloads.
func checkLength[C comparable](catalog *Catalog[C], class C, val Value, rep Reporter[C]) {
	spec, ok := catalog.Spec(class)
	if !ok || spec.MaxLen == 0 {
		return
	}
	if val.Len() > spec.MaxLen {
		rep.Report(Violation[C]{Kind: LengthExceeded, Class: class})
	}
}

// checkParent enforces the parent relation: the referenced account must be
// capable of parenting, an open owner needs an open parent, and an owner
// with tradable units must sit under a portfolio.
func (v *AccountValidator) checkParent(owner AccountView, val Value, rep Reporter[AccountClass]) error {
	pid, err := val.AccountRef()
	if err != nil {
		return err
	}
	parent, ok := v.registry.Lookup(pid)
	if !ok {
		rep.Report(Violation[AccountClass]{Kind: InvalidRelation, Class: AccountParent, Detail: "parent account not found"})
		return nil
	}
	profile, categorized := parent.Category()
	if !categorized || !profile.CanParent {
		rep.Report(Violation[AccountClass]{Kind: InvalidRelation, Class: AccountParent, Detail: "parent category cannot hold children"})
	}
	if !owner.Closed() && parent.Closed() {
		rep.Report(Violation[AccountClass]{Kind: InvalidRelation, Class: AccountParent, Detail: "open account cannot have a closed parent"})
	}
	if owner.HasUnits() && !profile.Portfolio {
		rep.Report(Violation[AccountClass]{Kind: InvalidRelation, Class: AccountParent, Detail: "unit-holding account requires a portfolio parent"})
	}
	return nil
}

// checkAlias enforces the single-hop alias relation between two accounts of
// the same category with opposite tax-exempt status.
func (v *AccountValidator) checkAlias(owner AccountView, val Value, rep Reporter[AccountClass]) error {
	tid, err := val.AccountRef()
	if err != nil {
		return err
	}
	if tid == owner.AccountID() {
		rep.Report(Violation[AccountClass]{Kind: SelfReference, Class: AccountAlias})
		return nil
	}
	target, ok := v.registry.Lookup(tid)
	if !ok {
		rep.Report(Violation[AccountClass]{Kind: InvalidRelation, Class: AccountAlias, Detail: "alias target not found"})
		return nil
	}
	if owner.CategoryCode() != target.CategoryCode() {
		rep.Report(Violation[AccountClass]{Kind: CategoryMismatch, Class: AccountAlias})
	}
	if owner.TaxExempt() == target.TaxExempt() {
		rep.Report(Violation[AccountClass]{Kind: TaxStatusMismatch, Class: AccountAlias})
	}
	// Aliasing is single-hop: a chain exists when the target aliases onward
	// or when the owner, itself an alias target, aliases further.
	chained := target.Attributes().State(AccountAlias) == SlotSet
	if owner.AliasTarget() {
		rep.Report(Violation[AccountClass]{Kind: AlreadyAliasedTarget, Class: AccountAlias})
		chained = true
	}
	if chained {
		rep.Report(Violation[AccountClass]{Kind: ChainedAlias, Class: AccountAlias})
	}
	if owner.HasPriceHistory() {
		rep.Report(Violation[AccountClass]{Kind: HasPriceHistory, Class: AccountAlias})
	}
	if target.HasTransactionHistory() && !target.HasPriceHistory() {
		rep.Report(Violation[AccountClass]{Kind: MissingPriceHistory, Class: AccountAlias})
	}
	return nil
}

// checkHolding enforces the strict one-level parent/holding hierarchy: the
// holding must be a savings account whose own parent is this owner.
func (v *AccountValidator) checkHolding(owner AccountView, val Value, rep Reporter[AccountClass]) error {
	hid, err := val.AccountRef()
	if err != nil {
		return err
	}
	holding, ok := v.registry.Lookup(hid)
	if !ok {
		rep.Report(Violation[AccountClass]{Kind: InvalidRelation, Class: AccountHolding, Detail: "holding account not found"})
		return nil
	}
	profile, categorized := holding.Category()
	if !categorized || !profile.SavingsLike {
		rep.Report(Violation[AccountClass]{Kind: InvalidRelation, Class: AccountHolding, Detail: "holding must be a savings account"})
	}
	if !owner.Closed() && holding.Closed() {
		rep.Report(Violation[AccountClass]{Kind: InvalidRelation, Class: AccountHolding, Detail: "open account cannot use a closed holding account"})
	}
	pid, has, err := holding.Attributes().AccountRef(AccountParent)
	if err != nil {
		return err
	}
	if !has || pid != owner.AccountID() {
		rep.Report(Violation[AccountClass]{Kind: NotChildOfOwner, Class: AccountHolding})
	}
	return nil
}

// TaxYearValidator walks every class in the tax-year catalog, applying the
// requirement policy, the non-negativity rule, and the age-allowance
// ordering rules.
type TaxYearValidator struct{}

func NewTaxYearValidator() *TaxYearValidator {
	return &TaxYearValidator{}
}

func taxYearPolicyContext(owner TaxYearView) TaxYearPolicyContext {
	profile, has := owner.Regime()
	return TaxYearPolicyContext{HasRegime: has, Regime: profile}
}

// Classify returns the requirement level for one class of the given year.
func (v *TaxYearValidator) Classify(owner TaxYearView, class TaxYearClass) RequirementLevel {
	return ClassifyTaxYear(taxYearPolicyContext(owner), class)
}

// Validate runs the full pass over the tax-year catalog.
func (v *TaxYearValidator) Validate(owner TaxYearView, rep Reporter[TaxYearClass]) error {
	pctx := taxYearPolicyContext(owner)
	set := owner.Attributes()

	for _, class := range TaxYearCatalog.Classes() {
		level := ClassifyTaxYear(pctx, class)
		item, present := set.Get(class)

		if !present {
			if level == MustExist {
				rep.Report(Violation[TaxYearClass]{Kind: MissingRequiredField, Class: class})
			}
			continue
		}
		if level == NotAllowed {
			rep.Report(Violation[TaxYearClass]{Kind: UnexpectedField, Class: class})
			continue
		}
		d, err := item.Value.Decimal()
		if err != nil {
			return err
		}
		if d.IsNegative() {
			rep.Report(Violation[TaxYearClass]{Kind: Negative, Class: class})
		}
	}

	return v.checkAgeAllowanceOrdering(set, rep)
}

// checkAgeAllowanceOrdering enforces allowance ≤ low age allowance ≤ high
// age allowance whenever the respective pairs are both present.
func (v *TaxYearValidator) checkAgeAllowanceOrdering(set *Set[TaxYearClass], rep Reporter[TaxYearClass]) error {
	base, hasBase, err := set.Decimal(TaxAllowance)
	if err != nil {
		return err
	}
	lo, hasLo, err := set.Decimal(TaxLoAgeAllowance)
	if err != nil {
		return err
	}
	hi, hasHi, err := set.Decimal(TaxHiAgeAllowance)
	if err != nil {
		return err
	}

	if hasBase && hasLo && lo.LessThan(base) {
		rep.Report(Violation[TaxYearClass]{Kind: OrderingViolation, Class: TaxLoAgeAllowance})
	}
	if hasLo && hasHi && hi.LessThan(lo) {
		rep.Report(Violation[TaxYearClass]{Kind: OrderingViolation, Class: TaxHiAgeAllowance})
	}
	return nil
}
