package attribute

// ViolationKind classifies a recoverable validation finding. Findings are
// accumulated against the owning record and reported in aggregate; they
// never abort a validation pass.
type ViolationKind int

const (
	MissingRequiredField ViolationKind = iota
	UnexpectedField
	LengthExceeded
	Negative
	OrderingViolation
	SelfReference
	CategoryMismatch
	TaxStatusMismatch
	AlreadyAliasedTarget
	ChainedAlias
	HasPriceHistory
	MissingPriceHistory
	InvalidRelation
	NotChildOfOwner
)

var violationKindNames = map[ViolationKind]string{
	MissingRequiredField: "missing_required_field",
	UnexpectedField:      "unexpected_field",
	LengthExceeded:       "length_exceeded",
	Negative:             "negative",
	OrderingViolation:    "ordering_violation",
	SelfReference:        "self_reference",
	CategoryMismatch:     "category_mismatch",
	TaxStatusMismatch:    "tax_status_mismatch",
	AlreadyAliasedTarget: "already_aliased_target",
	ChainedAlias:         "chained_alias",
	HasPriceHistory:      "has_price_history",
	MissingPriceHistory:  "missing_price_history",
	InvalidRelation:      "invalid_relation",
	NotChildOfOwner:      "not_child_of_owner",
}

func (k ViolationKind) String() string {
	if n, ok := violationKindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Violation is one validation finding against a specific attribute class.
// Detail carries an optional human-readable hint; Kind and Class are the
// stable contract.
type Violation[C comparable] struct {
	Kind   ViolationKind
	Class  C
	Detail string
}

// Reporter is the error-accumulation surface the owning record exposes to
// the validator. Implementations append; they decide separately how
// accumulated findings affect downstream save flows.
type Reporter[C comparable] interface {
	Report(v Violation[C])
}
