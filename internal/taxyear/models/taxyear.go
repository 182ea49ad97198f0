// Package models holds the tax-year aggregate and its regime classification.
package models

import (
	"time"

	"github.com/google/uuid"

	"finattr/internal/attribute"
	"finattr/pkg/domain"
	dErrors "finattr/pkg/domain-errors"
)

// Regime is the closed set of tax regimes. The zero value means "no regime
// assigned"; a year without a regime cannot carry attributes.
type Regime int

const (
	RegimeNone Regime = iota
	// RegimeClassic taxes capital gains at dedicated rates and has no
	// additional income band.
	RegimeClassic
	// RegimeAdditional adds an additional income band on top of the classic
	// shape.
	RegimeAdditional
	// RegimeUnified folds capital gains into income; no additional band.
	RegimeUnified
)

var regimeNames = map[Regime]string{
	RegimeClassic:    "classic",
	RegimeAdditional: "additional_band",
	RegimeUnified:    "unified",
}

func (r Regime) String() string {
	if n, ok := regimeNames[r]; ok {
		return n
	}
	return ""
}

// ParseRegime resolves a regime from its wire name.
func ParseRegime(name string) (Regime, bool) {
	for r, n := range regimeNames {
		if n == name {
			return r, true
		}
	}
	return RegimeNone, false
}

var regimeProfiles = map[Regime]attribute.RegimeProfile{
	RegimeClassic:    {},
	RegimeAdditional: {AdditionalBand: true},
	RegimeUnified:    {CapitalAsIncome: true},
}

// Profile returns the regime's capability view. ok=false for RegimeNone.
func (r Regime) Profile() (attribute.RegimeProfile, bool) {
	p, ok := regimeProfiles[r]
	return p, ok
}

// TaxYear is the aggregate root for one tax year's rates and allowances.
//
// Invariants:
//   - StartYear is a plausible calendar year (1900..2200)
//   - the attribute set is exclusively owned by this record
type TaxYear struct {
	ID        domain.TaxYearID
	StartYear int
	Regime    Regime
	CreatedAt time.Time
	UpdatedAt time.Time

	attrs      *attribute.Set[attribute.TaxYearClass]
	violations []attribute.Violation[attribute.TaxYearClass]
}

// NewTaxYear constructs a tax year with an empty attribute set.
func NewTaxYear(id domain.TaxYearID, startYear int, regime Regime, now time.Time) (*TaxYear, error) {
	if startYear < 1900 || startYear > 2200 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "start year out of range")
	}
	return &TaxYear{
		ID:        id,
		StartYear: startYear,
		Regime:    regime,
		CreatedAt: now,
		UpdatedAt: now,
		attrs:     attribute.NewSet(attribute.TaxYearCatalog, uuid.UUID(id)),
	}, nil
}

// Attributes returns the year's attribute set.
func (t *TaxYear) Attributes() *attribute.Set[attribute.TaxYearClass] {
	return t.attrs
}

// TaxYearID implements attribute.TaxYearView.
func (t *TaxYear) TaxYearID() domain.TaxYearID {
	return t.ID
}

// RegimeProfile implements attribute.TaxYearView's Regime accessor.
func (t *TaxYear) RegimeProfile() (attribute.RegimeProfile, bool) {
	return t.Regime.Profile()
}

// Report implements attribute.Reporter by accumulating findings.
func (t *TaxYear) Report(v attribute.Violation[attribute.TaxYearClass]) {
	t.violations = append(t.violations, v)
}

// Violations returns the findings accumulated by the last validation pass.
func (t *TaxYear) Violations() []attribute.Violation[attribute.TaxYearClass] {
	out := make([]attribute.Violation[attribute.TaxYearClass], len(t.violations))
	copy(out, t.violations)
	return out
}

// ResetViolations clears accumulated findings before a fresh pass.
func (t *TaxYear) ResetViolations() {
	t.violations = t.violations[:0]
}

// Clone duplicates the year under a new identity and start year, copying
// all non-deleted attributes. Used when rolling a year's rates forward.
func (t *TaxYear) Clone(id domain.TaxYearID, startYear int, now time.Time) (*TaxYear, error) {
	clone, err := NewTaxYear(id, startYear, t.Regime, now)
	if err != nil {
		return nil, err
	}
	clone.attrs = t.attrs.Clone(uuid.UUID(id))
	return clone, nil
}
