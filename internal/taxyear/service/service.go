// Package service orchestrates tax-year workflows: creation, attribute
// writes, roll-forward cloning, and the validation pass.
package service

import (
	"context"
	"log/slog"
	"time"

	"finattr/internal/attribute"
	"finattr/internal/platform/metrics"
	"finattr/internal/taxyear/models"
	"finattr/pkg/domain"
)

const ownerKind = "tax_year"

// Store is the tax-year registry the service persists through. Attribute
// mutation goes through UpdateAttributes so the store can serialize it
// with concurrent snapshot reads.
type Store interface {
	Save(ctx context.Context, year *models.TaxYear) error
	Get(ctx context.Context, id domain.TaxYearID) (*models.TaxYear, error)
	List(ctx context.Context) ([]*models.TaxYear, error)
	UpdateAttributes(ctx context.Context, id domain.TaxYearID, fn func(*attribute.Set[attribute.TaxYearClass]) error) error
	Snapshot(ctx context.Context, id domain.TaxYearID) (attribute.TaxYearView, error)
}

type Service struct {
	store     Store
	validator *attribute.TaxYearValidator
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewService(store Store, validator *attribute.TaxYearValidator, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		validator: validator,
		metrics:   m,
		logger:    logger,
	}
}

// Create registers a new tax year.
func (s *Service) Create(ctx context.Context, startYear int, regime models.Regime) (*models.TaxYear, error) {
	year, err := models.NewTaxYear(domain.NewTaxYearID(), startYear, regime, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, year); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "tax year created",
		"tax_year_id", year.ID.String(),
		"start_year", year.StartYear,
		"regime", year.Regime.String(),
	)
	return year, nil
}

// Get returns the tax year with the given id.
func (s *Service) Get(ctx context.Context, id domain.TaxYearID) (*models.TaxYear, error) {
	return s.store.Get(ctx, id)
}

// List returns all tax years.
func (s *Service) List(ctx context.Context) ([]*models.TaxYear, error) {
	return s.store.List(ctx)
}

// SetAttribute creates or replaces the live attribute for class. The write
// runs under the store lock so it never races with concurrent validations.
func (s *Service) SetAttribute(ctx context.Context, id domain.TaxYearID, class attribute.TaxYearClass, val attribute.Value) error {
	err := s.store.UpdateAttributes(ctx, id, func(set *attribute.Set[attribute.TaxYearClass]) error {
		return set.SetValue(class, val)
	})
	if err != nil {
		return err
	}
	s.metrics.IncAttributeSet(ownerKind)
	return nil
}

// ClearAttribute soft-deletes the attribute for class.
func (s *Service) ClearAttribute(ctx context.Context, id domain.TaxYearID, class attribute.TaxYearClass) error {
	return s.store.UpdateAttributes(ctx, id, func(set *attribute.Set[attribute.TaxYearClass]) error {
		set.Clear(class)
		return nil
	})
}

// Requirement returns the presence rule for class on the given year.
func (s *Service) Requirement(ctx context.Context, id domain.TaxYearID, class attribute.TaxYearClass) (attribute.RequirementLevel, error) {
	view, err := s.store.Snapshot(ctx, id)
	if err != nil {
		return attribute.NotAllowed, err
	}
	return s.validator.Classify(view, class), nil
}

// Validate runs the full validation pass and returns the accumulated
// findings.
func (s *Service) Validate(ctx context.Context, id domain.TaxYearID) ([]attribute.Violation[attribute.TaxYearClass], error) {
	year, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	view, err := s.store.Snapshot(ctx, id)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	year.ResetViolations()
	if err := s.validator.Validate(view, year); err != nil {
		s.logger.ErrorContext(ctx, "validation aborted on contract violation",
			"tax_year_id", id.String(),
			"error", err.Error(),
		)
		return nil, err
	}
	violations := year.Violations()
	s.metrics.ObserveValidation(ownerKind, start)
	for _, v := range violations {
		s.metrics.IncViolation(v.Kind.String())
	}
	return violations, nil
}

// Roll clones a year's rates into the following year.
func (s *Service) Roll(ctx context.Context, id domain.TaxYearID) (*models.TaxYear, error) {
	src, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	clone, err := src.Clone(domain.NewTaxYearID(), src.StartYear+1, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, clone); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "tax year rolled forward",
		"source_id", id.String(),
		"clone_id", clone.ID.String(),
		"start_year", clone.StartYear,
	)
	return clone, nil
}
