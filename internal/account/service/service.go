// Package service orchestrates account workflows: creation, attribute
// writes, duplication, and the validation pass. Handlers stay thin and the
// attribute engine stays pure; this is the seam where logging and metrics
// live.
package service

import (
	"context"
	"log/slog"
	"time"

	"finattr/internal/account/models"
	"finattr/internal/attribute"
	"finattr/internal/platform/metrics"
	"finattr/pkg/domain"
)

const ownerKind = "account"

// Store is the account registry the service persists through. Attribute
// mutation goes through UpdateAttributes so the store can serialize it
// with concurrent snapshot reads.
type Store interface {
	Save(ctx context.Context, acct *models.Account) error
	Get(ctx context.Context, id domain.AccountID) (*models.Account, error)
	List(ctx context.Context) ([]*models.Account, error)
	UpdateAttributes(ctx context.Context, id domain.AccountID, fn func(*attribute.Set[attribute.AccountClass]) error) error
	Snapshot(ctx context.Context, id domain.AccountID) (attribute.AccountView, error)
}

type Service struct {
	store     Store
	validator *attribute.AccountValidator
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewService(store Store, validator *attribute.AccountValidator, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		validator: validator,
		metrics:   m,
		logger:    logger,
	}
}

// Create registers a new account.
func (s *Service) Create(ctx context.Context, name string, category models.Category, taxExempt bool) (*models.Account, error) {
	acct, err := models.NewAccount(domain.NewAccountID(), name, category, time.Now())
	if err != nil {
		return nil, err
	}
	acct.TaxExempt = taxExempt
	if err := s.store.Save(ctx, acct); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "account created",
		"account_id", acct.ID.String(),
		"category", acct.Category.String(),
	)
	return acct, nil
}

// Get returns the account with the given id.
func (s *Service) Get(ctx context.Context, id domain.AccountID) (*models.Account, error) {
	return s.store.Get(ctx, id)
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]*models.Account, error) {
	return s.store.List(ctx)
}

// SetAttribute creates or replaces the live attribute for class. A cleared
// slot is resurrected with the new value. The write runs under the store
// lock so it never races with a concurrent validation of another owner.
func (s *Service) SetAttribute(ctx context.Context, id domain.AccountID, class attribute.AccountClass, val attribute.Value) error {
	err := s.store.UpdateAttributes(ctx, id, func(set *attribute.Set[attribute.AccountClass]) error {
		return set.SetValue(class, val)
	})
	if err != nil {
		return err
	}
	s.metrics.IncAttributeSet(ownerKind)
	return nil
}

// ClearAttribute soft-deletes the attribute for class, distinguishing
// "explicitly cleared" from "never set".
func (s *Service) ClearAttribute(ctx context.Context, id domain.AccountID, class attribute.AccountClass) error {
	return s.store.UpdateAttributes(ctx, id, func(set *attribute.Set[attribute.AccountClass]) error {
		set.Clear(class)
		return nil
	})
}

// Requirement returns the presence rule for class on the given account.
func (s *Service) Requirement(ctx context.Context, id domain.AccountID, class attribute.AccountClass) (attribute.RequirementLevel, error) {
	view, err := s.store.Snapshot(ctx, id)
	if err != nil {
		return attribute.NotAllowed, err
	}
	return s.validator.Classify(view, class), nil
}

// Validate runs the full validation pass and returns the accumulated
// findings. The pass evaluates every catalog class; it never stops at the
// first finding.
func (s *Service) Validate(ctx context.Context, id domain.AccountID) ([]attribute.Violation[attribute.AccountClass], error) {
	acct, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	view, err := s.store.Snapshot(ctx, id)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	acct.ResetViolations()
	if err := s.validator.Validate(view, acct); err != nil {
		// Kind disagreement between a value and its class declaration is a
		// defect, not user data; surface it loudly.
		s.logger.ErrorContext(ctx, "validation aborted on contract violation",
			"account_id", id.String(),
			"error", err.Error(),
		)
		return nil, err
	}
	violations := acct.Violations()
	s.metrics.ObserveValidation(ownerKind, start)
	for _, v := range violations {
		s.metrics.IncViolation(v.Kind.String())
	}
	return violations, nil
}

// Clone duplicates an account and its non-deleted attributes under a new
// identity.
func (s *Service) Clone(ctx context.Context, id domain.AccountID, newName string) (*models.Account, error) {
	src, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	clone, err := src.Clone(domain.NewAccountID(), newName, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, clone); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "account cloned",
		"source_id", id.String(),
		"clone_id", clone.ID.String(),
	)
	return clone, nil
}
