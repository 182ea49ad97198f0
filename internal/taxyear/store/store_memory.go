// Package store provides the in-memory tax-year registry.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"finattr/internal/attribute"
	"finattr/internal/taxyear/models"
	"finattr/pkg/domain"
	dErrors "finattr/pkg/domain-errors"
)

// ErrNotFound keeps store-level 404s consistent across implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "tax year not found")

type InMemoryStore struct {
	mu    sync.RWMutex
	years map[domain.TaxYearID]*models.TaxYear
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{years: make(map[domain.TaxYearID]*models.TaxYear)}
}

// Save upserts a tax year.
func (s *InMemoryStore) Save(_ context.Context, year *models.TaxYear) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.years[year.ID] = year
	return nil
}

// Get returns the tax year with the given id.
func (s *InMemoryStore) Get(_ context.Context, id domain.TaxYearID) (*models.TaxYear, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	year, ok := s.years[id]
	if !ok {
		return nil, ErrNotFound
	}
	return year, nil
}

// List returns all tax years in unspecified order.
func (s *InMemoryStore) List(_ context.Context) ([]*models.TaxYear, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.TaxYear, 0, len(s.years))
	for _, y := range s.years {
		out = append(out, y)
	}
	return out, nil
}

// UpdateAttributes runs fn against the year's attribute set under the
// store's write lock, so attribute mutation is synchronized with the
// snapshot reads concurrent validations perform.
func (s *InMemoryStore) UpdateAttributes(_ context.Context, id domain.TaxYearID, fn func(*attribute.Set[attribute.TaxYearClass]) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	year, ok := s.years[id]
	if !ok {
		return ErrNotFound
	}
	if err := fn(year.Attributes()); err != nil {
		return err
	}
	year.UpdatedAt = time.Now()
	return nil
}

// Snapshot returns the validation view of a tax year.
func (s *InMemoryStore) Snapshot(_ context.Context, id domain.TaxYearID) (attribute.TaxYearView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	year, ok := s.years[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &taxYearView{
		id:     year.ID,
		regime: year.Regime,
		attrs:  year.Attributes().Clone(uuid.UUID(year.ID)),
	}, nil
}

// taxYearView is an immutable snapshot satisfying attribute.TaxYearView.
// The regime and a deep copy of the attribute set are captured under the
// store lock, so a view never races with writers mutating the live record.
type taxYearView struct {
	id     domain.TaxYearID
	regime models.Regime
	attrs  *attribute.Set[attribute.TaxYearClass]
}

func (v *taxYearView) TaxYearID() domain.TaxYearID {
	return v.id
}

func (v *taxYearView) Regime() (attribute.RegimeProfile, bool) {
	return v.regime.Profile()
}

func (v *taxYearView) Attributes() *attribute.Set[attribute.TaxYearClass] {
	return v.attrs
}
