package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finattr/internal/attribute"
	"finattr/internal/taxyear/models"
	"finattr/pkg/domain"
	dErrors "finattr/pkg/domain-errors"
)

func newYear(t *testing.T, startYear int, regime models.Regime) *models.TaxYear {
	t.Helper()
	year, err := models.NewTaxYear(domain.NewTaxYearID(), startYear, regime, time.Now())
	require.NoError(t, err)
	return year
}

func TestInMemoryStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	year := newYear(t, 2024, models.RegimeClassic)

	t.Run("get before save", func(t *testing.T) {
		_, err := s.Get(ctx, year.ID)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("save and get", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, year))
		got, err := s.Get(ctx, year.ID)
		require.NoError(t, err)
		assert.Same(t, year, got)
	})

	t.Run("list", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, newYear(t, 2025, models.RegimeClassic)))
		all, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestInMemoryStore_Snapshot(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	t.Run("unknown year", func(t *testing.T) {
		_, err := s.Snapshot(ctx, domain.NewTaxYearID())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("view captures the record", func(t *testing.T) {
		year := newYear(t, 2024, models.RegimeAdditional)
		require.NoError(t, year.Attributes().SetValue(attribute.TaxBasicRate, attribute.Decimal(decimal.NewFromInt(20))))
		require.NoError(t, s.Save(ctx, year))

		view, err := s.Snapshot(ctx, year.ID)
		require.NoError(t, err)
		assert.Equal(t, year.ID, view.TaxYearID())
		profile, ok := view.Regime()
		require.True(t, ok)
		assert.True(t, profile.AdditionalBand)

		assert.NotSame(t, year.Attributes(), view.Attributes())
		rate, ok, err := view.Attributes().Decimal(attribute.TaxBasicRate)
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, rate.Equal(decimal.NewFromInt(20)))
	})

	t.Run("view is isolated from later writes", func(t *testing.T) {
		year := newYear(t, 2024, models.RegimeClassic)
		require.NoError(t, s.Save(ctx, year))

		view, err := s.Snapshot(ctx, year.ID)
		require.NoError(t, err)
		require.NoError(t, s.UpdateAttributes(ctx, year.ID, func(set *attribute.Set[attribute.TaxYearClass]) error {
			return set.SetValue(attribute.TaxAllowance, attribute.Decimal(decimal.NewFromInt(12570)))
		}))

		_, ok, err := view.Attributes().Decimal(attribute.TaxAllowance)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("regimeless year has no profile", func(t *testing.T) {
		year := newYear(t, 2024, models.RegimeNone)
		require.NoError(t, s.Save(ctx, year))

		view, err := s.Snapshot(ctx, year.ID)
		require.NoError(t, err)
		_, ok := view.Regime()
		assert.False(t, ok)
	})
}

func TestInMemoryStore_UpdateAttributes(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	t.Run("unknown year", func(t *testing.T) {
		err := s.UpdateAttributes(ctx, domain.NewTaxYearID(), func(*attribute.Set[attribute.TaxYearClass]) error {
			return nil
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("mutation lands on the record", func(t *testing.T) {
		year := newYear(t, 2024, models.RegimeClassic)
		require.NoError(t, s.Save(ctx, year))

		require.NoError(t, s.UpdateAttributes(ctx, year.ID, func(set *attribute.Set[attribute.TaxYearClass]) error {
			return set.SetValue(attribute.TaxBasicRate, attribute.Decimal(decimal.NewFromInt(20)))
		}))

		rate, ok, err := year.Attributes().Decimal(attribute.TaxBasicRate)
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, rate.Equal(decimal.NewFromInt(20)))
	})

	t.Run("fn error propagates", func(t *testing.T) {
		year := newYear(t, 2025, models.RegimeClassic)
		require.NoError(t, s.Save(ctx, year))

		err := s.UpdateAttributes(ctx, year.ID, func(set *attribute.Set[attribute.TaxYearClass]) error {
			return set.SetValue(attribute.TaxBasicRate, attribute.ShortText("not a rate"))
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}
