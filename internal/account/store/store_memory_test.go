package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finattr/internal/account/models"
	"finattr/internal/attribute"
	"finattr/internal/ledger"
	"finattr/pkg/domain"
	dErrors "finattr/pkg/domain-errors"
)

func newAccount(t *testing.T, name string, category models.Category) *models.Account {
	t.Helper()
	acct, err := models.NewAccount(domain.NewAccountID(), name, category, time.Now())
	require.NoError(t, err)
	return acct
}

func TestInMemoryStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	acct := newAccount(t, "Checking", models.CategoryCash)

	t.Run("get before save", func(t *testing.T) {
		_, err := s.Get(ctx, acct.ID)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("save and get", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, acct))
		got, err := s.Get(ctx, acct.ID)
		require.NoError(t, err)
		assert.Same(t, acct, got)
	})

	t.Run("save is an upsert", func(t *testing.T) {
		acct.Name = "Renamed"
		require.NoError(t, s.Save(ctx, acct))
		all, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("list", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, newAccount(t, "Second", models.CategorySavings)))
		all, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestInMemoryStore_RecordPrice(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	t.Run("unknown account", func(t *testing.T) {
		err := s.RecordPrice(ctx, domain.NewAccountID())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("feeds the price history fact", func(t *testing.T) {
		acct := newAccount(t, "Vodafone", models.CategoryShare)
		require.NoError(t, s.Save(ctx, acct))

		view, err := s.Snapshot(ctx, acct.ID)
		require.NoError(t, err)
		assert.False(t, view.HasPriceHistory())

		require.NoError(t, s.RecordPrice(ctx, acct.ID))
		view, err = s.Snapshot(ctx, acct.ID)
		require.NoError(t, err)
		assert.True(t, view.HasPriceHistory())
	})
}

func TestInMemoryStore_Snapshot(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	t.Run("unknown account", func(t *testing.T) {
		_, err := s.Snapshot(ctx, domain.NewAccountID())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("basic facts mirror the record", func(t *testing.T) {
		acct := newAccount(t, "Shares", models.CategoryShare)
		acct.TaxExempt = true
		require.NoError(t, s.Save(ctx, acct))

		view, err := s.Snapshot(ctx, acct.ID)
		require.NoError(t, err)
		assert.Equal(t, acct.ID, view.AccountID())
		assert.Equal(t, "share", view.CategoryCode())
		assert.True(t, view.TaxExempt())
		assert.True(t, view.HasUnits())
		assert.False(t, view.Closed())
	})

	t.Run("alias target fact scans other accounts", func(t *testing.T) {
		owner := newAccount(t, "GIA Shares", models.CategoryShare)
		target := newAccount(t, "ISA Shares", models.CategoryShare)
		require.NoError(t, s.Save(ctx, owner))
		require.NoError(t, s.Save(ctx, target))
		require.NoError(t, owner.Attributes().SetValue(attribute.AccountAlias, attribute.AccountRef(target.ID)))

		view, err := s.Snapshot(ctx, target.ID)
		require.NoError(t, err)
		assert.True(t, view.AliasTarget())

		// Clearing the alias retracts the fact.
		owner.Attributes().Clear(attribute.AccountAlias)
		view, err = s.Snapshot(ctx, target.ID)
		require.NoError(t, err)
		assert.False(t, view.AliasTarget())
	})

	t.Run("transaction history fact scans ledger events", func(t *testing.T) {
		checking := newAccount(t, "Main", models.CategoryCash)
		groceries := newAccount(t, "Groceries", models.CategoryCash)
		require.NoError(t, s.Save(ctx, checking))
		require.NoError(t, s.Save(ctx, groceries))

		ev := ledger.NewEvent(&ledger.Entry{
			ID:      domain.NewEntryID(),
			Account: checking.ID,
			Amount:  decimal.NewFromInt(-100),
		})
		ev.AddSplit(&ledger.Entry{
			ID:      domain.NewEntryID(),
			Account: groceries.ID,
			Amount:  decimal.NewFromInt(100),
		})
		require.NoError(t, s.AppendEvent(ctx, ev))

		for _, id := range []domain.AccountID{checking.ID, groceries.ID} {
			view, err := s.Snapshot(ctx, id)
			require.NoError(t, err)
			assert.True(t, view.HasTransactionHistory())
		}

		uninvolved, err := s.Snapshot(ctx, newSaved(t, s, "Idle").ID)
		require.NoError(t, err)
		assert.False(t, uninvolved.HasTransactionHistory())
	})
}

func TestInMemoryStore_UpdateAttributes(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	t.Run("unknown account", func(t *testing.T) {
		err := s.UpdateAttributes(ctx, domain.NewAccountID(), func(*attribute.Set[attribute.AccountClass]) error {
			return nil
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("mutation lands on the record", func(t *testing.T) {
		acct := newAccount(t, "Main", models.CategoryCash)
		require.NoError(t, s.Save(ctx, acct))

		require.NoError(t, s.UpdateAttributes(ctx, acct.ID, func(set *attribute.Set[attribute.AccountClass]) error {
			return set.SetValue(attribute.AccountSortCode, attribute.ShortText("20-00-00"))
		}))

		code, ok, err := acct.Attributes().Text(attribute.AccountSortCode)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "20-00-00", code)
	})

	t.Run("fn error propagates", func(t *testing.T) {
		acct := newAccount(t, "Strict", models.CategoryCash)
		require.NoError(t, s.Save(ctx, acct))

		err := s.UpdateAttributes(ctx, acct.ID, func(set *attribute.Set[attribute.AccountClass]) error {
			return set.SetValue(attribute.AccountSortCode, attribute.Decimal(decimal.NewFromInt(1)))
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func TestInMemoryStore_SnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	acct := newAccount(t, "Frozen", models.CategoryCash)
	require.NoError(t, s.Save(ctx, acct))

	view, err := s.Snapshot(ctx, acct.ID)
	require.NoError(t, err)
	assert.NotSame(t, acct.Attributes(), view.Attributes())

	require.NoError(t, s.UpdateAttributes(ctx, acct.ID, func(set *attribute.Set[attribute.AccountClass]) error {
		return set.SetValue(attribute.AccountSortCode, attribute.ShortText("40-11-22"))
	}))

	// The view was taken before the write and must not observe it.
	_, ok, err := view.Attributes().Text(attribute.AccountSortCode)
	require.NoError(t, err)
	assert.False(t, ok)
}

func newSaved(t *testing.T, s *InMemoryStore, name string) *models.Account {
	t.Helper()
	acct := newAccount(t, name, models.CategorySavings)
	require.NoError(t, s.Save(context.Background(), acct))
	return acct
}

func TestInMemoryStore_Lookup(t *testing.T) {
	s := NewInMemory()
	acct := newSaved(t, s, "Lookup target")

	view, ok := s.Lookup(acct.ID)
	require.True(t, ok)
	assert.Equal(t, acct.ID, view.AccountID())

	_, ok = s.Lookup(domain.NewAccountID())
	assert.False(t, ok)
}

func TestInMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	acct := newSaved(t, s, "Shared")

	others := make([]*models.Account, 10)
	for i := range others {
		others[i] = newAccount(t, fmt.Sprintf("writer-%d", i), models.CategorySavings)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = s.Save(ctx, others[i])
			_ = s.RecordPrice(ctx, acct.ID)
		}(i)
		go func() {
			defer wg.Done()
			if view, err := s.Snapshot(ctx, acct.ID); err == nil {
				_ = view.HasPriceHistory()
			}
			_, _ = s.List(ctx)
		}()
	}
	wg.Wait()

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 11)
}
