package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "finattr/pkg/domain-errors"
)

// TestParseAccountID_Invariants validates the trust-boundary invariant:
// IDs must be valid, non-empty, non-nil UUIDs.
func TestParseAccountID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseAccountID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseAccountID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseAccountID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseAccountID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, AccountID(validUUID), id)
	})
}

// TestParseIDs_Consistency verifies every ID type applies the same parsing
// rules.
func TestParseIDs_Consistency(t *testing.T) {
	valid := uuid.New().String()

	for _, input := range []string{"", "garbage", uuid.Nil.String()} {
		_, errAccount := ParseAccountID(input)
		_, errTaxYear := ParseTaxYearID(input)
		_, errCategory := ParseCategoryID(input)
		_, errEntry := ParseEntryID(input)
		assert.Error(t, errAccount)
		assert.Error(t, errTaxYear)
		assert.Error(t, errCategory)
		assert.Error(t, errEntry)
	}

	_, err := ParseTaxYearID(valid)
	assert.NoError(t, err)
	_, err = ParseCategoryID(valid)
	assert.NoError(t, err)
	_, err = ParseEntryID(valid)
	assert.NoError(t, err)
}

func TestID_StringRoundTrip(t *testing.T) {
	id := NewAccountID()
	parsed, err := ParseAccountID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestID_IsNil(t *testing.T) {
	assert.True(t, AccountID{}.IsNil())
	assert.True(t, TaxYearID{}.IsNil())
	assert.False(t, NewAccountID().IsNil())
	assert.False(t, NewEntryID().IsNil())
}

// TestTypeDistinction documents the compile-time invariant: distinct ID
// types cannot be mixed.
func TestTypeDistinction(t *testing.T) {
	accountID := AccountID(uuid.New())
	taxYearID := TaxYearID(uuid.New())

	// These would fail to compile if types were interchangeable:
	// var _ AccountID = taxYearID // compile error
	// var _ TaxYearID = accountID // compile error

	assert.NotEqual(t, uuid.UUID(accountID), uuid.UUID(taxYearID))
}
