package attribute

import (
	"github.com/shopspring/decimal"

	"finattr/pkg/domain"
	dErrors "finattr/pkg/domain-errors"
)

// Value is a tagged union over the supported value kinds. Construct via the
// kind-specific constructors; the zero Value is a zero-length short text.
//
// Typed getters return a domain error with CodeInvariantViolation when the
// requested kind disagrees with the stored kind. That is a programming
// contract violation (catalog drift), never a user-data problem.
type Value struct {
	kind ValueKind
	str  string
	dec  decimal.Decimal
	acct domain.AccountID
	cat  domain.CategoryID
	blob []byte
}

// ShortText wraps a short text payload.
func ShortText(s string) Value {
	return Value{kind: KindShortText, str: s}
}

// LongText wraps a long text payload.
func LongText(s string) Value {
	return Value{kind: KindLongText, str: s}
}

// Decimal wraps a decimal payload.
func Decimal(d decimal.Decimal) Value {
	return Value{kind: KindDecimal, dec: d}
}

// AccountRef wraps a reference to another account. The reference is a
// relation by identity, never ownership; resolution goes through a registry.
func AccountRef(id domain.AccountID) Value {
	return Value{kind: KindAccountRef, acct: id}
}

// CategoryRef wraps a reference to an expense/income category.
func CategoryRef(id domain.CategoryID) Value {
	return Value{kind: KindCategoryRef, cat: id}
}

// Blob wraps an opaque byte payload. The input is copied.
func Blob(b []byte) Value {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Value{kind: KindBlob, blob: cp}
}

// Kind returns the stored value's kind.
func (v Value) Kind() ValueKind {
	return v.kind
}

func (v Value) mismatch(want ValueKind) error {
	return dErrors.New(dErrors.CodeInvariantViolation,
		"attribute value kind mismatch: have "+v.kind.String()+", want "+want.String())
}

// Text returns the payload of a short or long text value.
func (v Value) Text() (string, error) {
	if v.kind != KindShortText && v.kind != KindLongText {
		return "", v.mismatch(KindShortText)
	}
	return v.str, nil
}

// Decimal returns the payload of a decimal value.
func (v Value) Decimal() (decimal.Decimal, error) {
	if v.kind != KindDecimal {
		return decimal.Decimal{}, v.mismatch(KindDecimal)
	}
	return v.dec, nil
}

// AccountRef returns the payload of an account reference value.
func (v Value) AccountRef() (domain.AccountID, error) {
	if v.kind != KindAccountRef {
		return domain.AccountID{}, v.mismatch(KindAccountRef)
	}
	return v.acct, nil
}

// CategoryRef returns the payload of a category reference value.
func (v Value) CategoryRef() (domain.CategoryID, error) {
	if v.kind != KindCategoryRef {
		return domain.CategoryID{}, v.mismatch(KindCategoryRef)
	}
	return v.cat, nil
}

// Blob returns a copy of the payload of a blob value.
func (v Value) Blob() ([]byte, error) {
	if v.kind != KindBlob {
		return nil, v.mismatch(KindBlob)
	}
	cp := make([]byte, len(v.blob))
	copy(cp, v.blob)
	return cp, nil
}

// Len returns the payload length in bytes for text and blob kinds, zero for
// all other kinds. Used by the validator's length checks.
func (v Value) Len() int {
	switch v.kind {
	case KindShortText, KindLongText:
		return len(v.str)
	case KindBlob:
		return len(v.blob)
	default:
		return 0
	}
}

// Equal reports whether two values share kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindShortText, KindLongText:
		return v.str == o.str
	case KindDecimal:
		return v.dec.Equal(o.dec)
	case KindAccountRef:
		return v.acct == o.acct
	case KindCategoryRef:
		return v.cat == o.cat
	case KindBlob:
		if len(v.blob) != len(o.blob) {
			return false
		}
		for i := range v.blob {
			if v.blob[i] != o.blob[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// copyValue deep-copies a value so cloned sets never alias blob payloads.
func copyValue(v Value) Value {
	if v.kind == KindBlob {
		return Blob(v.blob)
	}
	return v
}
