package handler

import (
	"encoding/base64"
	"time"

	"github.com/shopspring/decimal"

	"finattr/internal/account/models"
	"finattr/internal/attribute"
	"finattr/pkg/domain"
	dErrors "finattr/pkg/domain-errors"
)

type createAccountRequest struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	TaxExempt bool   `json:"tax_exempt"`
}

type cloneAccountRequest struct {
	Name string `json:"name"`
}

// setAttributeRequest carries one attribute value as a string; the class's
// declared kind decides how it is decoded (decimals as decimal strings,
// references as UUIDs, blobs as base64).
type setAttributeRequest struct {
	Value string `json:"value"`
}

func (req setAttributeRequest) decode(kind attribute.ValueKind) (attribute.Value, error) {
	switch kind {
	case attribute.KindShortText:
		return attribute.ShortText(req.Value), nil
	case attribute.KindLongText:
		return attribute.LongText(req.Value), nil
	case attribute.KindDecimal:
		d, err := decimal.NewFromString(req.Value)
		if err != nil {
			return attribute.Value{}, dErrors.Wrap(dErrors.CodeInvalidInput, "malformed decimal value", err)
		}
		return attribute.Decimal(d), nil
	case attribute.KindAccountRef:
		id, err := domain.ParseAccountID(req.Value)
		if err != nil {
			return attribute.Value{}, err
		}
		return attribute.AccountRef(id), nil
	case attribute.KindCategoryRef:
		id, err := domain.ParseCategoryID(req.Value)
		if err != nil {
			return attribute.Value{}, err
		}
		return attribute.CategoryRef(id), nil
	case attribute.KindBlob:
		b, err := base64.StdEncoding.DecodeString(req.Value)
		if err != nil {
			return attribute.Value{}, dErrors.Wrap(dErrors.CodeInvalidInput, "malformed base64 value", err)
		}
		return attribute.Blob(b), nil
	default:
		return attribute.Value{}, dErrors.New(dErrors.CodeInternal, "unhandled value kind")
	}
}

type accountBody struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category,omitempty"`
	Closed     bool      `json:"closed"`
	TaxExempt  bool      `json:"tax_exempt"`
	Attributes int       `json:"attributes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func accountResponse(a *models.Account) accountBody {
	return accountBody{
		ID:         a.ID.String(),
		Name:       a.Name,
		Category:   a.Category.String(),
		Closed:     a.Closed,
		TaxExempt:  a.TaxExempt,
		Attributes: a.Attributes().LiveCount(),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

type requirementBody struct {
	Class string `json:"class"`
	Level string `json:"level"`
}

type violationBody struct {
	Kind   string `json:"kind"`
	Class  string `json:"class"`
	Detail string `json:"detail,omitempty"`
}

type validationBody struct {
	Valid      bool            `json:"valid"`
	Violations []violationBody `json:"violations"`
}
