package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finattr/internal/account/service"
	"finattr/internal/account/store"
	"finattr/internal/attribute"
	"finattr/internal/platform/metrics"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	st := store.NewInMemory()
	m := metrics.NewWith(prometheus.NewRegistry())
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewService(st, attribute.NewAccountValidator(st), m, log)

	r := chi.NewRouter()
	New(svc, log).Register(r)
	return r
}

func doJSON(t *testing.T, r chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func createAccount(t *testing.T, r chi.Router, name, category string) accountBody {
	t.Helper()
	rec := doJSON(t, r, http.MethodPost, "/accounts", createAccountRequest{Name: name, Category: category})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[accountBody](t, rec)
}

func TestHandler_Create(t *testing.T) {
	r := newTestRouter(t)

	t.Run("created", func(t *testing.T) {
		acct := createAccount(t, r, "Halifax ISA", "savings")
		assert.NotEmpty(t, acct.ID)
		assert.Equal(t, "savings", acct.Category)
		assert.Equal(t, 0, acct.Attributes)
	})

	t.Run("unknown category", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/accounts", createAccountRequest{Name: "X", Category: "mattress"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty name maps to 422", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/accounts", createAccountRequest{Name: "", Category: "savings"})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_GetAndList(t *testing.T) {
	r := newTestRouter(t)
	acct := createAccount(t, r, "Checking", "cash")

	t.Run("get", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/accounts/"+acct.ID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, acct.ID, decode[accountBody](t, rec).ID)
	})

	t.Run("get unknown", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/accounts/0b9ff0b0-0000-4000-8000-000000000001", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("get malformed id", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/accounts/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/accounts", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]accountBody](t, rec), 1)
	})
}

func TestHandler_Attributes(t *testing.T) {
	r := newTestRouter(t)
	acct := createAccount(t, r, "Savings", "savings")
	attrPath := func(class string) string {
		return fmt.Sprintf("/accounts/%s/attributes/%s", acct.ID, class)
	}

	t.Run("set text attribute", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPut, attrPath("sort_code"), setAttributeRequest{Value: "20-00-00"})
		assert.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	})

	t.Run("set decimal attribute", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPut, attrPath("opening_balance"), setAttributeRequest{Value: "1250.50"})
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("malformed decimal", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPut, attrPath("opening_balance"), setAttributeRequest{Value: "lots"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown class", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPut, attrPath("shoe_size"), setAttributeRequest{Value: "42"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("requirement", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, attrPath("alias")+"/requirement", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[requirementBody](t, rec)
		assert.Equal(t, "alias", body.Class)
		assert.Equal(t, "not_allowed", body.Level)
	})

	t.Run("clear attribute", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodDelete, attrPath("opening_balance"), nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestHandler_Validate(t *testing.T) {
	r := newTestRouter(t)
	acct := createAccount(t, r, "Savings", "savings")

	t.Run("reports findings", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/accounts/"+acct.ID+"/validate", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[validationBody](t, rec)
		assert.False(t, body.Valid)
		require.Len(t, body.Violations, 1)
		assert.Equal(t, "missing_required_field", body.Violations[0].Kind)
		assert.Equal(t, "sort_code", body.Violations[0].Class)
	})

	t.Run("valid once complete", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPut, "/accounts/"+acct.ID+"/attributes/sort_code", setAttributeRequest{Value: "20-00-00"})
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doJSON(t, r, http.MethodPost, "/accounts/"+acct.ID+"/validate", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[validationBody](t, rec)
		assert.True(t, body.Valid)
		assert.Empty(t, body.Violations)
	})
}

func TestHandler_Clone(t *testing.T) {
	r := newTestRouter(t)
	acct := createAccount(t, r, "Original", "savings")
	rec := doJSON(t, r, http.MethodPut, "/accounts/"+acct.ID+"/attributes/sort_code", setAttributeRequest{Value: "20-00-00"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/accounts/"+acct.ID+"/clone", cloneAccountRequest{Name: "Duplicate"})
	require.Equal(t, http.StatusCreated, rec.Code)
	clone := decode[accountBody](t, rec)
	assert.NotEqual(t, acct.ID, clone.ID)
	assert.Equal(t, "Duplicate", clone.Name)
	assert.Equal(t, 1, clone.Attributes)
}
