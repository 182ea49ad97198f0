package attribute

// AccountClass enumerates the attribute classes an account record may carry.
// The set is closed; no account attribute exists outside AccountCatalog.
type AccountClass int

const (
	AccountParent AccountClass = iota
	AccountAlias
	AccountHolding
	AccountMaturity
	AccountSymbol
	AccountOpeningBalance
	AccountAutoExpense
	AccountNotes
	AccountSortCode
	AccountNumber
	AccountReference
	AccountComments
	AccountWebSite
	AccountCustomerNo
	AccountUserID
	AccountPassword
)

func (c AccountClass) String() string {
	if s, ok := AccountCatalog.Spec(c); ok {
		return s.Name
	}
	return "unknown"
}

// AccountCatalog declares every account attribute class with its value kind
// and, for text and blob kinds, its maximum length.
var AccountCatalog = NewCatalog(
	CatalogEntry[AccountClass]{AccountParent, Spec{Name: "parent", Kind: KindAccountRef}},
	CatalogEntry[AccountClass]{AccountAlias, Spec{Name: "alias", Kind: KindAccountRef}},
	CatalogEntry[AccountClass]{AccountHolding, Spec{Name: "holding", Kind: KindAccountRef}},
	CatalogEntry[AccountClass]{AccountMaturity, Spec{Name: "maturity", Kind: KindShortText, MaxLen: 20}},
	CatalogEntry[AccountClass]{AccountSymbol, Spec{Name: "symbol", Kind: KindShortText, MaxLen: 20}},
	CatalogEntry[AccountClass]{AccountOpeningBalance, Spec{Name: "opening_balance", Kind: KindDecimal}},
	CatalogEntry[AccountClass]{AccountAutoExpense, Spec{Name: "auto_expense", Kind: KindCategoryRef}},
	CatalogEntry[AccountClass]{AccountNotes, Spec{Name: "notes", Kind: KindLongText, MaxLen: 500}},
	CatalogEntry[AccountClass]{AccountSortCode, Spec{Name: "sort_code", Kind: KindShortText, MaxLen: 15}},
	CatalogEntry[AccountClass]{AccountNumber, Spec{Name: "account_number", Kind: KindShortText, MaxLen: 34}},
	CatalogEntry[AccountClass]{AccountReference, Spec{Name: "reference", Kind: KindShortText, MaxLen: 40}},
	CatalogEntry[AccountClass]{AccountComments, Spec{Name: "comments", Kind: KindLongText, MaxLen: 500}},
	CatalogEntry[AccountClass]{AccountWebSite, Spec{Name: "web_site", Kind: KindShortText, MaxLen: 120}},
	CatalogEntry[AccountClass]{AccountCustomerNo, Spec{Name: "customer_no", Kind: KindShortText, MaxLen: 40}},
	CatalogEntry[AccountClass]{AccountUserID, Spec{Name: "user_id", Kind: KindShortText, MaxLen: 40}},
	CatalogEntry[AccountClass]{AccountPassword, Spec{Name: "password", Kind: KindBlob, MaxLen: 64}},
)

// TaxYearClass enumerates the attribute classes a tax-year record may carry.
// All tax-year attributes are decimal rates, allowances, or thresholds.
type TaxYearClass int

const (
	TaxAllowance TaxYearClass = iota
	TaxLoAgeAllowance
	TaxHiAgeAllowance
	TaxAgeAllowanceLimit
	TaxBandLimit
	TaxBasicRate
	TaxHiRate
	TaxBasicDividendRate
	TaxHiDividendRate
	TaxCapitalAllowance
	TaxCapitalRate
	TaxHiCapitalRate
	TaxAdditionalRate
	TaxAdditionalDividendRate
	TaxAdditionalIncomeThreshold
	TaxAdditionalAllowanceLimit
)

func (c TaxYearClass) String() string {
	if s, ok := TaxYearCatalog.Spec(c); ok {
		return s.Name
	}
	return "unknown"
}

// TaxYearCatalog declares every tax-year attribute class.
var TaxYearCatalog = NewCatalog(
	CatalogEntry[TaxYearClass]{TaxAllowance, Spec{Name: "allowance", Kind: KindDecimal}},
	CatalogEntry[TaxYearClass]{TaxLoAgeAllowance, Spec{Name: "lo_age_allowance", Kind: KindDecimal}},
	CatalogEntry[TaxYearClass]{TaxHiAgeAllowance, Spec{Name: "hi_age_allowance", Kind: KindDecimal}},
	CatalogEntry[TaxYearClass]{TaxAgeAllowanceLimit, Spec{Name: "age_allowance_limit", Kind: KindDecimal}},
	CatalogEntry[TaxYearClass]{TaxBandLimit, Spec{Name: "band_limit", Kind: KindDecimal}},
	CatalogEntry[TaxYearClass]{TaxBasicRate, Spec{Name: "basic_rate", Kind: KindDecimal}},
	CatalogEntry[TaxYearClass]{TaxHiRate, Spec{Name: "hi_rate", Kind: KindDecimal}},
	CatalogEntry[TaxYearClass]{TaxBasicDividendRate, Spec{Name: "basic_dividend_rate", Kind: KindDecimal}},
	CatalogEntry[TaxYearClass]{TaxHiDividendRate, Spec{Name: "hi_dividend_rate", Kind: KindDecimal}},
	CatalogEntry[TaxYearClass]{TaxCapitalAllowance, Spec{Name: "capital_allowance", Kind: KindDecimal}},
	CatalogEntry[TaxYearClass]{TaxCapitalRate, Spec{Name: "capital_rate", Kind: KindDecimal}},
	CatalogEntry[TaxYearClass]{TaxHiCapitalRate, Spec{Name: "hi_capital_rate", Kind: KindDecimal}},
	CatalogEntry[TaxYearClass]{TaxAdditionalRate, Spec{Name: "additional_rate", Kind: KindDecimal}},
	CatalogEntry[TaxYearClass]{TaxAdditionalDividendRate, Spec{Name: "additional_dividend_rate", Kind: KindDecimal}},
	CatalogEntry[TaxYearClass]{TaxAdditionalIncomeThreshold, Spec{Name: "additional_income_threshold", Kind: KindDecimal}},
	CatalogEntry[TaxYearClass]{TaxAdditionalAllowanceLimit, Spec{Name: "additional_allowance_limit", Kind: KindDecimal}},
)
