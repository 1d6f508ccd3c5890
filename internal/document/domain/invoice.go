package domain

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/scribe/internal/money"
)

// DefaultPaymentTerms is printed on invoices that do not override it.
const DefaultPaymentTerms = "Paiement à 30 jours"

// LineItem is one line of an invoice or quote. Immutable once built.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

// NewLineItem validates and builds a line item. Absent tax rates are
// resolved by the pipeline before this call; a zero rate here means
// genuinely tax-free.
func NewLineItem(description string, quantity, unitPrice, taxRate decimal.Decimal) (LineItem, error) {
	if strings.TrimSpace(description) == "" {
		return LineItem{}, MissingField("description", "la description de l'article est requise")
	}
	if !quantity.IsPositive() {
		return LineItem{}, ConstraintViolation("quantity", "la quantité doit être strictement positive")
	}
	if unitPrice.IsNegative() {
		return LineItem{}, ConstraintViolation("unit_price", "le prix unitaire ne peut pas être négatif")
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(decimal.NewFromInt(1)) {
		return LineItem{}, ConstraintViolation("tax_rate", "le taux de TVA doit être compris entre 0 et 1")
	}
	return LineItem{
		Description: strings.TrimSpace(description),
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TaxRate:     taxRate,
	}, nil
}

// TotalExclTax returns the rounded HT amount of the line.
func (li LineItem) TotalExclTax() decimal.Decimal {
	ht, _, _ := money.ItemTotals(li.Quantity, li.UnitPrice, li.TaxRate)
	return ht
}

// TaxAmount returns the TVA derived from the rounded HT amount.
func (li LineItem) TaxAmount() decimal.Decimal {
	_, tva, _ := money.ItemTotals(li.Quantity, li.UnitPrice, li.TaxRate)
	return tva
}

// TotalInclTax returns the TTC amount, the sum of the rounded HT and TVA.
func (li LineItem) TotalInclTax() decimal.Decimal {
	_, _, ttc := money.ItemTotals(li.Quantity, li.UnitPrice, li.TaxRate)
	return ttc
}

// Invoice is a validated French invoice. Number is assigned by the sequence
// allocator when the document commits.
type Invoice struct {
	Number        string     `json:"invoice_number"`
	IssueDate     Date       `json:"invoice_date"`
	DueDate       Date       `json:"due_date"`
	ClientName    string     `json:"client_name"`
	ClientAddress string     `json:"client_address"`
	ClientSIRET   string     `json:"client_siret,omitempty"`
	Items         []LineItem `json:"items"`
	PaymentTerms  string     `json:"payment_terms"`
	Notes         string     `json:"notes,omitempty"`
}

// NewInvoice re-validates cross-field invariants and returns the immutable
// model. Pipelines are the only callers.
func NewInvoice(inv Invoice) (*Invoice, error) {
	if strings.TrimSpace(inv.ClientName) == "" {
		return nil, MissingField("client_name", "le nom du client est requis")
	}
	if strings.TrimSpace(inv.ClientAddress) == "" {
		return nil, MissingField("client_address", "l'adresse du client est requise")
	}
	if inv.IssueDate.IsZero() {
		return nil, MissingField("invoice_date", "la date de facturation est requise")
	}
	if inv.DueDate.IsZero() {
		return nil, MissingField("due_date", "la date d'échéance est requise")
	}
	if inv.DueDate.Before(inv.IssueDate) {
		return nil, ConstraintViolation("due_date", "la date d'échéance doit être postérieure à la date de facturation")
	}
	if len(inv.Items) == 0 {
		return nil, ConstraintViolation("items", "au moins un article est requis")
	}

	siret, err := NormalizeSIRET(inv.ClientSIRET)
	if err != nil {
		return nil, err
	}
	inv.ClientSIRET = siret

	if strings.TrimSpace(inv.PaymentTerms) == "" {
		inv.PaymentTerms = DefaultPaymentTerms
	}
	return &inv, nil
}

// TotalExclTax sums line HT amounts.
func (inv *Invoice) TotalExclTax() decimal.Decimal {
	return sumLines(inv.Items, LineItem.TotalExclTax)
}

// TotalTax sums line TVA amounts.
func (inv *Invoice) TotalTax() decimal.Decimal {
	return sumLines(inv.Items, LineItem.TaxAmount)
}

// TotalInclTax sums line TTC amounts.
func (inv *Invoice) TotalInclTax() decimal.Decimal {
	return sumLines(inv.Items, LineItem.TotalInclTax)
}

// Quote is a validated devis. Structurally close to Invoice but a distinct
// entity: its own numbering namespace and validity semantics instead of a
// due date.
type Quote struct {
	Number        string     `json:"quote_number"`
	QuoteDate     Date       `json:"quote_date"`
	ValidityDays  int        `json:"validity_days"`
	ClientName    string     `json:"client_name"`
	ClientAddress string     `json:"client_address"`
	ClientSIRET   string     `json:"client_siret,omitempty"`
	Items         []LineItem `json:"items"`
	Notes         string     `json:"notes,omitempty"`
}

func NewQuote(q Quote) (*Quote, error) {
	if strings.TrimSpace(q.ClientName) == "" {
		return nil, MissingField("client_name", "le nom du client est requis")
	}
	if strings.TrimSpace(q.ClientAddress) == "" {
		return nil, MissingField("client_address", "l'adresse du client est requise")
	}
	if q.QuoteDate.IsZero() {
		return nil, MissingField("quote_date", "la date du devis est requise")
	}
	if q.ValidityDays <= 0 {
		return nil, ConstraintViolation("validity_days", "la durée de validité doit être strictement positive")
	}
	if len(q.Items) == 0 {
		return nil, ConstraintViolation("items", "au moins un article est requis")
	}

	siret, err := NormalizeSIRET(q.ClientSIRET)
	if err != nil {
		return nil, err
	}
	q.ClientSIRET = siret
	return &q, nil
}

// ValidUntil is the last day the quote can be accepted.
func (q *Quote) ValidUntil() Date {
	return q.QuoteDate.AddDays(q.ValidityDays)
}

func (q *Quote) TotalExclTax() decimal.Decimal {
	return sumLines(q.Items, LineItem.TotalExclTax)
}

func (q *Quote) TotalTax() decimal.Decimal {
	return sumLines(q.Items, LineItem.TaxAmount)
}

func (q *Quote) TotalInclTax() decimal.Decimal {
	return sumLines(q.Items, LineItem.TotalInclTax)
}

// NormalizeSIRET strips whitespace and validates the 14-digit format.
// Empty input is allowed, the SIRET is optional on client records.
func NormalizeSIRET(raw string) (string, error) {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	if stripped == "" {
		return "", nil
	}
	if len(stripped) != 14 {
		return "", ConstraintViolation("client_siret", "le SIRET doit contenir exactement 14 chiffres")
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return "", ConstraintViolation("client_siret", "le SIRET doit contenir exactement 14 chiffres")
		}
	}
	return stripped, nil
}

func sumLines(items []LineItem, f func(LineItem) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(f(item))
	}
	return total
}
