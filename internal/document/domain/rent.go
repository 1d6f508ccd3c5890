package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/scribe/internal/money"
)

// Payment methods accepted on rent receipts.
const (
	PaymentTransfer    = "transfer"
	PaymentCheck       = "check"
	PaymentCash        = "cash"
	PaymentDirectDebit = "direct-debit"
)

var frenchMonths = [12]string{
	"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}

// RentReceipt is a quittance de loyer for one rental period.
type RentReceipt struct {
	Number          string          `json:"receipt_number"`
	PeriodMonth     int             `json:"period_month"`
	PeriodYear      int             `json:"period_year"`
	TenantName      string          `json:"tenant_name"`
	TenantAddress   string          `json:"tenant_address"`
	PropertyAddress string          `json:"property_address"`
	RentAmount      decimal.Decimal `json:"rent_amount"`
	ChargesAmount   decimal.Decimal `json:"charges_amount"`
	PaymentDate     Date            `json:"payment_date"`
	PaymentMethod   string          `json:"payment_method"`
}

func NewRentReceipt(r RentReceipt) (*RentReceipt, error) {
	if strings.TrimSpace(r.TenantName) == "" {
		return nil, MissingField("tenant_name", "le nom du locataire est requis")
	}
	if strings.TrimSpace(r.TenantAddress) == "" {
		return nil, MissingField("tenant_address", "l'adresse du locataire est requise")
	}
	if strings.TrimSpace(r.PropertyAddress) == "" {
		// Callers default the property to the tenant address; empty here
		// means both were missing.
		return nil, MissingField("property_address", "l'adresse du bien loué est requise")
	}
	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		return nil, ConstraintViolation("period_month", "le mois de la période doit être compris entre 1 et 12")
	}
	if r.PeriodYear < 2000 {
		return nil, ConstraintViolation("period_year", "l'année de la période doit être supérieure ou égale à 2000")
	}
	if !r.RentAmount.IsPositive() {
		return nil, ConstraintViolation("rent_amount", "le montant du loyer doit être strictement positif")
	}
	if r.ChargesAmount.IsNegative() {
		return nil, ConstraintViolation("charges_amount", "le montant des charges ne peut pas être négatif")
	}
	if r.PaymentDate.IsZero() {
		return nil, MissingField("payment_date", "la date de paiement est requise")
	}
	switch r.PaymentMethod {
	case PaymentTransfer, PaymentCheck, PaymentCash, PaymentDirectDebit:
	default:
		return nil, ConstraintViolation("payment_method",
			"le moyen de paiement doit être transfer, check, cash ou direct-debit")
	}
	return &r, nil
}

// TotalAmount is rent plus charges.
func (r *RentReceipt) TotalAmount() decimal.Decimal {
	return r.RentAmount.Add(r.ChargesAmount)
}

// PeriodLabel renders the rental period in French, e.g. "Janvier 2024".
func (r *RentReceipt) PeriodLabel() string {
	return fmt.Sprintf("%s %d", frenchMonths[r.PeriodMonth-1], r.PeriodYear)
}

// ChargeItem is one line of a rental charges statement.
type ChargeItem struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

func NewChargeItem(label string, amount decimal.Decimal) (ChargeItem, error) {
	if strings.TrimSpace(label) == "" {
		return ChargeItem{}, MissingField("label", "le libellé de la charge est requis")
	}
	if amount.IsNegative() {
		return ChargeItem{}, ConstraintViolation("amount", "le montant de la charge ne peut pas être négatif")
	}
	return ChargeItem{Label: strings.TrimSpace(label), Amount: amount}, nil
}

// RentalCharges is a régularisation de charges statement for a closed
// period. The document number is year-scoped by the period end.
type RentalCharges struct {
	Number           string          `json:"document_number"`
	PeriodStart      Date            `json:"period_start"`
	PeriodEnd        Date            `json:"period_end"`
	TenantName       string          `json:"tenant_name"`
	PropertyAddress  string          `json:"property_address"`
	Charges          []ChargeItem    `json:"charges"`
	ProvisionsAmount decimal.Decimal `json:"provisions_amount"`
}

func NewRentalCharges(rc RentalCharges) (*RentalCharges, error) {
	if rc.PeriodStart.IsZero() {
		return nil, MissingField("period_start", "la date de début de période est requise")
	}
	if rc.PeriodEnd.IsZero() {
		return nil, MissingField("period_end", "la date de fin de période est requise")
	}
	if !rc.PeriodEnd.After(rc.PeriodStart) {
		return nil, ConstraintViolation("period_end", "la fin de période doit être postérieure au début")
	}
	if strings.TrimSpace(rc.TenantName) == "" {
		return nil, MissingField("tenant_name", "le nom du locataire est requis")
	}
	if strings.TrimSpace(rc.PropertyAddress) == "" {
		return nil, MissingField("property_address", "l'adresse du bien est requise")
	}
	if len(rc.Charges) == 0 {
		return nil, ConstraintViolation("charges", "la liste des charges est requise")
	}
	if rc.ProvisionsAmount.IsNegative() {
		return nil, ConstraintViolation("provisions_amount", "les provisions ne peuvent pas être négatives")
	}
	return &rc, nil
}

// TotalCharges is the exact rounded sum of all charge lines.
func (rc *RentalCharges) TotalCharges() decimal.Decimal {
	amounts := make([]decimal.Decimal, 0, len(rc.Charges))
	for _, c := range rc.Charges {
		amounts = append(amounts, c.Amount)
	}
	return money.ChargesTotal(amounts)
}

// RegularizationAmount is total charges minus provisions already paid.
// Positive means the tenant owes the balance, negative means a refund.
func (rc *RentalCharges) RegularizationAmount() decimal.Decimal {
	return rc.TotalCharges().Sub(rc.ProvisionsAmount)
}
