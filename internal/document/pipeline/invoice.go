package pipeline

import (
	"github.com/smallbiznis/scribe/internal/document/domain"
	"github.com/smallbiznis/scribe/internal/money"
)

const defaultPaymentDelayDays = 30

// BuildInvoice validates and enriches invoice input. The issue date
// defaults to today and the due date to thirty days after the issue date.
func BuildInvoice(form Form, today domain.Date) (*domain.Invoice, error) {
	clientName, err := form.RequiredString("client_name", "le nom du client est requis")
	if err != nil {
		return nil, err
	}
	clientAddress, err := form.RequiredString("client_address", "l'adresse du client est requise")
	if err != nil {
		return nil, err
	}

	issueDate, err := form.DateOr("invoice_date", today)
	if err != nil {
		return nil, err
	}
	dueDate, err := form.DateOr("due_date", issueDate.AddDays(defaultPaymentDelayDays))
	if err != nil {
		return nil, err
	}

	items, err := lineItems(form)
	if err != nil {
		return nil, err
	}

	return domain.NewInvoice(domain.Invoice{
		IssueDate:     issueDate,
		DueDate:       dueDate,
		ClientName:    clientName,
		ClientAddress: clientAddress,
		ClientSIRET:   form.StringOr("client_siret", ""),
		Items:         items,
		PaymentTerms:  form.StringOr("payment_terms", ""),
		Notes:         form.StringOr("notes", ""),
	})
}

// lineItems reads the items list shared by invoices and quotes. An absent
// tax rate falls back to the standard French VAT rate; an explicit zero
// means genuinely tax-free.
func lineItems(form Form) ([]domain.LineItem, error) {
	raw, ok, err := form.List("items")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.MissingField("items", "au moins un article est requis")
	}

	items := make([]domain.LineItem, 0, len(raw))
	for _, itemForm := range raw {
		description, err := itemForm.RequiredString("description", "la description de l'article est requise")
		if err != nil {
			return nil, err
		}
		quantity, err := itemForm.RequiredDecimal("quantity", "la quantité de l'article est requise")
		if err != nil {
			return nil, err
		}
		unitPrice, err := itemForm.RequiredDecimal("unit_price", "le prix unitaire de l'article est requis")
		if err != nil {
			return nil, err
		}
		taxRate, err := itemForm.DecimalOr("tax_rate", money.DefaultTaxRate)
		if err != nil {
			return nil, err
		}

		item, err := domain.NewLineItem(description, quantity, unitPrice, taxRate)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
