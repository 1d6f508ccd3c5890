package pipeline

import (
	"github.com/smallbiznis/scribe/internal/document/domain"
)

const defaultQuoteValidityDays = 30

// BuildQuote validates and enriches devis input. The quote date defaults
// to today and the validity window to thirty days.
func BuildQuote(form Form, today domain.Date) (*domain.Quote, error) {
	clientName, err := form.RequiredString("client_name", "le nom du client est requis")
	if err != nil {
		return nil, err
	}
	clientAddress, err := form.RequiredString("client_address", "l'adresse du client est requise")
	if err != nil {
		return nil, err
	}

	quoteDate, err := form.DateOr("quote_date", today)
	if err != nil {
		return nil, err
	}
	validityDays, err := form.IntOr("validity_days", defaultQuoteValidityDays)
	if err != nil {
		return nil, err
	}

	items, err := lineItems(form)
	if err != nil {
		return nil, err
	}

	return domain.NewQuote(domain.Quote{
		QuoteDate:     quoteDate,
		ValidityDays:  validityDays,
		ClientName:    clientName,
		ClientAddress: clientAddress,
		ClientSIRET:   form.StringOr("client_siret", ""),
		Items:         items,
		Notes:         form.StringOr("notes", ""),
	})
}
