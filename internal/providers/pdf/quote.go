package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/scribe/internal/document/domain"
)

var hundred = decimal.NewFromInt(100)

func (r *Renderer) renderQuote(m core.Maroto, q *domain.Quote) {
	titleRow(m, "Devis")

	m.AddRow(16,
		col.New(6).Add(
			text.New("Numéro : "+q.Number, props.Text{Top: 0}),
			text.New("Date : "+frenchDate(q.QuoteDate), props.Text{Top: 4}),
			text.New(fmt.Sprintf("Valable jusqu'au %s (%d jours)", frenchDate(q.ValidUntil()), q.ValidityDays), props.Text{Top: 8}),
		),
		col.New(6),
	)

	clientLines := []string{q.ClientName, q.ClientAddress}
	if q.ClientSIRET != "" {
		clientLines = append(clientLines, "SIRET : "+q.ClientSIRET)
	}
	m.AddRow(34,
		r.issuerCol(),
		partyCol("À l'attention de", clientLines...),
	)

	lineItemsTable(m, q.Items)

	totalRow(m, "Total HT", euro(q.TotalExclTax()), false)
	totalRow(m, "TVA", euro(q.TotalTax()), false)
	totalRow(m, "Total TTC", euro(q.TotalInclTax()), true)

	if q.Notes != "" {
		m.AddRow(10,
			text.NewCol(12, q.Notes, props.Text{Size: 8, Top: 4}),
		)
	}
}
