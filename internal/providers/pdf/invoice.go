package pdf

import (
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/smallbiznis/scribe/internal/document/domain"
)

func (r *Renderer) renderInvoice(m core.Maroto, inv *domain.Invoice) {
	titleRow(m, "Facture")

	m.AddRow(16,
		col.New(6).Add(
			text.New("Numéro : "+inv.Number, props.Text{Top: 0}),
			text.New("Date d'émission : "+frenchDate(inv.IssueDate), props.Text{Top: 4}),
			text.New("Date d'échéance : "+frenchDate(inv.DueDate), props.Text{Top: 8}),
		),
		col.New(6),
	)

	clientLines := []string{inv.ClientName, inv.ClientAddress}
	if inv.ClientSIRET != "" {
		clientLines = append(clientLines, "SIRET : "+inv.ClientSIRET)
	}
	m.AddRow(34,
		r.issuerCol(),
		partyCol("Facturé à", clientLines...),
	)

	lineItemsTable(m, inv.Items)

	totalRow(m, "Total HT", euro(inv.TotalExclTax()), false)
	totalRow(m, "TVA", euro(inv.TotalTax()), false)
	totalRow(m, "Total TTC", euro(inv.TotalInclTax()), true)

	m.AddRow(10,
		text.NewCol(12, inv.PaymentTerms, props.Text{Size: 9, Top: 4}),
	)
	if inv.Notes != "" {
		m.AddRow(10,
			text.NewCol(12, inv.Notes, props.Text{Size: 8, Top: 2}),
		)
	}
}

// lineItemsTable prints the item table shared by invoices and quotes.
func lineItemsTable(m core.Maroto, items []domain.LineItem) {
	m.AddRow(8,
		text.NewCol(5, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(1, "Qté", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Prix unitaire", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "TVA", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Total HT", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range items {
		m.AddRow(8,
			text.NewCol(5, item.Description, props.Text{Size: 9}),
			text.NewCol(1, item.Quantity.String(), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, euro(item.UnitPrice), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.TaxRate.Mul(hundred).StringFixed(0)+" %", props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, euro(item.TotalExclTax()), props.Text{Size: 9, Align: align.Right}),
		)
	}
}
