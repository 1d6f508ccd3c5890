package pdf

import (
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/smallbiznis/scribe/internal/document/domain"
)

var paymentLabels = map[string]string{
	domain.PaymentTransfer:    "virement bancaire",
	domain.PaymentCheck:       "chèque",
	domain.PaymentCash:        "espèces",
	domain.PaymentDirectDebit: "prélèvement automatique",
}

func (r *Renderer) renderRentReceipt(m core.Maroto, receipt *domain.RentReceipt) {
	titleRow(m, "Quittance de loyer")

	m.AddRow(12,
		col.New(6).Add(
			text.New("Numéro : "+receipt.Number, props.Text{Top: 0}),
			text.New("Période : "+receipt.PeriodLabel(), props.Text{Top: 4}),
		),
		col.New(6),
	)

	m.AddRow(34,
		r.issuerCol(),
		partyCol("Locataire", receipt.TenantName, receipt.TenantAddress),
	)

	m.AddRow(8,
		text.NewCol(12, "Bien loué : "+receipt.PropertyAddress, props.Text{Size: 9}),
	)

	totalRow(m, "Loyer", euro(receipt.RentAmount), false)
	totalRow(m, "Charges", euro(receipt.ChargesAmount), false)
	totalRow(m, "Total", euro(receipt.TotalAmount()), true)

	m.AddRow(14,
		text.NewCol(12,
			"Reçu la somme de "+euro(receipt.TotalAmount())+
				" par "+paymentLabels[receipt.PaymentMethod]+
				" le "+frenchDate(receipt.PaymentDate)+
				", en paiement du loyer et des charges de la période "+receipt.PeriodLabel()+".",
			props.Text{Size: 9, Top: 4}),
	)

	m.AddRow(10,
		text.NewCol(12,
			"Cette quittance annule tous les reçus qui auraient pu être établis précédemment "+
				"pour la même période.",
			props.Text{Size: 8, Top: 2}),
	)
}
