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

func (r *Renderer) renderRentalCharges(m core.Maroto, rc *domain.RentalCharges) {
	titleRow(m, "Régularisation des charges locatives")

	m.AddRow(12,
		col.New(6).Add(
			text.New("Numéro : "+rc.Number, props.Text{Top: 0}),
			text.New("Période : du "+frenchDate(rc.PeriodStart)+" au "+frenchDate(rc.PeriodEnd), props.Text{Top: 4}),
		),
		col.New(6),
	)

	m.AddRow(34,
		r.issuerCol(),
		partyCol("Locataire", rc.TenantName, rc.PropertyAddress),
	)

	m.AddRow(8,
		text.NewCol(8, "Charge", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(4, "Montant", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	for _, charge := range rc.Charges {
		m.AddRow(8,
			text.NewCol(8, charge.Label, props.Text{Size: 9}),
			text.NewCol(4, euro(charge.Amount), props.Text{Size: 9, Align: align.Right}),
		)
	}

	totalRow(m, "Total des charges", euro(rc.TotalCharges()), false)
	totalRow(m, "Provisions versées", euro(rc.ProvisionsAmount), false)

	balance := rc.RegularizationAmount()
	label := "Solde dû par le locataire"
	if balance.IsNegative() {
		label = "Trop-perçu à rembourser au locataire"
		balance = balance.Neg()
	}
	totalRow(m, label, euro(balance), true)
}
