package pipeline

import (
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/scribe/internal/document/domain"
)

// BuildRentalCharges validates régularisation input. Both period bounds
// must be explicit, a charges statement over a guessed period would be
// meaningless. Provisions default to zero.
func BuildRentalCharges(form Form) (*domain.RentalCharges, error) {
	periodStart, err := form.RequiredDate("period_start", "la date de début de période est requise")
	if err != nil {
		return nil, err
	}
	periodEnd, err := form.RequiredDate("period_end", "la date de fin de période est requise")
	if err != nil {
		return nil, err
	}
	tenantName, err := form.RequiredString("tenant_name", "le nom du locataire est requis")
	if err != nil {
		return nil, err
	}
	propertyAddress, err := form.RequiredString("property_address", "l'adresse du bien est requise")
	if err != nil {
		return nil, err
	}

	chargeForms, ok, err := form.List("charges")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.MissingField("charges", "la liste des charges est requise")
	}

	charges := make([]domain.ChargeItem, 0, len(chargeForms))
	for _, chargeForm := range chargeForms {
		label, err := chargeForm.RequiredString("label", "le libellé de la charge est requis")
		if err != nil {
			return nil, err
		}
		amount, err := chargeForm.RequiredDecimal("amount", "le montant de la charge est requis")
		if err != nil {
			return nil, err
		}
		charge, err := domain.NewChargeItem(label, amount)
		if err != nil {
			return nil, err
		}
		charges = append(charges, charge)
	}

	provisions, err := form.DecimalOr("provisions_amount", decimal.Zero)
	if err != nil {
		return nil, err
	}

	return domain.NewRentalCharges(domain.RentalCharges{
		PeriodStart:      periodStart,
		PeriodEnd:        periodEnd,
		TenantName:       tenantName,
		PropertyAddress:  propertyAddress,
		Charges:          charges,
		ProvisionsAmount: provisions,
	})
}
