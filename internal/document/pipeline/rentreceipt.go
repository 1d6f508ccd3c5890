package pipeline

import (
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/scribe/internal/document/domain"
)

// BuildRentReceipt validates and enriches quittance input. The rental
// period defaults to the current month, the property address to the
// tenant address, the payment date to today and the method to transfer.
func BuildRentReceipt(form Form, today domain.Date) (*domain.RentReceipt, error) {
	tenantName, err := form.RequiredString("tenant_name", "le nom du locataire est requis")
	if err != nil {
		return nil, err
	}
	tenantAddress, err := form.RequiredString("tenant_address", "l'adresse du locataire est requise")
	if err != nil {
		return nil, err
	}

	periodMonth, err := form.IntOr("period_month", int(today.Month()))
	if err != nil {
		return nil, err
	}
	periodYear, err := form.IntOr("period_year", today.Year())
	if err != nil {
		return nil, err
	}

	rentAmount, err := form.RequiredDecimal("rent_amount", "le montant du loyer est requis")
	if err != nil {
		return nil, err
	}
	chargesAmount, err := form.DecimalOr("charges_amount", decimal.Zero)
	if err != nil {
		return nil, err
	}
	paymentDate, err := form.DateOr("payment_date", today)
	if err != nil {
		return nil, err
	}

	return domain.NewRentReceipt(domain.RentReceipt{
		PeriodMonth:     periodMonth,
		PeriodYear:      periodYear,
		TenantName:      tenantName,
		TenantAddress:   tenantAddress,
		PropertyAddress: form.StringOr("property_address", tenantAddress),
		RentAmount:      rentAmount,
		ChargesAmount:   chargesAmount,
		PaymentDate:     paymentDate,
		PaymentMethod:   form.StringOr("payment_method", domain.PaymentTransfer),
	})
}
