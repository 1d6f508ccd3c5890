package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, desc string, qty, price, rate string) LineItem {
	t.Helper()
	item, err := NewLineItem(desc,
		decimal.RequireFromString(qty),
		decimal.RequireFromString(price),
		decimal.RequireFromString(rate))
	require.NoError(t, err)
	return item
}

func validInvoice(t *testing.T) Invoice {
	return Invoice{
		IssueDate:     NewDate(2024, time.March, 1),
		DueDate:       NewDate(2024, time.March, 31),
		ClientName:    "Dupont SARL",
		ClientAddress: "12 rue de la Paix, 75002 Paris",
		Items:         []LineItem{mustItem(t, "Prestation de conseil", "3", "33.33", "0.20")},
	}
}

func TestNewLineItemRejectsBadFields(t *testing.T) {
	one := decimal.NewFromInt(1)

	_, err := NewLineItem("", one, one, decimal.Zero)
	assert.Equal(t, KindMissingField, KindOf(err))

	_, err = NewLineItem("x", decimal.Zero, one, decimal.Zero)
	assert.Equal(t, KindConstraintViolation, KindOf(err))

	_, err = NewLineItem("x", one, decimal.NewFromInt(-1), decimal.Zero)
	assert.Equal(t, KindConstraintViolation, KindOf(err))

	_, err = NewLineItem("x", one, one, decimal.NewFromFloat(1.5))
	assert.Equal(t, KindConstraintViolation, KindOf(err))
}

func TestInvoiceTotals(t *testing.T) {
	inv, err := NewInvoice(validInvoice(t))
	require.NoError(t, err)

	assert.True(t, inv.TotalExclTax().Equal(decimal.RequireFromString("99.99")))
	assert.True(t, inv.TotalTax().Equal(decimal.RequireFromString("20.00")))
	assert.True(t, inv.TotalInclTax().Equal(decimal.RequireFromString("119.99")))
	assert.Equal(t, DefaultPaymentTerms, inv.PaymentTerms)
}

func TestInvoiceRequiredFields(t *testing.T) {
	missingName := validInvoice(t)
	missingName.ClientName = "  "
	_, err := NewInvoice(missingName)
	require.Equal(t, KindMissingField, KindOf(err))
	assert.Equal(t, "client_name", AsError(err).Field)

	missingAddr := validInvoice(t)
	missingAddr.ClientAddress = ""
	_, err = NewInvoice(missingAddr)
	assert.Equal(t, "client_address", AsError(err).Field)

	noItems := validInvoice(t)
	noItems.Items = nil
	_, err = NewInvoice(noItems)
	assert.Equal(t, KindConstraintViolation, KindOf(err))
}

func TestInvoiceDueDateBeforeIssueDate(t *testing.T) {
	inv := validInvoice(t)
	inv.DueDate = NewDate(2024, time.February, 1)
	_, err := NewInvoice(inv)
	require.Equal(t, KindConstraintViolation, KindOf(err))
	assert.Equal(t, "due_date", AsError(err).Field)

	// Equal dates are allowed.
	inv.DueDate = inv.IssueDate
	_, err = NewInvoice(inv)
	assert.NoError(t, err)
}

func TestNormalizeSIRET(t *testing.T) {
	got, err := NormalizeSIRET("123 456 789 00012")
	require.NoError(t, err)
	assert.Equal(t, "12345678900012", got)

	got, err = NormalizeSIRET("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = NormalizeSIRET("1234567890001") // 13 digits
	assert.Equal(t, KindConstraintViolation, KindOf(err))

	_, err = NormalizeSIRET("1234567890001A")
	assert.Equal(t, KindConstraintViolation, KindOf(err))
}

func TestQuoteValidUntil(t *testing.T) {
	q, err := NewQuote(Quote{
		QuoteDate:     NewDate(2024, time.June, 1),
		ValidityDays:  30,
		ClientName:    "Martin SAS",
		ClientAddress: "3 avenue Foch, 69006 Lyon",
		Items:         []LineItem{mustItem(t, "Développement", "10", "500", "0.20")},
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-07-01", q.ValidUntil().String())

	bad := Quote{
		QuoteDate:     NewDate(2024, time.June, 1),
		ValidityDays:  0,
		ClientName:    "Martin SAS",
		ClientAddress: "3 avenue Foch, 69006 Lyon",
		Items:         q.Items,
	}
	_, err = NewQuote(bad)
	assert.Equal(t, KindConstraintViolation, KindOf(err))
}
