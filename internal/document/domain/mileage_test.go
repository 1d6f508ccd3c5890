package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTrip() MileageTrip {
	return MileageTrip{
		TravelDate:    NewDate(2024, time.May, 14),
		StartLocation: "Paris",
		EndLocation:   "Rouen",
		DistanceKM:    decimal.RequireFromString("135.5"),
		Purpose:       "Rendez-vous client",
		VehicleType:   VehicleCar,
		FiscalPower:   5,
	}
}

func TestNewMileageTripAmount(t *testing.T) {
	trip, err := NewMileageTrip(validTrip())
	require.NoError(t, err)

	// 135.5 km x 0.606 = 82.113 -> 82.11
	assert.True(t, trip.RatePerKM().Equal(decimal.RequireFromString("0.606")))
	assert.True(t, trip.TotalAmount().Equal(decimal.RequireFromString("82.11")), "got %s", trip.TotalAmount())
}

func TestMileageTripFiscalPowerRequiredForCar(t *testing.T) {
	noPower := validTrip()
	noPower.FiscalPower = 0
	_, err := NewMileageTrip(noPower)
	require.Equal(t, KindMissingField, KindOf(err))
	assert.Equal(t, "fiscal_power", AsError(err).Field)

	moto := validTrip()
	moto.VehicleType = VehicleMotorcycle
	moto.FiscalPower = 0
	_, err = NewMileageTrip(moto)
	assert.Equal(t, KindMissingField, KindOf(err))
}

func TestMileageTripScooterDefaultsFiscalPower(t *testing.T) {
	scooter := validTrip()
	scooter.VehicleType = VehicleScooter
	scooter.FiscalPower = 0

	trip, err := NewMileageTrip(scooter)
	require.NoError(t, err)
	assert.Equal(t, 1, trip.FiscalPower)
	assert.True(t, trip.RatePerKM().Equal(decimal.RequireFromString("0.315")))
}

func TestMileageTripRejectsUnknownVehicle(t *testing.T) {
	bad := validTrip()
	bad.VehicleType = "tractor"
	_, err := NewMileageTrip(bad)
	assert.Equal(t, KindConstraintViolation, KindOf(err))

	tooStrong := validTrip()
	tooStrong.FiscalPower = 21
	_, err = NewMileageTrip(tooStrong)
	assert.Equal(t, KindConstraintViolation, KindOf(err))
}

func TestMileageReportTotal(t *testing.T) {
	first, err := NewMileageTrip(validTrip())
	require.NoError(t, err)

	second := validTrip()
	second.DistanceKM = decimal.RequireFromString("50")
	secondTrip, err := NewMileageTrip(second)
	require.NoError(t, err)

	report, err := NewMileageReport(MileageReport{Trips: []MileageTrip{first, secondTrip}})
	require.NoError(t, err)

	// 82.11 + 30.30
	assert.True(t, report.TotalAmount().Equal(decimal.RequireFromString("112.41")), "got %s", report.TotalAmount())

	_, err = NewMileageReport(MileageReport{})
	assert.Equal(t, KindConstraintViolation, KindOf(err))
}
