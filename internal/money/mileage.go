package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Vehicle types recognized by the kilometric tariff.
const (
	VehicleCar        = "car"
	VehicleMotorcycle = "motorcycle"
	VehicleScooter    = "scooter"
)

// 2024 barème kilométrique, flat-rate bands by fiscal horsepower.
var (
	rateCarLow     = decimal.NewFromFloat(0.529) // <= 3 CV
	rateCarMid     = decimal.NewFromFloat(0.606) // 4-5 CV
	rateCarHigh    = decimal.NewFromFloat(0.636) // 6-7 CV
	rateCarTop     = decimal.NewFromFloat(0.665) // >= 8 CV
	rateMotoLow    = decimal.NewFromFloat(0.395) // <= 2 CV
	rateMotoHigh   = decimal.NewFromFloat(0.468) // >= 3 CV
	rateScooterAny = decimal.NewFromFloat(0.315)
)

// MileageRate returns the per-kilometre reimbursement rate for the given
// vehicle type and fiscal power band.
func MileageRate(vehicleType string, fiscalPower int) (decimal.Decimal, error) {
	switch vehicleType {
	case VehicleCar:
		switch {
		case fiscalPower <= 3:
			return rateCarLow, nil
		case fiscalPower <= 5:
			return rateCarMid, nil
		case fiscalPower <= 7:
			return rateCarHigh, nil
		default:
			return rateCarTop, nil
		}
	case VehicleMotorcycle:
		if fiscalPower <= 2 {
			return rateMotoLow, nil
		}
		return rateMotoHigh, nil
	case VehicleScooter:
		return rateScooterAny, nil
	default:
		return decimal.Zero, fmt.Errorf("unknown vehicle type %q", vehicleType)
	}
}
