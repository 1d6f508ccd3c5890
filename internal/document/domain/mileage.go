package domain

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/scribe/internal/money"
)

// Vehicle types accepted on mileage trips, mirroring the tariff bands.
const (
	VehicleCar        = money.VehicleCar
	VehicleMotorcycle = money.VehicleMotorcycle
	VehicleScooter    = money.VehicleScooter
)

// MileageTrip is a single reimbursable trip.
type MileageTrip struct {
	TravelDate    Date            `json:"travel_date"`
	StartLocation string          `json:"start_location"`
	EndLocation   string          `json:"end_location"`
	DistanceKM    decimal.Decimal `json:"distance_km"`
	Purpose       string          `json:"purpose"`
	VehicleType   string          `json:"vehicle_type"`
	FiscalPower   int             `json:"fiscal_power"`
}

// NewMileageTrip validates a trip. Fiscal power is mandatory for cars and
// motorcycles because it selects the tariff band; scooters have a flat
// rate, so the pipeline defaults their fiscal power to 1.
func NewMileageTrip(trip MileageTrip) (MileageTrip, error) {
	if trip.TravelDate.IsZero() {
		return MileageTrip{}, MissingField("travel_date", "la date du déplacement est requise")
	}
	if strings.TrimSpace(trip.StartLocation) == "" {
		return MileageTrip{}, MissingField("start_location", "le lieu de départ est requis")
	}
	if strings.TrimSpace(trip.EndLocation) == "" {
		return MileageTrip{}, MissingField("end_location", "le lieu d'arrivée est requis")
	}
	if strings.TrimSpace(trip.Purpose) == "" {
		return MileageTrip{}, MissingField("purpose", "le motif du déplacement est requis")
	}
	if !trip.DistanceKM.IsPositive() {
		return MileageTrip{}, ConstraintViolation("distance_km", "la distance doit être strictement positive")
	}

	switch trip.VehicleType {
	case VehicleCar, VehicleMotorcycle:
		if trip.FiscalPower <= 0 {
			return MileageTrip{}, MissingField("fiscal_power",
				"la puissance fiscale est requise pour une voiture ou une moto")
		}
	case VehicleScooter:
		if trip.FiscalPower <= 0 {
			trip.FiscalPower = 1
		}
	default:
		return MileageTrip{}, ConstraintViolation("vehicle_type",
			"le type de véhicule doit être car, motorcycle ou scooter")
	}
	if trip.FiscalPower > 20 {
		return MileageTrip{}, ConstraintViolation("fiscal_power", "la puissance fiscale doit être comprise entre 1 et 20")
	}
	return trip, nil
}

// RatePerKM returns the tariff rate for this trip.
func (t MileageTrip) RatePerKM() decimal.Decimal {
	rate, err := money.MileageRate(t.VehicleType, t.FiscalPower)
	if err != nil {
		// Unreachable for trips built through NewMileageTrip.
		return decimal.Zero
	}
	return rate
}

// TotalAmount is the rounded reimbursement for this trip.
func (t MileageTrip) TotalAmount() decimal.Decimal {
	return money.Round2(t.DistanceKM.Mul(t.RatePerKM()))
}

// MileageReport groups trips under one document number.
type MileageReport struct {
	Number string        `json:"document_number"`
	Trips  []MileageTrip `json:"trips"`
}

func NewMileageReport(report MileageReport) (*MileageReport, error) {
	if len(report.Trips) == 0 {
		return nil, ConstraintViolation("trips", "au moins un trajet est requis")
	}
	return &report, nil
}

// TotalAmount sums the trip reimbursements.
func (r *MileageReport) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, trip := range r.Trips {
		total = total.Add(trip.TotalAmount())
	}
	return total
}
