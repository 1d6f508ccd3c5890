package pipeline

import (
	"github.com/smallbiznis/scribe/internal/document/domain"
)

// BuildMileageReport validates mileage input. The form either carries a
// "trips" list or describes a single trip with its fields at the top
// level; the flat shape is what the NLU boundary extracts most often.
func BuildMileageReport(form Form, today domain.Date) (*domain.MileageReport, error) {
	tripForms, ok, err := form.List("trips")
	if err != nil {
		return nil, err
	}
	if !ok {
		tripForms = []Form{form}
	}

	trips := make([]domain.MileageTrip, 0, len(tripForms))
	for _, tripForm := range tripForms {
		trip, err := buildTrip(tripForm, today)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}

	return domain.NewMileageReport(domain.MileageReport{Trips: trips})
}

func buildTrip(form Form, today domain.Date) (domain.MileageTrip, error) {
	travelDate, err := form.DateOr("travel_date", today)
	if err != nil {
		return domain.MileageTrip{}, err
	}
	distance, err := form.RequiredDecimal("distance_km", "la distance du déplacement est requise")
	if err != nil {
		return domain.MileageTrip{}, err
	}
	fiscalPower, err := form.IntOr("fiscal_power", 0)
	if err != nil {
		return domain.MileageTrip{}, err
	}

	return domain.NewMileageTrip(domain.MileageTrip{
		TravelDate:    travelDate,
		StartLocation: form.StringOr("start_location", ""),
		EndLocation:   form.StringOr("end_location", ""),
		DistanceKM:    distance,
		Purpose:       form.StringOr("purpose", ""),
		VehicleType:   form.StringOr("vehicle_type", domain.VehicleCar),
		FiscalPower:   fiscalPower,
	})
}
