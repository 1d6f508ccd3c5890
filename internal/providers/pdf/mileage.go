package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/smallbiznis/scribe/internal/document/domain"
)

var vehicleLabels = map[string]string{
	domain.VehicleCar:        "Voiture",
	domain.VehicleMotorcycle: "Moto",
	domain.VehicleScooter:    "Cyclomoteur",
}

func (r *Renderer) renderMileageReport(m core.Maroto, report *domain.MileageReport) {
	titleRow(m, "Note de frais kilométriques")

	m.AddRow(10,
		col.New(6).Add(
			text.New("Numéro : "+report.Number, props.Text{Top: 0}),
		),
		col.New(6),
	)

	m.AddRow(24, r.issuerCol(), col.New(6))

	m.AddRow(8,
		text.NewCol(2, "Date", props.Text{Style: fontstyle.Bold, Size: 8}),
		text.NewCol(3, "Trajet", props.Text{Style: fontstyle.Bold, Size: 8}),
		text.NewCol(2, "Motif", props.Text{Style: fontstyle.Bold, Size: 8}),
		text.NewCol(2, "Véhicule", props.Text{Style: fontstyle.Bold, Size: 8}),
		text.NewCol(1, "km", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right}),
		text.NewCol(1, "Barème", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right}),
		text.NewCol(1, "Montant", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right}),
	)

	for _, trip := range report.Trips {
		vehicle := vehicleLabels[trip.VehicleType]
		if trip.VehicleType != domain.VehicleScooter {
			vehicle = fmt.Sprintf("%s %d CV", vehicle, trip.FiscalPower)
		}
		m.AddRow(8,
			text.NewCol(2, frenchDate(trip.TravelDate), props.Text{Size: 8}),
			text.NewCol(3, trip.StartLocation+" → "+trip.EndLocation, props.Text{Size: 8}),
			text.NewCol(2, trip.Purpose, props.Text{Size: 8}),
			text.NewCol(2, vehicle, props.Text{Size: 8}),
			text.NewCol(1, trip.DistanceKM.String(), props.Text{Size: 8, Align: align.Right}),
			text.NewCol(1, trip.RatePerKM().String(), props.Text{Size: 8, Align: align.Right}),
			text.NewCol(1, euro(trip.TotalAmount()), props.Text{Size: 8, Align: align.Right}),
		)
	}

	totalRow(m, "Total à rembourser", euro(report.TotalAmount()), true)
}
