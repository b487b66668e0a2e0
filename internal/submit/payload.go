package submit

import (
	"fleet-inspector/internal/domain"
	"fleet-inspector/internal/inspection"
)

// reportPayload is the wire body accepted by the persistence endpoint.
type reportPayload struct {
	Carrier              string                             `json:"carrier"`
	Address              string                             `json:"address"`
	InspectionDate       string                             `json:"inspection_date"`
	TruckNumber          string                             `json:"truck_number"`
	OdometerReading      int                                `json:"odometer_reading"`
	TruckInspectionItems map[domain.ItemKey]*domain.Verdict `json:"truck_inspection_items"`
	Trailers             []trailerPayload                   `json:"trailers"`
}

// trailerPayload is one trailer element of the wire body. ReportID stays at
// the 0 sentinel for not-yet-persisted trailers; the server assigns it.
type trailerPayload struct {
	ReportID        int                                `json:"report_id"`
	TrailerNumber   string                             `json:"trailer_number"`
	InspectionItems map[domain.ItemKey]*domain.Verdict `json:"inspection_items"`
}

// buildPayload normalizes the accumulated session state into one wire body.
// Evidence references are excluded: photos stay client-local.
func buildPayload(session *inspection.Session) reportPayload {
	trailers := session.Trailers()
	trailerBodies := make([]trailerPayload, len(trailers))
	for i, trailer := range trailers {
		trailerBodies[i] = trailerPayload{
			ReportID:        0,
			TrailerNumber:   trailer.Identifier,
			InspectionItems: trailer.Mapping(),
		}
	}

	return reportPayload{
		Carrier:              session.Carrier(),
		Address:              session.Address(),
		InspectionDate:       session.InspectedAt(),
		TruckNumber:          session.TruckNumber(),
		OdometerReading:      session.Odometer(),
		TruckInspectionItems: session.Truck().Mapping(),
		Trailers:             trailerBodies,
	}
}
