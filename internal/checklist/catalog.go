package checklist

import "fleet-inspector/internal/domain"

// truckCatalog lists every inspectable truck component in display order.
// The order is fixed at process start and shared by all truck entities.
var truckCatalog = []domain.ItemKey{
	"air_compressor",
	"air_lines",
	"battery",
	"belts_and_hoses",
	"body",
	"brake_accessories",
	"brake_parking",
	"brake_service",
	"clutch",
	"coupling_devices",
	"defroster_heater",
	"drive_line",
	"engine",
	"exhaust",
	"fifth_wheel",
	"fluid_levels",
	"frame_and_assembly",
	"front_axle",
	"fuel_tanks",
	"horn",
	"lights_head_stop",
	"lights_tail_dash",
	"lights_turn_indicators",
	"lights_clearance_marker",
	"mirrors",
	"muffler",
	"oil_pressure",
	"radiator",
	"rear_end",
	"reflectors",
	"safety_fire_extinguisher",
	"safety_flags_flares_fusees",
	"safety_reflective_triangles",
	"safety_spare_bulbs_and_fuses",
	"safety_spare_seal_beam",
	"starter",
	"steering",
	"suspension_system",
	"tire_chains",
	"tires",
	"transmission",
	"trip_recorder",
	"wheels_and_rims",
	"windows",
	"windshield_wipers",
	"other",
}

// trailerCatalog lists every inspectable trailer component in display order.
var trailerCatalog = []domain.ItemKey{
	"brake_connections",
	"brakes",
	"coupling_devices",
	"coupling_king_pin",
	"doors",
	"hitch",
	"landing_gear",
	"lights_all",
	"reflectors_reflective_tape",
	"roof",
	"suspension_system",
	"tarpaulin",
	"tires",
	"wheels_and_rims",
	"other",
}

// ItemsFor returns the ordered catalog for one entity kind. The returned
// slice is a copy; callers may not grow or reorder the catalog at runtime.
func ItemsFor(kind domain.EntityKind) []domain.ItemKey {
	var src []domain.ItemKey
	switch kind {
	case domain.EntityKindTruck:
		src = truckCatalog
	case domain.EntityKindTrailer:
		src = trailerCatalog
	default:
		return nil
	}

	items := make([]domain.ItemKey, len(src))
	copy(items, src)
	return items
}
