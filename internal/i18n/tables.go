package i18n

import (
	"golang.org/x/text/language"

	"fleet-inspector/internal/domain"
)

// labels holds the static translation tables. Every catalog key of both
// entity kinds has an entry per supported language; keys shared between the
// truck and trailer catalogs share one label.
var labels = map[language.Tag]map[domain.ItemKey]string{
	language.Spanish: {
		"air_compressor":               "Compresor de aire",
		"air_lines":                    "Líneas de aire",
		"battery":                      "Batería",
		"belts_and_hoses":              "Correas y mangueras",
		"body":                         "Carrocería",
		"brake_accessories":            "Accesorios de freno",
		"brake_parking":                "Freno de estacionamiento",
		"brake_service":                "Freno de servicio",
		"clutch":                       "Embrague",
		"coupling_devices":             "Dispositivos de acoplamiento",
		"defroster_heater":             "Desempañador / calefacción",
		"drive_line":                   "Línea de transmisión",
		"engine":                       "Motor",
		"exhaust":                      "Escape",
		"fifth_wheel":                  "Quinta rueda",
		"fluid_levels":                 "Niveles de fluidos",
		"frame_and_assembly":           "Chasis y ensamblaje",
		"front_axle":                   "Eje delantero",
		"fuel_tanks":                   "Tanques de combustible",
		"horn":                         "Bocina",
		"lights_head_stop":             "Luces delanteras y de freno",
		"lights_tail_dash":             "Luces traseras y de tablero",
		"lights_turn_indicators":       "Luces direccionales",
		"lights_clearance_marker":      "Luces de gálibo",
		"mirrors":                      "Espejos",
		"muffler":                      "Silenciador",
		"oil_pressure":                 "Presión de aceite",
		"radiator":                     "Radiador",
		"rear_end":                     "Diferencial trasero",
		"reflectors":                   "Reflectores",
		"safety_fire_extinguisher":     "Extintor de incendios",
		"safety_flags_flares_fusees":   "Banderas, bengalas y fusibles de emergencia",
		"safety_reflective_triangles":  "Triángulos reflectantes",
		"safety_spare_bulbs_and_fuses": "Focos y fusibles de repuesto",
		"safety_spare_seal_beam":       "Faro sellado de repuesto",
		"starter":                      "Motor de arranque",
		"steering":                     "Dirección",
		"suspension_system":            "Sistema de suspensión",
		"tire_chains":                  "Cadenas para llantas",
		"tires":                        "Llantas",
		"transmission":                 "Transmisión",
		"trip_recorder":                "Registrador de viaje",
		"wheels_and_rims":              "Ruedas y rines",
		"windows":                      "Ventanas",
		"windshield_wipers":            "Limpiaparabrisas",
		"other":                        "Otro",
		"brake_connections":            "Conexiones de freno",
		"brakes":                       "Frenos",
		"coupling_king_pin":            "Perno rey de acoplamiento",
		"doors":                        "Puertas",
		"hitch":                        "Enganche",
		"landing_gear":                 "Patines de apoyo",
		"lights_all":                   "Todas las luces",
		"reflectors_reflective_tape":   "Reflectores y cinta reflectante",
		"roof":                         "Techo",
		"tarpaulin":                    "Lona",
	},
	language.English: {
		"air_compressor":               "Air compressor",
		"air_lines":                    "Air lines",
		"battery":                      "Battery",
		"belts_and_hoses":              "Belts and hoses",
		"body":                         "Body",
		"brake_accessories":            "Brake accessories",
		"brake_parking":                "Parking brake",
		"brake_service":                "Service brake",
		"clutch":                       "Clutch",
		"coupling_devices":             "Coupling devices",
		"defroster_heater":             "Defroster / heater",
		"drive_line":                   "Drive line",
		"engine":                       "Engine",
		"exhaust":                      "Exhaust",
		"fifth_wheel":                  "Fifth wheel",
		"fluid_levels":                 "Fluid levels",
		"frame_and_assembly":           "Frame and assembly",
		"front_axle":                   "Front axle",
		"fuel_tanks":                   "Fuel tanks",
		"horn":                         "Horn",
		"lights_head_stop":             "Head and stop lights",
		"lights_tail_dash":             "Tail and dash lights",
		"lights_turn_indicators":       "Turn indicators",
		"lights_clearance_marker":      "Clearance and marker lights",
		"mirrors":                      "Mirrors",
		"muffler":                      "Muffler",
		"oil_pressure":                 "Oil pressure",
		"radiator":                     "Radiator",
		"rear_end":                     "Rear end",
		"reflectors":                   "Reflectors",
		"safety_fire_extinguisher":     "Fire extinguisher",
		"safety_flags_flares_fusees":   "Flags, flares and fusees",
		"safety_reflective_triangles":  "Reflective triangles",
		"safety_spare_bulbs_and_fuses": "Spare bulbs and fuses",
		"safety_spare_seal_beam":       "Spare sealed beam",
		"starter":                      "Starter",
		"steering":                     "Steering",
		"suspension_system":            "Suspension system",
		"tire_chains":                  "Tire chains",
		"tires":                        "Tires",
		"transmission":                 "Transmission",
		"trip_recorder":                "Trip recorder",
		"wheels_and_rims":              "Wheels and rims",
		"windows":                      "Windows",
		"windshield_wipers":            "Windshield wipers",
		"other":                        "Other",
		"brake_connections":            "Brake connections",
		"brakes":                       "Brakes",
		"coupling_king_pin":            "Coupling king pin",
		"doors":                        "Doors",
		"hitch":                        "Hitch",
		"landing_gear":                 "Landing gear",
		"lights_all":                   "All lights",
		"reflectors_reflective_tape":   "Reflectors and reflective tape",
		"roof":                         "Roof",
		"tarpaulin":                    "Tarpaulin",
	},
}
