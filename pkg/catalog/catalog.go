// Package catalog holds the fixed reference data the report wizard selects
// from: job-type categories, buildings, and the per-building floor lookup.
package catalog

// JobTypes is the fixed list of job-type categories.
var JobTypes = []string{
	"HVAC/AC",
	"Listrik (Electrical)",
	"Plumbing (Perpipaan)",
	"Sipil & Interior",
	"Lift & Eskalator",
	"Fire System (Proteksi Kebakaran)",
	"Lainnya",
}

// Buildings is the fixed list of buildings a report can reference.
var Buildings = []string{
	"Gedung A (Utama)",
	"Gedung B",
	"Gedung C (Annex)",
	"Area Luar (Outdoor)",
}

// buildingFloors maps each building to its exact floor list. Floor selection
// is constrained to the chosen building's list and nothing else.
var buildingFloors = map[string][]string{
	"Gedung A (Utama)": {
		"Basement",
		"Lantai 1",
		"Lantai 2",
		"Lantai 3",
		"Lantai 4",
		"Rooftop",
	},
	"Gedung B": {
		"Lantai 1",
		"Lantai 2",
		"Lantai 3",
	},
	"Gedung C (Annex)": {
		"Lantai 1",
		"Lantai 2",
	},
	"Area Luar (Outdoor)": {
		"Area Parkir",
		"Taman & Pedestrian",
	},
}

// ValidJobType reports whether t is one of the fixed job-type categories.
func ValidJobType(t string) bool {
	return contains(JobTypes, t)
}

// ValidBuilding reports whether b is a known building.
func ValidBuilding(b string) bool {
	return contains(Buildings, b)
}

// FloorsFor returns the floor list for a building. Unknown buildings have no
// floors, which makes every floor choice invalid for them.
func FloorsFor(building string) []string {
	return buildingFloors[building]
}

// BuildingFloors returns a copy of the full building-to-floors mapping for
// clients that render the dependent floor dropdown.
func BuildingFloors() map[string][]string {
	out := make(map[string][]string, len(buildingFloors))
	for building, floors := range buildingFloors {
		out[building] = append([]string(nil), floors...)
	}
	return out
}

// ValidFloor reports whether floor belongs to the given building's list.
func ValidFloor(building, floor string) bool {
	return contains(buildingFloors[building], floor)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
