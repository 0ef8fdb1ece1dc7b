// Package dataset defines the housing table and its synthetic generator.
package dataset

// Proximity is the distance class of a housing block from the ocean.
// The set of values is fixed; the encoder rejects anything else.
type Proximity string

const (
	NearOceanHour Proximity = "<1H OCEAN"
	Inland        Proximity = "INLAND"
	NearOcean     Proximity = "NEAR OCEAN"
	NearBay       Proximity = "NEAR BAY"
	Island        Proximity = "ISLAND"
)

// Proximities returns the fixed category set in canonical order.
func Proximities() []Proximity {
	return []Proximity{NearOceanHour, Inland, NearOcean, NearBay, Island}
}

// ProximityNames returns the category set as strings, in canonical order.
func ProximityNames() []string {
	ps := Proximities()
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = string(p)
	}
	return names
}

// Valid reports whether p is one of the fixed categories.
func (p Proximity) Valid() bool {
	switch p {
	case NearOceanHour, Inland, NearOcean, NearBay, Island:
		return true
	}
	return false
}

// Record is one housing block. Counts are stored as float64 so the table
// converts to a gonum matrix without per-cell conversion; the generator
// only ever writes whole numbers into the count fields.
type Record struct {
	Longitude        float64
	Latitude         float64
	HousingMedianAge float64
	TotalRooms       float64
	TotalBedrooms    float64
	Population       float64
	Households       float64
	MedianIncome     float64
	MedianHouseValue float64
	OceanProximity   Proximity

	// Derived ratio features, populated by EngineerFeatures.
	RoomsPerHousehold      float64
	BedroomsPerRoom        float64
	PopulationPerHousehold float64
}
