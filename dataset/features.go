package dataset

import (
	"github.com/housight/housight/pkg/errors"
)

// EngineerFeatures populates the three derived ratio columns in place:
//
//	rooms_per_household      = total_rooms / households
//	bedrooms_per_room        = total_bedrooms / total_rooms
//	population_per_household = population / households
//
// The generator's ranges keep every denominator positive, but tables built
// from other sources may not; a zero denominator fails the whole run with
// the offending row named.
func EngineerFeatures(t *Table) error {
	if t.NumRows() == 0 {
		return errors.NewModelError("EngineerFeatures", "empty table", errors.ErrEmptyData)
	}
	if t.engineered {
		return errors.NewValueError("EngineerFeatures", "derived columns already present")
	}

	for i := range t.records {
		r := &t.records[i]
		if r.Households == 0 {
			return errors.Wrapf(errors.ErrZeroDenominator, "EngineerFeatures: households is zero at row %d", i)
		}
		if r.TotalRooms == 0 {
			return errors.Wrapf(errors.ErrZeroDenominator, "EngineerFeatures: total_rooms is zero at row %d", i)
		}
		r.RoomsPerHousehold = r.TotalRooms / r.Households
		r.BedroomsPerRoom = r.TotalBedrooms / r.TotalRooms
		r.PopulationPerHousehold = r.Population / r.Households
	}

	t.engineered = true
	return nil
}
